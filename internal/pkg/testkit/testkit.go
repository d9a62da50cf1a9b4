// Package testkit provides the backing stores used by integration tests.
//
// REDIS_URL and DATABASE_URL point tests at an existing server. Without them a
// container is started once per test binary and reaped by testcontainers when
// the binary exits. Tests are skipped when no container runtime is available.
package testkit

import (
	"context"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const (
	redisImage    = "redis:7-alpine"
	postgresImage = "postgres:16-alpine"
)

type lazyURL struct {
	once sync.Once
	url  string
	err  error
}

func (l *lazyURL) get(t *testing.T, env string, start func(context.Context) (string, error)) string {
	t.Helper()

	if url := os.Getenv(env); url != "" {
		return url
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)

	l.once.Do(func() {
		l.url, l.err = start(context.Background())
	})
	require.NoError(t, l.err)
	return l.url
}

var (
	redisURL    lazyURL
	postgresURL lazyURL
)

// Redis returns a connected client, closed when t ends.
func Redis(t *testing.T) *redis.Client {
	t.Helper()

	url := redisURL.get(t, "REDIS_URL", func(ctx context.Context) (string, error) {
		c, err := tcredis.Run(ctx, redisImage)
		if err != nil {
			return "", err
		}
		return c.ConnectionString(ctx)
	})

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

// Postgres returns a connected pool, closed when t ends.
func Postgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := postgresURL.get(t, "DATABASE_URL", func(ctx context.Context) (string, error) {
		c, err := tcpostgres.Run(ctx, postgresImage,
			tcpostgres.WithDatabase("elasticmail"),
			tcpostgres.WithUsername("elasticmail"),
			tcpostgres.WithPassword("elasticmail"),
			tcpostgres.BasicWaitStrategies(),
		)
		if err != nil {
			return "", err
		}
		return c.ConnectionString(ctx, "sslmode=disable")
	})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pool.Ping(ctx))
	return pool
}

// Prefix namespaces keys per test run so a shared REDIS_URL server needs no flush.
func Prefix(t *testing.T) string {
	t.Helper()
	return "test:" + t.Name() + ":" + strconv.FormatInt(time.Now().UnixNano(), 36) + ":"
}
