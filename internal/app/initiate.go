package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/nsqio/go-nsq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/segmentio/kafka-go"
	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/elasticmail/internal/pkg/cache"
	"github.com/shandysiswandi/elasticmail/internal/pkg/clock"
	"github.com/shandysiswandi/elasticmail/internal/pkg/config"
	"github.com/shandysiswandi/elasticmail/internal/pkg/goroutine"
	"github.com/shandysiswandi/elasticmail/internal/pkg/hash"
	"github.com/shandysiswandi/elasticmail/internal/pkg/idempotency"
	"github.com/shandysiswandi/elasticmail/internal/pkg/instrument"
	"github.com/shandysiswandi/elasticmail/internal/pkg/messaging"
	"github.com/shandysiswandi/elasticmail/internal/pkg/router"
	"github.com/shandysiswandi/elasticmail/internal/pkg/uid"
	"github.com/shandysiswandi/elasticmail/internal/pkg/validator"
)

const (
	cacheDriverRedis  = "redis"
	cacheDriverMemory = "memory"
)

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "/config/config.yaml"
		if os.Getenv("LOCAL") == "true" {
			path = "./config/config.yaml"
		}
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
		LogLevel:         a.config.GetString("instrument.log_level"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))
	a.hmac = hash.NewHMACSHA256(a.config.GetString("hash.hmac.secret"))

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator
}

// pingWithRetry retries ping with a capped fibonacci backoff so the service
// tolerates dependencies that start a little later than it does.
func (a *App) pingWithRetry(name string, ping func(ctx context.Context) error) error {
	b := retry.NewFibonacci(200 * time.Millisecond)
	b = retry.WithCappedDuration(2*time.Second, b)
	b = retry.WithMaxRetries(uint64(max(a.config.GetInt("app.startup.ping_retries"), 0)), b)

	return retry.Do(a.ctx, b, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := ping(pingCtx); err != nil {
			slog.Warn("dependency not ready", "name", name, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (a *App) initDatabase() {
	if !a.config.GetBool("database.enabled") {
		slog.Info("database is disabled, delivery log will not be persisted")
		return
	}

	config, err := pgxpool.ParseConfig(a.config.GetString("database.url"))
	if err != nil {
		slog.Error("failed to parse DB connection string.", "error", err)
		os.Exit(1)
	}

	config.MaxConns = a.config.GetInt32("database.pool.max_conns")
	config.MinConns = a.config.GetInt32("database.pool.min_conns")
	config.MaxConnLifetime = a.config.GetSecond("database.pool.max_conn_lifetime_seconds")
	config.MaxConnIdleTime = a.config.GetSecond("database.pool.max_conn_idle_seconds")
	config.HealthCheckPeriod = a.config.GetSecond("database.pool.health_check_period_seconds")

	pool, err := pgxpool.NewWithConfig(a.ctx, config)
	if err != nil {
		slog.Error("failed to create DB connection pool", "error", err)
		os.Exit(1)
	}

	if err := a.pingWithRetry("database", pool.Ping); err != nil {
		slog.Error("failed to ping DB", "error", err)
		os.Exit(1)
	}

	a.dbConn = pool
}

func (a *App) initCache() {
	driver := strings.ToLower(strings.TrimSpace(a.config.GetString("cache.driver")))

	if url := a.config.GetString("redis.url"); url != "" {
		opt, err := redis.ParseURL(url)
		if err != nil {
			slog.Error("failed to parse redis url", "error", err)
			os.Exit(1)
		}

		rdb := redis.NewClient(opt)
		if err := a.pingWithRetry("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}); err != nil {
			slog.Error("failed to init redis", "error", err)
			os.Exit(1)
		}

		a.cacheConn = rdb
	}

	switch {
	case driver == cacheDriverMemory:
		a.cache = cache.NewMemory()
		a.idemp = idempotency.NewMemory(a.clock.Now)
	case a.cacheConn != nil:
		a.cache = cache.NewRedis(a.cacheConn, a.config.GetString("cache.prefix"))
		a.idemp = idempotency.New(a.cacheConn, a.config.GetString("idempotency.prefix"))
	default:
		slog.Error("cache driver requires redis.url", "driver", driver)
		os.Exit(1)
	}
}

func (a *App) initMessaging() {
	opts := messaging.FactoryOptions{
		Redis: messaging.RedisConfig{
			Prefix: a.config.GetString("messaging.redis.prefix"),
		},
		NSQ: messaging.NSQConfig{
			ProducerAddr:         a.config.GetString("messaging.nsq.producer_addr"),
			ConsumerNSQDAddrs:    a.config.GetArray("messaging.nsq.consumer_nsqd_addrs"),
			ConsumerLookupdAddrs: a.config.GetArray("messaging.nsq.consumer_lookupd_addrs"),
			StatsAddr:            a.config.GetString("messaging.nsq.stats_addr"),
			ConsumerConfig: func() *nsq.Config {
				cfg := nsq.NewConfig()
				if v := a.config.GetInt("messaging.nsq.consumer_config.max_attempts"); v > 0 {
					cfg.MaxAttempts = uint16(min(v, 65535)) //nolint:gosec // bounded above
				}
				if v := a.config.GetSecond("messaging.nsq.consumer_config.default_requeue_delay_seconds"); v > 0 {
					cfg.DefaultRequeueDelay = v
				}
				if v := a.config.GetSecond("messaging.nsq.consumer_config.lookupd_poll_interval_seconds"); v > 0 {
					cfg.LookupdPollInterval = v
				}
				return cfg
			}(),
		},
		NATS: messaging.NATSConfig{
			URL: a.config.GetString("messaging.nats.url"),
			Options: []nats.Option{
				nats.Name(a.config.GetString("messaging.nats.name")),
				nats.MaxReconnects(a.config.GetInt("messaging.nats.max_reconnects")),
				nats.ReconnectWait(a.config.GetSecond("messaging.nats.reconnect_wait_seconds")),
				nats.RetryOnFailedConnect(a.config.GetBool("messaging.nats.retry_on_failed_connect")),
			},
		},
		Kafka: messaging.KafkaConfig{
			Brokers: a.config.GetArray("messaging.kafka.brokers"),
			Dialer: &kafka.Dialer{
				ClientID:  a.config.GetString("messaging.kafka.client_id"),
				Timeout:   a.config.GetSecond("messaging.kafka.dial_timeout_seconds"),
				DualStack: true,
			},
		},
	}
	if a.cacheConn != nil {
		opts.Redis.Client = a.cacheConn
	}

	driver := a.config.GetString("messaging.driver")
	client, err := messaging.NewFromDriver(driver, opts)
	if err != nil {
		slog.Error("failed to init messaging", "error", err, "driver", driver)
		os.Exit(1)
	}

	a.messaging = client
}

func (a *App) initCron() {
	a.cron = cron.New(cron.WithLocation(time.UTC))
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Hash:       a.hmac,
		Instrument: a.ins,
	})
	a.router.GET("/health", a.health)

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Messaging",
			fn: func(context.Context) error {
				return a.messaging.Close()
			},
		},
		{
			name: "Redis",
			fn: func(context.Context) error {
				if a.cacheConn == nil {
					return nil
				}
				return a.cacheConn.Close()
			},
		},
		{
			name: "Database",
			fn: func(context.Context) error {
				if a.dbConn != nil {
					a.dbConn.Close()
				}
				return nil
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
