package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
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

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      *hash.HMACSHA256
	uuid      uid.StringID

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	cache     cache.Cache
	idemp     idempotency.Idempotency
	messaging messaging.Messaging
	cron      *cron.Cron

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initDatabase()
	app.initCache()
	app.initMessaging()
	app.initCron()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
