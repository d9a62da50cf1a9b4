package elasticemail

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"github.com/shandysiswandi/elasticmail/internal/elasticemail/inbound"
	"github.com/shandysiswandi/elasticmail/internal/elasticemail/outbound/api"
	"github.com/shandysiswandi/elasticmail/internal/elasticemail/outbound/db"
	"github.com/shandysiswandi/elasticmail/internal/elasticemail/outbound/mq"
	"github.com/shandysiswandi/elasticmail/internal/elasticemail/usecase"
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
	"github.com/shandysiswandi/elasticmail/internal/shared/event"
)

type Dependency struct {
	Ctx context.Context
	// DBConn is optional; the delivery log is disabled without it.
	DBConn      *pgxpool.Pool
	Cache       cache.Cache
	Idempotency idempotency.Idempotency
	Messaging   messaging.Messaging
	Config      config.Config
	Instrument  instrument.Instrumentation
	UUID        uid.StringID
	HMAC        *hash.HMACSHA256
	Clock       clock.Clocker
	Goroutine   *goroutine.Manager
	Validator   validator.Validator
	Router      *router.Router
	Cron        *cron.Cron
}

func New(dep Dependency) error {
	apiClient := api.NewClient(api.Dependency{
		Config:     dep.Config,
		Cache:      dep.Cache,
		Clock:      dep.Clock,
		HTTPClient: &http.Client{Timeout: dep.Config.GetSecond("elasticemail.http_timeout_seconds")},
		Instrument: dep.Instrument,
		BaseURL:    dep.Config.GetString("elasticemail.base_url"),
	})

	queueName := dep.Config.GetString("elasticemail.queue_name")
	if queueName == "" {
		queueName = event.MailQueueDestination
	}

	ucDep := usecase.Dependency{
		RepoAPI:     apiClient,
		RepoQueue:   mq.NewMessaging(dep.Messaging, dep.Instrument, queueName),
		Idempotency: dep.Idempotency,
		HMAC:        dep.HMAC,
		Validator:   dep.Validator,
		Config:      dep.Config,
		UUID:        dep.UUID,
		Clock:       dep.Clock,
		Instrument:  dep.Instrument,
	}

	if dep.DBConn != nil {
		dbLog := db.NewDB(dep.DBConn, dep.Instrument)
		ctx := dep.Ctx
		if ctx == nil {
			ctx = context.Background()
		}
		if err := dbLog.EnsureSchema(ctx); err != nil {
			return err
		}
		ucDep.RepoDeliveryLog = dbLog
	}

	uc := usecase.New(ucDep)

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}
	if dep.Cron != nil {
		if _, err := inbound.RegisterCronJobs(dep.Cron, dep.Config, dep.UUID, uc, dep.Instrument); err != nil {
			return err
		}
	}

	return nil
}
