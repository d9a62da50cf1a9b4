package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/pkg/clock"
	"github.com/shandysiswandi/elasticmail/internal/pkg/config"
	"github.com/shandysiswandi/elasticmail/internal/pkg/hash"
	"github.com/shandysiswandi/elasticmail/internal/pkg/idempotency"
	"github.com/shandysiswandi/elasticmail/internal/pkg/instrument"
	"github.com/shandysiswandi/elasticmail/internal/pkg/uid"
	"github.com/shandysiswandi/elasticmail/internal/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type repoAPI interface {
	Credentials() entity.Credentials
	AccountDetails(ctx context.Context, useCache bool) (entity.AccountDetails, error)
	ChannelList(ctx context.Context, useCache bool) (entity.ChannelList, error)
	ActivityLog(ctx context.Context, filter entity.ActivityLogFilter, useCache bool) ([]entity.ActivityLogRow, error)
	Send(ctx context.Context, form *entity.Params) (string, error)
}

type repoQueue interface {
	Enqueue(ctx context.Context, item entity.QueueItem) error
	Count(ctx context.Context) (int64, error)
}

type repoDeliveryLog interface {
	CreateDeliveryLog(ctx context.Context, in entity.DeliveryLog) error
	ListDeliveryLogs(ctx context.Context, limit int) ([]entity.DeliveryLog, error)
}

type Usecase struct {
	repoAPI         repoAPI
	repoQueue       repoQueue
	repoDeliveryLog repoDeliveryLog
	idemp           idempotency.Idempotency
	hmac            *hash.HMACSHA256
	validator       validator.Validator
	cfg             config.Config
	uuid            uid.StringID
	clock           clock.Clocker
	ins             instrument.Instrumentation

	deliveries metric.Int64Counter
}

type Dependency struct {
	RepoAPI   repoAPI
	RepoQueue repoQueue
	// RepoDeliveryLog is optional; outcomes are not persisted when nil.
	RepoDeliveryLog repoDeliveryLog
	Idempotency     idempotency.Idempotency
	HMAC            *hash.HMACSHA256
	Validator       validator.Validator
	Config          config.Config
	UUID            uid.StringID
	Clock           clock.Clocker
	Instrument      instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	deliveries, err := dep.Instrument.Meter("elasticemail.usecase").Int64Counter(
		"elasticemail.deliveries",
		metric.WithDescription("Number of mail deliveries, by status"),
	)
	if err != nil {
		slog.Error("failed to create delivery counter", "error", err)
	}

	return &Usecase{
		repoAPI:         dep.RepoAPI,
		repoQueue:       dep.RepoQueue,
		repoDeliveryLog: dep.RepoDeliveryLog,
		idemp:           dep.Idempotency,
		hmac:            dep.HMAC,
		validator:       dep.Validator,
		cfg:             dep.Config,
		uuid:            dep.UUID,
		clock:           dep.Clock,
		ins:             dep.Instrument,
		deliveries:      deliveries,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("elasticemail.usecase").Start(ctx, name)
}

func (s *Usecase) countDelivery(ctx context.Context, status entity.DeliveryStatus) {
	if s.deliveries == nil {
		return
	}
	s.deliveries.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(status))))
}
