package inbound

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shandysiswandi/elasticmail/internal/pkg/config"
	"github.com/shandysiswandi/elasticmail/internal/pkg/instrument"
	"github.com/shandysiswandi/elasticmail/internal/pkg/messaging"
	"github.com/shandysiswandi/elasticmail/internal/pkg/uid"
	"go.opentelemetry.io/otel/metric"
)

const (
	defaultCreditSchedule     = "@every 1h"
	defaultQueueDepthSchedule = "@every 1m"
	cronJobTimeout            = 30 * time.Second
)

type CronJob struct {
	uc    ucCron
	uuid  uid.StringID
	ins   instrument.Instrumentation
	depth metric.Int64Gauge
}

// RegisterCronJobs schedules the low-credit monitor and the queue depth gauge.
// An empty schedule uses the default; "-" disables the job.
func RegisterCronJobs(c *cron.Cron, cfg config.Config, uuid uid.StringID, uc ucCron, ins instrument.Instrumentation) (*CronJob, error) {
	depth, err := ins.Meter("elasticemail.inbound.cron").Int64Gauge(
		"elasticemail.queue.depth",
		metric.WithDescription("Messages waiting on the mail queue"),
	)
	if err != nil {
		return nil, err
	}

	job := &CronJob{uc: uc, uuid: uuid, ins: ins, depth: depth}

	jobs := []struct {
		key string
		def string
		fn  func(context.Context)
	}{
		{key: "elasticemail.cron.credit_check", def: defaultCreditSchedule, fn: job.CheckCredit},
		{key: "elasticemail.cron.queue_depth", def: defaultQueueDepthSchedule, fn: job.QueueDepth},
	}

	for _, j := range jobs {
		schedule := cfg.GetString(j.key)
		if schedule == "-" {
			continue
		}
		if schedule == "" {
			schedule = j.def
		}

		if _, err := c.AddFunc(schedule, job.run(j.key, j.fn)); err != nil {
			return nil, err
		}
	}

	return job, nil
}

func (j *CronJob) run(name string, fn func(context.Context)) func() {
	return func() {
		ctx := instrument.SetCorrelationID(context.Background(), j.uuid.Generate())
		ctx, cancel := context.WithTimeout(ctx, cronJobTimeout)
		defer cancel()

		ctx, span := j.ins.Tracer("elasticemail.inbound.cron").Start(ctx, name)
		defer span.End()

		fn(ctx)
	}
}

// CheckCredit logs the warning raised by the usecase when credit is low.
func (j *CronJob) CheckCredit(ctx context.Context) {
	status, err := j.uc.CheckCredit(ctx)
	if err != nil {
		slog.WarnContext(ctx, "cron: credit check skipped", "error", err)
		return
	}

	slog.DebugContext(ctx, "cron: credit checked", "credit", status.Credit, "currency", status.Currency, "low", status.Low)
}

func (j *CronJob) QueueDepth(ctx context.Context) {
	n, err := j.uc.QueueDepth(ctx)
	if errors.Is(err, messaging.ErrUnsupported) {
		return
	}
	if err != nil {
		slog.WarnContext(ctx, "cron: queue depth unavailable", "error", err)
		return
	}

	j.depth.Record(ctx, n)
	slog.InfoContext(ctx, "cron: mail queue depth", "messages", n)
}
