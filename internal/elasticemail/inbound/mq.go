package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/elasticmail/internal/pkg/config"
	"github.com/shandysiswandi/elasticmail/internal/pkg/goroutine"
	"github.com/shandysiswandi/elasticmail/internal/pkg/instrument"
	"github.com/shandysiswandi/elasticmail/internal/pkg/messaging"
	"github.com/shandysiswandi/elasticmail/internal/pkg/uid"
	"github.com/shandysiswandi/elasticmail/internal/shared/event"
)

const defaultQueueConcurrency = 4

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.elasticemail.consumer_names")
	if !slices.Contains(enableConsumerNames, event.MailQueueConsumerGroup) {
		slog.InfoContext(ctx, "mail queue consumer is disabled", "consumer", event.MailQueueConsumerGroup)
		return
	}

	topic := cfg.GetString("elasticemail.queue_name")
	if topic == "" {
		topic = event.MailQueueDestination
	}

	concurrency := cfg.GetInt("elasticemail.queue_concurrency")
	if concurrency <= 0 {
		concurrency = defaultQueueConcurrency
	}

	routine.Go(ctx, event.MailQueueConsumerGroup, func(pCtx context.Context) error {
		slog.InfoContext(ctx, "Running job for handling consumer", "consumer", event.MailQueueConsumerGroup, "topic", topic)
		return messenger.Consume(pCtx,
			topic,
			mqHandler.SendQueuedMail,
			messaging.WithChannel(event.MailQueueConsumerGroup),
			messaging.WithQueueGroup(event.MailQueueConsumerGroup),
			messaging.WithGroup(event.MailQueueConsumerGroup),
			messaging.WithAutoAck(true),
			messaging.WithConcurrency(concurrency),
			messaging.WithMaxInFlight(concurrency),
		)
	})
}
