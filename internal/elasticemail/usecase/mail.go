package usecase

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/pkg/goerror"
)

const (
	msgQueued = "Email message queued for delivery via Elastic Email at cron time."
	msgDirect = "Queuing unavailable. Email sent directly via Elastic Email."
)

type MailResult struct {
	Queued    bool
	Delivered bool
	Message   string
}

// Mail is the host entrypoint: it queues msg when queueing is enabled and
// sends it inline otherwise.
func (s *Usecase) Mail(ctx context.Context, msg entity.OutgoingMessage) (MailResult, error) {
	ctx, span := s.startSpan(ctx, "Mail")
	defer span.End()

	if !s.cfg.GetBool("elasticemail.queue_enabled") {
		return MailResult{Delivered: s.Send(ctx, msg), Message: msgDirect}, nil
	}

	item := entity.QueueItem{
		ID:         s.uuid.Generate(),
		EnqueuedAt: s.clock.Now().UTC(),
		Message:    msg,
	}
	if err := s.repoQueue.Enqueue(ctx, item); err != nil {
		slog.ErrorContext(ctx, "failed to enqueue mail", "queue_item_id", item.ID, "error", err)
		return MailResult{}, goerror.NewServer(err)
	}
	s.countDelivery(ctx, entity.DeliveryStatusQueued)

	if count, err := s.repoQueue.Count(ctx); err != nil {
		slog.DebugContext(ctx, "queue depth unavailable", "error", err)
	} else {
		slog.InfoContext(ctx, "Message added to the Queue - no. of messages: "+strconv.FormatInt(count, 10))
	}

	return MailResult{Queued: true, Message: msgQueued}, nil
}
