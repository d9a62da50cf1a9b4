package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/pkg/idempotency"
)

var errSendFailed = errors.New("queued send failed")

// ConsumeQueuedMail sends one queued item. A redelivered item whose send
// already finished, successfully or not, is acknowledged without sending.
// An item claimed by another worker is acknowledged too; that worker owns it.
func (s *Usecase) ConsumeQueuedMail(ctx context.Context, item entity.QueueItem) error {
	ctx, span := s.startSpan(ctx, "ConsumeQueuedMail")
	defer span.End()

	if item.ID == "" {
		slog.ErrorContext(ctx, "dropping queue item without id")
		return nil
	}

	sent := false
	err := s.idemp.Exec(ctx, s.queuedSendKey(item), func(ctx context.Context) error {
		if !s.Send(ctx, item.Message) {
			return errSendFailed
		}
		sent = true
		return nil
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errSendFailed):
		// No retry policy: the failure is logged by Send and remembered by the guard.
		return nil
	case sent:
		// Redelivery would send the mail twice.
		slog.ErrorContext(ctx, "queued mail sent but completion marker not stored", "queue_item_id", item.ID, "error", err)
		return nil
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		slog.WarnContext(ctx, "queue item is being sent by another worker", "queue_item_id", item.ID)
		return nil
	case errors.Is(err, idempotency.ErrAlreadyCompleted), errors.Is(err, idempotency.ErrAlreadyFailed):
		slog.InfoContext(ctx, "skipping already handled queue item", "queue_item_id", item.ID, "error", err)
		return nil
	default:
		slog.ErrorContext(ctx, "failed to guard queued send", "queue_item_id", item.ID, "error", err)
		return err
	}
}

func (s *Usecase) queuedSendKey(item entity.QueueItem) string {
	return "elasticemail:send:" + s.hmac.Key(item.ID, item.Message.To, item.Message.Subject, item.Message.Body)
}
