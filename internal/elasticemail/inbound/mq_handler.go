package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/pkg/instrument"
	"github.com/shandysiswandi/elasticmail/internal/pkg/messaging"
	"github.com/shandysiswandi/elasticmail/internal/pkg/uid"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   ucConsumer
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	if cID, ok := messaging.HeaderValue(headers, keyOfCorrelationID); ok && cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// SendQueuedMail drops undecodable payloads and nacks when the send guard could not be consulted.
func (h *MQHandler) SendQueuedMail(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("elasticemail.inbound.mq").Start(ctx, "SendQueuedMail")
	defer span.End()

	body := msg.Body()

	var item entity.QueueItem
	if err := json.Unmarshal(body, &item); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of queued mail", "msg_id", msg.ID(), "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: queued mail", "queue_item_id", item.ID, "enqueued_at", item.EnqueuedAt)

	if err := h.uc.ConsumeQueuedMail(ctx, item); err != nil {
		slog.ErrorContext(ctx, "failed to consume queued mail", "queue_item_id", item.ID, "error", err)
		return err
	}

	return nil
}
