package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/pkg/instrument"
	"github.com/shandysiswandi/elasticmail/internal/pkg/messaging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client      messaging.Messaging
	ins         instrument.Instrumentation
	destination string
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation, destination string) *Messaging {
	return &Messaging{client: client, ins: ins, destination: destination}
}

func (m *Messaging) Enqueue(ctx context.Context, item entity.QueueItem) error {
	ctx, span := m.ins.Tracer("elasticemail.outbound.mq").Start(ctx, "Enqueue")
	defer span.End()

	span.SetAttributes(attribute.String("queue", m.destination), attribute.String("queue_item_id", item.ID))

	body, err := json.Marshal(item)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, m.destination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(item.ID),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// Count returns the queue backlog; messaging.ErrUnsupported for brokers that cannot tell.
func (m *Messaging) Count(ctx context.Context) (int64, error) {
	ctx, span := m.ins.Tracer("elasticemail.outbound.mq").Start(ctx, "Count")
	defer span.End()

	n, err := messaging.Depth(ctx, m.client, m.destination)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	return n, nil
}
