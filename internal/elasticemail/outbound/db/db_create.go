package db

import (
	"context"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/pkg/valueobject"
)

const createDeliveryLog = `
INSERT INTO elasticemail_delivery_logs (id, tx_id, sender, recipients, subject, status, message, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (s *DB) CreateDeliveryLog(ctx context.Context, in entity.DeliveryLog) (err error) {
	ctx, span := s.startSpan(ctx, "CreateDeliveryLog")
	defer func() { s.endSpan(span, err) }()

	metadata := in.Metadata
	if metadata == nil {
		metadata = valueobject.JSONMap{}
	}

	_, err = s.conn.Exec(ctx, createDeliveryLog,
		in.ID,
		in.TxID,
		in.Sender,
		in.Recipients,
		in.Subject,
		string(in.Status),
		in.Message,
		metadata,
		in.CreatedAt,
	)
	return s.mapError(err)
}
