package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
)

const listDeliveryLogs = `
SELECT id, tx_id, sender, recipients, subject, status, message, metadata, created_at
FROM elasticemail_delivery_logs
ORDER BY created_at DESC, id DESC
LIMIT $1`

// ListDeliveryLogs returns the newest entries first.
func (s *DB) ListDeliveryLogs(ctx context.Context, limit int) (_ []entity.DeliveryLog, err error) {
	ctx, span := s.startSpan(ctx, "ListDeliveryLogs")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, listDeliveryLogs, limit)
	if err != nil {
		return nil, s.mapError(err)
	}

	logs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.DeliveryLog, error) {
		var (
			dl     entity.DeliveryLog
			status string
		)
		err := row.Scan(&dl.ID, &dl.TxID, &dl.Sender, &dl.Recipients, &dl.Subject, &status, &dl.Message, &dl.Metadata, &dl.CreatedAt)
		dl.Status = entity.DeliveryStatus(status)
		return dl, err
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return logs, nil
}
