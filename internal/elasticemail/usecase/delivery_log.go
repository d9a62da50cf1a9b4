package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/pkg/goerror"
)

const (
	defaultDeliveryLimit = 20
	maxDeliveryLimit     = 100
)

func (s *Usecase) ListDeliveries(ctx context.Context, limit int) ([]entity.DeliveryLog, error) {
	ctx, span := s.startSpan(ctx, "ListDeliveries")
	defer span.End()

	if s.repoDeliveryLog == nil {
		return nil, goerror.NewBusiness("Delivery log is not enabled", goerror.CodeUnavailable)
	}

	switch {
	case limit <= 0:
		limit = defaultDeliveryLimit
	case limit > maxDeliveryLimit:
		limit = maxDeliveryLimit
	}

	logs, err := s.repoDeliveryLog.ListDeliveryLogs(ctx, limit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list delivery logs", "error", err)
		return nil, goerror.NewServer(err)
	}

	return logs, nil
}

// QueueDepth is the number of messages waiting on the mail queue.
func (s *Usecase) QueueDepth(ctx context.Context) (int64, error) {
	ctx, span := s.startSpan(ctx, "QueueDepth")
	defer span.End()

	return s.repoQueue.Count(ctx)
}
