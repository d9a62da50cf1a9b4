package inbound

import (
	"context"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/elasticemail/usecase"
)

type ucConsumer interface {
	ConsumeQueuedMail(ctx context.Context, item entity.QueueItem) error
}

type ucCron interface {
	CheckCredit(ctx context.Context) (*entity.CreditStatus, error)
	QueueDepth(ctx context.Context) (int64, error)
}

type uc interface {
	ucConsumer
	ucCron

	HasValidSettings() bool
	AccountDetails(ctx context.Context) (entity.AccountDetails, error)
	ChannelList(ctx context.Context) (entity.ChannelList, error)
	ActivityLog(ctx context.Context, in usecase.ActivityLogInput) (*usecase.ActivityLogOutput, error)
	SendTestEmail(ctx context.Context, in usecase.SendTestEmailInput) (*usecase.SendTestEmailOutput, error)
	Mail(ctx context.Context, msg entity.OutgoingMessage) (usecase.MailResult, error)
	ListDeliveries(ctx context.Context, limit int) ([]entity.DeliveryLog, error)
}
