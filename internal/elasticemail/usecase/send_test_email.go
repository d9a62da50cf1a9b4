package usecase

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/pkg/goerror"
)

type (
	SendTestEmailInput struct {
		To      string `validate:"required,addresslist"`
		Subject string `validate:"required,max=998"`
		Body    string
		HTML    bool
	}

	SendTestEmailOutput struct {
		Delivered bool
		TxID      string
		Message   string
	}
)

// SendTestEmail sends straight through the provider from site.mail, bypassing the queue.
func (s *Usecase) SendTestEmail(ctx context.Context, in SendTestEmailInput) (*SendTestEmailOutput, error) {
	ctx, span := s.startSpan(ctx, "SendTestEmail")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	send := SendInput{
		From:    s.cfg.GetString("site.mail"),
		To:      in.To,
		Subject: in.Subject,
	}
	if in.HTML {
		send.BodyHTML = in.Body
	} else {
		send.BodyText = in.Body
	}

	outcome := s.ElasticEmailSend(ctx, send)
	s.recordDelivery(ctx, send, outcome)

	if !outcome.Delivered() {
		s.countDelivery(ctx, entity.DeliveryStatusFailed)
		return &SendTestEmailOutput{
			Message: fmt.Sprintf("Failed to send a test email to %s. Got the following error: %s", in.To, outcome.SafeMessage()),
		}, nil
	}

	s.countDelivery(ctx, entity.DeliveryStatusSent)
	return &SendTestEmailOutput{
		Delivered: true,
		TxID:      outcome.Success.TxID,
		Message:   fmt.Sprintf("Successfully sent a test email to %s", in.To),
	}, nil
}
