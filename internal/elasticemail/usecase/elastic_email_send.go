package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/pkg/uid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	msgMissingCredentials = "Unable to send email to Elastic Email because username or API key not specified."
	msgMissingParameters  = "Unable to send email because some required email parameters are empty."
	msgNoResponse         = "Error: no response (or empty response) received from Elastic Email service."
)

// SendInput is one provider send. Username and APIKey override the configured
// credentials when set. At most one of BodyText and BodyHTML is expected.
type SendInput struct {
	From     string
	FromName string
	To       string
	Subject  string
	BodyText string
	BodyHTML string

	Username string
	APIKey   string
}

// ElasticEmailSend posts one message to the send endpoint and classifies the answer.
func (s *Usecase) ElasticEmailSend(ctx context.Context, in SendInput) entity.DeliveryOutcome {
	ctx, span := s.startSpan(ctx, "ElasticEmailSend")
	defer span.End()

	creds := s.repoAPI.Credentials()
	if in.Username != "" {
		creds.Username = in.Username
	}
	if in.APIKey != "" {
		creds.APIKey = in.APIKey
	}

	if !creds.Valid() {
		return failed(msgMissingCredentials, entity.ErrAuth)
	}
	if in.From == "" || in.To == "" || (in.Subject == "" && in.BodyText == "") {
		return failed(msgMissingParameters, entity.ErrValidation)
	}

	form := entity.NewParams(creds)
	form.Set("from", in.From)
	form.Set("reply_to", in.From)
	if in.FromName != "" {
		form.Set("from_name", in.FromName)
		form.Set("reply_to_name", in.FromName)
	}
	form.Set("to", in.To)
	form.Set("subject", in.Subject)
	if in.BodyText != "" {
		form.Set("body_text", in.BodyText)
	}
	if in.BodyHTML != "" {
		form.Set("body_html", in.BodyHTML)
	}
	if s.cfg.GetBool("elasticemail.use_default_channel") {
		form.Set("channel", s.cfg.GetString("elasticemail.default_channel"))
	}

	resp, err := s.repoAPI.Send(ctx, form)
	if err != nil {
		span.RecordError(err)
		return failed(msgNoResponse, err)
	}

	outcome := classifyResponse(resp, in.To)
	span.SetAttributes(attribute.Bool("delivered", outcome.Delivered()))
	return outcome
}

// classifyResponse maps the raw send answer to an outcome: a bare transaction
// id is a success, an empty body is a missing response, anything else is the
// provider's own error text.
func classifyResponse(resp, recipients string) entity.DeliveryOutcome {
	txID := strings.TrimSpace(resp)

	switch {
	case txID == "":
		return failed(msgNoResponse, fmt.Errorf("%w: empty response", entity.ErrTransport))
	case uid.IsUUID(txID):
		return entity.DeliveryOutcome{Success: &entity.SendSuccess{
			TxID:       txID,
			Recipients: recipients,
			Message:    fmt.Sprintf("Success [%s]; message sent to: %s", txID, recipients),
		}}
	default:
		return failed(resp, entity.ErrRejected)
	}
}

func failed(msg string, err error) entity.DeliveryOutcome {
	return entity.DeliveryOutcome{Error: &entity.SendError{Message: msg, Err: err}}
}
