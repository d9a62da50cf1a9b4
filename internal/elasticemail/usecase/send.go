package usecase

import (
	"context"
	"log/slog"
	"mime"
	"regexp"
	"strings"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/pkg/instrument"
)

var reNamedAddress = regexp.MustCompile(`^"?([^"]+)"? <\s*(.+)\s*>$`)

// Send delivers one host message synchronously and reports whether the
// provider accepted it. Failures are logged, never returned.
func (s *Usecase) Send(ctx context.Context, msg entity.OutgoingMessage) bool {
	ctx, span := s.startSpan(ctx, "Send")
	defer span.End()

	from := strings.TrimSpace(msg.From)
	if from == "" {
		from = s.cfg.GetString("site.mail")
	}
	fromName, fromAddr := splitAddress(from)

	var recipients []string
	recipients = parseRecipient(recipients, msg.To)
	recipients = parseRecipient(recipients, msg.Header("Cc"))
	recipients = parseRecipient(recipients, msg.Header("Bcc"))

	in := SendInput{
		From:     fromAddr,
		FromName: fromName,
		To:       strings.Join(recipients, "; "),
		Subject:  msg.Subject,
	}
	if isHTML(msg.Header("Content-Type")) {
		in.BodyHTML = msg.Body
	} else {
		in.BodyText = msg.Body
	}

	outcome := s.ElasticEmailSend(ctx, in)
	s.recordDelivery(ctx, in, outcome)

	if !outcome.Delivered() {
		s.countDelivery(ctx, entity.DeliveryStatusFailed)
		instrument.Critical(ctx, "Failed to send email.  Reason: "+outcome.Text(), "error", outcome.Error.Err)
		return false
	}

	s.countDelivery(ctx, entity.DeliveryStatusSent)
	if s.cfg.GetBool("elasticemail.log_success") {
		slog.InfoContext(ctx, "Email sent successfully: "+outcome.Text())
	}

	return true
}

// splitAddress splits `"Name" <addr>` into its parts. Anything else is a bare address.
func splitAddress(raw string) (name, addr string) {
	m := reNamedAddress.FindStringSubmatch(raw)
	if m == nil {
		return "", raw
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

// isHTML reports whether a body with this Content-Type goes out as body_html.
// Only text/plain is sent as text; a missing header means HTML.
func isHTML(contentType string) bool {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return !strings.Contains(strings.ToLower(contentType), "text/plain")
	}
	return mediaType != "text/plain"
}

func (s *Usecase) recordDelivery(ctx context.Context, in SendInput, outcome entity.DeliveryOutcome) {
	if s.repoDeliveryLog == nil {
		return
	}

	entry := entity.DeliveryLog{
		ID:         s.uuid.Generate(),
		Sender:     in.From,
		Recipients: in.To,
		Subject:    in.Subject,
		Status:     entity.DeliveryStatusFailed,
		Message:    outcome.Text(),
		CreatedAt:  s.clock.Now().UTC(),
	}
	if outcome.Delivered() {
		entry.Status = entity.DeliveryStatusSent
		entry.TxID = outcome.Success.TxID
	}
	entry.Metadata.Set("html", in.BodyHTML != "")
	if in.FromName != "" {
		entry.Metadata.Set("from_name", in.FromName)
	}

	if err := s.repoDeliveryLog.CreateDeliveryLog(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "failed to repo create delivery log", "error", err)
	}
}
