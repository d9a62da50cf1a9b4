package entity

import (
	"html"
	"net/textproto"
	"time"

	"github.com/shandysiswandi/elasticmail/internal/pkg/valueobject"
)

// OutgoingMessage is one email handed over by the host mail system.
//
// Headers carries Cc, Bcc and Content-Type; lookups are case-insensitive.
type OutgoingMessage struct {
	From    string            `json:"from"`
	To      string            `json:"to"`
	Subject string            `json:"subject"`
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

// Header returns the value of name, matching keys case-insensitively.
func (m OutgoingMessage) Header(name string) string {
	if v, ok := m.Headers[name]; ok {
		return v
	}
	canonical := textproto.CanonicalMIMEHeaderKey(name)
	for k, v := range m.Headers {
		if textproto.CanonicalMIMEHeaderKey(k) == canonical {
			return v
		}
	}
	return ""
}

// QueueItem is the envelope published to the mail queue.
type QueueItem struct {
	ID         string          `json:"id"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	Message    OutgoingMessage `json:"message"`
}

// SendSuccess is returned when the provider answered with a transaction id.
type SendSuccess struct {
	TxID       string
	Recipients string
	Message    string
}

// SendError carries the provider answer, or the local reason, for a failed send.
type SendError struct {
	Message string
	Err     error
}

// DeliveryOutcome holds exactly one of Success or Error.
type DeliveryOutcome struct {
	Success *SendSuccess
	Error   *SendError
}

// Delivered reports whether the outcome is a success.
func (o DeliveryOutcome) Delivered() bool {
	return o.Success != nil
}

// Text returns the success or error message as-is.
func (o DeliveryOutcome) Text() string {
	switch {
	case o.Success != nil:
		return o.Success.Message
	case o.Error != nil:
		return o.Error.Message
	default:
		return ""
	}
}

// SafeMessage returns Text HTML-escaped for display.
func (o DeliveryOutcome) SafeMessage() string {
	return html.EscapeString(o.Text())
}

// DeliveryStatus is persisted with each delivery log entry.
type DeliveryStatus string

const (
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
	DeliveryStatusQueued DeliveryStatus = "queued"
)

// DeliveryLog is one persisted delivery attempt.
type DeliveryLog struct {
	ID         string
	TxID       string
	Sender     string
	Recipients string
	Subject    string
	Status     DeliveryStatus
	Message    string
	Metadata   valueobject.JSONMap
	CreatedAt  time.Time
}
