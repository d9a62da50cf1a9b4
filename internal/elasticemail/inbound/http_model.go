package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/elasticmail/internal/pkg/valueobject"
)

type SettingsStatusResponse struct {
	Valid bool `json:"valid"`
}

func (r SettingsStatusResponse) Message() string {
	if r.Valid {
		return "Elastic Email settings are valid"
	}
	return "Please enter your Elastic Email username and API key"
}

type AccountDetailsResponse struct {
	Details map[string]string `json:"details"`
}

type CreditResponse struct {
	Credit    float64 `json:"credit"`
	Currency  string  `json:"currency"`
	Threshold float64 `json:"threshold"`
	Low       bool    `json:"low"`
	Warning   string  `json:"warning,omitempty"`
}

type ChannelListResponse struct {
	Channels map[string]string `json:"channels"`
}

type ActivityStatusResponse struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type ActivityStatusesResponse struct {
	Statuses []ActivityStatusResponse `json:"statuses"`
}

type ActivityLogFilterResponse struct {
	Status  int       `json:"status"`
	Channel string    `json:"channel"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
}

type ActivityLogResponse struct {
	Filter ActivityLogFilterResponse `json:"filter"`
	Rows   [][]string                `json:"rows"`
}

type SendTestEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	HTML    bool   `json:"html"`
}

type SendTestEmailResponse struct {
	Delivered bool   `json:"delivered"`
	TxID      string `json:"tx_id,omitempty"`
	message   string
}

func (r SendTestEmailResponse) Message() string { return r.message }

type MailRequest struct {
	From    string            `json:"from"`
	To      string            `json:"to"`
	Subject string            `json:"subject"`
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers"`
}

type MailResponse struct {
	Queued    bool `json:"queued"`
	Delivered bool `json:"delivered"`
	message   string
}

func (r MailResponse) Message() string { return r.message }

// StatusCode answers 202 for queued mail, which is accepted but not sent yet.
func (r MailResponse) StatusCode() int {
	if r.Queued {
		return http.StatusAccepted
	}
	return http.StatusOK
}

type DeliveryLogResponse struct {
	ID         string              `json:"id"`
	TxID       string              `json:"tx_id,omitempty"`
	Sender     string              `json:"sender"`
	Recipients string              `json:"recipients"`
	Subject    string              `json:"subject"`
	Status     string              `json:"status"`
	Message    string              `json:"message"`
	FromName   string              `json:"from_name,omitempty"`
	HTML       bool                `json:"html"`
	Metadata   valueobject.JSONMap `json:"metadata"`
	CreatedAt  time.Time           `json:"created_at"`
}

type DeliveryLogsResponse struct {
	Deliveries []DeliveryLogResponse `json:"deliveries"`
}
