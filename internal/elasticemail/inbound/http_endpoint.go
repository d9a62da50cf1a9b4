package inbound

import (
	"time"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/elasticemail/usecase"
	"github.com/shandysiswandi/elasticmail/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) SettingsStatus(r *router.Request) (any, error) {
	return SettingsStatusResponse{Valid: h.uc.HasValidSettings()}, nil
}

// AccountDetails is the dashboard view; it always reads live from the provider.
func (h *HTTPEndpoint) AccountDetails(r *router.Request) (any, error) {
	details, err := h.uc.AccountDetails(r.Context())
	if err != nil {
		return nil, err
	}

	return AccountDetailsResponse{Details: details}, nil
}

func (h *HTTPEndpoint) Credit(r *router.Request) (any, error) {
	status, err := h.uc.CheckCredit(r.Context())
	if err != nil {
		return nil, err
	}

	return CreditResponse{
		Credit:    status.Credit,
		Currency:  status.Currency,
		Threshold: status.Threshold,
		Low:       status.Low,
		Warning:   status.Message,
	}, nil
}

func (h *HTTPEndpoint) ChannelList(r *router.Request) (any, error) {
	channels, err := h.uc.ChannelList(r.Context())
	if err != nil {
		return nil, err
	}

	return ChannelListResponse{Channels: channels}, nil
}

func (h *HTTPEndpoint) ActivityStatuses(*router.Request) (any, error) {
	statuses := entity.ActivityStatuses()
	resp := make([]ActivityStatusResponse, 0, len(statuses))
	for _, s := range statuses {
		resp = append(resp, ActivityStatusResponse{Value: int(s), Label: s.String()})
	}

	return ActivityStatusesResponse{Statuses: resp}, nil
}

// ActivityLog accepts status, channel and RFC 3339 from/to query parameters.
func (h *HTTPEndpoint) ActivityLog(r *router.Request) (any, error) {
	status, err := r.GetQueryInt("status")
	if err != nil {
		return nil, err
	}
	from, err := r.GetQueryTime("from", time.RFC3339)
	if err != nil {
		return nil, err
	}
	to, err := r.GetQueryTime("to", time.RFC3339)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.ActivityLog(r.Context(), usecase.ActivityLogInput{
		Status:  status,
		Channel: r.GetQuery("channel"),
		From:    from,
		To:      to,
	})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(out.Rows))
	for _, row := range out.Rows {
		rows = append(rows, row)
	}

	return ActivityLogResponse{
		Filter: ActivityLogFilterResponse{
			Status:  int(out.Filter.Status),
			Channel: out.Filter.Channel,
			From:    out.Filter.From,
			To:      out.Filter.To,
		},
		Rows: rows,
	}, nil
}

func (h *HTTPEndpoint) ListDeliveries(r *router.Request) (any, error) {
	limit, err := r.GetQueryInt("limit")
	if err != nil {
		return nil, err
	}

	logs, err := h.uc.ListDeliveries(r.Context(), limit)
	if err != nil {
		return nil, err
	}

	resp := make([]DeliveryLogResponse, 0, len(logs))
	for _, dl := range logs {
		resp = append(resp, DeliveryLogResponse{
			ID:         dl.ID,
			TxID:       dl.TxID,
			Sender:     dl.Sender,
			Recipients: dl.Recipients,
			Subject:    dl.Subject,
			Status:     string(dl.Status),
			Message:    dl.Message,
			FromName:   dl.Metadata.GetString("from_name"),
			HTML:       dl.Metadata.GetBool("html"),
			Metadata:   dl.Metadata,
			CreatedAt:  dl.CreatedAt,
		})
	}

	return DeliveryLogsResponse{Deliveries: resp}, nil
}

func (h *HTTPEndpoint) SendTestEmail(r *router.Request) (any, error) {
	var req SendTestEmailRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.SendTestEmail(r.Context(), usecase.SendTestEmailInput{
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
		HTML:    req.HTML,
	})
	if err != nil {
		return nil, err
	}

	return SendTestEmailResponse{Delivered: out.Delivered, TxID: out.TxID, message: out.Message}, nil
}

// Mail is the entrypoint for host applications handing over outgoing mail.
func (h *HTTPEndpoint) Mail(r *router.Request) (any, error) {
	var req MailRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	res, err := h.uc.Mail(r.Context(), entity.OutgoingMessage{
		From:    req.From,
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
		Headers: req.Headers,
	})
	if err != nil {
		return nil, err
	}

	return MailResponse{Queued: res.Queued, Delivered: res.Delivered, message: res.Message}, nil
}
