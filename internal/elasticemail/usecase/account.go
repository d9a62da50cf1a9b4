package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/pkg/goerror"
)

const (
	activityLogLookback  = 30 * 24 * time.Hour
	activityLogLookahead = 15 * time.Minute
)

type (
	ActivityLogInput struct {
		Status  int
		Channel string
		From    time.Time
		To      time.Time
	}

	ActivityLogOutput struct {
		Filter entity.ActivityLogFilter
		Rows   []entity.ActivityLogRow
	}
)

// HasValidSettings reports whether both API credentials are configured.
func (s *Usecase) HasValidSettings() bool {
	return s.repoAPI.Credentials().Valid()
}

// AccountDetails always fetches live so the dashboard shows the current credit.
func (s *Usecase) AccountDetails(ctx context.Context) (entity.AccountDetails, error) {
	ctx, span := s.startSpan(ctx, "AccountDetails")
	defer span.End()

	if err := s.requireSettings(); err != nil {
		return nil, err
	}

	details, err := s.repoAPI.AccountDetails(ctx, false)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo account details", "error", err)
		return nil, apiError(err)
	}

	return details, nil
}

func (s *Usecase) ChannelList(ctx context.Context) (entity.ChannelList, error) {
	ctx, span := s.startSpan(ctx, "ChannelList")
	defer span.End()

	if err := s.requireSettings(); err != nil {
		return nil, err
	}

	channels, err := s.repoAPI.ChannelList(ctx, true)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo channel list", "error", err)
		return nil, apiError(err)
	}

	return channels, nil
}

// ActivityLog fills missing bounds with the last 30 days up to 15 minutes
// ahead, and the channel with the configured default.
func (s *Usecase) ActivityLog(ctx context.Context, in ActivityLogInput) (*ActivityLogOutput, error) {
	ctx, span := s.startSpan(ctx, "ActivityLog")
	defer span.End()

	status := entity.ActivityStatus(in.Status)
	if !status.Valid() {
		return nil, goerror.NewInvalidInput(nil, "status", "status is not a known activity status")
	}

	if err := s.requireSettings(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	filter := entity.ActivityLogFilter{
		Status:  status,
		Channel: in.Channel,
		From:    in.From,
		To:      in.To,
	}
	if filter.Channel == "" {
		filter.Channel = s.cfg.GetString("elasticemail.default_channel")
	}
	if filter.From.IsZero() {
		filter.From = now.Add(-activityLogLookback)
	}
	if filter.To.IsZero() {
		filter.To = now.Add(activityLogLookahead)
	}
	if filter.To.Before(filter.From) {
		return nil, goerror.NewInvalidInput(nil, "to", "to must not be before from")
	}

	// Cache entries are keyed by path only, so filtered results are never read back.
	rows, err := s.repoAPI.ActivityLog(ctx, filter, false)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo activity log", "status", int(status), "channel", filter.Channel, "error", err)
		return nil, apiError(err)
	}

	return &ActivityLogOutput{Filter: filter, Rows: rows}, nil
}

func (s *Usecase) requireSettings() error {
	if !s.HasValidSettings() {
		return goerror.NewBusiness("Elastic Email username and API key are not configured", goerror.CodeUnavailable)
	}
	return nil
}

// apiError maps API call failures to errors the router can render.
func apiError(err error) error {
	switch {
	case errors.Is(err, entity.ErrAuth):
		return goerror.NewBusinessWrap(err, "Invalid Elastic Email API credentials", goerror.CodeUnauthorized)
	case errors.Is(err, entity.ErrConfiguration):
		return goerror.NewBusinessWrap(err, "Elastic Email is not configured", goerror.CodeUnavailable)
	case errors.Is(err, entity.ErrTransport):
		return goerror.NewBusinessWrap(err, "Elastic Email service is unreachable", goerror.CodeBadGateway)
	case errors.Is(err, entity.ErrParse):
		return goerror.NewBusinessWrap(err, "Unexpected answer from Elastic Email", goerror.CodeBadGateway)
	default:
		return goerror.NewServer(err)
	}
}
