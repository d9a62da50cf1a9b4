package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/pkg/goerror"
)

// CheckCredit compares the account credit with elasticemail.credit_low_threshold.
// A threshold of zero or less disables the warning.
func (s *Usecase) CheckCredit(ctx context.Context) (*entity.CreditStatus, error) {
	ctx, span := s.startSpan(ctx, "CheckCredit")
	defer span.End()

	if err := s.requireSettings(); err != nil {
		return nil, err
	}

	details, err := s.repoAPI.AccountDetails(ctx, true)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo account details", "error", err)
		return nil, apiError(err)
	}

	credit, ok := details.Credit()
	if !ok {
		slog.ErrorContext(ctx, "account details carry no numeric credit", "credit", details["credit"])
		return nil, goerror.NewBusiness("Elastic Email account credit is not available", goerror.CodeBadGateway)
	}

	status := &entity.CreditStatus{
		Credit:    credit,
		Currency:  details["currency"],
		Threshold: s.cfg.GetFloat64("elasticemail.credit_low_threshold"),
	}
	if status.Threshold > 0 && credit <= status.Threshold {
		status.Low = true
		status.Message = fmt.Sprintf("Your Elastic Email credit is getting low - currently at %s %s",
			strconv.FormatFloat(credit, 'f', -1, 64), status.Currency)
		slog.WarnContext(ctx, status.Message, "threshold", status.Threshold)
	}

	return status, nil
}
