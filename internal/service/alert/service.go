package alert

import (
	"context"

	"github.com/rentaline/timeclock-backend-go/internal/domain/alert"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/clock"
)

type AlertServiceImpl struct {
	repo alert.AlertRepository
	clk  clock.Clock
}

func NewAlertService(repo alert.AlertRepository, clk clock.Clock) alert.Service {
	return &AlertServiceImpl{repo: repo, clk: clk}
}

// List implements alert.Service.
func (s *AlertServiceImpl) List(ctx context.Context, companyID string, filter alert.AlertFilter) ([]alert.Alert, int64, error) {
	return s.repo.List(ctx, filter, companyID)
}

// Acknowledge implements alert.Service. Acknowledgement is terminal.
func (s *AlertServiceImpl) Acknowledge(ctx context.Context, companyID string, alertID string) (alert.Alert, error) {
	if err := s.repo.Acknowledge(ctx, alertID, companyID, s.clk.Now()); err != nil {
		return alert.Alert{}, err
	}
	return s.repo.GetByID(ctx, alertID, companyID)
}
