package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rentaline/timeclock-backend-go/internal/domain/employee"
	"github.com/rentaline/timeclock-backend-go/internal/domain/settings"
	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/clock"
)

// TimeclockJobs holds the periodic maintenance jobs of the timeclock engine.
type TimeclockJobs struct {
	timeclockSvc timeclock.Service
	entryRepo    timeclock.TimeEntryRepository
	employeeRepo employee.EmployeeRepository
	settingsSvc  settings.Service
	clk          clock.Clock
}

func NewTimeclockJobs(
	timeclockSvc timeclock.Service,
	entryRepo timeclock.TimeEntryRepository,
	employeeRepo employee.EmployeeRepository,
	settingsSvc settings.Service,
	clk clock.Clock,
) *TimeclockJobs {
	return &TimeclockJobs{
		timeclockSvc: timeclockSvc,
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		settingsSvc:  settingsSvc,
		clk:          clk,
	}
}

func (j *TimeclockJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("auto_clock_out", interval, j.AutoClockOut)
}

// AutoClockOut closes entries still open past the tenant's configured
// cutoff. The close goes through the state machine service, so totals,
// the status cache and the entry-closed event all follow the normal path.
func (j *TimeclockJobs) AutoClockOut(ctx context.Context) error {
	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	for _, companyID := range companyIDs {
		cfg := j.settingsSvc.Resolve(ctx, companyID)
		if !cfg.AutoClockOut {
			continue
		}

		now := j.clk.Now()
		cutoffClock, err := time.Parse("15:04", cfg.AutoClockOutTime)
		if err != nil {
			slog.Error("Cron: invalid auto clock-out time", "company_id", companyID, "value", cfg.AutoClockOutTime)
			continue
		}
		cutoff := time.Date(now.Year(), now.Month(), now.Day(),
			cutoffClock.Hour(), cutoffClock.Minute(), 0, 0, now.Location())
		if now.Before(cutoff) {
			continue
		}

		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		open, err := j.entryRepo.ListOpenByDate(ctx, today, companyID)
		if err != nil {
			slog.Error("Cron: failed to list open entries", "company_id", companyID, "error", err)
			continue
		}

		closedCount := 0
		for _, entry := range open {
			at := cutoff.Format(time.RFC3339)
			_, err := j.timeclockSvc.Apply(ctx, companyID, timeclock.ClockRequest{
				EmployeeID:      entry.EmployeeID,
				Action:          timeclock.ActionClockOut,
				At:              &at,
				Notes:           fmt.Sprintf("Auto clock-out: no clock-out recorded by %s.", cfg.AutoClockOutTime),
				SystemInitiated: true,
			})
			if err != nil {
				slog.Error("Cron: failed to auto clock out",
					"employee_id", entry.EmployeeID, "company_id", companyID, "error", err)
				continue
			}
			closedCount++
		}

		if closedCount > 0 {
			slog.Info("Cron: auto clocked out open entries", "company_id", companyID, "count", closedCount)
		}
	}

	return nil
}
