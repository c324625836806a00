package alert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rentaline/timeclock-backend-go/internal/domain/alert"
	"github.com/rentaline/timeclock-backend-go/internal/domain/employee"
	"github.com/rentaline/timeclock-backend-go/internal/domain/settings"
	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/clock"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/sse"
)

// Engine is the periodic alert evaluator. Each tick it scans every active
// employee's entry for today and emits at most one alert per dedupe key.
// Dedup is a set-membership check against persisted alerts, so a restart
// neither re-fires delivered alerts nor loses pending ones.
type Engine struct {
	alertRepo    alert.AlertRepository
	entryRepo    timeclock.TimeEntryRepository
	employeeRepo employee.EmployeeRepository
	settingsSvc  settings.Service
	hub          *sse.Hub
	clk          clock.Clock
}

func NewEngine(
	alertRepo alert.AlertRepository,
	entryRepo timeclock.TimeEntryRepository,
	employeeRepo employee.EmployeeRepository,
	settingsSvc settings.Service,
	hub *sse.Hub,
	clk clock.Clock,
) *Engine {
	return &Engine{
		alertRepo:    alertRepo,
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		settingsSvc:  settingsSvc,
		hub:          hub,
		clk:          clk,
	}
}

// RunTick evaluates all tenants once. Registered with the cron scheduler;
// a failing tenant is logged and skipped so one tenant cannot starve the
// rest.
func (e *Engine) RunTick(ctx context.Context) error {
	companyIDs, err := e.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies for alert tick: %w", err)
	}

	for _, companyID := range companyIDs {
		if err := e.evaluateCompany(ctx, companyID); err != nil {
			slog.Error("Alert tick failed for company", "company_id", companyID, "error", err)
		}
	}

	return nil
}

func (e *Engine) evaluateCompany(ctx context.Context, companyID string) error {
	now := e.clk.Now()
	date := dayOf(now)
	cfg := e.settingsSvc.Resolve(ctx, companyID)

	emitted, err := e.alertRepo.ListDedupeKeys(ctx, date, companyID)
	if err != nil {
		return fmt.Errorf("failed to load emitted dedupe keys: %w", err)
	}

	employees, err := e.employeeRepo.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	for _, emp := range employees {
		entry, err := e.entryRepo.GetByEmployeeAndDate(ctx, emp.ID, date, companyID)
		if err != nil {
			slog.Error("Alert tick: failed to load entry", "employee_id", emp.ID, "error", err)
			continue
		}

		rctx := ruleContext{
			now:      now,
			date:     date,
			employee: emp,
			entry:    entry,
			settings: cfg,
		}

		for _, rule := range rules {
			for _, c := range rule(rctx) {
				e.emit(ctx, companyID, emp.ID, date, now, c, emitted)
			}
		}
	}

	return nil
}

// emit persists one candidate unless its key already fired today. The
// store's unique constraint backstops the in-memory set, so concurrent
// emitters cannot double-fire.
func (e *Engine) emit(ctx context.Context, companyID, employeeID string, date, now time.Time, c candidate, emitted map[string]struct{}) {
	key := alert.DedupeKey(employeeID, c.alertType, date, c.variant)
	if _, fired := emitted[key]; fired {
		return
	}

	a := alert.Alert{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Type:       c.alertType,
		Message:    c.message,
		Priority:   c.priority,
		CreatedAt:  now,
		DedupeKey:  key,
	}
	if c.expiresIn > 0 {
		expires := now.Add(c.expiresIn)
		a.ExpiresAt = &expires
	}

	created, err := e.alertRepo.Create(ctx, a)
	if err != nil {
		if errors.Is(err, alert.ErrDuplicateDedupeKey) {
			emitted[key] = struct{}{}
			return
		}
		slog.Error("Alert tick: failed to persist alert",
			"employee_id", employeeID, "type", c.alertType, "error", err)
		return
	}
	emitted[key] = struct{}{}

	e.hub.Publish(sse.Event{
		CompanyID: companyID,
		Event:     sse.EventAlert,
		Data:      alert.ToResponse(created),
	})

	slog.Info("Alert emitted",
		"employee_id", employeeID, "type", c.alertType, "priority", c.priority, "key", key)
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
