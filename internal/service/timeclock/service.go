package timeclock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rentaline/timeclock-backend-go/internal/domain/employee"
	"github.com/rentaline/timeclock-backend-go/internal/domain/settings"
	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/clock"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/keymutex"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/sse"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/validator"
)

// EntryClosedEvent is the outbound payload published when an entry closes.
// Delivery is at-least-once; the payroll consumer handles idempotently.
type EntryClosedEvent struct {
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	TotalHours    float64 `json:"total_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	AutoClosed    bool    `json:"auto_closed,omitempty"`
}

type TimeclockServiceImpl struct {
	entryRepo    timeclock.TimeEntryRepository
	employeeRepo employee.EmployeeRepository
	settingsSvc  settings.Service
	hub          *sse.Hub
	clk          clock.Clock
	locks        *keymutex.KeyMutex
}

func NewTimeclockService(
	entryRepo timeclock.TimeEntryRepository,
	employeeRepo employee.EmployeeRepository,
	settingsSvc settings.Service,
	hub *sse.Hub,
	clk clock.Clock,
) timeclock.Service {
	return &TimeclockServiceImpl{
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		settingsSvc:  settingsSvc,
		hub:          hub,
		clk:          clk,
		locks:        keymutex.New(),
	}
}

// Apply implements timeclock.Service.
func (s *TimeclockServiceImpl) Apply(ctx context.Context, companyID string, req timeclock.ClockRequest) (timeclock.TimeEntry, error) {
	if err := req.Validate(); err != nil {
		return timeclock.TimeEntry{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return timeclock.TimeEntry{}, err
	}
	if !emp.IsActive {
		return timeclock.TimeEntry{}, employee.ErrEmployeeInactive
	}

	cfg := s.settingsSvc.Resolve(ctx, companyID)
	if cfg.RequireLocation && req.Action == timeclock.ActionClockIn && validator.IsEmpty(req.Location) {
		return timeclock.TimeEntry{}, validator.ValidationErrors{{
			Field:   "location",
			Message: "location is required when clocking in",
		}}
	}

	at := req.AtTime()
	if at.IsZero() {
		at = s.clk.Now()
	}
	at = at.Truncate(time.Minute)
	date := dayOf(at)

	// Single writer per (employee, date): a clock action and a concurrent
	// administrative edit must never interleave.
	lockKey := req.EmployeeID + ":" + date.Format("2006-01-02")
	s.locks.Lock(lockKey)
	defer s.locks.Unlock(lockKey)

	existing, err := s.entryRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date, companyID)
	if err != nil {
		return timeclock.TimeEntry{}, fmt.Errorf("failed to load today's entry: %w", err)
	}

	isNew := existing == nil
	var entry timeclock.TimeEntry
	if isNew {
		entry = timeclock.TimeEntry{
			CompanyID:  companyID,
			EmployeeID: req.EmployeeID,
			Date:       date,
			Status:     timeclock.StatusClockedOut,
		}
	} else {
		entry = *existing
	}

	// Validation fully precedes mutation: transition is checked before any
	// field is stamped.
	if err := validateTransition(entry, req.Action); err != nil {
		return timeclock.TimeEntry{}, err
	}
	applyAction(&entry, req.Action, at)

	if req.Location != "" {
		entry.Location = req.Location
	}
	if req.Notes != "" {
		entry.Notes = req.Notes
	}

	if req.Action == timeclock.ActionClockOut {
		total, overtime, err := ComputeTotals(entry, cfg.OvertimeThresholdHours)
		if err != nil {
			return timeclock.TimeEntry{}, err
		}
		entry.TotalHours = total
		entry.OvertimeHours = overtime
	}

	if isNew {
		entry, err = s.entryRepo.Create(ctx, entry)
	} else {
		err = s.entryRepo.Update(ctx, entry)
	}
	if err != nil {
		return timeclock.TimeEntry{}, err
	}

	if err := s.employeeRepo.UpdateStatusCache(ctx, emp.ID, companyID, string(entry.Status), at); err != nil {
		// The entry is already persisted; a stale cache heals on the next
		// mutation. Don't fail the action over it.
		slog.Warn("failed to refresh employee status cache",
			"employee_id", emp.ID, "error", err)
	}

	if req.Action == timeclock.ActionClockOut {
		s.publishEntryClosed(entry, req.SystemInitiated)
	}

	return entry, nil
}

func (s *TimeclockServiceImpl) publishEntryClosed(entry timeclock.TimeEntry, autoClosed bool) {
	s.hub.Publish(sse.Event{
		CompanyID: entry.CompanyID,
		Event:     sse.EventEntryClosed,
		Data: EntryClosedEvent{
			EmployeeID:    entry.EmployeeID,
			Date:          entry.Date.Format("2006-01-02"),
			TotalHours:    entry.TotalHours,
			OvertimeHours: entry.OvertimeHours,
			AutoClosed:    autoClosed,
		},
	})
}

// GetEntry implements timeclock.Service.
func (s *TimeclockServiceImpl) GetEntry(ctx context.Context, companyID string, entryID string) (timeclock.TimeEntry, error) {
	return s.entryRepo.GetByID(ctx, entryID, companyID)
}

// ListEntries implements timeclock.Service.
func (s *TimeclockServiceImpl) ListEntries(ctx context.Context, companyID string, filter timeclock.EntryFilter) ([]timeclock.TimeEntry, int64, error) {
	return s.entryRepo.List(ctx, filter, companyID)
}

// Summarize implements timeclock.Service.
func (s *TimeclockServiceImpl) Summarize(ctx context.Context, companyID string, filter timeclock.SummaryFilter) (timeclock.Summary, error) {
	return s.entryRepo.Summarize(ctx, filter, companyID)
}

// validateTransition checks action legality against the entry's current
// progression. One clock-in per day; ends need their matching open start.
func validateTransition(entry timeclock.TimeEntry, action timeclock.ClockAction) error {
	switch action {
	case timeclock.ActionClockIn:
		if entry.ClockIn != nil {
			if entry.ClockOut != nil {
				return fmt.Errorf("%w: day already completed, one clock-in per day", timeclock.ErrInvalidTransition)
			}
			return fmt.Errorf("%w: already clocked in", timeclock.ErrInvalidTransition)
		}
	case timeclock.ActionClockOut:
		if entry.ClockIn == nil {
			return fmt.Errorf("%w: not clocked in", timeclock.ErrInvalidTransition)
		}
		if entry.ClockOut != nil {
			return fmt.Errorf("%w: already clocked out", timeclock.ErrInvalidTransition)
		}
	case timeclock.ActionBreakStart:
		if entry.Status != timeclock.StatusWorking {
			return fmt.Errorf("%w: break can only start while working", timeclock.ErrInvalidTransition)
		}
		if entry.BreakStart != nil {
			return fmt.Errorf("%w: break already taken today", timeclock.ErrInvalidTransition)
		}
	case timeclock.ActionBreakEnd:
		if entry.Status != timeclock.StatusBreak || !entry.HasOpenBreak() {
			return fmt.Errorf("%w: no open break to end", timeclock.ErrInvalidTransition)
		}
	case timeclock.ActionLunchStart:
		if entry.Status != timeclock.StatusWorking {
			return fmt.Errorf("%w: lunch can only start while working", timeclock.ErrInvalidTransition)
		}
		if entry.LunchStart != nil {
			return fmt.Errorf("%w: lunch already taken today", timeclock.ErrInvalidTransition)
		}
	case timeclock.ActionLunchEnd:
		if entry.Status != timeclock.StatusLunch || !entry.HasOpenLunch() {
			return fmt.Errorf("%w: no open lunch to end", timeclock.ErrInvalidTransition)
		}
	default:
		return fmt.Errorf("%w: %q", timeclock.ErrUnknownAction, action)
	}

	return nil
}

func applyAction(entry *timeclock.TimeEntry, action timeclock.ClockAction, at time.Time) {
	switch action {
	case timeclock.ActionClockIn:
		entry.ClockIn = &at
		entry.Status = timeclock.StatusWorking
	case timeclock.ActionClockOut:
		entry.ClockOut = &at
		entry.Status = timeclock.StatusClockedOut
	case timeclock.ActionBreakStart:
		entry.BreakStart = &at
		entry.Status = timeclock.StatusBreak
	case timeclock.ActionBreakEnd:
		entry.BreakEnd = &at
		entry.Status = timeclock.StatusWorking
	case timeclock.ActionLunchStart:
		entry.LunchStart = &at
		entry.Status = timeclock.StatusLunch
	case timeclock.ActionLunchEnd:
		entry.LunchEnd = &at
		entry.Status = timeclock.StatusWorking
	}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
