package timeclock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
)

// ApplyOverride implements timeclock.Service. Administrative edits bypass
// the state machine but share its per-entry write lock, and the first edit
// preserves the machine-computed entry as an audit snapshot.
func (s *TimeclockServiceImpl) ApplyOverride(ctx context.Context, companyID string, entryID string, req timeclock.OverrideRequest) (timeclock.TimeEntry, error) {
	if err := req.Validate(); err != nil {
		return timeclock.TimeEntry{}, err
	}

	cfg := s.settingsSvc.Resolve(ctx, companyID)
	if !cfg.AllowManualEdit {
		return timeclock.TimeEntry{}, timeclock.ErrManualEditDisabled
	}

	// First load locates the entry so we know its lock key; the re-read
	// inside the lock guarantees we edit the freshest version.
	located, err := s.entryRepo.GetByID(ctx, entryID, companyID)
	if err != nil {
		return timeclock.TimeEntry{}, err
	}

	lockKey := located.Key()
	s.locks.Lock(lockKey)
	defer s.locks.Unlock(lockKey)

	entry, err := s.entryRepo.GetByID(ctx, entryID, companyID)
	if err != nil {
		return timeclock.TimeEntry{}, err
	}

	edited := *entry.Clone()

	// The snapshot always reflects the machine-computed, pre-human-edit
	// state: set on the first override, untouched by every later one.
	if edited.OriginalSnapshot == nil {
		snap := entry.Clone()
		snap.OriginalSnapshot = nil
		edited.OriginalSnapshot = snap
	}

	if err := applyOverrideFields(&edited, req); err != nil {
		return timeclock.TimeEntry{}, err
	}

	if edited.ClockIn != nil && edited.ClockOut != nil && edited.ClockOut.Before(*edited.ClockIn) {
		return timeclock.TimeEntry{}, timeclock.ErrClockOutBeforeClockIn
	}

	// Explicit totals win; otherwise recompute from the edited timestamps.
	if req.TotalHours != nil || req.OvertimeHours != nil {
		if req.TotalHours != nil {
			edited.TotalHours = *req.TotalHours
		}
		if req.OvertimeHours != nil {
			edited.OvertimeHours = *req.OvertimeHours
		}
	} else {
		total, overtime, err := ComputeTotals(edited, cfg.OvertimeThresholdHours)
		if err != nil {
			return timeclock.TimeEntry{}, err
		}
		edited.TotalHours = total
		edited.OvertimeHours = overtime
	}

	edited.IsEdited = true

	if err := s.entryRepo.Update(ctx, edited); err != nil {
		return timeclock.TimeEntry{}, err
	}

	if err := s.employeeRepo.UpdateStatusCache(ctx, edited.EmployeeID, companyID, string(edited.Status), s.clk.Now()); err != nil {
		slog.Warn("failed to refresh employee status cache after override",
			"employee_id", edited.EmployeeID, "error", err)
	}

	// An override that closes a previously open entry still reaches payroll.
	if entry.ClockOut == nil && edited.ClockOut != nil {
		s.publishEntryClosed(edited, false)
	}

	return edited, nil
}

func applyOverrideFields(entry *timeclock.TimeEntry, req timeclock.OverrideRequest) error {
	fields := []struct {
		value  *string
		target **time.Time
		name   string
	}{
		{req.ClockIn, &entry.ClockIn, "clock_in"},
		{req.ClockOut, &entry.ClockOut, "clock_out"},
		{req.BreakStart, &entry.BreakStart, "break_start"},
		{req.BreakEnd, &entry.BreakEnd, "break_end"},
		{req.LunchStart, &entry.LunchStart, "lunch_start"},
		{req.LunchEnd, &entry.LunchEnd, "lunch_end"},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		t, err := onDate(entry.Date, *f.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.name, err)
		}
		*f.target = &t
	}

	if req.Status != nil {
		entry.Status = timeclock.EntryStatus(*req.Status)
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
	if req.Location != nil {
		entry.Location = *req.Location
	}
	if req.ApprovedBy != nil {
		entry.ApprovedBy = req.ApprovedBy
	}

	return nil
}

// onDate resolves a wall-clock "HH:MM" string on the entry's date.
func onDate(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
