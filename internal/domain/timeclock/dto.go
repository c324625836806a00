package timeclock

import (
	"time"

	"github.com/rentaline/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// TIMECLOCK DTOs
// ========================================

// ClockRequest applies one clock action for an employee. At is optional and
// defaults to the engine clock's now; it exists so callers (and tests) can
// supply the wall-clock moment of the action explicitly.
type ClockRequest struct {
	EmployeeID string      `json:"employee_id"`
	Action     ClockAction `json:"action"`
	At         *string     `json:"at,omitempty"` // RFC3339
	Location   string      `json:"location,omitempty"`
	Notes      string      `json:"notes,omitempty"`

	// SystemInitiated marks actions applied by the engine itself, such as
	// the auto clock-out job. It is never accepted from API clients.
	SystemInitiated bool `json:"-"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(string(r.Action), ClockActionValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of clock_in, clock_out, break_start, break_end, lunch_start, lunch_end",
		})
	}

	if r.At != nil {
		if _, ok := validator.IsValidDateTime(*r.At); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "at",
				Message: "at must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AtTime returns the parsed At timestamp, or the zero time when absent.
func (r *ClockRequest) AtTime() time.Time {
	if r.At == nil {
		return time.Time{}
	}
	t, _ := validator.IsValidDateTime(*r.At)
	return t
}

// OverrideRequest is an administrative edit applied outside the state
// machine. Nil fields are left unchanged. Timestamps are wall-clock "HH:MM"
// on the entry's date.
type OverrideRequest struct {
	ClockIn       *string  `json:"clock_in,omitempty"`
	ClockOut      *string  `json:"clock_out,omitempty"`
	BreakStart    *string  `json:"break_start,omitempty"`
	BreakEnd      *string  `json:"break_end,omitempty"`
	LunchStart    *string  `json:"lunch_start,omitempty"`
	LunchEnd      *string  `json:"lunch_end,omitempty"`
	Status        *string  `json:"status,omitempty"`
	TotalHours    *float64 `json:"total_hours,omitempty"`
	OvertimeHours *float64 `json:"overtime_hours,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	Location      *string  `json:"location,omitempty"`
	ApprovedBy    *string  `json:"approved_by,omitempty"`
}

func (r *OverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	timeFields := map[string]*string{
		"clock_in":    r.ClockIn,
		"clock_out":   r.ClockOut,
		"break_start": r.BreakStart,
		"break_end":   r.BreakEnd,
		"lunch_start": r.LunchStart,
		"lunch_end":   r.LunchEnd,
	}
	for field, value := range timeFields {
		if value == nil {
			continue
		}
		if _, ok := validator.IsValidTimeOfDay(*value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a wall-clock time in HH:MM format",
			})
		}
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, EntryStatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of working, break, lunch, clocked_out, absent",
		})
	}

	if r.TotalHours != nil && *r.TotalHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_hours",
			Message: "total_hours must not be negative",
		})
	}

	if r.OvertimeHours != nil && *r.OvertimeHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_hours",
			Message: "overtime_hours must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EntryFilter selects entries for listing.
type EntryFilter struct {
	EmployeeID *string
	StartDate  *string // YYYY-MM-DD
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

// SummaryFilter selects entries for aggregation.
type SummaryFilter struct {
	EmployeeID *string
	StartDate  *string // YYYY-MM-DD
	EndDate    *string
}

// Summary is the aggregation result consumed by reporting.
type Summary struct {
	TotalHours    float64 `json:"total_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	EntryCount    int64   `json:"entry_count"`
}

// EntryResponse is the wire representation of a TimeEntry.
type EntryResponse struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employee_id"`
	EmployeeName  *string  `json:"employee_name,omitempty"`
	Date          string   `json:"date"`
	ClockIn       *string  `json:"clock_in"`
	ClockOut      *string  `json:"clock_out"`
	BreakStart    *string  `json:"break_start"`
	BreakEnd      *string  `json:"break_end"`
	LunchStart    *string  `json:"lunch_start"`
	LunchEnd      *string  `json:"lunch_end"`
	TotalHours    float64  `json:"total_hours"`
	OvertimeHours float64  `json:"overtime_hours"`
	Status        string   `json:"status"`
	IsEdited      bool     `json:"is_edited"`
	IsFinal       bool     `json:"is_final"`
	Notes         string   `json:"notes,omitempty"`
	Location      string   `json:"location,omitempty"`
	ApprovedBy    *string  `json:"approved_by,omitempty"`
}

// ToResponse formats an entry for the API. approvalRequired comes from the
// tenant settings in effect at read time.
func ToResponse(e TimeEntry, approvalRequired bool) EntryResponse {
	return EntryResponse{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		EmployeeName:  e.EmployeeName,
		Date:          e.Date.Format("2006-01-02"),
		ClockIn:       formatClock(e.ClockIn),
		ClockOut:      formatClock(e.ClockOut),
		BreakStart:    formatClock(e.BreakStart),
		BreakEnd:      formatClock(e.BreakEnd),
		LunchStart:    formatClock(e.LunchStart),
		LunchEnd:      formatClock(e.LunchEnd),
		TotalHours:    e.TotalHours,
		OvertimeHours: e.OvertimeHours,
		Status:        string(e.Status),
		IsEdited:      e.IsEdited,
		IsFinal:       e.IsFinal(approvalRequired),
		Notes:         e.Notes,
		Location:      e.Location,
		ApprovedBy:    e.ApprovedBy,
	}
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04")
	return &s
}
