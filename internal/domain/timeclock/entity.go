package timeclock

import (
	"time"
)

// EntryStatus is the progression state of one day's attendance record.
// It is the single source of truth; Employee.CurrentStatus is only a
// read-through cache refreshed on every mutation.
type EntryStatus string

const (
	StatusWorking    EntryStatus = "working"
	StatusBreak      EntryStatus = "break"
	StatusLunch      EntryStatus = "lunch"
	StatusClockedOut EntryStatus = "clocked_out"
	StatusAbsent     EntryStatus = "absent"
)

var EntryStatusValues = []string{
	string(StatusWorking),
	string(StatusBreak),
	string(StatusLunch),
	string(StatusClockedOut),
	string(StatusAbsent),
}

// ClockAction is a discrete action applied to today's entry.
type ClockAction string

const (
	ActionClockIn    ClockAction = "clock_in"
	ActionClockOut   ClockAction = "clock_out"
	ActionBreakStart ClockAction = "break_start"
	ActionBreakEnd   ClockAction = "break_end"
	ActionLunchStart ClockAction = "lunch_start"
	ActionLunchEnd   ClockAction = "lunch_end"
)

var ClockActionValues = []string{
	string(ActionClockIn),
	string(ActionClockOut),
	string(ActionBreakStart),
	string(ActionBreakEnd),
	string(ActionLunchStart),
	string(ActionLunchEnd),
}

// TimeEntry is one employee's attendance record for one calendar date,
// identified by (CompanyID, EmployeeID, Date). Created lazily on the first
// clock action of a day, never deleted; a date with no entry means absent by
// absence of record.
type TimeEntry struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Date       time.Time // day precision, local wall-clock date

	ClockIn    *time.Time
	ClockOut   *time.Time
	BreakStart *time.Time
	BreakEnd   *time.Time
	LunchStart *time.Time
	LunchEnd   *time.Time

	TotalHours    float64
	OvertimeHours float64

	Status     EntryStatus
	IsEdited   bool
	Notes      string
	Location   string
	ApprovedBy *string

	// OriginalSnapshot holds the machine-computed entry as it was before the
	// first administrative override. Set once, never overwritten.
	OriginalSnapshot *TimeEntry

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// Key identifies the single-writer lock scope for this entry.
func (e *TimeEntry) Key() string {
	return e.EmployeeID + ":" + e.Date.Format("2006-01-02")
}

// IsOpen reports whether the employee clocked in and has not clocked out.
func (e *TimeEntry) IsOpen() bool {
	return e.ClockIn != nil && e.ClockOut == nil
}

// HasOpenBreak reports a started but unfinished break.
func (e *TimeEntry) HasOpenBreak() bool {
	return e.BreakStart != nil && e.BreakEnd == nil
}

// HasOpenLunch reports a started but unfinished lunch.
func (e *TimeEntry) HasOpenLunch() bool {
	return e.LunchStart != nil && e.LunchEnd == nil
}

// IsFinal reports whether the entry may be consumed by payroll: edited
// entries need a non-nil ApprovedBy when the tenant requires approval.
func (e *TimeEntry) IsFinal(approvalRequired bool) bool {
	if !e.IsEdited || !approvalRequired {
		return true
	}
	return e.ApprovedBy != nil
}

// Clone returns a deep copy. Used to preserve the pre-override snapshot.
func (e *TimeEntry) Clone() *TimeEntry {
	c := *e
	c.ClockIn = copyTime(e.ClockIn)
	c.ClockOut = copyTime(e.ClockOut)
	c.BreakStart = copyTime(e.BreakStart)
	c.BreakEnd = copyTime(e.BreakEnd)
	c.LunchStart = copyTime(e.LunchStart)
	c.LunchEnd = copyTime(e.LunchEnd)
	c.ApprovedBy = copyString(e.ApprovedBy)
	c.EmployeeName = copyString(e.EmployeeName)
	if e.OriginalSnapshot != nil {
		c.OriginalSnapshot = e.OriginalSnapshot.Clone()
	}
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
