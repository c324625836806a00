package employee

import (
	"time"
)

// Employee is the engine's view of a worker. Records are created by HR
// onboarding, which is external to this engine; only the status cache and
// activity fields are mutated here.
type Employee struct {
	ID                  string
	CompanyID           string
	FullName            string
	ExpectedWeeklyHours float64
	WeeklySchedule      WeeklySchedule
	IsActive            bool

	// CurrentStatus mirrors today's TimeEntry.Status. It is a read-through
	// cache refreshed on every state-machine mutation, never authoritative.
	CurrentStatus string
	LastActivity  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DaySchedule is one weekday's expected working window.
type DaySchedule struct {
	Start     string `json:"start"` // wall-clock "HH:MM"
	End       string `json:"end"`
	IsWorkday bool   `json:"is_workday"`
}

// WeeklySchedule maps weekdays to their expected windows. Persisted as JSON.
type WeeklySchedule map[time.Weekday]DaySchedule

// ForDay returns the schedule for a weekday and whether it is a workday.
func (w WeeklySchedule) ForDay(day time.Weekday) (DaySchedule, bool) {
	sched, ok := w[day]
	if !ok {
		return DaySchedule{}, false
	}
	return sched, sched.IsWorkday
}

// StartOn resolves the scheduled start as a timestamp on the given date, or
// false when the date is not a workday or the schedule is malformed.
func (w WeeklySchedule) StartOn(date time.Time) (time.Time, bool) {
	return w.resolve(date, func(d DaySchedule) string { return d.Start })
}

// EndOn resolves the scheduled end as a timestamp on the given date.
func (w WeeklySchedule) EndOn(date time.Time) (time.Time, bool) {
	return w.resolve(date, func(d DaySchedule) string { return d.End })
}

func (w WeeklySchedule) resolve(date time.Time, pick func(DaySchedule) string) (time.Time, bool) {
	sched, ok := w.ForDay(date.Weekday())
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse("15:04", pick(sched))
	if err != nil {
		return time.Time{}, false
	}
	resolved := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
	return resolved, true
}
