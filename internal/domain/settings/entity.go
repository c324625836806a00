package settings

import (
	"time"
)

// EngineSettings is the tenant-scoped configuration of the timeclock engine.
// A settings change takes effect on the next evaluation tick; already-closed
// entries are never recalculated.
type EngineSettings struct {
	CompanyID string

	OvertimeThresholdHours float64
	LateThresholdMinutes   int
	BreakDurationMinutes   int
	LunchDurationMinutes   int

	AutoClockOut     bool
	AutoClockOutTime string // wall-clock "HH:MM"

	RequireLocation  bool
	AllowManualEdit  bool
	ApprovalRequired bool

	// WorkdayEnd is the fallback end-of-day for employees without a weekly
	// schedule entry; also bounds the clock-out reminder.
	WorkdayEnd string // wall-clock "HH:MM"

	// Break reminder work window (inclusive hour bounds).
	BreakWindowStartHour int
	BreakWindowEndHour   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Defaults are the compiled-in settings used when a tenant has no stored
// row or the settings store is unavailable.
func Defaults(companyID string) EngineSettings {
	return EngineSettings{
		CompanyID:              companyID,
		OvertimeThresholdHours: 8.0,
		LateThresholdMinutes:   15,
		BreakDurationMinutes:   15,
		LunchDurationMinutes:   60,
		AutoClockOut:           false,
		AutoClockOutTime:       "18:00",
		RequireLocation:        false,
		AllowManualEdit:        true,
		ApprovalRequired:       false,
		WorkdayEnd:             "17:00",
		BreakWindowStartHour:   10,
		BreakWindowEndHour:     16,
	}
}
