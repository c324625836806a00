package timeclock

import "errors"

// Timeclock domain errors
var (
	// State machine errors
	ErrInvalidTransition = errors.New("action is not legal in the current clock state")
	ErrUnknownAction     = errors.New("unknown clock action")

	// Calculator errors
	ErrClockOutBeforeClockIn = errors.New("clock-out time is before clock-in time")

	// Override errors
	ErrManualEditDisabled = errors.New("manual editing of time entries is disabled")

	// General errors
	ErrEntryNotFound = errors.New("time entry not found")
)
