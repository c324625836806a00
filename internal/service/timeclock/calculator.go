package timeclock

import (
	"math"
	"time"

	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
)

// ComputeTotals derives worked and overtime hours from an entry's stamped
// times. Pure: recomputation from the same timestamps always yields the same
// result, which audit recompute relies on.
//
// A break or lunch that was started but never ended is treated as running
// until clock-out, so an unclosed interval cannot inflate worked time.
func ComputeTotals(entry timeclock.TimeEntry, overtimeThresholdHours float64) (totalHours, overtimeHours float64, err error) {
	if entry.ClockIn == nil || entry.ClockOut == nil {
		return 0, 0, nil
	}
	if entry.ClockOut.Before(*entry.ClockIn) {
		return 0, 0, timeclock.ErrClockOutBeforeClockIn
	}

	worked := entry.ClockOut.Sub(*entry.ClockIn)
	worked -= intervalUntil(entry.BreakStart, entry.BreakEnd, *entry.ClockOut)
	worked -= intervalUntil(entry.LunchStart, entry.LunchEnd, *entry.ClockOut)

	totalHours = roundHours(worked.Hours())
	if totalHours < 0 {
		totalHours = 0
	}

	overtimeHours = roundHours(totalHours - overtimeThresholdHours)
	if overtimeHours < 0 {
		overtimeHours = 0
	}

	return totalHours, overtimeHours, nil
}

// LiveWorkedHours computes accumulated worked time for a still-open entry as
// of now, net of closed break/lunch intervals. The overtime rule evaluates
// this every tick.
func LiveWorkedHours(entry timeclock.TimeEntry, now time.Time) float64 {
	if entry.ClockIn == nil || now.Before(*entry.ClockIn) {
		return 0
	}

	worked := now.Sub(*entry.ClockIn)
	worked -= closedInterval(entry.BreakStart, entry.BreakEnd)
	worked -= closedInterval(entry.LunchStart, entry.LunchEnd)

	if worked < 0 {
		return 0
	}
	return worked.Hours()
}

// intervalUntil measures start..end, with an unclosed interval running until
// the fallback (clock-out). Malformed intervals count as zero.
func intervalUntil(start, end *time.Time, fallback time.Time) time.Duration {
	if start == nil {
		return 0
	}
	stop := fallback
	if end != nil {
		stop = *end
	}
	if stop.Before(*start) {
		return 0
	}
	return stop.Sub(*start)
}

func closedInterval(start, end *time.Time) time.Duration {
	if start == nil || end == nil || end.Before(*start) {
		return 0
	}
	return end.Sub(*start)
}

// roundHours rounds to 2 decimal places.
func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
