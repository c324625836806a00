package timeclock

import (
	"testing"
	"time"

	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) *time.Time {
	t := time.Date(2026, 3, 16, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestComputeTotals_StandardDay(t *testing.T) {
	entry := timeclock.TimeEntry{
		ClockIn:    at(8, 5),
		LunchStart: at(12, 0),
		LunchEnd:   at(13, 0),
		ClockOut:   at(17, 35),
	}

	total, overtime, err := ComputeTotals(entry, 8.0)

	require.NoError(t, err)
	assert.Equal(t, 8.5, total)
	assert.Equal(t, 0.5, overtime)
}

func TestComputeTotals_NoOvertimeBelowThreshold(t *testing.T) {
	entry := timeclock.TimeEntry{
		ClockIn:  at(9, 0),
		ClockOut: at(16, 0),
	}

	total, overtime, err := ComputeTotals(entry, 8.0)

	require.NoError(t, err)
	assert.Equal(t, 7.0, total)
	assert.Equal(t, 0.0, overtime)
}

func TestComputeTotals_OpenEntryYieldsZero(t *testing.T) {
	entry := timeclock.TimeEntry{ClockIn: at(8, 0)}

	total, overtime, err := ComputeTotals(entry, 8.0)

	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
	assert.Equal(t, 0.0, overtime)
}

func TestComputeTotals_UnclosedLunchRunsUntilClockOut(t *testing.T) {
	// Lunch started at noon and never ended, so it counts until 17:00.
	entry := timeclock.TimeEntry{
		ClockIn:    at(8, 0),
		LunchStart: at(12, 0),
		ClockOut:   at(17, 0),
	}

	total, _, err := ComputeTotals(entry, 8.0)

	require.NoError(t, err)
	assert.Equal(t, 4.0, total)
}

func TestComputeTotals_BreakAndLunchBothDeducted(t *testing.T) {
	entry := timeclock.TimeEntry{
		ClockIn:    at(8, 0),
		BreakStart: at(10, 0),
		BreakEnd:   at(10, 15),
		LunchStart: at(12, 0),
		LunchEnd:   at(13, 0),
		ClockOut:   at(17, 0),
	}

	total, _, err := ComputeTotals(entry, 8.0)

	require.NoError(t, err)
	assert.Equal(t, 7.75, total)
}

func TestComputeTotals_ClockOutBeforeClockIn(t *testing.T) {
	entry := timeclock.TimeEntry{
		ClockIn:  at(17, 0),
		ClockOut: at(8, 0),
	}

	_, _, err := ComputeTotals(entry, 8.0)

	assert.ErrorIs(t, err, timeclock.ErrClockOutBeforeClockIn)
}

func TestComputeTotals_DeterministicRecompute(t *testing.T) {
	entry := timeclock.TimeEntry{
		ClockIn:    at(8, 7),
		LunchStart: at(12, 13),
		LunchEnd:   at(12, 58),
		ClockOut:   at(18, 22),
	}

	total1, overtime1, err := ComputeTotals(entry, 8.0)
	require.NoError(t, err)
	total2, overtime2, err := ComputeTotals(entry, 8.0)
	require.NoError(t, err)

	assert.Equal(t, total1, total2)
	assert.Equal(t, overtime1, overtime2)
}

func TestLiveWorkedHours_DeductsClosedIntervalsOnly(t *testing.T) {
	entry := timeclock.TimeEntry{
		ClockIn:    at(8, 0),
		BreakStart: at(10, 0),
		BreakEnd:   at(10, 30),
	}

	worked := LiveWorkedHours(entry, *at(12, 0))
	assert.Equal(t, 3.5, worked)

	// An open lunch is not deducted until it closes.
	entry.LunchStart = at(12, 0)
	worked = LiveWorkedHours(entry, *at(13, 0))
	assert.Equal(t, 4.5, worked)
}

func TestLiveWorkedHours_NotClockedIn(t *testing.T) {
	assert.Equal(t, 0.0, LiveWorkedHours(timeclock.TimeEntry{}, *at(12, 0)))
}
