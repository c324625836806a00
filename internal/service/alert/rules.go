package alert

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rentaline/timeclock-backend-go/internal/domain/alert"
	"github.com/rentaline/timeclock-backend-go/internal/domain/employee"
	"github.com/rentaline/timeclock-backend-go/internal/domain/settings"
	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
	timeclockService "github.com/rentaline/timeclock-backend-go/internal/service/timeclock"
)

// ruleContext is everything a rule may consult for one employee on one tick.
type ruleContext struct {
	now      time.Time
	date     time.Time
	employee employee.Employee
	entry    *timeclock.TimeEntry // nil when no entry exists yet today
	settings settings.EngineSettings
}

// candidate is a proposed alert; the engine dedupes before persisting.
type candidate struct {
	alertType alert.AlertType
	variant   string // dedupe key suffix for repeatable rules
	message   string
	priority  alert.Priority
	expiresIn time.Duration // 0 means no display TTL
}

type rule func(ruleContext) []candidate

// Rules run in this order each tick. They are independent; several may fire
// for the same employee on the same tick.
var rules = []rule{
	lunchReminderRule,
	missedBreakRule,
	overtimeWarningRule,
	clockOutReminderRule,
	lateArrivalRule,
}

const lunchReminderTTL = 30 * time.Second

// lunchReminderRule fires at noon for employees still working with no lunch
// recorded. Transient: it self-expires for display after 30s.
func lunchReminderRule(rctx ruleContext) []candidate {
	if rctx.entry == nil || rctx.entry.Status != timeclock.StatusWorking || rctx.entry.LunchStart != nil {
		return nil
	}
	if rctx.now.Hour() != 12 || rctx.now.Minute() != 0 {
		return nil
	}

	return []candidate{{
		alertType: alert.TypeLunchReminder,
		message:   fmt.Sprintf("%s, it's noon. Time to take your lunch break.", rctx.employee.FullName),
		priority:  alert.PriorityLow,
		expiresIn: lunchReminderTTL,
	}}
}

// missedBreakRule fires every two hours on the hour within the configured
// work window while the employee keeps working. The hour is part of the
// dedupe key, so each slot fires at most once per day.
func missedBreakRule(rctx ruleContext) []candidate {
	if rctx.entry == nil || rctx.entry.Status != timeclock.StatusWorking {
		return nil
	}
	if rctx.now.Minute() != 0 {
		return nil
	}

	hour := rctx.now.Hour()
	start := rctx.settings.BreakWindowStartHour
	end := rctx.settings.BreakWindowEndHour
	if hour < start || hour > end || (hour-start)%2 != 0 {
		return nil
	}

	return []candidate{{
		alertType: alert.TypeMissedBreak,
		variant:   fmt.Sprintf("%02d", hour),
		message:   fmt.Sprintf("%s has been working without a recent break. Consider a short pause.", rctx.employee.FullName),
		priority:  alert.PriorityLow,
	}}
}

// overtimeCheckpoints are offsets from the overtime threshold; each crossed
// checkpoint is its own dedupe key variant so all three can fire on one day.
var overtimeCheckpoints = []struct {
	offset   float64
	priority alert.Priority
	message  string
}{
	{-0.5, alert.PriorityMedium, "is approaching the overtime threshold"},
	{0, alert.PriorityHigh, "has reached the overtime threshold"},
	{2, alert.PriorityHigh, "is far past the overtime threshold"},
}

// overtimeWarningRule evaluates live worked hours of a still-open entry
// against the three checkpoints.
func overtimeWarningRule(rctx ruleContext) []candidate {
	if rctx.entry == nil || !rctx.entry.IsOpen() {
		return nil
	}

	worked := timeclockService.LiveWorkedHours(*rctx.entry, rctx.now)

	var out []candidate
	for _, cp := range overtimeCheckpoints {
		mark := rctx.settings.OvertimeThresholdHours + cp.offset
		if mark < 0 || worked < mark {
			continue
		}
		out = append(out, candidate{
			alertType: alert.TypeOvertimeWarning,
			variant:   strconv.FormatFloat(mark, 'f', -1, 64) + "h",
			message:   fmt.Sprintf("%s %s (%.2fh worked).", rctx.employee.FullName, cp.message, worked),
			priority:  cp.priority,
		})
	}

	return out
}

// clockOutReminderRule fires once the workday end passes with the employee
// still working. Requires acknowledgement; no display TTL.
func clockOutReminderRule(rctx ruleContext) []candidate {
	if rctx.entry == nil || rctx.entry.Status != timeclock.StatusWorking || rctx.entry.ClockOut != nil {
		return nil
	}

	end, ok := rctx.employee.WeeklySchedule.EndOn(rctx.date)
	if !ok {
		fallback, err := time.Parse("15:04", rctx.settings.WorkdayEnd)
		if err != nil {
			return nil
		}
		end = time.Date(rctx.date.Year(), rctx.date.Month(), rctx.date.Day(),
			fallback.Hour(), fallback.Minute(), 0, 0, rctx.date.Location())
	}
	if rctx.now.Before(end) {
		return nil
	}

	return []candidate{{
		alertType: alert.TypeClockOutReminder,
		message:   fmt.Sprintf("%s is past the end of the workday and still clocked in.", rctx.employee.FullName),
		priority:  alert.PriorityHigh,
	}}
}

// lateArrivalRule fires when a scheduled workday starts and the employee
// has not clocked in within the configured grace threshold.
func lateArrivalRule(rctx ruleContext) []candidate {
	if rctx.entry != nil && rctx.entry.ClockIn != nil {
		return nil
	}

	start, ok := rctx.employee.WeeklySchedule.StartOn(rctx.date)
	if !ok {
		return nil
	}

	cutoff := start.Add(time.Duration(rctx.settings.LateThresholdMinutes) * time.Minute)
	if !rctx.now.After(cutoff) {
		return nil
	}

	return []candidate{{
		alertType: alert.TypeLateArrival,
		message:   fmt.Sprintf("%s has not clocked in %d minutes past the scheduled start.", rctx.employee.FullName, rctx.settings.LateThresholdMinutes),
		priority:  alert.PriorityMedium,
	}}
}
