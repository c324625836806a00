package alert

import (
	"fmt"
	"time"
)

// AlertType identifies the rule that produced an alert.
type AlertType string

const (
	TypeLateArrival      AlertType = "late_arrival"
	TypeMissedBreak      AlertType = "missed_break"
	TypeOvertimeWarning  AlertType = "overtime_warning"
	TypeLunchReminder    AlertType = "lunch_reminder"
	TypeClockOutReminder AlertType = "clock_out_reminder"
)

var AlertTypeValues = []string{
	string(TypeLateArrival),
	string(TypeMissedBreak),
	string(TypeOvertimeWarning),
	string(TypeLunchReminder),
	string(TypeClockOutReminder),
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Alert is a single deduplicated signal emitted by the rule engine.
// Delivery (email, SMS, push) is an external concern; the engine only
// persists the alert and publishes it on the event hub.
type Alert struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Type       AlertType
	Message    string
	Priority   Priority
	CreatedAt  time.Time

	// ExpiresAt is a display TTL for transient alerts. Storage deletion is
	// not enforced; consumers decide whether to show expired alerts.
	ExpiresAt *time.Time

	Acknowledged   bool
	AcknowledgedAt *time.Time

	// DedupeKey is employeeID:type:date, optionally with a variant suffix
	// (overtime checkpoint, break slot hour). At most one alert per key.
	DedupeKey string

	// DTO
	EmployeeName *string
}

// DedupeKey builds the composite key the engine checks before emitting.
// variant distinguishes repeatable rules (overtime checkpoints, break
// slots) that may fire more than once per day under the same type.
func DedupeKey(employeeID string, alertType AlertType, date time.Time, variant string) string {
	key := fmt.Sprintf("%s:%s:%s", employeeID, alertType, date.Format("2006-01-02"))
	if variant != "" {
		key += ":" + variant
	}
	return key
}
