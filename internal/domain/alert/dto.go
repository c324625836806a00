package alert

import (
	"time"
)

// ========================================
// ALERT DTOs
// ========================================

// AlertFilter selects alerts for listing.
type AlertFilter struct {
	EmployeeID   *string
	Type         *string
	Date         *string // YYYY-MM-DD
	Acknowledged *bool
	Page         int
	Limit        int
}

// AlertResponse is the wire representation of an Alert.
type AlertResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   *string `json:"employee_name,omitempty"`
	Type           string  `json:"type"`
	Message        string  `json:"message"`
	Priority       string  `json:"priority"`
	CreatedAt      string  `json:"created_at"`
	ExpiresAt      *string `json:"expires_at,omitempty"`
	Acknowledged   bool    `json:"acknowledged"`
	AcknowledgedAt *string `json:"acknowledged_at,omitempty"`
}

func ToResponse(a Alert) AlertResponse {
	return AlertResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		Type:           string(a.Type),
		Message:        a.Message,
		Priority:       string(a.Priority),
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		ExpiresAt:      formatTime(a.ExpiresAt),
		Acknowledged:   a.Acknowledged,
		AcknowledgedAt: formatTime(a.AcknowledgedAt),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
