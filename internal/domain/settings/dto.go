package settings

import (
	"github.com/rentaline/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// SETTINGS DTOs
// ========================================

// UpdateSettingsRequest mutates tenant settings. Nil fields are unchanged.
type UpdateSettingsRequest struct {
	OvertimeThresholdHours *float64 `json:"overtime_threshold_hours,omitempty"`
	LateThresholdMinutes   *int     `json:"late_threshold_minutes,omitempty"`
	BreakDurationMinutes   *int     `json:"break_duration_minutes,omitempty"`
	LunchDurationMinutes   *int     `json:"lunch_duration_minutes,omitempty"`
	AutoClockOut           *bool    `json:"auto_clock_out,omitempty"`
	AutoClockOutTime       *string  `json:"auto_clock_out_time,omitempty"`
	RequireLocation        *bool    `json:"require_location,omitempty"`
	AllowManualEdit        *bool    `json:"allow_manual_edit,omitempty"`
	ApprovalRequired       *bool    `json:"approval_required,omitempty"`
	WorkdayEnd             *string  `json:"workday_end,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OvertimeThresholdHours != nil && *r.OvertimeThresholdHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_threshold_hours",
			Message: "overtime_threshold_hours must not be negative",
		})
	}

	minuteFields := map[string]*int{
		"late_threshold_minutes": r.LateThresholdMinutes,
		"break_duration_minutes": r.BreakDurationMinutes,
		"lunch_duration_minutes": r.LunchDurationMinutes,
	}
	for field, value := range minuteFields {
		if value != nil && *value < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must not be negative",
			})
		}
	}

	timeFields := map[string]*string{
		"auto_clock_out_time": r.AutoClockOutTime,
		"workday_end":         r.WorkdayEnd,
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply merges the request onto existing settings.
func (r *UpdateSettingsRequest) Apply(s EngineSettings) EngineSettings {
	if r.OvertimeThresholdHours != nil {
		s.OvertimeThresholdHours = *r.OvertimeThresholdHours
	}
	if r.LateThresholdMinutes != nil {
		s.LateThresholdMinutes = *r.LateThresholdMinutes
	}
	if r.BreakDurationMinutes != nil {
		s.BreakDurationMinutes = *r.BreakDurationMinutes
	}
	if r.LunchDurationMinutes != nil {
		s.LunchDurationMinutes = *r.LunchDurationMinutes
	}
	if r.AutoClockOut != nil {
		s.AutoClockOut = *r.AutoClockOut
	}
	if r.AutoClockOutTime != nil {
		s.AutoClockOutTime = *r.AutoClockOutTime
	}
	if r.RequireLocation != nil {
		s.RequireLocation = *r.RequireLocation
	}
	if r.AllowManualEdit != nil {
		s.AllowManualEdit = *r.AllowManualEdit
	}
	if r.ApprovalRequired != nil {
		s.ApprovalRequired = *r.ApprovalRequired
	}
	if r.WorkdayEnd != nil {
		s.WorkdayEnd = *r.WorkdayEnd
	}
	return s
}

// SettingsResponse is the wire representation of EngineSettings.
type SettingsResponse struct {
	OvertimeThresholdHours float64 `json:"overtime_threshold_hours"`
	LateThresholdMinutes   int     `json:"late_threshold_minutes"`
	BreakDurationMinutes   int     `json:"break_duration_minutes"`
	LunchDurationMinutes   int     `json:"lunch_duration_minutes"`
	AutoClockOut           bool    `json:"auto_clock_out"`
	AutoClockOutTime       string  `json:"auto_clock_out_time"`
	RequireLocation        bool    `json:"require_location"`
	AllowManualEdit        bool    `json:"allow_manual_edit"`
	ApprovalRequired       bool    `json:"approval_required"`
	WorkdayEnd             string  `json:"workday_end"`
}

func ToResponse(s EngineSettings) SettingsResponse {
	return SettingsResponse{
		OvertimeThresholdHours: s.OvertimeThresholdHours,
		LateThresholdMinutes:   s.LateThresholdMinutes,
		BreakDurationMinutes:   s.BreakDurationMinutes,
		LunchDurationMinutes:   s.LunchDurationMinutes,
		AutoClockOut:           s.AutoClockOut,
		AutoClockOutTime:       s.AutoClockOutTime,
		RequireLocation:        s.RequireLocation,
		AllowManualEdit:        s.AllowManualEdit,
		ApprovalRequired:       s.ApprovalRequired,
		WorkdayEnd:             s.WorkdayEnd,
	}
}
