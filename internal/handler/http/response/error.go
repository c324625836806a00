package response

import (
	"errors"
	"net/http"

	"github.com/rentaline/timeclock-backend-go/internal/domain/alert"
	"github.com/rentaline/timeclock-backend-go/internal/domain/employee"
	"github.com/rentaline/timeclock-backend-go/internal/domain/settings"
	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Timeclock domain errors
	case errors.Is(err, timeclock.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, timeclock.ErrUnknownAction):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timeclock.ErrClockOutBeforeClockIn):
		BadRequest(w, "Clock-out cannot precede clock-in", nil)
	case errors.Is(err, timeclock.ErrManualEditDisabled):
		Forbidden(w, "Manual edits are disabled for this company")
	case errors.Is(err, timeclock.ErrEntryNotFound):
		NotFound(w, "Time entry not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")

	// Alert domain errors
	case errors.Is(err, alert.ErrAlertNotFound):
		NotFound(w, "Alert not found")
	case errors.Is(err, alert.ErrAlertAlreadyAcked):
		Conflict(w, "Alert already acknowledged")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Settings not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
