package alert

import "errors"

// Alert domain errors
var (
	ErrAlertNotFound      = errors.New("alert not found")
	ErrAlertAlreadyAcked  = errors.New("alert has already been acknowledged")
	ErrDuplicateDedupeKey = errors.New("an alert with this dedupe key already exists")
)
