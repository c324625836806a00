package settings

import "errors"

// Settings domain errors
var (
	ErrSettingsNotFound = errors.New("engine settings not found for this company")
)
