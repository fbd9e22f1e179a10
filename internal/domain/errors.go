package domain

import "errors"

var (
	ErrObservationNotFound = errors.New("observation not found")
	ErrAlertNotFound       = errors.New("alert not found")
	ErrMissingAPIKey       = errors.New("vision api key is not configured")
)
