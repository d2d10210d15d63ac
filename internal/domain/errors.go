package domain

import "errors"

// Common errors
var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid id")

	// ErrValidation covers out-of-range user input rejected at the entry point.
	ErrValidation = errors.New("validation failed")

	// ErrStaleSchedule means the compiled schedule's source hash no longer
	// matches its inputs and it must be regenerated before use.
	ErrStaleSchedule = errors.New("compiled schedule is stale")
)
