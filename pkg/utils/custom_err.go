package utils

import "errors"

var (
	ErrDestinationRequired = errors.New("destination city is required")
	ErrInvalidDays         = errors.New("days must be at least 1")
	ErrInvalidBudget       = errors.New("budget must not be negative")
	ErrInvalidInput        = errors.New("invalid input")
	ErrGenerationFailed    = errors.New("text generation failed")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
)
