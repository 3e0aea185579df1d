package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidStatus is returned when a learning status is not one of the
	// recognized values.
	ErrInvalidStatus = errors.New("invalid learning status")

	// ErrInvalidChannel is returned when a notification channel is not valid.
	ErrInvalidChannel = errors.New("invalid notification channel")
)
