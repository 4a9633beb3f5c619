package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is usually wrapped with a more specific message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is zero or negative.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyContent is returned when required text is blank.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidSchedulingState is returned when scheduling fields are out of range.
	ErrInvalidSchedulingState = errors.New("invalid scheduling state")
)
