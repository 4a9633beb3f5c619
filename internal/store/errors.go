package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert would violate a uniqueness rule.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrCardNotFound indicates the card does not exist or belongs to someone else.
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)

	// ErrDuplicateCard indicates the owner already has a card for the word.
	ErrDuplicateCard = fmt.Errorf("%w: card for this word", ErrDuplicate)
)

// StoreError adds entity and operation context to a driver error.
type StoreError struct {
	Entity    string // e.g. "card"
	Operation string // e.g. "insert"
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Operation, e.Entity, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
