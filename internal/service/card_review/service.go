// Package card_review runs practice sessions: it lists the cards a user has
// due and applies the scheduling engine to each submitted review.
package card_review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/tili-api/internal/domain"
)

// Practice limits for DueCards.
const (
	DefaultDueLimit = 20
	MaxDueLimit     = 100
)

// DueCards is the practice queue for a user.
type DueCards struct {
	Cards    []*domain.Card `json:"cards"`
	TotalDue int            `json:"total_due"`
}

// ReviewResult is the schedule produced by one review.
type ReviewResult struct {
	NextReview   time.Time `json:"next_review"`
	IntervalDays int       `json:"interval_days"`
	RemainingDue int       `json:"remaining_due"`
}

// CardReviewService provides methods for reviewing flashcards
// using a spaced repetition algorithm.
type CardReviewService interface {
	// DueCards returns up to limit cards due now, earliest first, together
	// with the total number due.
	//
	// Returns ErrInvalidLimit when limit is outside 1..MaxDueLimit.
	DueCards(ctx context.Context, userID int64, limit int) (*DueCards, error)

	// SubmitReview grades a card with a difficulty label ("hard", "medium",
	// "easy") and stores the resulting schedule.
	//
	// The card read, the scheduling step and the update run in a single
	// transaction.
	//
	// Error Handling:
	//   - srs.ErrUnknownDifficultyLabel when the label is not recognised
	//   - store.ErrCardNotFound when the card does not exist or is not owned by the user
	//   - *ServiceError for anything else
	SubmitReview(ctx context.Context, userID, cardID int64, difficulty string) (*ReviewResult, error)
}

// ErrInvalidLimit indicates a due-card limit outside the accepted range.
var ErrInvalidLimit = errors.New("invalid limit")

// ServiceError wraps errors from the card review service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "due_cards", "submit_review")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSubmitReviewError returns a new ServiceError for the submit_review operation.
func NewSubmitReviewError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "submit_review", Message: message, Err: err}
}

// NewDueCardsError returns a new ServiceError for the due_cards operation.
func NewDueCardsError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "due_cards", Message: message, Err: err}
}
