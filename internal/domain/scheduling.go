package domain

import (
	"fmt"
	"time"
)

const (
	// DefaultEaseFactor is the ease assigned to a card that has never been reviewed.
	DefaultEaseFactor = 2.5

	// MinEaseFactor is the floor the ease factor may never drop below.
	MinEaseFactor = 1.3
)

// SchedulingState is the spaced-repetition state of a single card.
//
// NextDue is authoritative for when a card becomes due. IntervalDays is a
// day-granularity bucket: a value of 0 means the next review falls on the
// same day at a sub-day offset that only NextDue records.
type SchedulingState struct {
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	Repetitions  int       `json:"repetitions"`
	NextDue      time.Time `json:"next_review"`
}

// NewSchedulingState returns the state of a freshly registered card,
// due immediately.
func NewSchedulingState(now time.Time) SchedulingState {
	return SchedulingState{
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: 0,
		Repetitions:  0,
		NextDue:      now.UTC(),
	}
}

// Validate checks the scheduling invariants.
func (s SchedulingState) Validate() error {
	if s.EaseFactor < MinEaseFactor {
		return fmt.Errorf("%w: ease factor %.4f below %.1f", ErrInvalidSchedulingState, s.EaseFactor, MinEaseFactor)
	}
	if s.IntervalDays < 0 {
		return fmt.Errorf("%w: negative interval %d", ErrInvalidSchedulingState, s.IntervalDays)
	}
	if s.Repetitions < 0 {
		return fmt.Errorf("%w: negative repetitions %d", ErrInvalidSchedulingState, s.Repetitions)
	}
	if s.NextDue.IsZero() {
		return fmt.Errorf("%w: next due time not set", ErrInvalidSchedulingState)
	}
	return nil
}

// IsDue reports whether the card should be presented at now.
func (s SchedulingState) IsDue(now time.Time) bool {
	return !s.NextDue.After(now)
}
