package srs

import (
	"time"

	"github.com/phrazzld/tili-api/internal/domain"
)

// Params defines the tunable constants of the scheduling algorithm.
type Params struct {
	// MinEaseFactor is the floor for the ease factor.
	MinEaseFactor float64

	// CorrectThreshold is the lowest quality counted as a correct recall.
	CorrectThreshold Quality

	// FirstEasyIntervalDays is the interval after a perfect first review.
	FirstEasyIntervalDays int

	// FirstPassDelay is the sub-day offset after a non-perfect first correct review.
	FirstPassDelay time.Duration

	// SecondReviewIntervalDays is the flat interval after the second correct review.
	SecondReviewIntervalDays int

	// RelearnDelay is the offset applied after an incorrect review.
	RelearnDelay time.Duration

	// EasePrecision is the number of decimal places the stored ease keeps.
	EasePrecision int
}

// NewDefaultParams returns the standard SM-2 parameters.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:            domain.MinEaseFactor,
		CorrectThreshold:         3,
		FirstEasyIntervalDays:    1,
		FirstPassDelay:           5 * time.Hour,
		SecondReviewIntervalDays: 6,
		RelearnDelay:             10 * time.Minute,
		EasePrecision:            4,
	}
}
