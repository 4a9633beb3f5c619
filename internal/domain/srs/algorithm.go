package srs

import (
	"math"
	"time"

	"github.com/phrazzld/tili-api/internal/domain"
)

const day = 24 * time.Hour

// calculateNewEaseFactor applies the SM-2 ease update for quality q and
// clamps the result to params.MinEaseFactor. The value is not rounded.
func calculateNewEaseFactor(currentEF float64, q Quality, params *Params) float64 {
	d := float64(5 - q)
	newEF := currentEF + (0.1 - d*(0.08+d*0.02))
	return math.Max(params.MinEaseFactor, newEF)
}

// roundEase rounds half-to-even to params.EasePrecision decimal places.
func roundEase(ef float64, params *Params) float64 {
	scale := math.Pow10(params.EasePrecision)
	return math.RoundToEven(ef*scale) / scale
}

// calculateNextState computes the state following a review of quality q.
// It never mutates its input.
//
// Correct answers climb the ladder: a perfect first review waits one day,
// any other first pass comes back the same day after a short delay, the
// second correct review waits six days, and later reviews multiply the
// previous interval by the new ease. Incorrect answers reset the
// repetition count and bring the card back within minutes.
func calculateNextState(q Quality, state domain.SchedulingState, now time.Time, params *Params) domain.SchedulingState {
	newEF := calculateNewEaseFactor(state.EaseFactor, q, params)

	next := domain.SchedulingState{
		EaseFactor: roundEase(newEF, params),
	}

	if q < params.CorrectThreshold {
		next.IntervalDays = 0
		next.Repetitions = 0
		next.NextDue = now.Add(params.RelearnDelay)
		return next
	}

	switch state.Repetitions {
	case 0:
		if q == QualityEasy {
			next.IntervalDays = params.FirstEasyIntervalDays
			next.NextDue = now.Add(time.Duration(next.IntervalDays) * day)
		} else {
			next.IntervalDays = 0
			next.NextDue = now.Add(params.FirstPassDelay)
		}
	case 1:
		next.IntervalDays = params.SecondReviewIntervalDays
		next.NextDue = now.Add(time.Duration(next.IntervalDays) * day)
	default:
		next.IntervalDays = int(math.RoundToEven(float64(state.IntervalDays) * newEF))
		next.NextDue = now.Add(time.Duration(next.IntervalDays) * day)
	}
	next.Repetitions = state.Repetitions + 1

	return next
}

// Advance is the pure form of Service.Advance with an explicit clock reading.
func Advance(params *Params, q Quality, state domain.SchedulingState, now time.Time) (domain.SchedulingState, error) {
	if !q.IsValid() {
		return domain.SchedulingState{}, invalidQuality(q)
	}
	return calculateNextState(q, state, now.UTC(), params), nil
}
