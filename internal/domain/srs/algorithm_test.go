package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tili-api/internal/domain"
)

const epsilon = 1e-9

var reviewTime = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func state(ease float64, interval, reps int) domain.SchedulingState {
	return domain.SchedulingState{
		EaseFactor:   ease,
		IntervalDays: interval,
		Repetitions:  reps,
		NextDue:      reviewTime.Add(-time.Hour),
	}
}

func TestAdvance(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	tests := []struct {
		name         string
		quality      Quality
		prior        domain.SchedulingState
		wantEase     float64
		wantInterval int
		wantReps     int
		wantOffset   time.Duration
	}{
		{
			name:         "perfect first review waits one day",
			quality:      QualityEasy,
			prior:        state(2.5, 0, 0),
			wantEase:     2.6,
			wantInterval: 1,
			wantReps:     1,
			wantOffset:   24 * time.Hour,
		},
		{
			name:         "medium first review comes back in five hours",
			quality:      QualityMedium,
			prior:        state(2.5, 0, 0),
			wantEase:     2.36,
			wantInterval: 0,
			wantReps:     1,
			wantOffset:   5 * time.Hour,
		},
		{
			name:         "hard review resets to relearn",
			quality:      QualityHard,
			prior:        state(2.5, 30, 5),
			wantEase:     1.96,
			wantInterval: 0,
			wantReps:     0,
			wantOffset:   10 * time.Minute,
		},
		{
			name:         "second correct review is six days flat",
			quality:      QualityMedium,
			prior:        state(1.4, 0, 1),
			wantEase:     1.3,
			wantInterval: 6,
			wantReps:     2,
			wantOffset:   6 * 24 * time.Hour,
		},
		{
			name:         "mature review multiplies by new ease",
			quality:      QualityEasy,
			prior:        state(2.5, 10, 2),
			wantEase:     2.6,
			wantInterval: 26,
			wantReps:     3,
			wantOffset:   26 * 24 * time.Hour,
		},
		{
			name:         "mature medium review rounds to nearest day",
			quality:      QualityMedium,
			prior:        state(2.5, 10, 4),
			wantEase:     2.36,
			wantInterval: 24,
			wantReps:     5,
			wantOffset:   24 * 24 * time.Hour,
		},
		{
			name:         "interval rounds half to even",
			quality:      QualityEasy,
			prior:        state(2.4, 5, 2),
			wantEase:     2.5,
			wantInterval: 12,
			wantReps:     3,
			wantOffset:   12 * 24 * time.Hour,
		},
		{
			name:         "ease never drops below floor",
			quality:      QualityHard,
			prior:        state(1.3, 3, 2),
			wantEase:     1.3,
			wantInterval: 0,
			wantReps:     0,
			wantOffset:   10 * time.Minute,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Advance(params, tc.quality, tc.prior, reviewTime)
			require.NoError(t, err)

			assert.InDelta(t, tc.wantEase, got.EaseFactor, epsilon)
			assert.Equal(t, tc.wantInterval, got.IntervalDays)
			assert.Equal(t, tc.wantReps, got.Repetitions)
			assert.Equal(t, reviewTime.Add(tc.wantOffset), got.NextDue)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestAdvance_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	prior := state(2.5, 10, 3)
	before := prior

	_, err := Advance(NewDefaultParams(), QualityEasy, prior, reviewTime)
	require.NoError(t, err)
	assert.Equal(t, before, prior)
}

func TestAdvance_RejectsQualityOutsideMapping(t *testing.T) {
	t.Parallel()

	for _, q := range []Quality{-1, 0, 2, 4, 6, 100} {
		_, err := Advance(NewDefaultParams(), q, state(2.5, 0, 0), reviewTime)
		assert.ErrorIs(t, err, ErrInvalidQuality, "quality %d", q)
	}
}

func TestCalculateNewEaseFactor_Monotonic(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	for _, ease := range []float64{1.3, 1.5, 2.0, 2.5, 3.1} {
		prev := 0.0
		for q := Quality(0); q <= 5; q++ {
			got := calculateNewEaseFactor(ease, q, params)
			assert.GreaterOrEqual(t, got, params.MinEaseFactor, "ease %.2f quality %d", ease, q)
			assert.GreaterOrEqual(t, got, prev, "ease %.2f quality %d", ease, q)
			prev = got
		}
	}
}

func TestRoundEase(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	assert.InDelta(t, 2.3601, roundEase(2.36006, params), epsilon)
	assert.InDelta(t, 1.96, roundEase(1.9599999999, params), epsilon)
}
