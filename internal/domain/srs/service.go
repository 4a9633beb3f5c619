package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/tili-api/internal/domain"
)

// Scheduling errors. Both are input-validation failures; the engine has no
// other failure mode.
var (
	ErrUnknownDifficultyLabel = errors.New("unknown difficulty label")
	ErrInvalidQuality         = errors.New("invalid quality rating")
)

func invalidQuality(q Quality) error {
	return fmt.Errorf("%w: %d (accepted: 1, 3, 5)", ErrInvalidQuality, q)
}

// Service defines the scheduling operations used by the review flow.
type Service interface {
	// Advance computes the state after a review of quality q, due relative
	// to the service clock.
	Advance(q Quality, state domain.SchedulingState) (domain.SchedulingState, error)

	// AdvanceWithLabel parses a difficulty label and advances the state.
	AdvanceWithLabel(label string, state domain.SchedulingState) (domain.SchedulingState, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params   *Params
	timeFunc func() time.Time
}

// Option customises a service.
type Option func(*defaultService)

// WithParams overrides the default algorithm parameters.
func WithParams(params *Params) Option {
	return func(s *defaultService) {
		if params != nil {
			s.params = params
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *defaultService) {
		if now != nil {
			s.timeFunc = now
		}
	}
}

// NewService creates a scheduling service. It is stateless and safe for
// concurrent use.
func NewService(opts ...Option) Service {
	s := &defaultService{
		params:   NewDefaultParams(),
		timeFunc: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *defaultService) Advance(q Quality, state domain.SchedulingState) (domain.SchedulingState, error) {
	return Advance(s.params, q, state, s.timeFunc())
}

func (s *defaultService) AdvanceWithLabel(label string, state domain.SchedulingState) (domain.SchedulingState, error) {
	q, err := QualityFromLabel(label)
	if err != nil {
		return domain.SchedulingState{}, err
	}
	return s.Advance(q, state)
}
