package auth

import (
	"context"
	"errors"
	"time"
)

// IdentityVerifier authenticates the init data attached to a request.
type IdentityVerifier interface {
	// Verify validates initData and returns the caller it identifies.
	// Failures wrap one of the package's Err* values.
	Verify(ctx context.Context, initData string) (*Identity, error)
}

// Verifier checks init data against a single bot token.
type Verifier struct {
	botToken []byte
	maxAge   time.Duration
	timeFunc func() time.Time
}

var _ IdentityVerifier = (*Verifier)(nil)

// NewVerifier creates a Verifier for botToken. A non-positive maxAge
// falls back to DefaultMaxAge.
func NewVerifier(botToken string, maxAge time.Duration) (*Verifier, error) {
	if botToken == "" {
		return nil, errors.New("bot token cannot be empty")
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Verifier{
		botToken: []byte(botToken),
		maxAge:   maxAge,
		timeFunc: time.Now,
	}, nil
}

// NewVerifierWithClock is NewVerifier with a custom clock, for tests.
func NewVerifierWithClock(botToken string, maxAge time.Duration, now func() time.Time) (*Verifier, error) {
	v, err := NewVerifier(botToken, maxAge)
	if err != nil {
		return nil, err
	}
	v.timeFunc = now
	return v, nil
}

// Verify implements IdentityVerifier.
func (v *Verifier) Verify(_ context.Context, initData string) (*Identity, error) {
	return Verify(initData, v.botToken, v.maxAge, v.timeFunc())
}
