package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the generation package
var (
	// ErrMalformedResponse is returned when no valid translation can be read
	// from the model reply. It is never retried.
	ErrMalformedResponse = errors.New("malformed response from language model")

	// ErrUpstreamUnavailable is returned when the backend could not produce a
	// reply, either after exhausting retries or on a permanent backend error.
	ErrUpstreamUnavailable = errors.New("language model unavailable")

	// ErrUnsupportedBackend is returned when configuration names an unknown provider
	ErrUnsupportedBackend = errors.New("unsupported language model backend")

	// ErrTransientFailure marks backend errors that might resolve on retry
	ErrTransientFailure = errors.New("transient language model failure")

	// ErrEmptyWord is returned when there is nothing to translate
	ErrEmptyWord = errors.New("word cannot be empty")

	// ErrInvalidConfig is returned when a translator or backend is misconfigured
	ErrInvalidConfig = errors.New("invalid generation configuration")
)

// excerptLimit bounds the reply text carried by a MalformedResponseError.
const excerptLimit = 200

// MalformedResponseError describes a reply that could not be turned into a
// translation. It matches ErrMalformedResponse with errors.Is.
type MalformedResponseError struct {
	// Reason says which step rejected the reply.
	Reason string
	// Excerpt holds at most the first 200 characters of the reply.
	Excerpt string
}

func newMalformedResponse(reason, raw string) *MalformedResponseError {
	return &MalformedResponseError{Reason: reason, Excerpt: excerpt(raw)}
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: %s: %q", ErrMalformedResponse, e.Reason, e.Excerpt)
}

// Is reports whether target is ErrMalformedResponse.
func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= excerptLimit {
		return s
	}
	return string(runes[:excerptLimit])
}

// BackendError is a failed call to a provider. Transient errors match
// ErrTransientFailure.
type BackendError struct {
	Backend    string
	StatusCode int
	Message    string
	Transient  bool
	Err        error
}

func (e *BackendError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s backend returned status %d: %s", e.Backend, e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s backend request failed: %v", e.Backend, e.Err)
	default:
		return fmt.Sprintf("%s backend failed: %s", e.Backend, e.Message)
	}
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTransientFailure and the error is transient.
func (e *BackendError) Is(target error) bool {
	return target == ErrTransientFailure && e.Transient
}

// IsTransientStatus reports whether an HTTP status from a provider is worth
// retrying: timeouts, conflicts, rate limiting and server-side failures.
func IsTransientStatus(status int) bool {
	switch {
	case status == http.StatusRequestTimeout,
		status == http.StatusConflict,
		status == http.StatusTooManyRequests:
		return true
	case status >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}

// NewStatusError builds the error for a non-2xx provider response.
func NewStatusError(backend string, status int, message string) error {
	return &BackendError{
		Backend:    backend,
		StatusCode: status,
		Message:    message,
		Transient:  IsTransientStatus(status),
	}
}

// NewTransportError builds the error for a request that got no response.
// Connection failures are transient; a cancelled or expired context is not.
func NewTransportError(backend string, err error) error {
	return &BackendError{
		Backend:   backend,
		Err:       err,
		Transient: !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded),
	}
}
