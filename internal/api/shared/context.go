package shared

import (
	"context"

	"github.com/google/uuid"

	"github.com/phrazzld/tili-api/internal/service/auth"
)

// ContextKey is the key type for values this package stores in a context.
type ContextKey string

// Context keys for various values
const (
	// IdentityContextKey is the context key for the verified caller
	IdentityContextKey ContextKey = "identity"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a new random trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, uuid.NewString())
}

// WithTraceID stores traceID in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithIdentity stores the verified caller in the context.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}

// GetIdentity returns the verified caller, if the auth middleware ran.
func GetIdentity(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(*auth.Identity)
	if !ok || identity == nil || identity.ID == 0 {
		return nil, false
	}
	return identity, true
}
