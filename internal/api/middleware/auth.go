package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/phrazzld/tili-api/internal/api/shared"
	"github.com/phrazzld/tili-api/internal/platform/logger"
	"github.com/phrazzld/tili-api/internal/service/auth"
)

// AuthScheme prefixes the init data in the Authorization header.
const AuthScheme = "tma "

// AuthMiddleware authenticates requests with Telegram Mini App init data.
type AuthMiddleware struct {
	verifier auth.IdentityVerifier
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(verifier auth.IdentityVerifier) *AuthMiddleware {
	if verifier == nil {
		panic("verifier cannot be nil")
	}
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate validates "Authorization: tma <initData>" and adds the caller
// to the request context. Every failure is a 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}
		initData, ok := strings.CutPrefix(authHeader, AuthScheme)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				"Invalid authorization format. Expected: tma <initData>")
			return
		}

		identity, err := m.verifier.Verify(r.Context(), initData)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, authFailureMessage(err), err)
			return
		}

		if values, err := url.ParseQuery(initData); err == nil && values.Get("auth_date") == "" {
			log.Warn("init data accepted without auth_date; expiry not enforced",
				slog.Int64("user_id", identity.ID))
		}

		ctx := shared.WithIdentity(r.Context(), identity)
		ctx = logger.WithLogger(ctx, log.With(slog.Int64("user_id", identity.ID)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func authFailureMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpired):
		return "Init data has expired"
	case errors.Is(err, auth.ErrMalformedAuthDate):
		return "Invalid auth_date"
	case errors.Is(err, auth.ErrMissingIdentity):
		return "No user in init data"
	default:
		return "Invalid init data signature"
	}
}

// GetUserID extracts the verified user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (int64, bool) {
	identity, ok := shared.GetIdentity(r.Context())
	if !ok {
		return 0, false
	}
	return identity.ID, true
}
