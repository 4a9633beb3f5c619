package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/tili-api/internal/api/shared"
	"github.com/phrazzld/tili-api/internal/domain"
)

// getUserIDFromContext extracts the authenticated Telegram user ID placed in
// the context by the authentication middleware.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	identity, ok := shared.GetIdentity(r.Context())
	if !ok {
		return 0, false
	}
	return identity.ID, true
}

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidID, paramName)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s has invalid format", domain.ErrInvalidID, paramName)
	}
	return id, nil
}

// queryInt reads an integer query parameter, returning def when it is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, name)
	}
	return v, nil
}

// requireUserID writes a 401 and returns false when the request carries no
// verified identity.
func requireUserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return 0, false
	}
	return userID, true
}

// handleUserIDAndPathID extracts both the user ID from context and an ID
// from the path parameters. It writes an error response if either fails.
func handleUserIDAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (int64, int64, bool) {
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return 0, 0, false
	}

	pathID, err := getPathID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return 0, 0, false
	}

	return userID, pathID, true
}

// decodeAndValidate decodes the body into v and validates it, writing a 400
// and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		handleDecodeError(w, r, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		handleDecodeError(w, r, err)
		return false
	}
	return true
}
