package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/tili-api/internal/api/shared"
	"github.com/phrazzld/tili-api/internal/domain"
	"github.com/phrazzld/tili-api/internal/domain/srs"
	"github.com/phrazzld/tili-api/internal/generation"
	"github.com/phrazzld/tili-api/internal/service"
	"github.com/phrazzld/tili-api/internal/service/auth"
	"github.com/phrazzld/tili-api/internal/service/card_review"
	"github.com/phrazzld/tili-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrMissingSignature),
		errors.Is(err, auth.ErrInvalidSignature),
		errors.Is(err, auth.ErrExpired),
		errors.Is(err, auth.ErrMalformedAuthDate),
		errors.Is(err, auth.ErrMissingIdentity):
		return http.StatusUnauthorized

	// A malformed model reply is reported as a bad request for the word
	case errors.Is(err, generation.ErrMalformedResponse):
		return http.StatusBadRequest

	case errors.Is(err, generation.ErrUpstreamUnavailable):
		return http.StatusBadGateway

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrInvalidPagination),
		errors.Is(err, card_review.ErrInvalidLimit),
		errors.Is(err, srs.ErrUnknownDifficultyLabel),
		errors.Is(err, srs.ErrInvalidQuality),
		errors.Is(err, generation.ErrEmptyWord),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpired):
		return "Init data has expired"
	case MapErrorToStatusCode(err) == http.StatusUnauthorized:
		return "Invalid init data"

	case errors.Is(err, generation.ErrMalformedResponse):
		return "Could not read a translation for this word"
	case errors.Is(err, generation.ErrUpstreamUnavailable):
		return "Translation service is unavailable"
	case errors.Is(err, generation.ErrEmptyWord):
		return "Word is required"

	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrDuplicateCard):
		return "Card already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Already exists"

	case errors.Is(err, srs.ErrUnknownDifficultyLabel):
		return "Difficulty must be one of: easy, medium, hard"
	case errors.Is(err, service.ErrInvalidPagination):
		return "page must be at least 1 and per_page between 1 and 100"
	case errors.Is(err, card_review.ErrInvalidLimit):
		return "limit must be between 1 and 100"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid card data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message naming the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required", "notblank":
		return "required field"
	case "min", "gt":
		return "too small"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes an error response for err. When message is empty the
// safe message for err is used.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// handleDecodeError reports a body that could not be decoded or validated.
func handleDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, shared.ErrEmptyBody):
		HandleAPIError(w, r, err, "")
	case errors.As(err, &verrs):
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
	}
}
