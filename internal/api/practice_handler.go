package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tili-api/internal/api/shared"
	"github.com/phrazzld/tili-api/internal/platform/logger"
	"github.com/phrazzld/tili-api/internal/service/card_review"
)

// PracticeHandler serves the review queue.
type PracticeHandler struct {
	reviewService card_review.CardReviewService
	logger        *slog.Logger
}

// NewPracticeHandler creates a new PracticeHandler
func NewPracticeHandler(reviewService card_review.CardReviewService, logger *slog.Logger) *PracticeHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil for PracticeHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for PracticeHandler")
	}
	return &PracticeHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "practice_handler")),
	}
}

// DueCards handles GET /api/practice/due?limit=.
func (h *PracticeHandler) DueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit", card_review.DefaultDueLimit)
	if err != nil {
		HandleAPIError(w, r, err, "limit must be an integer")
		return
	}

	due, err := h.reviewService.DueCards(r.Context(), userID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, due)
}

// SubmitReview handles POST /api/practice/review.
func (h *PracticeHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req ReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.reviewService.SubmitReview(r.Context(), userID, req.CardID, req.Difficulty)
	if err != nil {
		message := ""
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			message = "Failed to submit review"
		}
		HandleAPIError(w, r, err, message)
		return
	}

	log.Debug("review recorded",
		slog.Int64("card_id", req.CardID),
		slog.String("difficulty", req.Difficulty),
		slog.Int("interval_days", result.IntervalDays))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
