package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tili-api/internal/api/shared"
	"github.com/phrazzld/tili-api/internal/platform/logger"
	"github.com/phrazzld/tili-api/internal/service"
)

// CardHandler handles card collection requests
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService, logger *slog.Logger) *CardHandler {
	if cardService == nil {
		panic("cardService cannot be nil for CardHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for CardHandler")
	}
	return &CardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// CreateCard handles POST /api/cards.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateCardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.cardService.Create(r.Context(), userID, service.NewCardInput{
		Korean:         req.Korean,
		English:        req.English,
		ExampleKorean:  req.ExampleKorean,
		ExampleEnglish: req.ExampleEnglish,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("card created", slog.Int64("card_id", card.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// ListCards handles GET /api/cards?page=&per_page=.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	page, err := queryInt(r, "page", 1)
	if err != nil {
		HandleAPIError(w, r, err, "page must be an integer")
		return
	}
	perPage, err := queryInt(r, "per_page", service.DefaultPerPage)
	if err != nil {
		HandleAPIError(w, r, err, "per_page must be an integer")
		return
	}

	result, err := h.cardService.List(r.Context(), userID, page, perPage)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetCard handles GET /api/cards/{id}.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	card, err := h.cardService.Get(r.Context(), userID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// UpdateCard handles PUT /api/cards/{id}.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateCardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.cardService.Update(r.Context(), userID, cardID, req.ToUpdate())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("card updated", slog.Int64("card_id", cardID))
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// DeleteCard handles DELETE /api/cards/{id}.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.cardService.Delete(r.Context(), userID, cardID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("card deleted", slog.Int64("card_id", cardID))
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteResponse{Deleted: true})
}

// GetStats handles GET /api/stats.
func (h *CardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	stats, err := h.cardService.Stats(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load statistics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
