package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tili-api/internal/api/shared"
	"github.com/phrazzld/tili-api/internal/domain"
	"github.com/phrazzld/tili-api/internal/platform/logger"
)

// Translator produces a translation record for one word.
type Translator interface {
	Translate(ctx context.Context, word string) (*domain.TranslationRecord, error)
}

// TranslateHandler serves POST /api/cards/translate.
type TranslateHandler struct {
	translator Translator
	logger     *slog.Logger
}

// NewTranslateHandler creates a new TranslateHandler
func NewTranslateHandler(translator Translator, logger *slog.Logger) *TranslateHandler {
	if translator == nil {
		panic("translator cannot be nil for TranslateHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for TranslateHandler")
	}
	return &TranslateHandler{
		translator: translator,
		logger:     logger.With(slog.String("component", "translate_handler")),
	}
}

// Translate looks up a Korean word. The model call is detached from client
// disconnect.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if _, ok := requireUserID(w, r, log); !ok {
		return
	}

	var req TranslateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	record, err := h.translator.Translate(context.WithoutCancel(r.Context()), req.Word)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("word translated", slog.String("word", req.Word))
	shared.RespondWithJSON(w, r, http.StatusOK, record)
}
