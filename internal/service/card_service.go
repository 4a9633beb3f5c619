package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tili-api/internal/domain"
	"github.com/phrazzld/tili-api/internal/platform/logger"
	"github.com/phrazzld/tili-api/internal/store"
)

// Pagination limits for List.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// NewCardInput is the user-supplied content of a new card.
type NewCardInput struct {
	Korean         string
	English        string
	ExampleKorean  *string
	ExampleEnglish *string
}

// CardPage is one page of a user's collection.
type CardPage struct {
	Cards      []*domain.Card `json:"cards"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
}

// CardService provides card management operations. Every method is scoped
// to ownerID.
type CardService interface {
	// Create adds a card that is due immediately. Returns
	// store.ErrDuplicateCard if the owner already has the word and
	// domain.ErrValidation for blank content.
	Create(ctx context.Context, ownerID int64, input NewCardInput) (*domain.Card, error)

	// Get returns one card or store.ErrCardNotFound.
	Get(ctx context.Context, ownerID, cardID int64) (*domain.Card, error)

	// List returns page (1-based) of the collection, newest first.
	List(ctx context.Context, ownerID int64, page, perPage int) (*CardPage, error)

	// Update edits the English text and examples of a card.
	Update(ctx context.Context, ownerID, cardID int64, update domain.CardUpdate) (*domain.Card, error)

	// Delete removes a card or returns store.ErrCardNotFound.
	Delete(ctx context.Context, ownerID, cardID int64) error

	// Stats summarises the collection as of now.
	Stats(ctx context.Context, ownerID int64) (*domain.CardStats, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	cards    store.CardStore
	timeFunc func() time.Time
	logger   *slog.Logger
}

var _ CardService = (*cardServiceImpl)(nil)

// NewCardService creates a new CardService.
// It returns an error if the store is nil.
func NewCardService(cards store.CardStore, logger *slog.Logger) (CardService, error) {
	return NewCardServiceWithClock(cards, logger, time.Now)
}

// NewCardServiceWithClock is NewCardService with a replaceable clock.
func NewCardServiceWithClock(cards store.CardStore, logger *slog.Logger, now func() time.Time) (CardService, error) {
	if cards == nil {
		return nil, fmt.Errorf("%w: card store cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}

	return &cardServiceImpl{
		cards:    cards,
		timeFunc: now,
		logger:   logger.With(slog.String("component", "card_service")),
	}, nil
}

func (s *cardServiceImpl) Create(ctx context.Context, ownerID int64, input NewCardInput) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCard(ownerID, input.Korean, input.English,
		input.ExampleKorean, input.ExampleEnglish, s.timeFunc())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	exists, err := s.cards.DuplicateExists(ctx, ownerID, card.Korean)
	if err != nil {
		return nil, NewCardServiceError("create", "failed to check for duplicate", err)
	}
	if exists {
		log.Debug("duplicate card rejected", slog.Int64("user_id", ownerID))
		return nil, store.ErrDuplicateCard
	}

	// The unique index still guards against a concurrent insert of the same word.
	if _, err := s.cards.Add(ctx, card); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, store.ErrDuplicateCard
		}
		return nil, NewCardServiceError("create", "failed to save card", err)
	}

	log.Info("card created",
		slog.Int64("user_id", ownerID),
		slog.Int64("card_id", card.ID))
	return card, nil
}

func (s *cardServiceImpl) Get(ctx context.Context, ownerID, cardID int64) (*domain.Card, error) {
	card, err := s.cards.Get(ctx, cardID, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrCardNotFound
		}
		return nil, NewCardServiceError("get", "failed to get card", err)
	}
	return card, nil
}

func (s *cardServiceImpl) List(ctx context.Context, ownerID int64, page, perPage int) (*CardPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be at least 1", ErrInvalidPagination)
	}
	if perPage < 1 || perPage > MaxPerPage {
		return nil, fmt.Errorf("%w: per_page must be between 1 and %d", ErrInvalidPagination, MaxPerPage)
	}

	cards, total, err := s.cards.ListAll(ctx, ownerID, (page-1)*perPage, perPage)
	if err != nil {
		return nil, NewCardServiceError("list", "failed to list cards", err)
	}

	return &CardPage{
		Cards:      cards,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: (total + perPage - 1) / perPage,
	}, nil
}

func (s *cardServiceImpl) Update(
	ctx context.Context,
	ownerID, cardID int64,
	update domain.CardUpdate,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cards.UpdateFields(ctx, cardID, ownerID, update)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, store.ErrCardNotFound
		case errors.Is(err, store.ErrInvalidEntity):
			return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		return nil, NewCardServiceError("update", "failed to update card", err)
	}

	log.Debug("card updated", slog.Int64("user_id", ownerID), slog.Int64("card_id", cardID))
	return card, nil
}

func (s *cardServiceImpl) Delete(ctx context.Context, ownerID, cardID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deleted, err := s.cards.Delete(ctx, cardID, ownerID)
	if err != nil {
		return NewCardServiceError("delete", "failed to delete card", err)
	}
	if !deleted {
		return store.ErrCardNotFound
	}

	log.Info("card deleted", slog.Int64("user_id", ownerID), slog.Int64("card_id", cardID))
	return nil
}

func (s *cardServiceImpl) Stats(ctx context.Context, ownerID int64) (*domain.CardStats, error) {
	stats, err := s.cards.Stats(ctx, ownerID, s.timeFunc())
	if err != nil {
		return nil, NewCardServiceError("stats", "failed to compute stats", err)
	}
	return stats, nil
}
