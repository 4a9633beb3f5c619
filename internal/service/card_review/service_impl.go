package card_review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tili-api/internal/domain/srs"
	"github.com/phrazzld/tili-api/internal/platform/logger"
	"github.com/phrazzld/tili-api/internal/store"
)

// Verify interface compliance at compile time
var _ CardReviewService = (*cardReviewServiceImpl)(nil)

// cardReviewServiceImpl implements the CardReviewService interface.
type cardReviewServiceImpl struct {
	db         *sql.DB
	cards      store.CardStore
	srsService srs.Service
	timeFunc   func() time.Time
	logger     *slog.Logger
}

// Option customises the review service.
type Option func(*cardReviewServiceImpl)

// WithClock replaces time.Now. The same clock should be given to the srs
// service so due counts and schedules agree.
func WithClock(now func() time.Time) Option {
	return func(s *cardReviewServiceImpl) {
		if now != nil {
			s.timeFunc = now
		}
	}
}

// NewCardReviewService creates a new CardReviewService implementation.
func NewCardReviewService(
	db *sql.DB,
	cards store.CardStore,
	srsService srs.Service,
	logger *slog.Logger,
	opts ...Option,
) CardReviewService {
	if db == nil {
		panic("db cannot be nil")
	}
	if cards == nil {
		panic("cards cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &cardReviewServiceImpl{
		db:         db,
		cards:      cards,
		srsService: srsService,
		timeFunc:   time.Now,
		logger:     logger.With(slog.String("component", "card_review_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DueCards implements CardReviewService.DueCards.
func (s *cardReviewServiceImpl) DueCards(ctx context.Context, userID int64, limit int) (*DueCards, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit < 1 || limit > MaxDueLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidLimit, MaxDueLimit)
	}

	now := s.timeFunc()
	cards, err := s.cards.ListDue(ctx, userID, now, limit)
	if err != nil {
		log.Error("failed to list due cards",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, NewDueCardsError("failed to list due cards", err)
	}

	total, err := s.cards.CountDue(ctx, userID, now)
	if err != nil {
		return nil, NewDueCardsError("failed to count due cards", err)
	}

	log.Debug("retrieved due cards",
		slog.Int64("user_id", userID),
		slog.Int("returned", len(cards)),
		slog.Int("total_due", total))
	return &DueCards{Cards: cards, TotalDue: total}, nil
}

// SubmitReview implements CardReviewService.SubmitReview.
func (s *cardReviewServiceImpl) SubmitReview(
	ctx context.Context,
	userID, cardID int64,
	difficulty string,
) (*ReviewResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing review",
		slog.Int64("user_id", userID),
		slog.Int64("card_id", cardID),
		slog.String("difficulty", difficulty))

	// Reject bad labels before touching the database.
	if _, err := srs.ParseDifficulty(difficulty); err != nil {
		log.Warn("invalid review difficulty",
			slog.Int64("user_id", userID),
			slog.Int64("card_id", cardID),
			slog.String("difficulty", difficulty))
		return nil, err
	}

	var result ReviewResult
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cards.WithTx(tx)

		card, err := cards.Get(ctx, cardID, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Warn("card not found for review",
					slog.Int64("user_id", userID),
					slog.Int64("card_id", cardID))
				return store.ErrCardNotFound
			}
			return fmt.Errorf("failed to get card: %w", err)
		}

		next, err := s.srsService.AdvanceWithLabel(difficulty, card.SchedulingState)
		if err != nil {
			return fmt.Errorf("failed to calculate next review: %w", err)
		}

		if err := cards.UpdateScheduling(ctx, cardID, userID, next); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return store.ErrCardNotFound
			}
			return fmt.Errorf("failed to update scheduling: %w", err)
		}

		remaining, err := cards.CountDue(ctx, userID, s.timeFunc())
		if err != nil {
			return fmt.Errorf("failed to count due cards: %w", err)
		}

		result = ReviewResult{
			NextReview:   next.NextDue,
			IntervalDays: next.IntervalDays,
			RemainingDue: remaining,
		}
		log.Debug("scheduled next review",
			slog.Int64("card_id", cardID),
			slog.Float64("ease_factor", next.EaseFactor),
			slog.Int("interval_days", next.IntervalDays),
			slog.Int("repetitions", next.Repetitions),
			slog.Time("next_review", next.NextDue))
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) || errors.Is(err, srs.ErrUnknownDifficultyLabel) {
			return nil, err
		}
		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID),
			slog.Int64("card_id", cardID))
		return nil, NewSubmitReviewError("failed to submit review", err)
	}

	return &result, nil
}
