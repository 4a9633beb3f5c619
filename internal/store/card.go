package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/tili-api/internal/domain"
)

// CardStore persists flashcards. Every read and write is scoped to the
// owning user; a card owned by someone else behaves as if it did not exist.
type CardStore interface {
	// Add inserts a validated card, sets card.ID and returns it.
	// Returns ErrInvalidEntity on validation failure and ErrDuplicateCard
	// if the owner already has a card with the same Korean text.
	Add(ctx context.Context, card *domain.Card) (int64, error)

	// Get returns one card or ErrCardNotFound.
	Get(ctx context.Context, id, ownerID int64) (*domain.Card, error)

	// ListDue returns up to limit cards whose next review is at or before
	// now, earliest first.
	ListDue(ctx context.Context, ownerID int64, now time.Time, limit int) ([]*domain.Card, error)

	// CountDue counts the cards due at or before now.
	CountDue(ctx context.Context, ownerID int64, now time.Time) (int, error)

	// ListAll returns one page of the owner's cards, newest first, together
	// with the total number of cards the owner has.
	ListAll(ctx context.Context, ownerID int64, offset, limit int) ([]*domain.Card, int, error)

	// UpdateFields applies the non-nil fields of update and returns the
	// resulting card. An empty update just returns the card.
	UpdateFields(ctx context.Context, id, ownerID int64, update domain.CardUpdate) (*domain.Card, error)

	// Delete removes a card and reports whether anything was deleted.
	Delete(ctx context.Context, id, ownerID int64) (bool, error)

	// UpdateScheduling stores the state produced by a review.
	// Returns ErrCardNotFound if no row matched.
	UpdateScheduling(ctx context.Context, id, ownerID int64, state domain.SchedulingState) error

	// DuplicateExists reports whether the owner already has a card whose
	// Korean text equals korean.
	DuplicateExists(ctx context.Context, ownerID int64, korean string) (bool, error)

	// Stats counts the owner's cards, those due at now, and their
	// distribution over interval buckets.
	Stats(ctx context.Context, ownerID int64, now time.Time) (*domain.CardStats, error)

	// WithTx returns a store bound to tx.
	WithTx(tx *sql.Tx) CardStore
}
