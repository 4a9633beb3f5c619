package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/tili-api/internal/domain"
	"github.com/phrazzld/tili-api/internal/platform/logger"
	"github.com/phrazzld/tili-api/internal/store"
)

const cardColumns = `id, user_id, korean, english, example_kr, example_en, created_at,
	next_review, ease_factor, interval_days, repetitions`

// CardStore implements store.CardStore for PostgreSQL and SQLite.
type CardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.CardStore = (*CardStore)(nil)

// NewCardStore creates a CardStore. It panics if db is nil.
func NewCardStore(db store.DBTX, logger *slog.Logger) *CardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// WithTx implements store.CardStore.
func (s *CardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &CardStore{db: tx, logger: s.logger}
}

// dbTime normalises timestamps so both dialects store and compare them the same way.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Add implements store.CardStore.
func (s *CardStore) Add(ctx context.Context, card *domain.Card) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO flashcards (user_id, korean, english, example_kr, example_en, created_at,
			next_review, ease_factor, interval_days, repetitions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		card.UserID,
		card.Korean,
		card.English,
		nullString(card.ExampleKorean),
		nullString(card.ExampleEnglish),
		dbTime(card.CreatedAt),
		dbTime(card.NextDue),
		card.EaseFactor,
		card.IntervalDays,
		card.Repetitions,
	).Scan(&id)
	if err != nil {
		if IsUniqueViolation(err) {
			log.DebugContext(ctx, "duplicate card rejected", slog.Int64("user_id", card.UserID))
			return 0, store.ErrDuplicateCard
		}
		log.ErrorContext(ctx, "failed to insert card",
			slog.String("error", err.Error()),
			slog.Int64("user_id", card.UserID))
		return 0, store.NewStoreError("card", "insert", "failed to insert card", MapError(err))
	}

	card.ID = id
	log.DebugContext(ctx, "card created", slog.Int64("card_id", id), slog.Int64("user_id", card.UserID))
	return id, nil
}

// Get implements store.CardStore.
func (s *CardStore) Get(ctx context.Context, id, ownerID int64) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + cardColumns + ` FROM flashcards WHERE id = $1 AND user_id = $2`

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		log.ErrorContext(ctx, "failed to get card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return nil, store.NewStoreError("card", "get", "failed to get card", MapError(err))
	}
	return card, nil
}

// ListDue implements store.CardStore.
func (s *CardStore) ListDue(ctx context.Context, ownerID int64, now time.Time, limit int) ([]*domain.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM flashcards
		WHERE user_id = $1 AND next_review <= $2
		ORDER BY next_review ASC, id ASC
		LIMIT $3
	`
	return s.queryCards(ctx, "list_due", query, ownerID, dbTime(now), limit)
}

// CountDue implements store.CardStore.
func (s *CardStore) CountDue(ctx context.Context, ownerID int64, now time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM flashcards WHERE user_id = $1 AND next_review <= $2`,
		ownerID, dbTime(now),
	).Scan(&n)
	if err != nil {
		return 0, store.NewStoreError("card", "count_due", "failed to count due cards", MapError(err))
	}
	return n, nil
}

// ListAll implements store.CardStore.
func (s *CardStore) ListAll(ctx context.Context, ownerID int64, offset, limit int) ([]*domain.Card, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flashcards WHERE user_id = $1`, ownerID).Scan(&total)
	if err != nil {
		return nil, 0, store.NewStoreError("card", "list", "failed to count cards", MapError(err))
	}

	query := `
		SELECT ` + cardColumns + `
		FROM flashcards
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	cards, err := s.queryCards(ctx, "list", query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// UpdateFields implements store.CardStore.
func (s *CardStore) UpdateFields(ctx context.Context, id, ownerID int64, update domain.CardUpdate) (*domain.Card, error) {
	if update.IsEmpty() {
		return s.Get(ctx, id, ownerID)
	}

	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.English != nil {
		english := strings.TrimSpace(*update.English)
		if english == "" {
			return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrCardEnglishEmpty)
		}
		add("english", english)
	}
	// A blank example clears the stored one.
	if update.ExampleKorean != nil {
		add("example_kr", blankToNull(*update.ExampleKorean))
	}
	if update.ExampleEnglish != nil {
		add("example_en", blankToNull(*update.ExampleEnglish))
	}

	args = append(args, id, ownerID)
	query := fmt.Sprintf("UPDATE flashcards SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(sets, ", "), len(args)-1, len(args))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("card", "update", "failed to update card", MapError(err))
	}
	if err := checkRowsAffected(result); err != nil {
		return nil, err
	}

	return s.Get(ctx, id, ownerID)
}

// Delete implements store.CardStore.
func (s *CardStore) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return false, store.NewStoreError("card", "delete", "failed to delete card", MapError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, store.NewStoreError("card", "delete", "failed to read rows affected", err)
	}
	return n > 0, nil
}

// UpdateScheduling implements store.CardStore.
func (s *CardStore) UpdateScheduling(ctx context.Context, id, ownerID int64, state domain.SchedulingState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE flashcards
		SET ease_factor = $1, interval_days = $2, repetitions = $3, next_review = $4
		WHERE id = $5 AND user_id = $6
	`, state.EaseFactor, state.IntervalDays, state.Repetitions, dbTime(state.NextDue), id, ownerID)
	if err != nil {
		log.ErrorContext(ctx, "failed to update scheduling",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return store.NewStoreError("card", "update_scheduling", "failed to update scheduling", MapError(err))
	}
	if err := checkRowsAffected(result); err != nil {
		return err
	}

	log.DebugContext(ctx, "scheduling updated",
		slog.Int64("card_id", id),
		slog.Int("interval_days", state.IntervalDays),
		slog.Time("next_review", state.NextDue))
	return nil
}

// DuplicateExists implements store.CardStore.
func (s *CardStore) DuplicateExists(ctx context.Context, ownerID int64, korean string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM flashcards WHERE user_id = $1 AND korean = $2)`,
		ownerID, strings.TrimSpace(korean),
	).Scan(&exists)
	if err != nil {
		return false, store.NewStoreError("card", "duplicate_check", "failed to check for duplicate", MapError(err))
	}
	return exists, nil
}

// Stats implements store.CardStore.
func (s *CardStore) Stats(ctx context.Context, ownerID int64, now time.Time) (*domain.CardStats, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN next_review <= $2 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN interval_days = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN interval_days BETWEEN 1 AND %d THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN interval_days BETWEEN %d AND %d THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN interval_days > %d THEN 1 ELSE 0 END), 0)
		FROM flashcards
		WHERE user_id = $1
	`, domain.LearningMaxInterval,
		domain.LearningMaxInterval+1, domain.YoungMaxInterval,
		domain.YoungMaxInterval)

	var stats domain.CardStats
	err := s.db.QueryRowContext(ctx, query, ownerID, dbTime(now)).Scan(
		&stats.Total,
		&stats.Due,
		&stats.Distribution.New,
		&stats.Distribution.Learning,
		&stats.Distribution.Young,
		&stats.Distribution.Mature,
	)
	if err != nil {
		return nil, store.NewStoreError("card", "stats", "failed to compute stats", MapError(err))
	}
	return &stats, nil
}

func (s *CardStore) queryCards(ctx context.Context, op, query string, args ...any) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.ErrorContext(ctx, "card query failed", slog.String("op", op), slog.String("error", err.Error()))
		return nil, store.NewStoreError("card", op, "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	cards := []*domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, store.NewStoreError("card", op, "failed to scan card", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("card", op, "failed to iterate cards", MapError(err))
	}
	return cards, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		card                  domain.Card
		exampleKR, exampleEN sql.NullString
	)
	err := row.Scan(
		&card.ID,
		&card.UserID,
		&card.Korean,
		&card.English,
		&exampleKR,
		&exampleEN,
		&card.CreatedAt,
		&card.NextDue,
		&card.EaseFactor,
		&card.IntervalDays,
		&card.Repetitions,
	)
	if err != nil {
		return nil, err
	}

	card.CreatedAt = card.CreatedAt.UTC()
	card.NextDue = card.NextDue.UTC()
	if exampleKR.Valid {
		card.ExampleKorean = &exampleKR.String
	}
	if exampleEN.Valid {
		card.ExampleEnglish = &exampleEN.String
	}
	return &card, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func blankToNull(s string) sql.NullString {
	trimmed := strings.TrimSpace(s)
	return sql.NullString{String: trimmed, Valid: trimmed != ""}
}

func checkRowsAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrCardNotFound
	}
	return nil
}
