package card_review_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tili-api/internal/domain"
	"github.com/phrazzld/tili-api/internal/domain/srs"
	"github.com/phrazzld/tili-api/internal/platform/logger"
	"github.com/phrazzld/tili-api/internal/platform/sqlstore"
	"github.com/phrazzld/tili-api/internal/service/card_review"
	"github.com/phrazzld/tili-api/internal/store"
	"github.com/phrazzld/tili-api/internal/testdb"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc   card_review.CardReviewService
	cards *sqlstore.CardStore
	owner int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testdb.Open(t)
	log, _ := logger.NewBufferLogger()
	cards := sqlstore.NewCardStore(db, log)
	clock := func() time.Time { return now }

	svc := card_review.NewCardReviewService(db, cards,
		srs.NewService(srs.WithClock(clock)), log, card_review.WithClock(clock))

	return &fixture{svc: svc, cards: cards, owner: testdb.UserID()}
}

func (f *fixture) addCard(t *testing.T, korean string, due time.Time) int64 {
	t.Helper()
	card, err := domain.NewCard(f.owner, korean, "meaning", nil, nil, due)
	require.NoError(t, err)
	id, err := f.cards.Add(context.Background(), card)
	require.NoError(t, err)
	return id
}

func TestNewCardReviewService_PanicsOnNilDependencies(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { card_review.NewCardReviewService(nil, nil, nil, nil) })
}

func TestSubmitReview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		difficulty   string
		wantInterval int
		wantNext     time.Time
		wantEase     float64
		wantReps     int
	}{
		{"easy", 1, now.Add(24 * time.Hour), 2.6, 1},
		{"medium", 0, now.Add(5 * time.Hour), 2.36, 1},
		{"hard", 0, now.Add(10 * time.Minute), 1.96, 0},
		{"EASY", 1, now.Add(24 * time.Hour), 2.6, 1},
	}

	for _, tc := range tests {
		t.Run(tc.difficulty, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			ctx := context.Background()

			id := f.addCard(t, "나무", now.Add(-time.Hour))
			f.addCard(t, "꽃", now.Add(-time.Hour))

			result, err := f.svc.SubmitReview(ctx, f.owner, id, tc.difficulty)
			require.NoError(t, err)
			assert.Equal(t, tc.wantInterval, result.IntervalDays)
			assert.True(t, result.NextReview.Equal(tc.wantNext), "next review %v", result.NextReview)
			assert.Equal(t, 1, result.RemainingDue)

			stored, err := f.cards.Get(ctx, id, f.owner)
			require.NoError(t, err)
			assert.InDelta(t, tc.wantEase, stored.EaseFactor, 1e-9)
			assert.Equal(t, tc.wantReps, stored.Repetitions)
			assert.True(t, stored.NextDue.Equal(tc.wantNext))
		})
	}
}

func TestSubmitReview_SequenceReachesSixDays(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	id := f.addCard(t, "하늘", now)

	first, err := f.svc.SubmitReview(ctx, f.owner, id, "easy")
	require.NoError(t, err)
	assert.Equal(t, 1, first.IntervalDays)
	assert.Zero(t, first.RemainingDue)

	second, err := f.svc.SubmitReview(ctx, f.owner, id, "easy")
	require.NoError(t, err)
	assert.Equal(t, 6, second.IntervalDays)

	third, err := f.svc.SubmitReview(ctx, f.owner, id, "easy")
	require.NoError(t, err)
	// 6 * 2.8 = 16.8
	assert.Equal(t, 17, third.IntervalDays)
}

func TestSubmitReview_Errors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	id := f.addCard(t, "바람", now)

	_, err := f.svc.SubmitReview(ctx, f.owner, id, "again")
	assert.ErrorIs(t, err, srs.ErrUnknownDifficultyLabel)

	_, err = f.svc.SubmitReview(ctx, f.owner+1, id, "easy")
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	_, err = f.svc.SubmitReview(ctx, f.owner, id+999, "easy")
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	// Failed reviews leave the card untouched.
	stored, err := f.cards.Get(ctx, id, f.owner)
	require.NoError(t, err)
	assert.Zero(t, stored.Repetitions)
	assert.Equal(t, domain.DefaultEaseFactor, stored.EaseFactor)
}

func TestDueCards(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	f.addCard(t, "셋째", now.Add(-1*time.Minute))
	f.addCard(t, "첫째", now.Add(-3*time.Minute))
	f.addCard(t, "둘째", now.Add(-2*time.Minute))
	f.addCard(t, "내일", now.Add(24*time.Hour))

	due, err := f.svc.DueCards(ctx, f.owner, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, due.TotalDue)
	require.Len(t, due.Cards, 2)
	assert.Equal(t, "첫째", due.Cards[0].Korean)
	assert.Equal(t, "둘째", due.Cards[1].Korean)

	empty, err := f.svc.DueCards(ctx, f.owner+1, card_review.DefaultDueLimit)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalDue)
	assert.Empty(t, empty.Cards)
}

func TestDueCards_InvalidLimit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	for _, limit := range []int{0, -1, card_review.MaxDueLimit + 1} {
		_, err := f.svc.DueCards(context.Background(), f.owner, limit)
		assert.ErrorIs(t, err, card_review.ErrInvalidLimit, "limit %d", limit)
	}
}
