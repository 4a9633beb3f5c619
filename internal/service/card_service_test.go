package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tili-api/internal/domain"
	"github.com/phrazzld/tili-api/internal/mocks"
	"github.com/phrazzld/tili-api/internal/platform/sqlstore"
	"github.com/phrazzld/tili-api/internal/service"
	"github.com/phrazzld/tili-api/internal/store"
	"github.com/phrazzld/tili-api/internal/testdb"
)

var now = time.Date(2026, 2, 14, 8, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func newService(t *testing.T) (service.CardService, int64) {
	t.Helper()
	db := testdb.Open(t)
	svc, err := service.NewCardServiceWithClock(sqlstore.NewCardStore(db, nil), nil, func() time.Time { return now })
	require.NoError(t, err)
	return svc, testdb.UserID()
}

func TestNewCardService_RequiresStore(t *testing.T) {
	t.Parallel()
	_, err := service.NewCardService(nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCardService_Create(t *testing.T) {
	t.Parallel()
	svc, owner := newService(t)
	ctx := context.Background()

	card, err := svc.Create(ctx, owner, service.NewCardInput{
		Korean:         " 사랑 ",
		English:        "love",
		ExampleKorean:  strPtr("사랑해요"),
		ExampleEnglish: strPtr(""),
	})
	require.NoError(t, err)
	assert.Positive(t, card.ID)
	assert.Equal(t, "사랑", card.Korean)
	assert.Nil(t, card.ExampleEnglish)
	assert.True(t, card.NextDue.Equal(now), "new cards are due immediately")
	assert.Equal(t, domain.DefaultEaseFactor, card.EaseFactor)

	_, err = svc.Create(ctx, owner, service.NewCardInput{Korean: "사랑", English: "affection"})
	assert.ErrorIs(t, err, store.ErrDuplicateCard)

	_, err = svc.Create(ctx, owner, service.NewCardInput{Korean: "  ", English: "blank"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrCardKoreanEmpty)

	_, err = svc.Create(ctx, owner, service.NewCardInput{Korean: "빈", English: ""})
	assert.ErrorIs(t, err, domain.ErrCardEnglishEmpty)
}

func TestCardService_List(t *testing.T) {
	t.Parallel()
	svc, owner := newService(t)
	ctx := context.Background()

	for _, word := range []string{"일", "이", "삼"} {
		_, err := svc.Create(ctx, owner, service.NewCardInput{Korean: word, English: "number"})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, owner, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.PerPage)
	assert.Len(t, page.Cards, 2)

	page, err = svc.List(ctx, owner, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Cards, 1)

	empty, err := svc.List(ctx, owner+1, 1, service.DefaultPerPage)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.TotalPages)
	assert.NotNil(t, empty.Cards)
}

func TestCardService_ListRejectsBadPagination(t *testing.T) {
	t.Parallel()
	svc, owner := newService(t)

	tests := []struct {
		name          string
		page, perPage int
	}{
		{"page zero", 0, 10},
		{"negative page", -1, 10},
		{"per page zero", 1, 0},
		{"per page too large", 1, service.MaxPerPage + 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), owner, tc.page, tc.perPage)
			assert.ErrorIs(t, err, service.ErrInvalidPagination)
		})
	}
}

func TestCardService_GetUpdateDelete(t *testing.T) {
	t.Parallel()
	svc, owner := newService(t)
	ctx := context.Background()

	card, err := svc.Create(ctx, owner, service.NewCardInput{Korean: "달", English: "moon"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, owner, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "moon", got.English)

	_, err = svc.Get(ctx, owner+1, card.ID)
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	updated, err := svc.Update(ctx, owner, card.ID, domain.CardUpdate{ExampleEnglish: strPtr("The moon is bright")})
	require.NoError(t, err)
	assert.Equal(t, "moon", updated.English)
	require.NotNil(t, updated.ExampleEnglish)
	assert.Equal(t, "The moon is bright", *updated.ExampleEnglish)

	_, err = svc.Update(ctx, owner, card.ID, domain.CardUpdate{English: strPtr("")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Update(ctx, owner+1, card.ID, domain.CardUpdate{English: strPtr("sun")})
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	require.NoError(t, svc.Delete(ctx, owner, card.ID))
	assert.ErrorIs(t, svc.Delete(ctx, owner, card.ID), store.ErrCardNotFound)
}

func TestCardService_Stats(t *testing.T) {
	t.Parallel()
	svc, owner := newService(t)
	ctx := context.Background()

	for _, word := range []string{"빨강", "파랑"} {
		_, err := svc.Create(ctx, owner, service.NewCardInput{Korean: word, English: "colour"})
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.Due)
	assert.Equal(t, 2, stats.Distribution.New)
}

func TestCardService_WrapsStoreFailures(t *testing.T) {
	t.Parallel()

	errDB := errors.New("connection reset")
	cards := &mocks.TestifyMockCardStore{}
	cards.On("DuplicateExists", mock.Anything, int64(7), "별").Return(false, nil)
	cards.On("Add", mock.Anything, mock.AnythingOfType("*domain.Card")).Return(int64(0), errDB)
	cards.On("Stats", mock.Anything, int64(7), now).Return(nil, errDB)
	cards.On("Delete", mock.Anything, int64(3), int64(7)).Return(false, errDB)

	svc, err := service.NewCardServiceWithClock(cards, nil, func() time.Time { return now })
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Create(ctx, 7, service.NewCardInput{Korean: "별", English: "star"})
	var svcErr *service.CardServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "create", svcErr.Operation)
	assert.ErrorIs(t, err, errDB)

	_, err = svc.Stats(ctx, 7)
	assert.ErrorIs(t, err, errDB)

	err = svc.Delete(ctx, 7, 3)
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "delete", svcErr.Operation)

	cards.AssertExpectations(t)
}

func TestCardService_CreateRaceOnUniqueIndex(t *testing.T) {
	t.Parallel()

	cards := &mocks.TestifyMockCardStore{}
	cards.On("DuplicateExists", mock.Anything, int64(7), "별").Return(false, nil)
	cards.On("Add", mock.Anything, mock.Anything).Return(int64(0), store.ErrDuplicateCard)

	svc, err := service.NewCardService(cards, nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 7, service.NewCardInput{Korean: "별", English: "star"})
	assert.ErrorIs(t, err, store.ErrDuplicateCard)
}
