package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/tili-api/internal/domain"
	"github.com/phrazzld/tili-api/internal/store"
)

// TestifyMockCardStore is a mock of store.CardStore for use with testify/mock.
type TestifyMockCardStore struct {
	mock.Mock
}

var _ store.CardStore = (*TestifyMockCardStore)(nil)

// Add is a mock implementation of store.CardStore.Add
func (m *TestifyMockCardStore) Add(ctx context.Context, card *domain.Card) (int64, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(int64), args.Error(1)
}

// Get is a mock implementation of store.CardStore.Get
func (m *TestifyMockCardStore) Get(ctx context.Context, id, ownerID int64) (*domain.Card, error) {
	args := m.Called(ctx, id, ownerID)
	if card, ok := args.Get(0).(*domain.Card); ok {
		return card, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListDue is a mock implementation of store.CardStore.ListDue
func (m *TestifyMockCardStore) ListDue(ctx context.Context, ownerID int64, now time.Time, limit int) ([]*domain.Card, error) {
	args := m.Called(ctx, ownerID, now, limit)
	if cards, ok := args.Get(0).([]*domain.Card); ok {
		return cards, args.Error(1)
	}
	return nil, args.Error(1)
}

// CountDue is a mock implementation of store.CardStore.CountDue
func (m *TestifyMockCardStore) CountDue(ctx context.Context, ownerID int64, now time.Time) (int, error) {
	args := m.Called(ctx, ownerID, now)
	return args.Int(0), args.Error(1)
}

// ListAll is a mock implementation of store.CardStore.ListAll
func (m *TestifyMockCardStore) ListAll(ctx context.Context, ownerID int64, offset, limit int) ([]*domain.Card, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	cards, _ := args.Get(0).([]*domain.Card)
	return cards, args.Int(1), args.Error(2)
}

// UpdateFields is a mock implementation of store.CardStore.UpdateFields
func (m *TestifyMockCardStore) UpdateFields(
	ctx context.Context,
	id, ownerID int64,
	update domain.CardUpdate,
) (*domain.Card, error) {
	args := m.Called(ctx, id, ownerID, update)
	if card, ok := args.Get(0).(*domain.Card); ok {
		return card, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.CardStore.Delete
func (m *TestifyMockCardStore) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

// UpdateScheduling is a mock implementation of store.CardStore.UpdateScheduling
func (m *TestifyMockCardStore) UpdateScheduling(
	ctx context.Context,
	id, ownerID int64,
	state domain.SchedulingState,
) error {
	args := m.Called(ctx, id, ownerID, state)
	return args.Error(0)
}

// DuplicateExists is a mock implementation of store.CardStore.DuplicateExists
func (m *TestifyMockCardStore) DuplicateExists(ctx context.Context, ownerID int64, korean string) (bool, error) {
	args := m.Called(ctx, ownerID, korean)
	return args.Bool(0), args.Error(1)
}

// Stats is a mock implementation of store.CardStore.Stats
func (m *TestifyMockCardStore) Stats(ctx context.Context, ownerID int64, now time.Time) (*domain.CardStats, error) {
	args := m.Called(ctx, ownerID, now)
	if stats, ok := args.Get(0).(*domain.CardStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.CardStore.WithTx.
// Without an expectation it returns the mock itself.
func (m *TestifyMockCardStore) WithTx(tx *sql.Tx) store.CardStore {
	for _, call := range m.ExpectedCalls {
		if call.Method == "WithTx" {
			args := m.Called(tx)
			if ret, ok := args.Get(0).(store.CardStore); ok {
				return ret
			}
			return m
		}
	}
	return m
}
