package mocks

import (
	"context"

	"github.com/phrazzld/tili-api/internal/domain"
	"github.com/phrazzld/tili-api/internal/service"
)

// MockCardService implements service.CardService for testing
type MockCardService struct {
	// Custom behavior functions
	CreateFn func(ctx context.Context, ownerID int64, input service.NewCardInput) (*domain.Card, error)
	GetFn    func(ctx context.Context, ownerID, cardID int64) (*domain.Card, error)
	ListFn   func(ctx context.Context, ownerID int64, page, perPage int) (*service.CardPage, error)
	UpdateFn func(ctx context.Context, ownerID, cardID int64, update domain.CardUpdate) (*domain.Card, error)
	DeleteFn func(ctx context.Context, ownerID, cardID int64) error
	StatsFn  func(ctx context.Context, ownerID int64) (*domain.CardStats, error)

	// Default return values
	Card         *domain.Card
	Page         *service.CardPage
	CardStats    *domain.CardStats
	DefaultError error
}

var _ service.CardService = (*MockCardService)(nil)

// Create implements the CardService.Create method
func (m *MockCardService) Create(ctx context.Context, ownerID int64, input service.NewCardInput) (*domain.Card, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ownerID, input)
	}
	return m.Card, m.DefaultError
}

// Get implements the CardService.Get method
func (m *MockCardService) Get(ctx context.Context, ownerID, cardID int64) (*domain.Card, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, ownerID, cardID)
	}
	return m.Card, m.DefaultError
}

// List implements the CardService.List method
func (m *MockCardService) List(ctx context.Context, ownerID int64, page, perPage int) (*service.CardPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, page, perPage)
	}
	return m.Page, m.DefaultError
}

// Update implements the CardService.Update method
func (m *MockCardService) Update(
	ctx context.Context,
	ownerID, cardID int64,
	update domain.CardUpdate,
) (*domain.Card, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, cardID, update)
	}
	return m.Card, m.DefaultError
}

// Delete implements the CardService.Delete method
func (m *MockCardService) Delete(ctx context.Context, ownerID, cardID int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, cardID)
	}
	return m.DefaultError
}

// Stats implements the CardService.Stats method
func (m *MockCardService) Stats(ctx context.Context, ownerID int64) (*domain.CardStats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx, ownerID)
	}
	return m.CardStats, m.DefaultError
}
