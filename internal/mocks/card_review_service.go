package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/tili-api/internal/service/card_review"
)

// MockCardReviewService implements card_review.CardReviewService for testing
type MockCardReviewService struct {
	// Custom behavior functions
	DueCardsFn     func(ctx context.Context, userID int64, limit int) (*card_review.DueCards, error)
	SubmitReviewFn func(ctx context.Context, userID, cardID int64, difficulty string) (*card_review.ReviewResult, error)

	// Default response values
	Due    *card_review.DueCards
	Result *card_review.ReviewResult
	Err    error

	// Call tracking for verification
	SubmitReviewCalls struct {
		mu           sync.Mutex
		Count        int
		UserIDs      []int64
		CardIDs      []int64
		Difficulties []string
	}
}

var _ card_review.CardReviewService = (*MockCardReviewService)(nil)

// NewMockCardReviewService creates a mock configured by opts.
func NewMockCardReviewService(opts ...MockOption) *MockCardReviewService {
	m := &MockCardReviewService{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DueCards implements the card_review.CardReviewService interface
func (m *MockCardReviewService) DueCards(ctx context.Context, userID int64, limit int) (*card_review.DueCards, error) {
	if m.DueCardsFn != nil {
		return m.DueCardsFn(ctx, userID, limit)
	}
	return m.Due, m.Err
}

// SubmitReview implements the card_review.CardReviewService interface
func (m *MockCardReviewService) SubmitReview(
	ctx context.Context,
	userID, cardID int64,
	difficulty string,
) (*card_review.ReviewResult, error) {
	m.SubmitReviewCalls.mu.Lock()
	m.SubmitReviewCalls.Count++
	m.SubmitReviewCalls.UserIDs = append(m.SubmitReviewCalls.UserIDs, userID)
	m.SubmitReviewCalls.CardIDs = append(m.SubmitReviewCalls.CardIDs, cardID)
	m.SubmitReviewCalls.Difficulties = append(m.SubmitReviewCalls.Difficulties, difficulty)
	m.SubmitReviewCalls.mu.Unlock()

	if m.SubmitReviewFn != nil {
		return m.SubmitReviewFn(ctx, userID, cardID, difficulty)
	}
	return m.Result, m.Err
}

// SubmitReviewCount returns the number of SubmitReview calls so far.
func (m *MockCardReviewService) SubmitReviewCount() int {
	m.SubmitReviewCalls.mu.Lock()
	defer m.SubmitReviewCalls.mu.Unlock()
	return m.SubmitReviewCalls.Count
}

// MockOption is a function type that configures a MockCardReviewService
type MockOption func(*MockCardReviewService)

// WithDueCards sets the default result of DueCards
func WithDueCards(due *card_review.DueCards) MockOption {
	return func(m *MockCardReviewService) {
		m.Due = due
	}
}

// WithReviewResult sets the default result of SubmitReview
func WithReviewResult(result *card_review.ReviewResult) MockOption {
	return func(m *MockCardReviewService) {
		m.Result = result
	}
}

// WithError sets the default error to return from both methods
func WithError(err error) MockOption {
	return func(m *MockCardReviewService) {
		m.Err = err
	}
}
