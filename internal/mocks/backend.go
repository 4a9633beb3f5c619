package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/tili-api/internal/generation"
)

// MockBackend implements generation.Backend for testing
type MockBackend struct {
	// BackendName is returned by Name; empty means "mock".
	BackendName string

	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, systemInstruction, userText string) (string, error)

	// Default response values
	Reply string
	Err   error

	// Call tracking for verification
	GenerateCalls struct {
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// UserTexts contains the user text of every call
		UserTexts []string
	}
}

var _ generation.Backend = (*MockBackend)(nil)

// Name implements the generation.Backend interface
func (m *MockBackend) Name() string {
	if m.BackendName == "" {
		return "mock"
	}
	return m.BackendName
}

// Generate implements the generation.Backend interface
func (m *MockBackend) Generate(ctx context.Context, systemInstruction, userText string) (string, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.UserTexts = append(m.GenerateCalls.UserTexts, userText)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, systemInstruction, userText)
	}
	return m.Reply, m.Err
}

// CallCount returns the number of Generate calls so far.
func (m *MockBackend) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}
