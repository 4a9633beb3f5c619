package mocks

import (
	"context"

	"github.com/phrazzld/tili-api/internal/service/auth"
)

// MockIdentityVerifier implements auth.IdentityVerifier for testing
type MockIdentityVerifier struct {
	// VerifyFn allows test cases to mock the Verify behavior
	VerifyFn func(ctx context.Context, initData string) (*auth.Identity, error)

	// Default values used when VerifyFn isn't set
	Identity *auth.Identity
	Err      error
}

var _ auth.IdentityVerifier = (*MockIdentityVerifier)(nil)

// Verify implements the auth.IdentityVerifier interface
func (m *MockIdentityVerifier) Verify(ctx context.Context, initData string) (*auth.Identity, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, initData)
	}
	return m.Identity, m.Err
}
