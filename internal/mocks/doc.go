// Package mocks provides centralized mock implementations for testing.
//
// Most mocks use function fields with default return values and call
// tracking, so a test only overrides the behaviour it cares about:
//
//	verifier := &mocks.MockIdentityVerifier{
//	    VerifyFn: func(ctx context.Context, initData string) (*auth.Identity, error) {
//	        return &auth.Identity{ID: 42}, nil
//	    },
//	}
//
// The card store mock is built on testify/mock for tests that want to assert
// exact call expectations.
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Add a compile-time interface assertion
//  3. Document any helper methods or special functionality
package mocks
