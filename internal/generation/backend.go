package generation

import "context"

// Backend is a single language-model provider.
type Backend interface {
	// Name identifies the provider in logs and errors.
	Name() string

	// Generate sends one request made of systemInstruction and userText and
	// returns the model's raw text reply. Errors that are worth retrying
	// must match ErrTransientFailure.
	Generate(ctx context.Context, systemInstruction, userText string) (string, error)
}
