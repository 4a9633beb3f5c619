// Package llm selects and builds the configured generation backend.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tili-api/internal/config"
	"github.com/phrazzld/tili-api/internal/generation"
	"github.com/phrazzld/tili-api/internal/platform/anthropic"
	"github.com/phrazzld/tili-api/internal/platform/gemini"
	"github.com/phrazzld/tili-api/internal/platform/openai"
)

// Supported lists the provider names New accepts.
func Supported() []string {
	return []string{anthropic.Name, openai.Name, gemini.Name}
}

// New builds the backend named by cfg.Provider. Unknown names return
// generation.ErrUnsupportedBackend.
func New(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (generation.Backend, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	client := httpClient(cfg)

	var (
		backend generation.Backend
		err     error
	)
	switch provider {
	case anthropic.Name:
		backend, err = anthropic.New(anthropic.Config{
			APIKey:     cfg.AnthropicAPIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.AnthropicBaseURL,
			MaxTokens:  cfg.MaxTokens,
			HTTPClient: client,
		}, logger)
	case openai.Name:
		backend, err = openai.New(openai.Config{
			APIKey:     cfg.OpenAIAPIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.OpenAIBaseURL,
			MaxTokens:  cfg.MaxTokens,
			HTTPClient: client,
		}, logger)
	case gemini.Name:
		backend, err = gemini.New(ctx, gemini.Config{
			APIKey:     cfg.GeminiAPIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.GeminiBaseURL,
			HTTPClient: client,
		}, logger)
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			generation.ErrUnsupportedBackend, cfg.Provider, strings.Join(Supported(), ", "))
	}
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("language model backend ready", slog.String("backend", backend.Name()))
	}
	return backend, nil
}

// httpClient returns nil, meaning the backend default, unless a timeout is set.
func httpClient(cfg config.LLMConfig) *http.Client {
	if cfg.HTTPTimeout <= 0 {
		return nil
	}
	return &http.Client{Timeout: cfg.HTTPTimeout}
}
