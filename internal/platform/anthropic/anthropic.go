// Package anthropic implements generation.Backend on the Anthropic
// Messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tili-api/internal/generation"
	"github.com/phrazzld/tili-api/internal/platform/logger"
)

const (
	// Name identifies this backend in configuration and logs.
	Name = "anthropic"

	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultModel     = "claude-3-5-haiku-20241022"
	DefaultMaxTokens = 512

	apiVersion = "2023-06-01"
)

// Config configures a Backend. Empty fields take the package defaults.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxTokens  int
	HTTPClient *http.Client
}

// Backend calls POST /v1/messages.
type Backend struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	client    *http.Client
	logger    *slog.Logger
}

var _ generation.Backend = (*Backend)(nil)

// New creates a Backend. An empty API key is a configuration error.
func New(cfg Config, baseLogger *slog.Logger) (*Backend, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: anthropic API key is required", generation.ErrInvalidConfig)
	}
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	b := &Backend{
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		maxTokens: cfg.MaxTokens,
		client:    cfg.HTTPClient,
		logger:    baseLogger.With(slog.String("backend", Name)),
	}
	if b.model == "" {
		b.model = DefaultModel
	}
	if b.baseURL == "" {
		b.baseURL = DefaultBaseURL
	}
	if b.maxTokens <= 0 {
		b.maxTokens = DefaultMaxTokens
	}
	if b.client == nil {
		b.client = http.DefaultClient
	}
	return b, nil
}

// Name implements generation.Backend.
func (b *Backend) Name() string { return Name }

// Model returns the model requests are sent to.
func (b *Backend) Model() string { return b.model }

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate implements generation.Backend.
func (b *Backend) Generate(ctx context.Context, systemInstruction, userText string) (string, error) {
	log := logger.FromContextOrDefault(ctx, b.logger)

	data, err := json.Marshal(messagesRequest{
		Model:     b.model,
		MaxTokens: b.maxTokens,
		System:    systemInstruction,
		Messages:  []message{{Role: "user", Content: userText}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/v1/messages", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", b.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", generation.NewTransportError(Name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", generation.NewTransportError(Name, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		msg := errorMessage(body)
		log.WarnContext(ctx, "anthropic request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("message", msg))
		return "", generation.NewStatusError(Name, resp.StatusCode, msg)
	}

	var result messagesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &generation.BackendError{Backend: Name, Message: "undecodable response body", Err: err}
	}

	// A reply without a text block is left for the translator to reject.
	for _, block := range result.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	log.DebugContext(ctx, "anthropic reply had no text block", slog.String("stop_reason", result.StopReason))
	return "", nil
}

func errorMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return strings.TrimSpace(string(body))
}
