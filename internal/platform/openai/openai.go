// Package openai implements generation.Backend on the OpenAI Chat
// Completions API.
package openai

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
	Name = "openai"

	DefaultBaseURL   = "https://api.openai.com"
	DefaultModel     = "gpt-4o-mini"
	DefaultMaxTokens = 512
)

// Config configures a Backend. Empty fields take the package defaults.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxTokens  int
	HTTPClient *http.Client
}

// Backend calls POST /v1/chat/completions in JSON mode.
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
		return nil, fmt.Errorf("%w: openai API key is required", generation.ErrInvalidConfig)
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

type chatRequest struct {
	Model          string          `json:"model"`
	MaxTokens      int             `json:"max_tokens"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// emptyReply stands in for a missing message so the caller sees an object
// that fails validation rather than a transport problem.
const emptyReply = "{}"

// Generate implements generation.Backend.
func (b *Backend) Generate(ctx context.Context, systemInstruction, userText string) (string, error) {
	log := logger.FromContextOrDefault(ctx, b.logger)

	data, err := json.Marshal(chatRequest{
		Model:     b.model,
		MaxTokens: b.maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: userText},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/v1/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

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
		log.WarnContext(ctx, "openai request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("message", msg))
		return "", generation.NewStatusError(Name, resp.StatusCode, msg)
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &generation.BackendError{Backend: Name, Message: "undecodable response body", Err: err}
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		log.DebugContext(ctx, "openai reply was empty")
		return emptyReply, nil
	}
	return result.Choices[0].Message.Content, nil
}

func errorMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return strings.TrimSpace(string(body))
}
