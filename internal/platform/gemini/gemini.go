package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/phrazzld/tili-api/internal/generation"
	"github.com/phrazzld/tili-api/internal/platform/logger"
)

const (
	// Name identifies this backend in configuration and logs.
	Name = "gemini"

	DefaultModel = "gemini-2.0-flash"
)

// Config configures a Backend. Empty fields take the package defaults.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Backend calls Models.GenerateContent.
type Backend struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

var _ generation.Backend = (*Backend)(nil)

// New creates a Backend with its own genai client.
func New(ctx context.Context, cfg Config, baseLogger *slog.Logger) (*Backend, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Backend{
		client: client,
		model:  model,
		logger: baseLogger.With(slog.String("backend", Name)),
	}, nil
}

// Name implements generation.Backend.
func (b *Backend) Name() string { return Name }

// Model returns the model requests are sent to.
func (b *Backend) Model() string { return b.model }

// Generate implements generation.Backend.
func (b *Backend) Generate(ctx context.Context, systemInstruction, userText string) (string, error) {
	log := logger.FromContextOrDefault(ctx, b.logger)

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(userText), config)
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		log.WarnContext(ctx, "gemini reply blocked by safety filters")
		return "", &generation.BackendError{Backend: Name, Message: "content blocked by safety filters"}
	}

	// An empty reply is left for the translator to reject.
	return resp.Text(), nil
}

// classifyError maps genai errors onto generation.BackendError.
func classifyError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Status
		}
		return generation.NewStatusError(Name, apiErr.Code, msg)
	}
	return generation.NewTransportError(Name, err)
}
