package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/sethvargo/go-retry"

	"github.com/phrazzld/tili-api/internal/domain"
	"github.com/phrazzld/tili-api/internal/platform/logger"
	"github.com/phrazzld/tili-api/internal/redact"
)

const (
	// MaxAttempts is the total number of backend calls per translation.
	MaxAttempts = 3

	// DefaultBaseDelay is the wait before the first retry; each later
	// retry waits twice as long as the one before.
	DefaultBaseDelay = time.Second
)

// Translator turns words into translation records using a Backend.
// It keeps no per-request state and is safe for concurrent use.
type Translator struct {
	backend    Backend
	logger     *slog.Logger
	baseDelay  time.Duration
	strategies []ExtractStrategy
	validate   *validator.Validate
}

// TranslatorOption customises a Translator.
type TranslatorOption func(*Translator)

// WithBaseDelay sets the first retry delay. Non-positive values are ignored.
func WithBaseDelay(d time.Duration) TranslatorOption {
	return func(t *Translator) {
		if d > 0 {
			t.baseDelay = d
		}
	}
}

// WithStrategies replaces the JSON extraction chain.
func WithStrategies(strategies ...ExtractStrategy) TranslatorOption {
	return func(t *Translator) {
		if len(strategies) > 0 {
			t.strategies = strategies
		}
	}
}

// NewTranslator creates a Translator over backend.
func NewTranslator(backend Backend, baseLogger *slog.Logger, opts ...TranslatorOption) (*Translator, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend cannot be nil", ErrInvalidConfig)
	}
	if baseLogger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", ErrInvalidConfig)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	t := &Translator{
		backend:    backend,
		logger:     baseLogger.With(slog.String("component", "translator"), slog.String("backend", backend.Name())),
		baseDelay:  DefaultBaseDelay,
		strategies: DefaultStrategies(),
		validate:   validate,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Translate asks the backend about word and returns the parsed record.
//
// Transient backend failures are retried up to MaxAttempts calls in total.
// A reply that cannot be parsed or validated fails at once with
// ErrMalformedResponse; a backend that never answers yields
// ErrUpstreamUnavailable wrapping its last error.
func (t *Translator) Translate(ctx context.Context, word string) (*domain.TranslationRecord, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, ErrEmptyWord
	}

	log := logger.FromContextOrDefault(ctx, t.logger)

	raw, attempts, err := t.generate(ctx, log, word)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}
		log.ErrorContext(ctx, "translation backend unavailable",
			slog.Int("attempts", attempts),
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("%w: %s failed after %d attempt(s): %w",
			ErrUpstreamUnavailable, t.backend.Name(), attempts, err)
	}

	record, err := t.parse(ctx, log, raw)
	if err != nil {
		log.WarnContext(ctx, "rejected model reply",
			slog.Int("attempts", attempts),
			slog.String("error", redact.Error(err)))
		return nil, err
	}

	log.DebugContext(ctx, "translation complete", slog.Int("attempts", attempts))
	return record, nil
}

func (t *Translator) generate(ctx context.Context, log *slog.Logger, word string) (string, int, error) {
	var (
		raw      string
		attempts int
	)

	backoff := retry.WithMaxRetries(MaxAttempts-1, retry.NewExponential(t.baseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		log.DebugContext(ctx, "calling language model", slog.Int("attempt", attempts))

		text, err := t.backend.Generate(ctx, SystemInstruction, word)
		if err == nil {
			raw = text
			return nil
		}

		if !errors.Is(err, ErrTransientFailure) {
			return err
		}
		if attempts < MaxAttempts {
			log.WarnContext(ctx, "language model call failed, retrying",
				slog.Int("attempt", attempts),
				slog.Duration("delay", t.baseDelay<<(attempts-1)),
				slog.String("error", redact.Error(err)))
		}
		return retry.RetryableError(err)
	})

	return raw, attempts, err
}

func (t *Translator) parse(ctx context.Context, log *slog.Logger, raw string) (*domain.TranslationRecord, error) {
	obj, strategy, err := ExtractJSON(raw, t.strategies)
	if err != nil {
		return nil, err
	}
	log.DebugContext(ctx, "extracted JSON from reply", slog.String("strategy", strategy))

	var record domain.TranslationRecord
	if err := json.Unmarshal(obj, &record); err != nil {
		return nil, newMalformedResponse("schema mismatch: "+err.Error(), strings.TrimSpace(raw))
	}
	if err := t.validate.Struct(&record); err != nil {
		return nil, newMalformedResponse("schema mismatch: "+err.Error(), strings.TrimSpace(raw))
	}

	return &record, nil
}
