package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tili-api/internal/config"
	"github.com/phrazzld/tili-api/internal/domain/srs"
	"github.com/phrazzld/tili-api/internal/generation"
	"github.com/phrazzld/tili-api/internal/platform/sqlstore"
	"github.com/phrazzld/tili-api/internal/service"
	"github.com/phrazzld/tili-api/internal/service/auth"
	"github.com/phrazzld/tili-api/internal/service/card_review"
	"github.com/phrazzld/tili-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger *slog.Logger
	db     *sql.DB

	cardStore store.CardStore

	verifier          auth.IdentityVerifier
	translator        *generation.Translator
	srsService        srs.Service
	cardService       service.CardService
	cardReviewService card_review.CardReviewService
}

// appOption customises newApplication; tests use it to pin the clock.
type appOption func(*appSettings)

type appSettings struct {
	now func() time.Time
}

func withClock(now func() time.Time) appOption {
	return func(s *appSettings) { s.now = now }
}

// newApplication wires stores and services over an open, migrated database
// and a language model backend.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	backend generation.Backend,
	opts ...appOption,
) (*application, error) {
	settings := appSettings{now: time.Now}
	for _, opt := range opts {
		opt(&settings)
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.verifier, err = auth.NewVerifierWithClock(cfg.Auth.BotToken, cfg.Auth.MaxAge, settings.now)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize init data verifier: %w", err)
	}

	app.translator, err = generation.NewTranslator(backend, logger,
		generation.WithBaseDelay(cfg.LLM.RetryBaseDelay))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize translator: %w", err)
	}

	app.cardStore = sqlstore.NewCardStore(db, logger)
	app.srsService = srs.NewService(srs.WithClock(settings.now))

	app.cardService, err = service.NewCardServiceWithClock(app.cardStore, logger, settings.now)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	app.cardReviewService = card_review.NewCardReviewService(
		db,
		app.cardStore,
		app.srsService,
		logger,
		card_review.WithClock(settings.now),
	)

	logger.Info("Application initialized successfully",
		slog.String("llm_backend", backend.Name()))
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}
