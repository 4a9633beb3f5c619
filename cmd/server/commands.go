package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phrazzld/tili-api/internal/config"
	"github.com/phrazzld/tili-api/internal/platform/llm"
	"github.com/phrazzld/tili-api/internal/platform/logger"
	"github.com/phrazzld/tili-api/internal/platform/sqlstore"
)

type rootCommander struct {
	configFile string
}

const rootLongDesc string = `Tili API serves the vocabulary flashcard backend for the Tili Telegram Mini App.

Configuration is read from defaults, an optional YAML file and TILI_-prefixed
environment variables, e.g. TILI_AUTH_BOT_TOKEN.`

func newRootCmd() *cobra.Command {
	cmder := &rootCommander{}

	cmd := &cobra.Command{
		Use:           "tili-api",
		Short:         "Korean vocabulary flashcard API",
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cmder.configFile, "config", "c", "",
		"Path to a YAML config file (default: ./config.yaml if present)")

	cmd.AddCommand(cmder.newServeCmd())
	cmd.AddCommand(cmder.newMigrateCmd())

	return cmd
}

// loadConfig loads configuration and installs the default logger.
func (c *rootCommander) loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("llm_provider", cfg.LLM.Provider))

	return cfg, l, nil
}

func (c *rootCommander) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
}

func (c *rootCommander) serve(ctx context.Context) error {
	cfg, l, err := c.loadConfig()
	if err != nil {
		return err
	}

	db, dialect, err := sqlstore.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	l.Info("Database connection established", slog.String("driver", string(dialect)))

	if err := sqlstore.Migrate(ctx, db, dialect, l); err != nil {
		_ = db.Close()
		return err
	}

	backend, err := llm.New(ctx, l, cfg.LLM)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize language model backend: %w", err)
	}

	app, err := newApplication(cfg, l, db, backend)
	if err != nil {
		_ = db.Close()
		return err
	}

	return app.Run(ctx)
}

func (c *rootCommander) newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		c.newMigrateSubCmd("up", "Apply all pending migrations", func(ctx context.Context, m *sqlstore.Migrator, l *slog.Logger) error {
			return m.Up(ctx)
		}),
		c.newMigrateSubCmd("down", "Roll back the most recent migration", func(ctx context.Context, m *sqlstore.Migrator, l *slog.Logger) error {
			return m.Down(ctx)
		}),
		c.newMigrateSubCmd("status", "Show applied and pending migrations", func(ctx context.Context, m *sqlstore.Migrator, l *slog.Logger) error {
			statuses, err := m.Status(ctx)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				l.Info("migration",
					slog.Int64("version", s.Version),
					slog.String("file", s.File),
					slog.Bool("applied", s.Applied))
			}
			return nil
		}),
	)

	return cmd
}

func (c *rootCommander) newMigrateSubCmd(
	use, short string,
	run func(ctx context.Context, m *sqlstore.Migrator, l *slog.Logger) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, l, err := c.loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, dialect, err := sqlstore.Open(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					l.Error("Error closing database connection", slog.String("error", err.Error()))
				}
			}()

			m, err := sqlstore.NewMigrator(db, dialect, l)
			if err != nil {
				return err
			}
			return run(ctx, m, l)
		},
	}
}
