package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrationsFS embed.FS

func (d Dialect) gooseDialect() goose.Dialect {
	if d == Postgres {
		return goose.DialectPostgres
	}
	return goose.DialectSQLite3
}

// Migrator applies the embedded schema migrations for one dialect.
type Migrator struct {
	provider *goose.Provider
	logger   *slog.Logger
}

// NewMigrator creates a Migrator for db.
func NewMigrator(db *sql.DB, dialect Dialect, logger *slog.Logger) (*Migrator, error) {
	fsys, err := fs.Sub(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s migrations: %w", dialect, err)
	}

	provider, err := goose.NewProvider(dialect.gooseDialect(), db, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Migrator{
		provider: provider,
		logger:   logger.With(slog.String("component", "migrations"), slog.String("dialect", string(dialect))),
	}, nil
}

// Up applies all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	for _, r := range results {
		m.logger.InfoContext(ctx, "applied migration",
			slog.String("file", r.Source.Path),
			slog.Duration("duration", r.Duration))
	}
	if err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	result, err := m.provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}
	m.logger.InfoContext(ctx, "rolled back migration", slog.String("file", result.Source.Path))
	return nil
}

// MigrationStatus is one migration and whether it has been applied.
type MigrationStatus struct {
	Version int64
	File    string
	Applied bool
}

// Status lists every known migration.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration status failed: %w", err)
	}

	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationStatus{
			Version: s.Source.Version,
			File:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}

// Migrate is shorthand for NewMigrator followed by Up.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect, logger *slog.Logger) error {
	m, err := NewMigrator(db, dialect, logger)
	if err != nil {
		return err
	}
	return m.Up(ctx)
}
