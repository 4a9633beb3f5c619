package testdb

import (
	"context"
	"database/sql"
	"errors"
	"math/rand/v2"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tili-api/internal/config"
	"github.com/phrazzld/tili-api/internal/platform/logger"
	"github.com/phrazzld/tili-api/internal/platform/sqlstore"
)

// URLEnvVar names the variable that selects a PostgreSQL test database.
const URLEnvVar = "TILI_TEST_DB_URL"

// Timeout bounds setup work done against the test database.
const Timeout = 10 * time.Second

// Config returns the database configuration tests should use.
func Config() config.DatabaseConfig {
	if url := os.Getenv(URLEnvVar); url != "" {
		return config.DatabaseConfig{Driver: string(sqlstore.Postgres), URL: url}
	}
	return config.DatabaseConfig{Driver: string(sqlstore.SQLite), URL: ":memory:"}
}

// Open returns a migrated database that is closed when the test ends.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()

	db, dialect, err := sqlstore.Open(ctx, Config())
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	quiet, _ := logger.NewBufferLogger()
	require.NoError(t, sqlstore.Migrate(ctx, db, dialect, quiet), "failed to migrate test database")

	return db
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// UserID returns a random owner ID so tests sharing a database do not see
// each other's rows.
func UserID() int64 {
	return rand.Int64N(1<<40) + 1
}
