package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"github.com/phrazzld/tili-api/internal/config"
)

// Dialect identifies a supported SQL database.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) driverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// sqlitePragmas are applied to every SQLite connection.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_time_format=sqlite"

// SQLiteDSN turns a file path into a modernc DSN with the standard pragmas.
// ":memory:" gives a private in-memory database. Values that already carry
// query parameters are returned unchanged.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	if path == ":memory:" {
		return "file::memory:?_time_format=sqlite"
	}
	return "file:" + path + "?" + sqlitePragmas
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, Dialect, error) {
	dialect := Dialect(cfg.Driver)

	dsn := cfg.URL
	switch dialect {
	case Postgres:
	case SQLite:
		dsn = SQLiteDSN(cfg.URL)
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database connection: %w", err)
	}

	if dialect == SQLite {
		// SQLite allows one writer; a single connection also keeps an
		// in-memory database alive and shared.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	return db, dialect, nil
}
