package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/phrazzld/tili-api/internal/store"
)

// PostgreSQL error codes
const (
	pgUniqueViolation  = "23505"
	pgCheckViolation   = "23514"
	pgNotNullViolation = "23502"
)

// MapError translates driver errors from either dialect into store errors.
// Errors without a mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case pgCheckViolation, pgNotNullViolation:
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	return err
}

// IsUniqueViolation reports whether err is a uniqueness violation in either dialect.
func IsUniqueViolation(err error) bool {
	return errors.Is(MapError(err), store.ErrDuplicate)
}
