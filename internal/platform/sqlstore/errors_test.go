package sqlstore_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/tili-api/internal/platform/sqlstore"
	"github.com/phrazzld/tili-api/internal/store"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "postgres unique", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "wrapped postgres unique", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "postgres check", err: &pgconn.PgError{Code: "23514"}, want: false},
		{name: "no rows", err: sql.ErrNoRows, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, sqlstore.IsUniqueViolation(tc.err))
		})
	}
}

func TestMapError_PostgresCodes(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, sqlstore.MapError(&pgconn.PgError{Code: "23505"}), store.ErrDuplicate)
	assert.ErrorIs(t, sqlstore.MapError(&pgconn.PgError{Code: "23502"}), store.ErrInvalidEntity)
	assert.ErrorIs(t, sqlstore.MapError(sql.ErrNoRows), store.ErrNotFound)
	assert.NoError(t, sqlstore.MapError(nil))
}
