package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tili-api/internal/platform/logger"
)

// TxFn runs inside a transaction. Returning an error rolls it back.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction runs fn in a transaction on db, committing on success
// and rolling back on error or panic. A panic is re-raised after rollback.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) (err error) {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.ErrorContext(ctx, "rollback after panic failed", slog.String("error", rbErr.Error()))
			}
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.ErrorContext(ctx, "rollback failed",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		log.DebugContext(ctx, "transaction rolled back", slog.String("error", err.Error()))
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
