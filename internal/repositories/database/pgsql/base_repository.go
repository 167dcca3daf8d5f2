package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sgca/treasury_backend/internal/apperrors"
)

// maxTxAttempts bounds the retry loop for serialization failures.
const maxTxAttempts = 3

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// isRetryableTxError reports whether the error is a transient transaction
// failure (serialization failure or deadlock detected) that is safe to retry
// after a rollback.
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// withRetry runs fn up to maxTxAttempts times, retrying only on transient
// transaction failures. After the final attempt the error is surfaced as a
// storage failure so callers never see a partially applied mutation.
func (r *BaseRepository) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !isRetryableTxError(err) {
			return err
		}
		slog.WarnContext(ctx, "retrying transaction after transient failure",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
	}
	return fmt.Errorf("%w: transaction failed after %d attempts: %v", apperrors.ErrStorage, maxTxAttempts, err)
}
