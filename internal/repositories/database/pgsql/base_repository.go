package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes the repositories react to.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgStringTooLong        = "22001"
	pgNumericOutOfRange    = "22003"
)

// recordsScopeSerialKey is the unique constraint backing serial allocation.
const recordsScopeSerialKey = "records_scope_serial_key"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, classifyError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return classifyError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// classifyError maps driver failures onto the application taxonomy. Context
// cancellation is returned unchanged so callers can tell it apart.
func classifyError(msg string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return apperrors.NewAppError(409, msg, fmt.Errorf("%w: %s", apperrors.ErrTransactionConflict, pgErr.Code))
		case pgUniqueViolation:
			if pgErr.ConstraintName == recordsScopeSerialKey {
				return apperrors.NewAppError(409, msg, fmt.Errorf("%w: duplicate serial", apperrors.ErrTransactionConflict))
			}
			return apperrors.NewAppError(409, msg, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName))
		case pgNumericOutOfRange:
			return apperrors.NewAppError(400, msg, fmt.Errorf("%w: %s", apperrors.ErrInvalidAmount, pgErr.ColumnName))
		case pgStringTooLong:
			return apperrors.NewAppError(400, msg, fmt.Errorf("%w: value too long", apperrors.ErrValidation))
		case pgForeignKeyViolation, pgCheckViolation:
			return apperrors.NewAppError(400, msg, fmt.Errorf("%w: %s", apperrors.ErrValidation, pgErr.ConstraintName))
		}
		return apperrors.NewAppError(500, msg, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.SafeToRetry(err) {
		return apperrors.NewAppError(503, msg, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err))
	}
	return apperrors.NewAppError(500, msg, err)
}
