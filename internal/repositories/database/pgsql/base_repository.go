package pgsql

import (
	"context"
	"errors"

	"github.com/bancsuite/coreledger/internal/apperrors"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the query surface shared by *pgxpool.Pool and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKeyType struct{}

var txKey = txKeyType{}

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// q returns the unit-of-work transaction carried in ctx, or the pool when
// the call runs outside one.
func (r *BaseRepository) q(ctx context.Context) DB {
	if tx, ok := ctx.Value(txKey).(pgx.Tx); ok {
		return tx
	}
	return r.Pool
}

// txRetryAttempts bounds the retry loop on serialization failures.
const txRetryAttempts = 3

// TxManager implements ports TxManager on pgx: one REPEATABLE READ
// transaction per unit of work, carried in the context so repository calls
// join it. A unit of work that hits serialization failures or deadlocks is
// attempted at most three times in all.
type TxManager struct {
	Pool *pgxpool.Pool
}

// NewTxManager creates a pgx-backed unit-of-work runner.
func NewTxManager(pool *pgxpool.Pool) portsrepo.TxManager {
	return &TxManager{Pool: pool}
}

var _ portsrepo.TxManager = (*TxManager)(nil)

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// A nested call joins the ambient transaction.
	if _, ok := ctx.Value(txKey).(pgx.Tx); ok {
		return fn(ctx)
	}

	var lastErr error
	for attempt := 0; attempt < txRetryAttempts; attempt++ {
		tx, err := m.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
		if err != nil {
			return apperrors.NewAppError(500, "failed to begin transaction", err)
		}

		err = fn(context.WithValue(ctx, txKey, tx))
		if err == nil {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				if isRetryable(commitErr) {
					lastErr = commitErr
					continue
				}
				return apperrors.NewAppError(500, "failed to commit transaction", commitErr)
			}
			return nil
		}

		_ = tx.Rollback(ctx)
		if isRetryable(err) {
			lastErr = err
			continue
		}
		return err
	}
	return apperrors.NewAppError(500, "transaction retries exhausted", lastErr)
}

// isRetryable matches serialization failures (40001) and deadlocks (40P01).
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
