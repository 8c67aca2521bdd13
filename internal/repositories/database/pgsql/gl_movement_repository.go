package pgsql

import (
	"context"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxGLMovementRepository persists the append-only GL movement streams.
type PgxGLMovementRepository struct {
	BaseRepository
}

// NewPgxGLMovementRepository creates a new GL movement repository.
func NewPgxGLMovementRepository(pool *pgxpool.Pool) portsrepo.GLMovementRepositoryFacade {
	return &PgxGLMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GLMovementRepositoryFacade = (*PgxGLMovementRepository)(nil)

func (r *PgxGLMovementRepository) SaveMovement(ctx context.Context, m domain.GLMovement) error {
	query := `
		INSERT INTO gl_movement (tran_id, gl_num, dr_cr_flag, tran_date, value_date, amount, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.q(ctx).Exec(ctx, query,
		m.TranID, m.GLNum, m.DrCrFlag, m.TranDate, m.ValueDate, m.Amount, m.BalanceAfter,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert GL movement for "+m.TranID, err)
	}
	return nil
}

func (r *PgxGLMovementRepository) ListMovementsByDate(ctx context.Context, tranDate time.Time) ([]domain.GLMovement, error) {
	query := `
		SELECT movement_id, tran_id, gl_num, dr_cr_flag, tran_date, value_date, amount, balance_after
		FROM gl_movement
		WHERE tran_date = $1
		ORDER BY movement_id;
	`
	rows, err := r.q(ctx).Query(ctx, query, tranDate)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query GL movements", err)
	}
	defer rows.Close()

	movements := []domain.GLMovement{}
	for rows.Next() {
		var m domain.GLMovement
		if err := rows.Scan(&m.MovementID, &m.TranID, &m.GLNum, &m.DrCrFlag, &m.TranDate, &m.ValueDate, &m.Amount, &m.BalanceAfter); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan GL movement row", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating GL movement rows", err)
	}
	return movements, nil
}

func (r *PgxGLMovementRepository) DistinctGLNumsByDate(ctx context.Context, tranDate time.Time) ([]string, error) {
	query := `SELECT DISTINCT gl_num FROM gl_movement WHERE tran_date = $1 ORDER BY gl_num;`
	return r.listStrings(ctx, query, tranDate)
}

// SumDrCrByGLAndDate totals the day's debits and credits for one GL across
// both the regular and the accrual movement streams.
func (r *PgxGLMovementRepository) SumDrCrByGLAndDate(ctx context.Context, glNum string, tranDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN dr_cr_flag = 'D' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN dr_cr_flag = 'C' THEN amount ELSE 0 END), 0)
		FROM (
			SELECT dr_cr_flag, amount FROM gl_movement WHERE gl_num = $1 AND tran_date = $2
			UNION ALL
			SELECT dr_cr_flag, amount FROM gl_movement_accrual WHERE gl_num = $1 AND tran_date = $2
		) unified;
	`
	var dr, cr decimal.Decimal
	if err := r.q(ctx).QueryRow(ctx, query, glNum, tranDate).Scan(&dr, &cr); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum movements for GL "+glNum, err)
	}
	return dr, cr, nil
}

func (r *PgxGLMovementRepository) SaveAccrualMovement(ctx context.Context, m domain.GLMovementAccrual) error {
	query := `
		INSERT INTO gl_movement_accrual (accr_tran_id, gl_num, dr_cr_flag, tran_date, value_date, amount, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.q(ctx).Exec(ctx, query,
		m.AccrTranID, m.GLNum, m.DrCrFlag, m.TranDate, m.ValueDate, m.Amount, m.BalanceAfter,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert accrual movement for "+m.AccrTranID, err)
	}
	return nil
}

func (r *PgxGLMovementRepository) ListAccrualMovementsByDate(ctx context.Context, tranDate time.Time) ([]domain.GLMovementAccrual, error) {
	query := `
		SELECT movement_id, accr_tran_id, gl_num, dr_cr_flag, tran_date, value_date, amount, balance_after
		FROM gl_movement_accrual
		WHERE tran_date = $1
		ORDER BY movement_id;
	`
	rows, err := r.q(ctx).Query(ctx, query, tranDate)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accrual movements", err)
	}
	defer rows.Close()

	movements := []domain.GLMovementAccrual{}
	for rows.Next() {
		var m domain.GLMovementAccrual
		if err := rows.Scan(&m.MovementID, &m.AccrTranID, &m.GLNum, &m.DrCrFlag, &m.TranDate, &m.ValueDate, &m.Amount, &m.BalanceAfter); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan accrual movement row", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating accrual movement rows", err)
	}
	return movements, nil
}

func (r *PgxGLMovementRepository) DistinctAccrualGLNumsByDate(ctx context.Context, tranDate time.Time) ([]string, error) {
	query := `SELECT DISTINCT gl_num FROM gl_movement_accrual WHERE tran_date = $1 ORDER BY gl_num;`
	return r.listStrings(ctx, query, tranDate)
}

func (r *PgxGLMovementRepository) DeleteAccrualMovementsByDate(ctx context.Context, tranDate time.Time) (int64, error) {
	query := `DELETE FROM gl_movement_accrual WHERE tran_date = $1;`
	tag, err := r.q(ctx).Exec(ctx, query, tranDate)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete accrual movements", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxGLMovementRepository) listStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query GL numbers", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan GL number", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating GL numbers", err)
	}
	return out, nil
}
