package pgsql

import (
	"context"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxTransactionRepository persists transaction legs.
type PgxTransactionRepository struct {
	BaseRepository
}

// NewPgxTransactionRepository creates a new transaction repository.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const legColumns = `tran_id, tran_date, value_date, dr_cr_flag, tran_status, account_no,
       tran_ccy, fcy_amt, exchange_rate, lcy_amt, COALESCE(narration, ''), pointing_id, created_at`

func scanLeg(row pgx.Row) (*domain.TransactionLeg, error) {
	var leg domain.TransactionLeg
	err := row.Scan(
		&leg.TranID, &leg.TranDate, &leg.ValueDate, &leg.DrCrFlag, &leg.TranStatus, &leg.AccountNo,
		&leg.TranCcy, &leg.FcyAmt, &leg.ExchangeRate, &leg.LcyAmt, &leg.Narration, &leg.PointingID, &leg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &leg, nil
}

func (r *PgxTransactionRepository) SaveLegs(ctx context.Context, legs []domain.TransactionLeg) error {
	query := `
		INSERT INTO tran_table (tran_id, tran_date, value_date, dr_cr_flag, tran_status, account_no,
		                        tran_ccy, fcy_amt, exchange_rate, lcy_amt, debit_amount, credit_amount,
		                        narration, pointing_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	batch := &pgx.Batch{}
	for _, leg := range legs {
		debitAmt, creditAmt := decimal.Zero, decimal.Zero
		if leg.DrCrFlag == domain.Debit {
			debitAmt = leg.LcyAmt
		} else {
			creditAmt = leg.LcyAmt
		}
		batch.Queue(query,
			leg.TranID, leg.TranDate, leg.ValueDate, leg.DrCrFlag, leg.TranStatus, leg.AccountNo,
			leg.TranCcy, leg.FcyAmt, leg.ExchangeRate, leg.LcyAmt, debitAmt, creditAmt,
			leg.Narration, leg.PointingID, leg.CreatedAt,
		)
	}

	var br pgx.BatchResults
	if tx, ok := ctx.Value(txKey).(pgx.Tx); ok {
		br = tx.SendBatch(ctx, batch)
	} else {
		br = r.Pool.SendBatch(ctx, batch)
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction legs", err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindLegsByBase(ctx context.Context, baseTranID string) ([]domain.TransactionLeg, error) {
	query := `SELECT ` + legColumns + ` FROM tran_table
		WHERE tran_id LIKE $1 || '-%' ORDER BY tran_id;`
	return r.listLegs(ctx, query, baseTranID)
}

func (r *PgxTransactionRepository) FindLegsByBaseAndStatus(ctx context.Context, baseTranID string, status domain.TranStatus) ([]domain.TransactionLeg, error) {
	query := `SELECT ` + legColumns + ` FROM tran_table
		WHERE tran_id LIKE $1 || '-%' AND tran_status = $2 ORDER BY tran_id;`
	return r.listLegs(ctx, query, baseTranID, status)
}

func (r *PgxTransactionRepository) UpdateLegStatus(ctx context.Context, legTranID string, status domain.TranStatus) error {
	query := `UPDATE tran_table SET tran_status = $2 WHERE tran_id = $1;`
	tag, err := r.q(ctx).Exec(ctx, query, legTranID, status)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of leg "+legTranID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("leg " + legTranID + " not found for status update")
	}
	return nil
}

func (r *PgxTransactionRepository) CountLegsByDate(ctx context.Context, tranDate time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM tran_table WHERE tran_date = $1;`
	var count int64
	if err := r.q(ctx).QueryRow(ctx, query, tranDate).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count legs by date", err)
	}
	return count, nil
}

// SumByAccountAndDate totals lcy amounts across legs in Entry, Posted or
// Verified status. Reversals cancel through their own opposite legs.
func (r *PgxTransactionRepository) SumByAccountAndDate(ctx context.Context, accountNo string, tranDate time.Time, flag domain.DrCrFlag) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(lcy_amt), 0)
		FROM tran_table
		WHERE account_no = $1 AND tran_date = $2 AND dr_cr_flag = $3
		  AND tran_status IN ('Entry', 'Posted', 'Verified');
	`
	var sum decimal.Decimal
	if err := r.q(ctx).QueryRow(ctx, query, accountNo, tranDate, flag).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum legs for "+accountNo, err)
	}
	return sum, nil
}

func (r *PgxTransactionRepository) ListFutureLegsDue(ctx context.Context, asOf time.Time) ([]domain.TransactionLeg, error) {
	query := `SELECT ` + legColumns + ` FROM tran_table
		WHERE tran_status = 'Future' AND value_date <= $1 ORDER BY value_date, tran_id;`
	return r.listLegs(ctx, query, asOf)
}

func (r *PgxTransactionRepository) CountFutureLegs(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM tran_table WHERE tran_status = 'Future';`
	var count int64
	if err := r.q(ctx).QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count future legs", err)
	}
	return count, nil
}

func (r *PgxTransactionRepository) ListAllLegs(ctx context.Context) ([]domain.TransactionLeg, error) {
	query := `SELECT ` + legColumns + ` FROM tran_table ORDER BY tran_date DESC, tran_id;`
	return r.listLegs(ctx, query)
}

func (r *PgxTransactionRepository) ListLegsByDateAndStatuses(ctx context.Context, tranDate time.Time, statuses []domain.TranStatus) ([]domain.TransactionLeg, error) {
	strs := make([]string, len(statuses))
	for i, s := range statuses {
		strs[i] = string(s)
	}
	query := `SELECT ` + legColumns + ` FROM tran_table
		WHERE tran_date = $1 AND tran_status = ANY($2) ORDER BY created_at, tran_id;`
	return r.listLegs(ctx, query, tranDate, strs)
}

func (r *PgxTransactionRepository) listLegs(ctx context.Context, query string, args ...any) ([]domain.TransactionLeg, error) {
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transaction legs", err)
	}
	defer rows.Close()

	legs := []domain.TransactionLeg{}
	for rows.Next() {
		leg, err := scanLeg(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction leg", err)
		}
		legs = append(legs, *leg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction legs", err)
	}
	return legs, nil
}
