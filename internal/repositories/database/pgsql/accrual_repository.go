package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxAccrualRepository persists interest accrual legs.
type PgxAccrualRepository struct {
	BaseRepository
}

// NewPgxAccrualRepository creates a new accrual repository.
func NewPgxAccrualRepository(pool *pgxpool.Pool) portsrepo.AccrualRepositoryFacade {
	return &PgxAccrualRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccrualRepositoryFacade = (*PgxAccrualRepository)(nil)

const accrualColumns = `accr_tran_id, account_no, accrual_date, tran_date, value_date, intt_rate,
       amount, dr_cr_flag, gl_account_no, tran_ccy, fcy_amt, exchange_rate, lcy_amt,
       COALESCE(narration, ''), status, tran_status`

func (r *PgxAccrualRepository) SaveAccruals(ctx context.Context, legs []domain.InterestAccrual) error {
	query := `
		INSERT INTO intt_accr_tran (accr_tran_id, account_no, accrual_date, tran_date, value_date,
		                            intt_rate, amount, dr_cr_flag, gl_account_no, tran_ccy, fcy_amt,
		                            exchange_rate, lcy_amt, narration, status, tran_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	batch := &pgx.Batch{}
	for _, leg := range legs {
		batch.Queue(query,
			leg.AccrTranID, leg.AccountNo, leg.AccrualDate, leg.TranDate, leg.ValueDate,
			leg.InttRate, leg.Amount, leg.DrCrFlag, leg.GLAccountNo, leg.TranCcy, leg.FcyAmt,
			leg.ExchangeRate, leg.LcyAmt, leg.Narration, leg.Status, leg.TranStatus,
		)
	}

	var br pgx.BatchResults
	if tx, ok := ctx.Value(txKey).(pgx.Tx); ok {
		br = tx.SendBatch(ctx, batch)
	} else {
		br = r.Pool.SendBatch(ctx, batch)
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert accrual legs", err)
	}
	return nil
}

// MaxSeqByDate extracts the greatest 9-digit sequence from the date's
// accrual ids. The id format has no delimiter between date and sequence, so
// fixed offsets are used (positions 10-18, 1-based).
func (r *PgxAccrualRepository) MaxSeqByDate(ctx context.Context, accrualDate time.Time) (int, error) {
	query := `
		SELECT COALESCE(MAX(CAST(SUBSTRING(accr_tran_id FROM 10 FOR 9) AS INTEGER)), 0)
		FROM intt_accr_tran
		WHERE accrual_date = $1;
	`
	var maxSeq int
	if err := r.q(ctx).QueryRow(ctx, query, accrualDate).Scan(&maxSeq); err != nil {
		return 0, apperrors.NewAppError(500, "failed to read max accrual sequence", err)
	}
	return maxSeq, nil
}

func (r *PgxAccrualRepository) ListByDateAndStatus(ctx context.Context, accrualDate time.Time, status domain.AccrualStatus) ([]domain.InterestAccrual, error) {
	query := `SELECT ` + accrualColumns + ` FROM intt_accr_tran
		WHERE accrual_date = $1 AND status = $2 ORDER BY accr_tran_id;`
	rows, err := r.q(ctx).Query(ctx, query, accrualDate, status)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accrual legs", err)
	}
	defer rows.Close()

	legs := []domain.InterestAccrual{}
	for rows.Next() {
		var leg domain.InterestAccrual
		if err := rows.Scan(
			&leg.AccrTranID, &leg.AccountNo, &leg.AccrualDate, &leg.TranDate, &leg.ValueDate, &leg.InttRate,
			&leg.Amount, &leg.DrCrFlag, &leg.GLAccountNo, &leg.TranCcy, &leg.FcyAmt,
			&leg.ExchangeRate, &leg.LcyAmt, &leg.Narration, &leg.Status, &leg.TranStatus,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan accrual leg", err)
		}
		legs = append(legs, leg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating accrual legs", err)
	}
	return legs, nil
}

func (r *PgxAccrualRepository) UpdateStatus(ctx context.Context, accrTranID string, status domain.AccrualStatus) error {
	query := `UPDATE intt_accr_tran SET status = $2 WHERE accr_tran_id = $1;`
	tag, err := r.q(ctx).Exec(ctx, query, accrTranID, status)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update accrual "+accrTranID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("accrual " + accrTranID + " not found for status update")
	}
	return nil
}

func (r *PgxAccrualRepository) SumByAccountAndDate(ctx context.Context, accountNo string, accrualDate time.Time, flag domain.DrCrFlag) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM intt_accr_tran
		WHERE account_no = $1 AND accrual_date = $2 AND dr_cr_flag = $3;
	`
	var sum decimal.Decimal
	if err := r.q(ctx).QueryRow(ctx, query, accountNo, accrualDate, flag).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum accruals for "+accountNo, err)
	}
	return sum, nil
}

func (r *PgxAccrualRepository) DistinctAccountsByDate(ctx context.Context, accrualDate time.Time) ([]string, error) {
	query := `SELECT DISTINCT account_no FROM intt_accr_tran WHERE accrual_date = $1 ORDER BY account_no;`
	rows, err := r.q(ctx).Query(ctx, query, accrualDate)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accrued accounts", err)
	}
	defer rows.Close()

	accounts := []string{}
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account number", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating accrued accounts", err)
	}
	return accounts, nil
}

func (r *PgxAccrualRepository) DeleteByDate(ctx context.Context, accrualDate time.Time) (int64, error) {
	query := `DELETE FROM intt_accr_tran WHERE accrual_date = $1;`
	tag, err := r.q(ctx).Exec(ctx, query, accrualDate)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete accrual legs", err)
	}
	return tag.RowsAffected(), nil
}

// PgxSubProductRepository reads sub-product interest configuration and the
// interest rate master.
type PgxSubProductRepository struct {
	BaseRepository
}

// NewPgxSubProductRepository creates a new sub-product repository.
func NewPgxSubProductRepository(pool *pgxpool.Pool) portsrepo.SubProductRepositoryFacade {
	return &PgxSubProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SubProductRepositoryFacade = (*PgxSubProductRepository)(nil)

func (r *PgxSubProductRepository) FindSubProduct(ctx context.Context, subProductID int) (*domain.SubProduct, error) {
	query := `
		SELECT sub_product_id, sub_product_code, sub_product_name, product_id, cum_gl_num,
		       COALESCE(intt_code, ''), interest_increment, effective_interest_rate,
		       COALESCE(intt_income_expenditure_gl_num, ''), COALESCE(intt_receivable_payable_gl_num, ''),
		       sub_product_status
		FROM subprod_master
		WHERE sub_product_id = $1;
	`
	var sp domain.SubProduct
	err := r.q(ctx).QueryRow(ctx, query, subProductID).Scan(
		&sp.SubProductID, &sp.SubProductCode, &sp.SubProductName, &sp.ProductID, &sp.CumGLNum,
		&sp.InttCode, &sp.InterestIncrement, &sp.EffectiveInterestRate,
		&sp.InttIncomeExpenditureGLNum, &sp.InttReceivablePayableGLNum,
		&sp.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sub-product", err)
	}
	return &sp, nil
}

func (r *PgxSubProductRepository) FindLatestRate(ctx context.Context, inttCode string, asOf time.Time) (*domain.InterestRate, error) {
	query := `
		SELECT intt_code, intt_effctv_date, intt_rate
		FROM intt_rate_master
		WHERE intt_code = $1 AND intt_effctv_date <= $2
		ORDER BY intt_effctv_date DESC
		LIMIT 1;
	`
	var rate domain.InterestRate
	err := r.q(ctx).QueryRow(ctx, query, inttCode, asOf).Scan(&rate.InttCode, &rate.EffectiveDate, &rate.Rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find rate for "+inttCode, err)
	}
	return &rate, nil
}
