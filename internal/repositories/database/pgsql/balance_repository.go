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

// PgxBalanceRepository persists the daily balance rows for accounts, GLs and
// accrual balances.
type PgxBalanceRepository struct {
	BaseRepository
}

// NewPgxBalanceRepository creates a new balance repository.
func NewPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

const acctBalColumns = `account_no, tran_date, opening_bal, dr_summation, cr_summation,
       closing_bal, current_balance, available_balance, last_updated`

func scanAcctBal(row pgx.Row) (*domain.AccountBalance, error) {
	var b domain.AccountBalance
	err := row.Scan(
		&b.AccountNo, &b.TranDate, &b.OpeningBal, &b.DrSummation, &b.CrSummation,
		&b.ClosingBal, &b.CurrentBalance, &b.AvailableBalance, &b.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PgxBalanceRepository) FindAcctBal(ctx context.Context, accountNo string, tranDate time.Time) (*domain.AccountBalance, error) {
	query := `SELECT ` + acctBalColumns + ` FROM acct_bal WHERE account_no = $1 AND tran_date = $2;`
	bal, err := scanAcctBal(r.q(ctx).QueryRow(ctx, query, accountNo, tranDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find balance row for "+accountNo, err)
	}
	return bal, nil
}

func (r *PgxBalanceRepository) FindLatestAcctBal(ctx context.Context, accountNo string, asOf time.Time) (*domain.AccountBalance, error) {
	query := `SELECT ` + acctBalColumns + ` FROM acct_bal
		WHERE account_no = $1 AND tran_date <= $2
		ORDER BY tran_date DESC LIMIT 1;`
	bal, err := scanAcctBal(r.q(ctx).QueryRow(ctx, query, accountNo, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest balance row for "+accountNo, err)
	}
	return bal, nil
}

func (r *PgxBalanceRepository) EnsureAcctBal(ctx context.Context, accountNo string, tranDate time.Time, opening decimal.Decimal, now time.Time) error {
	query := `
		INSERT INTO acct_bal (account_no, tran_date, opening_bal, dr_summation, cr_summation,
		                      closing_bal, current_balance, available_balance, last_updated)
		VALUES ($1, $2, $3, 0, 0, $3, $3, $3, $4)
		ON CONFLICT (account_no, tran_date) DO NOTHING;
	`
	_, err := r.q(ctx).Exec(ctx, query, accountNo, tranDate, opening, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to ensure balance row for "+accountNo, err)
	}
	return nil
}

// ApplyAcctPosting locks the day's row, folds the leg into the summations
// and recomputes the derived balances in one statement.
func (r *PgxBalanceRepository) ApplyAcctPosting(ctx context.Context, accountNo string, tranDate time.Time, flag domain.DrCrFlag, amount, loanLimit decimal.Decimal, now time.Time) (*domain.AccountBalance, error) {
	lockQuery := `SELECT 1 FROM acct_bal WHERE account_no = $1 AND tran_date = $2 FOR UPDATE;`
	var one int
	if err := r.q(ctx).QueryRow(ctx, lockQuery, accountNo, tranDate).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("balance row for " + accountNo + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to lock balance row for "+accountNo, err)
	}

	dr, cr := decimal.Zero, decimal.Zero
	if flag == domain.Debit {
		dr = amount
	} else {
		cr = amount
	}

	query := `
		UPDATE acct_bal
		SET dr_summation = dr_summation + $3,
		    cr_summation = cr_summation + $4,
		    closing_bal = opening_bal + (cr_summation + $4) - (dr_summation + $3),
		    current_balance = opening_bal + (cr_summation + $4) - (dr_summation + $3),
		    available_balance = opening_bal + (cr_summation + $4) - (dr_summation + $3) + $5,
		    last_updated = $6
		WHERE account_no = $1 AND tran_date = $2
		RETURNING ` + acctBalColumns + `;
	`
	bal, err := scanAcctBal(r.q(ctx).QueryRow(ctx, query, accountNo, tranDate, dr, cr, loanLimit, now))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to apply posting to "+accountNo, err)
	}
	return bal, nil
}

func (r *PgxBalanceRepository) SaveAcctBal(ctx context.Context, bal domain.AccountBalance) error {
	query := `
		INSERT INTO acct_bal (account_no, tran_date, opening_bal, dr_summation, cr_summation,
		                      closing_bal, current_balance, available_balance, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (account_no, tran_date) DO UPDATE
		SET opening_bal = EXCLUDED.opening_bal,
		    dr_summation = EXCLUDED.dr_summation,
		    cr_summation = EXCLUDED.cr_summation,
		    closing_bal = EXCLUDED.closing_bal,
		    current_balance = EXCLUDED.current_balance,
		    available_balance = EXCLUDED.available_balance,
		    last_updated = EXCLUDED.last_updated;
	`
	_, err := r.q(ctx).Exec(ctx, query,
		bal.AccountNo, bal.TranDate, bal.OpeningBal, bal.DrSummation, bal.CrSummation,
		bal.ClosingBal, bal.CurrentBalance, bal.AvailableBalance, bal.LastUpdated,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save balance row for "+bal.AccountNo, err)
	}
	return nil
}

const glBalColumns = `gl_num, tran_date, opening_bal, dr_summation, cr_summation,
       closing_bal, current_balance, last_updated`

func scanGLBal(row pgx.Row) (*domain.GLBalance, error) {
	var b domain.GLBalance
	err := row.Scan(
		&b.GLNum, &b.TranDate, &b.OpeningBal, &b.DrSummation, &b.CrSummation,
		&b.ClosingBal, &b.CurrentBalance, &b.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PgxBalanceRepository) FindGLBal(ctx context.Context, glNum string, tranDate time.Time) (*domain.GLBalance, error) {
	query := `SELECT ` + glBalColumns + ` FROM gl_balance WHERE gl_num = $1 AND tran_date = $2;`
	bal, err := scanGLBal(r.q(ctx).QueryRow(ctx, query, glNum, tranDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find GL balance row for "+glNum, err)
	}
	return bal, nil
}

func (r *PgxBalanceRepository) FindLatestGLBal(ctx context.Context, glNum string, asOf time.Time) (*domain.GLBalance, error) {
	query := `SELECT ` + glBalColumns + ` FROM gl_balance
		WHERE gl_num = $1 AND tran_date <= $2
		ORDER BY tran_date DESC LIMIT 1;`
	bal, err := scanGLBal(r.q(ctx).QueryRow(ctx, query, glNum, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest GL balance row for "+glNum, err)
	}
	return bal, nil
}

func (r *PgxBalanceRepository) EnsureGLBal(ctx context.Context, glNum string, tranDate time.Time, opening decimal.Decimal, now time.Time) error {
	query := `
		INSERT INTO gl_balance (gl_num, tran_date, opening_bal, dr_summation, cr_summation,
		                        closing_bal, current_balance, last_updated)
		VALUES ($1, $2, $3, 0, 0, $3, $3, $4)
		ON CONFLICT (gl_num, tran_date) DO NOTHING;
	`
	_, err := r.q(ctx).Exec(ctx, query, glNum, tranDate, opening, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to ensure GL balance row for "+glNum, err)
	}
	return nil
}

func (r *PgxBalanceRepository) ApplyGLPosting(ctx context.Context, glNum string, tranDate time.Time, flag domain.DrCrFlag, amount decimal.Decimal, now time.Time) (*domain.GLBalance, error) {
	lockQuery := `SELECT 1 FROM gl_balance WHERE gl_num = $1 AND tran_date = $2 FOR UPDATE;`
	var one int
	if err := r.q(ctx).QueryRow(ctx, lockQuery, glNum, tranDate).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("GL balance row for " + glNum + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to lock GL balance row for "+glNum, err)
	}

	dr, cr := decimal.Zero, decimal.Zero
	if flag == domain.Debit {
		dr = amount
	} else {
		cr = amount
	}

	query := `
		UPDATE gl_balance
		SET dr_summation = dr_summation + $3,
		    cr_summation = cr_summation + $4,
		    closing_bal = opening_bal + (cr_summation + $4) - (dr_summation + $3),
		    current_balance = opening_bal + (cr_summation + $4) - (dr_summation + $3),
		    last_updated = $5
		WHERE gl_num = $1 AND tran_date = $2
		RETURNING ` + glBalColumns + `;
	`
	bal, err := scanGLBal(r.q(ctx).QueryRow(ctx, query, glNum, tranDate, dr, cr, now))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to apply posting to GL "+glNum, err)
	}
	return bal, nil
}

func (r *PgxBalanceRepository) SaveGLBal(ctx context.Context, bal domain.GLBalance) error {
	query := `
		INSERT INTO gl_balance (gl_num, tran_date, opening_bal, dr_summation, cr_summation,
		                        closing_bal, current_balance, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (gl_num, tran_date) DO UPDATE
		SET opening_bal = EXCLUDED.opening_bal,
		    dr_summation = EXCLUDED.dr_summation,
		    cr_summation = EXCLUDED.cr_summation,
		    closing_bal = EXCLUDED.closing_bal,
		    current_balance = EXCLUDED.current_balance,
		    last_updated = EXCLUDED.last_updated;
	`
	_, err := r.q(ctx).Exec(ctx, query,
		bal.GLNum, bal.TranDate, bal.OpeningBal, bal.DrSummation, bal.CrSummation,
		bal.ClosingBal, bal.CurrentBalance, bal.LastUpdated,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save GL balance row for "+bal.GLNum, err)
	}
	return nil
}

func (r *PgxBalanceRepository) ListGLBalsByDate(ctx context.Context, tranDate time.Time, glNums []string) ([]domain.GLBalance, error) {
	query := `SELECT ` + glBalColumns + ` FROM gl_balance
		WHERE tran_date = $1 AND gl_num = ANY($2)
		ORDER BY gl_num;`
	rows, err := r.q(ctx).Query(ctx, query, tranDate, glNums)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query GL balances", err)
	}
	defer rows.Close()

	bals := []domain.GLBalance{}
	for rows.Next() {
		bal, err := scanGLBal(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan GL balance row", err)
		}
		bals = append(bals, *bal)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating GL balance rows", err)
	}
	return bals, nil
}

func (r *PgxBalanceRepository) SaveAccrualBal(ctx context.Context, bal domain.AccrualBalance) error {
	query := `
		INSERT INTO acct_bal_accrual (account_no, tran_date, opening_bal, dr_summation,
		                              cr_summation, closing_bal, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (account_no, tran_date) DO UPDATE
		SET opening_bal = EXCLUDED.opening_bal,
		    dr_summation = EXCLUDED.dr_summation,
		    cr_summation = EXCLUDED.cr_summation,
		    closing_bal = EXCLUDED.closing_bal,
		    last_updated = EXCLUDED.last_updated;
	`
	_, err := r.q(ctx).Exec(ctx, query,
		bal.AccountNo, bal.TranDate, bal.OpeningBal, bal.DrSummation, bal.CrSummation,
		bal.ClosingBal, bal.LastUpdated,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save accrual balance row for "+bal.AccountNo, err)
	}
	return nil
}

func (r *PgxBalanceRepository) FindLatestAccrualBal(ctx context.Context, accountNo string, asOf time.Time) (*domain.AccrualBalance, error) {
	query := `
		SELECT account_no, tran_date, opening_bal, dr_summation, cr_summation, closing_bal, last_updated
		FROM acct_bal_accrual
		WHERE account_no = $1 AND tran_date <= $2
		ORDER BY tran_date DESC LIMIT 1;
	`
	var b domain.AccrualBalance
	err := r.q(ctx).QueryRow(ctx, query, accountNo, asOf).Scan(
		&b.AccountNo, &b.TranDate, &b.OpeningBal, &b.DrSummation, &b.CrSummation, &b.ClosingBal, &b.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest accrual balance row for "+accountNo, err)
	}
	return &b, nil
}
