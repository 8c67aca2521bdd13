package pgsql

import (
	"context"
	"errors"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAccountRepository resolves account numbers across the customer and
// office masters and owns the per-GL account number sequence.
type PgxAccountRepository struct {
	BaseRepository
}

// NewPgxAccountRepository creates a new account repository.
func NewPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// FindAccountInfo probes the customer master first, then the office master.
// Account numbers are unique across both; the open procedure enforces that.
func (r *PgxAccountRepository) FindAccountInfo(ctx context.Context, accountNo string) (*domain.AccountInfo, error) {
	custQuery := `
		SELECT account_no, gl_num, account_status, loan_limit, acct_name
		FROM cust_acct_master
		WHERE account_no = $1;
	`
	var info domain.AccountInfo
	err := r.q(ctx).QueryRow(ctx, custQuery, accountNo).Scan(
		&info.AccountNo, &info.GLNum, &info.Status, &info.LoanLimit, &info.AcctName,
	)
	if err == nil {
		info.Kind = domain.KindCustomer
		return &info, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to find customer account "+accountNo, err)
	}

	officeQuery := `
		SELECT account_no, gl_num, account_status, acct_name
		FROM of_acct_master
		WHERE account_no = $1;
	`
	err = r.q(ctx).QueryRow(ctx, officeQuery, accountNo).Scan(
		&info.AccountNo, &info.GLNum, &info.Status, &info.AcctName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find office account "+accountNo, err)
	}
	info.Kind = domain.KindOffice
	return &info, nil
}

func (r *PgxAccountRepository) AccountExists(ctx context.Context, accountNo string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM cust_acct_master WHERE account_no = $1)
		    OR EXISTS (SELECT 1 FROM of_acct_master WHERE account_no = $1);
	`
	var exists bool
	if err := r.q(ctx).QueryRow(ctx, query, accountNo).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check account "+accountNo, err)
	}
	return exists, nil
}

const custAcctColumns = `account_no, cust_id, sub_product_id, gl_num, acct_name, date_opening,
       tenor, date_maturity, date_closure, branch_code, account_status, loan_limit`

func scanCustomerAccount(row pgx.Row) (*domain.CustomerAccount, error) {
	var c domain.CustomerAccount
	err := row.Scan(
		&c.AccountNo, &c.CustID, &c.SubProductID, &c.GLNum, &c.AcctName, &c.DateOpening,
		&c.Tenor, &c.DateMaturity, &c.DateClosure, &c.BranchCode, &c.Status, &c.LoanLimit,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxAccountRepository) FindCustomerAccount(ctx context.Context, accountNo string) (*domain.CustomerAccount, error) {
	query := `SELECT ` + custAcctColumns + ` FROM cust_acct_master WHERE account_no = $1;`
	acct, err := scanCustomerAccount(r.q(ctx).QueryRow(ctx, query, accountNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer account "+accountNo, err)
	}
	return acct, nil
}

func (r *PgxAccountRepository) ListActiveCustomerAccounts(ctx context.Context) ([]domain.CustomerAccount, error) {
	query := `SELECT ` + custAcctColumns + ` FROM cust_acct_master
		WHERE account_status = 'Active' ORDER BY account_no;`
	rows, err := r.q(ctx).Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query active customer accounts", err)
	}
	defer rows.Close()

	accounts := []domain.CustomerAccount{}
	for rows.Next() {
		acct, err := scanCustomerAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer account row", err)
		}
		accounts = append(accounts, *acct)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer account rows", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) ListActiveOfficeAccounts(ctx context.Context) ([]domain.OfficeAccount, error) {
	query := `
		SELECT account_no, sub_product_id, gl_num, acct_name, date_opening,
		       date_closure, branch_code, account_status
		FROM of_acct_master
		WHERE account_status = 'Active'
		ORDER BY account_no;
	`
	rows, err := r.q(ctx).Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query active office accounts", err)
	}
	defer rows.Close()

	accounts := []domain.OfficeAccount{}
	for rows.Next() {
		var o domain.OfficeAccount
		if err := rows.Scan(
			&o.AccountNo, &o.SubProductID, &o.GLNum, &o.AcctName, &o.DateOpening,
			&o.DateClosure, &o.BranchCode, &o.Status,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan office account row", err)
		}
		accounts = append(accounts, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating office account rows", err)
	}
	return accounts, nil
}

// NextAccountSeq increments the per-GL sequence under its row lock. Account
// opening for one GL serializes here.
func (r *PgxAccountRepository) NextAccountSeq(ctx context.Context, glNum string) (int, error) {
	query := `
		INSERT INTO account_seq (gl_num, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (gl_num) DO UPDATE SET last_seq = account_seq.last_seq + 1
		RETURNING last_seq;
	`
	var seq int
	if err := r.q(ctx).QueryRow(ctx, query, glNum).Scan(&seq); err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance account sequence for GL "+glNum, err)
	}
	return seq, nil
}

func (r *PgxAccountRepository) CountOfficeAccountsByGL(ctx context.Context, glNum string) (int, error) {
	query := `SELECT COUNT(*) FROM of_acct_master WHERE gl_num = $1;`
	var count int
	if err := r.q(ctx).QueryRow(ctx, query, glNum).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count office accounts for GL "+glNum, err)
	}
	return count, nil
}
