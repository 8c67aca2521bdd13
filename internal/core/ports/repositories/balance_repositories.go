package repositories

import (
	"context"
	"time"

	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceRepositoryFacade persists the per-account and per-GL daily balance
// rows. Posting-time mutations lock the day's row FOR UPDATE so overlapping
// posts serialize.
type BalanceRepositoryFacade interface {
	// FindLatestAcctBal returns the row with the greatest tranDate <= asOf,
	// or apperrors.ErrNotFound.
	FindLatestAcctBal(ctx context.Context, accountNo string, asOf time.Time) (*domain.AccountBalance, error)
	FindAcctBal(ctx context.Context, accountNo string, tranDate time.Time) (*domain.AccountBalance, error)
	// EnsureAcctBal creates the (accountNo, tranDate) row with zero sums and
	// the given opening balance if it does not exist yet.
	EnsureAcctBal(ctx context.Context, accountNo string, tranDate time.Time, opening decimal.Decimal, now time.Time) error
	// ApplyAcctPosting locks today's row, increments the DR or CR summation,
	// recomputes closing/current and sets available to the new closing plus
	// loanLimit. Returns the updated row.
	ApplyAcctPosting(ctx context.Context, accountNo string, tranDate time.Time, flag domain.DrCrFlag, amount, loanLimit decimal.Decimal, now time.Time) (*domain.AccountBalance, error)
	// SaveAcctBal overwrites the full row (EOD Job 1 re-run semantics).
	SaveAcctBal(ctx context.Context, bal domain.AccountBalance) error

	FindLatestGLBal(ctx context.Context, glNum string, asOf time.Time) (*domain.GLBalance, error)
	FindGLBal(ctx context.Context, glNum string, tranDate time.Time) (*domain.GLBalance, error)
	EnsureGLBal(ctx context.Context, glNum string, tranDate time.Time, opening decimal.Decimal, now time.Time) error
	// ApplyGLPosting mirrors ApplyAcctPosting for the GL daily row and
	// returns the new running balance carried onto the GL movement.
	ApplyGLPosting(ctx context.Context, glNum string, tranDate time.Time, flag domain.DrCrFlag, amount decimal.Decimal, now time.Time) (*domain.GLBalance, error)
	SaveGLBal(ctx context.Context, bal domain.GLBalance) error
	ListGLBalsByDate(ctx context.Context, tranDate time.Time, glNums []string) ([]domain.GLBalance, error)

	SaveAccrualBal(ctx context.Context, bal domain.AccrualBalance) error
	FindLatestAccrualBal(ctx context.Context, accountNo string, asOf time.Time) (*domain.AccrualBalance, error)
}
