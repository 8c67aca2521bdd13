package services

import (
	"context"
	"time"

	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSvcFacade computes and mutates daily balances.
type BalanceSvcFacade interface {
	// PreviousClosingBalance resolves the opening figure for systemDate with
	// the 3-tier fallback: previous day's row, then latest earlier row,
	// then zero for a new account.
	PreviousClosingBalance(ctx context.Context, accountNo string, systemDate time.Time) (decimal.Decimal, error)
	// AvailableBalance is the real-time figure: previous close + today's
	// credits - today's debits, plus the loan limit on asset accounts.
	AvailableBalance(ctx context.Context, accountNo string) (decimal.Decimal, error)
	// ComputedBalance is AvailableBalance without the loan limit.
	ComputedBalance(ctx context.Context, accountNo string) (decimal.Decimal, error)
	// ApplyAcctPosting increments today's row for one posted leg and
	// returns the updated row.
	ApplyAcctPosting(ctx context.Context, accountNo string, flag domain.DrCrFlag, amount decimal.Decimal) (*domain.AccountBalance, error)
	// ApplyGLPosting mirrors ApplyAcctPosting for the owning GL and returns
	// the running GL balance carried onto the movement.
	ApplyGLPosting(ctx context.Context, glNum string, flag domain.DrCrFlag, amount decimal.Decimal) (*domain.GLBalance, error)
}
