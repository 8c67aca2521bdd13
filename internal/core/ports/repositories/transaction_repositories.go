package repositories

import (
	"context"
	"time"

	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepositoryFacade persists transaction legs and their status
// transitions.
type TransactionRepositoryFacade interface {
	SaveLegs(ctx context.Context, legs []domain.TransactionLeg) error
	// FindLegsByBase returns all legs whose tran id starts with
	// baseTranID + "-", in line-number order.
	FindLegsByBase(ctx context.Context, baseTranID string) ([]domain.TransactionLeg, error)
	FindLegsByBaseAndStatus(ctx context.Context, baseTranID string, status domain.TranStatus) ([]domain.TransactionLeg, error)
	UpdateLegStatus(ctx context.Context, legTranID string, status domain.TranStatus) error
	// CountLegsByDate counts legs carrying tranDate, used for the 6-digit
	// per-date sequence of new transaction ids.
	CountLegsByDate(ctx context.Context, tranDate time.Time) (int64, error)
	// SumByAccountAndDate totals lcy amounts for one account, date and flag
	// across legs in Entry, Posted or Verified status.
	SumByAccountAndDate(ctx context.Context, accountNo string, tranDate time.Time, flag domain.DrCrFlag) (decimal.Decimal, error)
	// ListFutureLegsDue returns Future legs whose value date has arrived.
	ListFutureLegsDue(ctx context.Context, asOf time.Time) ([]domain.TransactionLeg, error)
	CountFutureLegs(ctx context.Context) (int64, error)
	// ListAllLegs returns every leg ordered by tran date descending then
	// tran id, for grouping into transactions at the service layer.
	ListAllLegs(ctx context.Context) ([]domain.TransactionLeg, error)
	// ListLegsByDateAndStatuses returns the day's legs in the given
	// statuses, in insertion order.
	ListLegsByDateAndStatuses(ctx context.Context, tranDate time.Time, statuses []domain.TranStatus) ([]domain.TransactionLeg, error)
}
