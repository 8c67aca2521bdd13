package repositories

import (
	"context"
	"time"

	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccrualRepositoryFacade persists interest accrual legs.
type AccrualRepositoryFacade interface {
	SaveAccruals(ctx context.Context, legs []domain.InterestAccrual) error
	// MaxSeqByDate returns the greatest 9-digit sequence embedded in the
	// accrual ids for the date, 0 when none exist.
	MaxSeqByDate(ctx context.Context, accrualDate time.Time) (int, error)
	ListByDateAndStatus(ctx context.Context, accrualDate time.Time, status domain.AccrualStatus) ([]domain.InterestAccrual, error)
	UpdateStatus(ctx context.Context, accrTranID string, status domain.AccrualStatus) error
	// SumByAccountAndDate totals accrual amounts per flag for Job 6.
	SumByAccountAndDate(ctx context.Context, accountNo string, accrualDate time.Time, flag domain.DrCrFlag) (decimal.Decimal, error)
	DistinctAccountsByDate(ctx context.Context, accrualDate time.Time) ([]string, error)
	// DeleteByDate clears the date's legs ahead of a Job 2 re-run.
	DeleteByDate(ctx context.Context, accrualDate time.Time) (int64, error)
}

// SubProductRepositoryFacade reads sub-product interest configuration and
// the interest rate master.
type SubProductRepositoryFacade interface {
	FindSubProduct(ctx context.Context, subProductID int) (*domain.SubProduct, error)
	// FindLatestRate returns the rate for inttCode with the greatest
	// effective date <= asOf, or apperrors.ErrNotFound.
	FindLatestRate(ctx context.Context, inttCode string, asOf time.Time) (*domain.InterestRate, error)
}
