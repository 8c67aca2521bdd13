package repositories

import (
	"context"
	"time"

	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GLMovementRepositoryFacade persists the append-only GL movement streams
// (regular and accrual).
type GLMovementRepositoryFacade interface {
	SaveMovement(ctx context.Context, m domain.GLMovement) error
	ListMovementsByDate(ctx context.Context, tranDate time.Time) ([]domain.GLMovement, error)
	DistinctGLNumsByDate(ctx context.Context, tranDate time.Time) ([]string, error)
	// SumDrCrByGLAndDate returns the day's debit and credit totals for one
	// GL across the unified movement stream (regular + accrual).
	SumDrCrByGLAndDate(ctx context.Context, glNum string, tranDate time.Time) (dr, cr decimal.Decimal, err error)

	SaveAccrualMovement(ctx context.Context, m domain.GLMovementAccrual) error
	ListAccrualMovementsByDate(ctx context.Context, tranDate time.Time) ([]domain.GLMovementAccrual, error)
	DistinctAccrualGLNumsByDate(ctx context.Context, tranDate time.Time) ([]string, error)
	DeleteAccrualMovementsByDate(ctx context.Context, tranDate time.Time) (int64, error)
}
