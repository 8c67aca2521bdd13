package services

import (
	"context"

	"github.com/bancsuite/coreledger/internal/core/domain"
)

// GLSvcFacade is the chart-of-accounts query surface.
type GLSvcFacade interface {
	Find(ctx context.Context, glNum string) (*domain.GLSetup, error)
	// Leaf reports whether glNum exists at the leaf layer.
	Leaf(ctx context.Context, glNum string) (bool, error)
	ListByLayer(ctx context.Context, layerID int) ([]domain.GLSetup, error)
	ListByLayerAndParent(ctx context.Context, layerID int, parentGLNum string) ([]domain.GLSetup, error)
	// InterestPayableReceivableLeaves returns leaf GLs prefixed 13 or 23.
	InterestPayableReceivableLeaves(ctx context.Context) ([]domain.GLSetup, error)
	// InterestIncomeExpenditureLeaves returns leaf GLs prefixed 14 or 24.
	InterestIncomeExpenditureLeaves(ctx context.Context) ([]domain.GLSetup, error)
	// ActiveGLNums returns GLs referenced by sub-products with open accounts.
	ActiveGLNums(ctx context.Context) ([]string, error)
	// BalanceSheetGLNums restricts the active set to balance-sheet codes.
	BalanceSheetGLNums(ctx context.Context) ([]string, error)
}
