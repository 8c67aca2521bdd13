package repositories

import (
	"context"

	"github.com/bancsuite/coreledger/internal/core/domain"
)

// GLSetupRepositoryFacade reads the chart of accounts. The chart is
// read-only during ledger operation.
type GLSetupRepositoryFacade interface {
	FindGL(ctx context.Context, glNum string) (*domain.GLSetup, error)
	ListGLsByLayer(ctx context.Context, layerID int) ([]domain.GLSetup, error)
	ListGLsByLayerAndParent(ctx context.Context, layerID int, parentGLNum string) ([]domain.GLSetup, error)
	// ListActiveGLNums returns leaf GLs referenced by at least one
	// sub-product that has one or more open accounts.
	ListActiveGLNums(ctx context.Context) ([]string, error)
	// ListBalanceSheetGLNums restricts the active set to balance-sheet
	// codes: prefixes 1 and 2 plus accrued interest GLs.
	ListBalanceSheetGLNums(ctx context.Context) ([]string, error)
}
