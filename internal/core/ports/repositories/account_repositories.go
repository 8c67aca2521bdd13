package repositories

import (
	"context"

	"github.com/bancsuite/coreledger/internal/core/domain"
)

// AccountRepositoryFacade is the unified lookup over the customer and office
// account masters plus the per-GL account number sequence.
type AccountRepositoryFacade interface {
	// FindAccountInfo resolves accountNo against both masters and returns
	// the unified snapshot, or apperrors.ErrNotFound.
	FindAccountInfo(ctx context.Context, accountNo string) (*domain.AccountInfo, error)
	AccountExists(ctx context.Context, accountNo string) (bool, error)
	ListActiveCustomerAccounts(ctx context.Context) ([]domain.CustomerAccount, error)
	ListActiveOfficeAccounts(ctx context.Context) ([]domain.OfficeAccount, error)
	FindCustomerAccount(ctx context.Context, accountNo string) (*domain.CustomerAccount, error)
	// NextAccountSeq increments and returns the per-GL sequence under the
	// row lock that serializes concurrent account opening.
	NextAccountSeq(ctx context.Context, glNum string) (int, error)
	CountOfficeAccountsByGL(ctx context.Context, glNum string) (int, error)
}
