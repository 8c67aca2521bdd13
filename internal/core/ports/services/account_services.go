package services

import (
	"context"

	"github.com/bancsuite/coreledger/internal/core/domain"
)

// AccountSvcFacade is the unified account registry over customer and office
// masters.
type AccountSvcFacade interface {
	// Resolve returns a value snapshot for accountNo, or
	// apperrors.ErrNotFound.
	Resolve(ctx context.Context, accountNo string) (*domain.AccountInfo, error)
	Exists(ctx context.Context, accountNo string) (bool, error)
	ListActiveCustomerAccounts(ctx context.Context) ([]domain.CustomerAccount, error)
	// NextCustomerAccountNo mints a 12-char customer account number:
	// 8 customer-id digits, 1 product category digit, 3 sequence digits.
	NextCustomerAccountNo(ctx context.Context, custID string, productCategory string, glNum string) (string, error)
	// NextOfficeAccountNo mints "9" + GL + 2-digit sequence; the 100th
	// account for a GL is refused.
	NextOfficeAccountNo(ctx context.Context, glNum string) (string, error)
}
