package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/middleware"
)

// maxOfficeAccountsPerGL caps the 2-digit office account sequence.
const maxOfficeAccountsPerGL = 99

// accountService is the unified registry over the customer and office
// account masters. Lookups hand out value snapshots; the underlying records
// are owned by the master-data layer.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account registry service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) Resolve(ctx context.Context, accountNo string) (*domain.AccountInfo, error) {
	return s.accountRepo.FindAccountInfo(ctx, accountNo)
}

func (s *accountService) Exists(ctx context.Context, accountNo string) (bool, error) {
	return s.accountRepo.AccountExists(ctx, accountNo)
}

func (s *accountService) ListActiveCustomerAccounts(ctx context.Context) ([]domain.CustomerAccount, error) {
	return s.accountRepo.ListActiveCustomerAccounts(ctx)
}

// NextCustomerAccountNo mints a 12-char customer account number: the first 8
// digits derive from the customer id, the 9th is the product category and
// the trailing 3 are the per-GL sequence.
func (s *accountService) NextCustomerAccountNo(ctx context.Context, custID, productCategory, glNum string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(productCategory) != 1 {
		return "", fmt.Errorf("%w: product category must be a single digit", apperrors.ErrValidation)
	}
	custPart := custID
	if len(custPart) > 8 {
		custPart = custPart[:8]
	} else if len(custPart) < 8 {
		custPart = strings.Repeat("0", 8-len(custPart)) + custPart
	}

	seq, err := s.accountRepo.NextAccountSeq(ctx, glNum)
	if err != nil {
		return "", fmt.Errorf("failed to advance account sequence for GL %s: %w", glNum, err)
	}
	if seq > 999 {
		return "", fmt.Errorf("%w: customer account sequence exhausted for GL %s", apperrors.ErrBusinessRule, glNum)
	}

	accountNo := fmt.Sprintf("%s%s%03d", custPart, productCategory, seq)
	logger.Debug("Generated customer account number", slog.String("account_no", accountNo), slog.String("gl_num", glNum))
	return accountNo, nil
}

// NextOfficeAccountNo mints "9" + GL + 2-digit sequence. A GL carries at
// most 99 office accounts; the 100th is refused.
func (s *accountService) NextOfficeAccountNo(ctx context.Context, glNum string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	seq, err := s.accountRepo.NextAccountSeq(ctx, glNum)
	if err != nil {
		return "", fmt.Errorf("failed to advance account sequence for GL %s: %w", glNum, err)
	}
	if seq > maxOfficeAccountsPerGL {
		logger.Warn("Office account sequence exhausted", slog.String("gl_num", glNum), slog.Int("seq", seq))
		return "", fmt.Errorf("%w: office account sequence exhausted for GL %s (max %d)", apperrors.ErrBusinessRule, glNum, maxOfficeAccountsPerGL)
	}

	accountNo := fmt.Sprintf("9%s%02d", glNum, seq)
	logger.Debug("Generated office account number", slog.String("account_no", accountNo), slog.String("gl_num", glNum))
	return accountNo, nil
}
