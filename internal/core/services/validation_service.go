package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/middleware"
	"github.com/shopspring/decimal"
)

// validationService enforces the per-leg debit/credit policy:
//
//   - Customer accounts: debits only up to the available balance, unless the
//     owning GL is an overdraft leaf. Credits unrestricted.
//   - Office asset accounts (GL 2*): no balance checks.
//   - Office liability accounts (GL 1*): the balance may never go negative.
//   - Other office accounts: conservative, resulting balance must stay >= 0.
//
// Inactive, Closed and Dormant accounts reject everything.
type validationService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	balRepo     portsrepo.BalanceRepositoryFacade
	balanceSvc  portssvc.BalanceSvcFacade
	clock       portssvc.SystemClockSvcFacade
}

// NewValidationService creates a new per-leg validation service.
func NewValidationService(
	accountRepo portsrepo.AccountRepositoryFacade,
	balRepo portsrepo.BalanceRepositoryFacade,
	balanceSvc portssvc.BalanceSvcFacade,
	clock portssvc.SystemClockSvcFacade,
) portssvc.ValidationSvcFacade {
	return &validationService{
		accountRepo: accountRepo,
		balRepo:     balRepo,
		balanceSvc:  balanceSvc,
		clock:       clock,
	}
}

var _ portssvc.ValidationSvcFacade = (*validationService)(nil)

func (s *validationService) ValidateLeg(ctx context.Context, accountNo string, flag domain.DrCrFlag, amount decimal.Decimal) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	info, err := s.accountRepo.FindAccountInfo(ctx, accountNo)
	if err != nil {
		return err
	}
	if info.Status != domain.StatusActive {
		return fmt.Errorf("%w: account %s is %s", apperrors.ErrBusinessRule, accountNo, info.Status)
	}

	if info.IsCustomer() {
		return s.validateCustomerLeg(ctx, info, flag, amount)
	}
	return s.validateOfficeLeg(ctx, logger, info, flag, amount)
}

func (s *validationService) validateCustomerLeg(ctx context.Context, info *domain.AccountInfo, flag domain.DrCrFlag, amount decimal.Decimal) error {
	if flag != domain.Debit {
		return nil
	}
	if domain.IsOverdraftLeaf(info.GLNum) {
		// Overdraft accounts may run negative.
		return nil
	}

	available, err := s.balanceSvc.AvailableBalance(ctx, info.AccountNo)
	if err != nil {
		return err
	}
	if amount.GreaterThan(available) {
		return fmt.Errorf("%w: insufficient balance for account %s (available %s, debit %s)",
			apperrors.ErrBusinessRule, info.AccountNo, available.StringFixed(2), amount.StringFixed(2))
	}
	return nil
}

func (s *validationService) validateOfficeLeg(ctx context.Context, logger *slog.Logger, info *domain.AccountInfo, flag domain.DrCrFlag, amount decimal.Decimal) error {
	// Asset office accounts carry debit balances as a matter of course and
	// are never balance-checked.
	if info.IsAsset() {
		return nil
	}

	current := decimal.Zero
	systemDate, err := s.clock.Now(ctx)
	if err != nil {
		return err
	}
	bal, err := s.balRepo.FindLatestAcctBal(ctx, info.AccountNo, systemDate)
	if err == nil {
		current = bal.CurrentBalance
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to read balance for office account %s: %w", info.AccountNo, err)
	}

	resulting := current.Add(amount)
	if flag == domain.Debit {
		resulting = current.Sub(amount)
	}

	if info.IsLiability() {
		if flag == domain.Debit && resulting.IsNegative() {
			return fmt.Errorf("%w: office liability account %s cannot go negative (current %s, debit %s)",
				apperrors.ErrBusinessRule, info.AccountNo, current.StringFixed(2), amount.StringFixed(2))
		}
		return nil
	}

	// Neither 1* nor 2*: conservative, keep the balance non-negative.
	if resulting.IsNegative() {
		logger.Warn("Office account of unclassified GL would go negative",
			slog.String("account_no", info.AccountNo), slog.String("gl_num", info.GLNum))
		return fmt.Errorf("%w: office account %s would go negative (resulting %s)",
			apperrors.ErrBusinessRule, info.AccountNo, resulting.StringFixed(2))
	}
	return nil
}
