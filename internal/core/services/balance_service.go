package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// balanceService owns the daily balance rows and the real-time available
// balance computation.
type balanceService struct {
	balRepo     portsrepo.BalanceRepositoryFacade
	tranRepo    portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	clock       portssvc.SystemClockSvcFacade
}

// NewBalanceService creates a new balance store service.
func NewBalanceService(
	balRepo portsrepo.BalanceRepositoryFacade,
	tranRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	clock portssvc.SystemClockSvcFacade,
) portssvc.BalanceSvcFacade {
	return &balanceService{
		balRepo:     balRepo,
		tranRepo:    tranRepo,
		accountRepo: accountRepo,
		clock:       clock,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// PreviousClosingBalance resolves the opening figure for systemDate:
// the row at systemDate-1 if present, else the row at the greatest earlier
// tran date, else zero for a new account.
func (s *balanceService) PreviousClosingBalance(ctx context.Context, accountNo string, systemDate time.Time) (decimal.Decimal, error) {
	prevDay := systemDate.AddDate(0, 0, -1)

	bal, err := s.balRepo.FindAcctBal(ctx, accountNo, prevDay)
	if err == nil {
		return bal.ClosingBal, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to read balance row for %s: %w", accountNo, err)
	}

	bal, err = s.balRepo.FindLatestAcctBal(ctx, accountNo, prevDay)
	if err == nil {
		return bal.ClosingBal, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to read latest balance row for %s: %w", accountNo, err)
	}

	// New account: no history before systemDate.
	return decimal.Zero, nil
}

// ComputedBalance is the real-time figure without the loan limit:
// previous close + today's credits - today's debits. Only legs in Entry,
// Posted or Verified status are summed.
func (s *balanceService) ComputedBalance(ctx context.Context, accountNo string) (decimal.Decimal, error) {
	systemDate, err := s.clock.Now(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	opening, err := s.PreviousClosingBalance(ctx, accountNo, systemDate)
	if err != nil {
		return decimal.Zero, err
	}

	todayD, err := s.tranRepo.SumByAccountAndDate(ctx, accountNo, systemDate, domain.Debit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum debits for %s: %w", accountNo, err)
	}
	todayC, err := s.tranRepo.SumByAccountAndDate(ctx, accountNo, systemDate, domain.Credit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum credits for %s: %w", accountNo, err)
	}

	return opening.Add(todayC).Sub(todayD), nil
}

// AvailableBalance adds the loan limit on asset accounts to the computed
// balance.
func (s *balanceService) AvailableBalance(ctx context.Context, accountNo string) (decimal.Decimal, error) {
	computed, err := s.ComputedBalance(ctx, accountNo)
	if err != nil {
		return decimal.Zero, err
	}

	info, err := s.accountRepo.FindAccountInfo(ctx, accountNo)
	if err != nil {
		return decimal.Zero, err
	}
	if info.IsAsset() {
		computed = computed.Add(info.LoanLimit)
	}
	return computed, nil
}

// ApplyAcctPosting mutates today's balance row for one posted leg, creating
// it with the carried-forward opening balance on first posting of the day.
func (s *balanceService) ApplyAcctPosting(ctx context.Context, accountNo string, flag domain.DrCrFlag, amount decimal.Decimal) (*domain.AccountBalance, error) {
	systemDate, err := s.clock.Now(ctx)
	if err != nil {
		return nil, err
	}
	now, err := s.clock.NowTimestamp(ctx)
	if err != nil {
		return nil, err
	}

	opening, err := s.PreviousClosingBalance(ctx, accountNo, systemDate)
	if err != nil {
		return nil, err
	}
	if err := s.balRepo.EnsureAcctBal(ctx, accountNo, systemDate, opening, now); err != nil {
		return nil, fmt.Errorf("failed to ensure balance row for %s: %w", accountNo, err)
	}

	info, err := s.accountRepo.FindAccountInfo(ctx, accountNo)
	if err != nil {
		return nil, err
	}
	loanLimit := decimal.Zero
	if info.IsAsset() {
		loanLimit = info.LoanLimit
	}

	return s.balRepo.ApplyAcctPosting(ctx, accountNo, systemDate, flag, accounting.Round(amount), loanLimit, now)
}

// ApplyGLPosting mirrors ApplyAcctPosting for the owning GL's daily row and
// returns the running balance carried onto the GL movement.
func (s *balanceService) ApplyGLPosting(ctx context.Context, glNum string, flag domain.DrCrFlag, amount decimal.Decimal) (*domain.GLBalance, error) {
	systemDate, err := s.clock.Now(ctx)
	if err != nil {
		return nil, err
	}
	now, err := s.clock.NowTimestamp(ctx)
	if err != nil {
		return nil, err
	}

	opening := decimal.Zero
	prev, err := s.balRepo.FindLatestGLBal(ctx, glNum, systemDate.AddDate(0, 0, -1))
	if err == nil {
		opening = prev.ClosingBal
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read GL balance for %s: %w", glNum, err)
	}

	if err := s.balRepo.EnsureGLBal(ctx, glNum, systemDate, opening, now); err != nil {
		return nil, fmt.Errorf("failed to ensure GL balance row for %s: %w", glNum, err)
	}

	return s.balRepo.ApplyGLPosting(ctx, glNum, systemDate, flag, accounting.Round(amount), now)
}
