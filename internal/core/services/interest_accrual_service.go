package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/dto"
	"github.com/bancsuite/coreledger/internal/middleware"
	"github.com/bancsuite/coreledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// interestAccrualService runs the daily interest accrual batch. For every
// Active customer account under a 1* or 2* GL it emits two balanced accrual
// legs carrying the sub-product's interest GLs.
type interestAccrualService struct {
	accountRepo    portsrepo.AccountRepositoryFacade
	subProductRepo portsrepo.SubProductRepositoryFacade
	balRepo        portsrepo.BalanceRepositoryFacade
	accrualRepo    portsrepo.AccrualRepositoryFacade
	defaultCcy     string
}

// NewInterestAccrualService creates the accrual batch service.
func NewInterestAccrualService(
	accountRepo portsrepo.AccountRepositoryFacade,
	subProductRepo portsrepo.SubProductRepositoryFacade,
	balRepo portsrepo.BalanceRepositoryFacade,
	accrualRepo portsrepo.AccrualRepositoryFacade,
	defaultCcy string,
) portssvc.InterestAccrualSvcFacade {
	return &interestAccrualService{
		accountRepo:    accountRepo,
		subProductRepo: subProductRepo,
		balRepo:        balRepo,
		accrualRepo:    accrualRepo,
		defaultCcy:     defaultCcy,
	}
}

var _ portssvc.InterestAccrualSvcFacade = (*interestAccrualService)(nil)

// RunDailyAccruals processes every Active customer account. Per-account
// failures are collected and reported; the batch never aborts on one
// account.
func (s *interestAccrualService) RunDailyAccruals(ctx context.Context, accrualDate time.Time) (*dto.AccrualRunResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Re-runs replace the date's legs wholesale; the job gate keeps this off
	// the path of an already-succeeded run.
	if deleted, err := s.accrualRepo.DeleteByDate(ctx, accrualDate); err != nil {
		return nil, fmt.Errorf("failed to clear accrual legs for re-run: %w", err)
	} else if deleted > 0 {
		logger.Info("Cleared accrual legs from a prior attempt", slog.Int64("deleted", deleted))
	}

	accounts, err := s.accountRepo.ListActiveCustomerAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active accounts: %w", err)
	}

	result := &dto.AccrualRunResult{}
	if len(accounts) == 0 {
		logger.Info("No active customer accounts for accrual processing")
		return result, nil
	}

	maxSeq, err := s.accrualRepo.MaxSeqByDate(ctx, accrualDate)
	if err != nil {
		return nil, fmt.Errorf("failed to read accrual sequence for %s: %w", accrualDate.Format("2006-01-02"), err)
	}
	seq := maxSeq + 1

	for _, account := range accounts {
		created, err := s.processAccount(ctx, account, accrualDate, seq)
		if err != nil {
			logger.Error("Accrual failed for account",
				slog.String("account_no", account.AccountNo), slog.String("error", err.Error()))
			result.Errors = append(result.Errors, dto.AccrualAccountError{
				AccountNo: account.AccountNo,
				Message:   err.Error(),
			})
			continue
		}
		if created > 0 {
			result.EntriesCreated += created
			result.AccountsProcessed++
			seq++
		}
	}

	logger.Info("Interest accrual batch completed",
		slog.Int("entries_created", result.EntriesCreated),
		slog.Int("accounts_processed", result.AccountsProcessed),
		slog.Int("errors", len(result.Errors)))
	return result, nil
}

// processAccount emits the two accrual legs for one account, or 0 when the
// account is skipped (no rate, zero balance, zero interest).
func (s *interestAccrualService) processAccount(ctx context.Context, account domain.CustomerAccount, accrualDate time.Time, seq int) (int, error) {
	glNum := account.GLNum
	isLiability := strings.HasPrefix(glNum, "1")
	isAsset := strings.HasPrefix(glNum, "2")
	if !isLiability && !isAsset {
		return 0, nil
	}

	subProduct, err := s.subProductRepo.FindSubProduct(ctx, account.SubProductID)
	if err != nil {
		return 0, fmt.Errorf("sub-product %d: %w", account.SubProductID, err)
	}

	rate, err := s.effectiveRate(ctx, subProduct, glNum, accrualDate)
	if err != nil {
		return 0, err
	}
	if rate.IsZero() {
		return 0, nil
	}

	bal, err := s.balRepo.FindAcctBal(ctx, account.AccountNo, accrualDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, fmt.Errorf("%w: balance row missing for %s on %s",
				apperrors.ErrConfiguration, account.AccountNo, accrualDate.Format("2006-01-02"))
		}
		return 0, fmt.Errorf("failed to read balance row for %s: %w", account.AccountNo, err)
	}
	if bal.ClosingBal.IsZero() {
		return 0, nil
	}

	accrued := accounting.DailyInterest(bal.ClosingBal, rate)
	if accrued.IsZero() {
		return 0, nil
	}

	debitGL, creditGL, debitNarr, creditNarr, err := s.selectAccrualGLs(subProduct, isLiability, account.AccountNo)
	if err != nil {
		return 0, err
	}

	debitID, err := domain.NewAccrTranID(accrualDate, seq, 1)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrBusinessRule, err)
	}
	creditID, err := domain.NewAccrTranID(accrualDate, seq, 2)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrBusinessRule, err)
	}

	legs := []domain.InterestAccrual{
		s.newAccrualLeg(debitID, account.AccountNo, accrualDate, rate, accrued, domain.Debit, debitGL, debitNarr),
		s.newAccrualLeg(creditID, account.AccountNo, accrualDate, rate, accrued, domain.Credit, creditGL, creditNarr),
	}
	if err := s.accrualRepo.SaveAccruals(ctx, legs); err != nil {
		return 0, fmt.Errorf("failed to save accrual legs for %s: %w", account.AccountNo, err)
	}
	return len(legs), nil
}

// effectiveRate resolves the rate per account type. Liability Deal accounts
// (GL 1102*) use the fixed rate captured at opening; everything else uses
// the latest rate for the sub-product's interest code plus the increment.
func (s *interestAccrualService) effectiveRate(ctx context.Context, subProduct *domain.SubProduct, glNum string, asOf time.Time) (decimal.Decimal, error) {
	isDeal := strings.HasPrefix(glNum, "1102") || strings.HasPrefix(glNum, "2102")

	if isDeal && strings.HasPrefix(subProduct.CumGLNum, "1") {
		if subProduct.EffectiveInterestRate != nil {
			return *subProduct.EffectiveInterestRate, nil
		}
	}

	if subProduct.InttCode == "" {
		return decimal.Zero, fmt.Errorf("%w: no interest code configured for sub-product %s",
			apperrors.ErrConfiguration, subProduct.SubProductCode)
	}

	rate, err := s.subProductRepo.FindLatestRate(ctx, subProduct.InttCode, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: no rate configured for interest code %s as of %s",
				apperrors.ErrConfiguration, subProduct.InttCode, asOf.Format("2006-01-02"))
		}
		return decimal.Zero, fmt.Errorf("failed to look up rate for %s: %w", subProduct.InttCode, err)
	}

	return rate.Rate.Add(subProduct.InterestIncrement), nil
}

// selectAccrualGLs picks the debit and credit GLs from the sub-product with
// mutual fallback. Liability: Dr expenditure / Cr payable. Asset: Dr
// receivable / Cr income.
func (s *interestAccrualService) selectAccrualGLs(subProduct *domain.SubProduct, isLiability bool, accountNo string) (debitGL, creditGL, debitNarr, creditNarr string, err error) {
	incomeExp := strings.TrimSpace(subProduct.InttIncomeExpenditureGLNum)
	recvPay := strings.TrimSpace(subProduct.InttReceivablePayableGLNum)
	if incomeExp == "" && recvPay == "" {
		return "", "", "", "", fmt.Errorf("%w: no interest GL configured for sub-product %s",
			apperrors.ErrConfiguration, subProduct.SubProductCode)
	}

	if isLiability {
		debitGL, creditGL = incomeExp, recvPay
		if debitGL == "" {
			debitGL = recvPay
		}
		if creditGL == "" {
			creditGL = incomeExp
		}
		return debitGL, creditGL,
			"Interest Expenditure Accrual - " + accountNo,
			"Interest Payable Accrual - " + accountNo, nil
	}

	debitGL, creditGL = recvPay, incomeExp
	if debitGL == "" {
		debitGL = incomeExp
	}
	if creditGL == "" {
		creditGL = recvPay
	}
	return debitGL, creditGL,
		"Interest Receivable Accrual - " + accountNo,
		"Interest Income Accrual - " + accountNo, nil
}

func (s *interestAccrualService) newAccrualLeg(id, accountNo string, accrualDate time.Time, rate, amount decimal.Decimal, flag domain.DrCrFlag, glAccountNo, narration string) domain.InterestAccrual {
	return domain.InterestAccrual{
		AccrTranID:   id,
		AccountNo:    accountNo,
		AccrualDate:  accrualDate,
		TranDate:     accrualDate,
		ValueDate:    accrualDate,
		InttRate:     rate,
		Amount:       amount,
		DrCrFlag:     flag,
		GLAccountNo:  glAccountNo,
		TranCcy:      s.defaultCcy,
		FcyAmt:       amount,
		ExchangeRate: decimal.NewFromInt(1),
		LcyAmt:       amount,
		Narration:    narration,
		Status:       domain.AccrualPending,
		TranStatus:   domain.TranVerified,
	}
}
