package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/middleware"
	"github.com/bancsuite/coreledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// eodBatchService implements the data-plane EOD jobs (1, 3, 4, 5, 6).
type eodBatchService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	tranRepo     portsrepo.TransactionRepositoryFacade
	balRepo      portsrepo.BalanceRepositoryFacade
	movementRepo portsrepo.GLMovementRepositoryFacade
	accrualRepo  portsrepo.AccrualRepositoryFacade
	balanceSvc   portssvc.BalanceSvcFacade
}

// NewEODBatchService creates the EOD data-plane job service.
func NewEODBatchService(
	accountRepo portsrepo.AccountRepositoryFacade,
	tranRepo portsrepo.TransactionRepositoryFacade,
	balRepo portsrepo.BalanceRepositoryFacade,
	movementRepo portsrepo.GLMovementRepositoryFacade,
	accrualRepo portsrepo.AccrualRepositoryFacade,
	balanceSvc portssvc.BalanceSvcFacade,
) portssvc.EODBatchSvcFacade {
	return &eodBatchService{
		accountRepo:  accountRepo,
		tranRepo:     tranRepo,
		balRepo:      balRepo,
		movementRepo: movementRepo,
		accrualRepo:  accrualRepo,
		balanceSvc:   balanceSvc,
	}
}

var _ portssvc.EODBatchSvcFacade = (*eodBatchService)(nil)

// UpdateAccountBalances writes the (accountNo, systemDate) row for every
// Active account: opening from the previous close, DR/CR summations from the
// day's legs, closing = opening + CR - DR.
func (s *eodBatchService) UpdateAccountBalances(ctx context.Context, systemDate time.Time) (int, error) {
	startOfDay := time.Date(systemDate.Year(), systemDate.Month(), systemDate.Day(), 0, 0, 0, 0, time.UTC)

	type acct struct {
		no        string
		loanLimit decimal.Decimal
		asset     bool
	}
	var accounts []acct

	customers, err := s.accountRepo.ListActiveCustomerAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active customer accounts: %w", err)
	}
	for _, c := range customers {
		accounts = append(accounts, acct{no: c.AccountNo, loanLimit: c.LoanLimit, asset: len(c.GLNum) > 0 && c.GLNum[0] == '2'})
	}

	office, err := s.accountRepo.ListActiveOfficeAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active office accounts: %w", err)
	}
	for _, o := range office {
		accounts = append(accounts, acct{no: o.AccountNo, loanLimit: decimal.Zero})
	}

	processed := 0
	for _, a := range accounts {
		opening, err := s.balanceSvc.PreviousClosingBalance(ctx, a.no, systemDate)
		if err != nil {
			return processed, err
		}
		todayD, err := s.tranRepo.SumByAccountAndDate(ctx, a.no, systemDate, domain.Debit)
		if err != nil {
			return processed, fmt.Errorf("failed to sum debits for %s: %w", a.no, err)
		}
		todayC, err := s.tranRepo.SumByAccountAndDate(ctx, a.no, systemDate, domain.Credit)
		if err != nil {
			return processed, fmt.Errorf("failed to sum credits for %s: %w", a.no, err)
		}

		closing := accounting.ClosingBalance(opening, todayD, todayC)
		available := closing
		if a.asset {
			available = available.Add(a.loanLimit)
		}

		if err := s.balRepo.SaveAcctBal(ctx, domain.AccountBalance{
			AccountNo:        a.no,
			TranDate:         systemDate,
			OpeningBal:       opening,
			DrSummation:      todayD,
			CrSummation:      todayC,
			ClosingBal:       closing,
			CurrentBalance:   closing,
			AvailableBalance: available,
			LastUpdated:      startOfDay,
		}); err != nil {
			return processed, fmt.Errorf("failed to save balance row for %s: %w", a.no, err)
		}
		processed++
	}
	return processed, nil
}

// ProcessAccrualMovements turns each Pending accrual leg into one GL accrual
// movement carrying the running GL balance, then flips the leg to Processed.
func (s *eodBatchService) ProcessAccrualMovements(ctx context.Context, systemDate time.Time) (int, error) {
	pending, err := s.accrualRepo.ListByDateAndStatus(ctx, systemDate, domain.AccrualPending)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending accruals: %w", err)
	}

	processed := 0
	for _, leg := range pending {
		glBal, err := s.balanceSvc.ApplyGLPosting(ctx, leg.GLAccountNo, leg.DrCrFlag, leg.Amount)
		if err != nil {
			return processed, fmt.Errorf("failed to update GL balance for accrual %s: %w", leg.AccrTranID, err)
		}
		if err := s.movementRepo.SaveAccrualMovement(ctx, domain.GLMovementAccrual{
			AccrTranID:   leg.AccrTranID,
			GLNum:        leg.GLAccountNo,
			DrCrFlag:     leg.DrCrFlag,
			TranDate:     leg.TranDate,
			ValueDate:    leg.ValueDate,
			Amount:       leg.Amount,
			BalanceAfter: glBal.ClosingBal,
		}); err != nil {
			return processed, fmt.Errorf("failed to save accrual movement for %s: %w", leg.AccrTranID, err)
		}
		if err := s.accrualRepo.UpdateStatus(ctx, leg.AccrTranID, domain.AccrualProcessed); err != nil {
			return processed, fmt.Errorf("failed to flip accrual %s to Processed: %w", leg.AccrTranID, err)
		}
		processed++
	}
	return processed, nil
}

// ConsolidateGLMovements counts the day's unified movement stream and warns
// when its debits and credits disagree; the hard check happens in trial
// balance generation.
func (s *eodBatchService) ConsolidateGLMovements(ctx context.Context, systemDate time.Time) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	movements, err := s.movementRepo.ListMovementsByDate(ctx, systemDate)
	if err != nil {
		return 0, fmt.Errorf("failed to list movements: %w", err)
	}
	accrMovements, err := s.movementRepo.ListAccrualMovementsByDate(ctx, systemDate)
	if err != nil {
		return 0, fmt.Errorf("failed to list accrual movements: %w", err)
	}

	dr, cr := decimal.Zero, decimal.Zero
	for _, m := range movements {
		if m.DrCrFlag == domain.Debit {
			dr = dr.Add(m.Amount)
		} else {
			cr = cr.Add(m.Amount)
		}
	}
	for _, m := range accrMovements {
		if m.DrCrFlag == domain.Debit {
			dr = dr.Add(m.Amount)
		} else {
			cr = cr.Add(m.Amount)
		}
	}
	if !dr.Equal(cr) {
		logger.Warn("Unified movement stream debits and credits disagree",
			slog.String("dr", dr.StringFixed(2)), slog.String("cr", cr.StringFixed(2)))
	}

	return len(movements) + len(accrMovements), nil
}

// UpdateGLBalances writes one (glNum, systemDate) row per GL in the day's
// unified movement stream. Re-runs overwrite the same rows.
func (s *eodBatchService) UpdateGLBalances(ctx context.Context, systemDate time.Time) (int, error) {
	startOfDay := time.Date(systemDate.Year(), systemDate.Month(), systemDate.Day(), 0, 0, 0, 0, time.UTC)

	glNums, err := s.movementRepo.DistinctGLNumsByDate(ctx, systemDate)
	if err != nil {
		return 0, fmt.Errorf("failed to list GLs with movements: %w", err)
	}
	accrGLNums, err := s.movementRepo.DistinctAccrualGLNumsByDate(ctx, systemDate)
	if err != nil {
		return 0, fmt.Errorf("failed to list GLs with accrual movements: %w", err)
	}

	seen := make(map[string]bool, len(glNums)+len(accrGLNums))
	for _, g := range append(glNums, accrGLNums...) {
		seen[g] = true
	}
	all := make([]string, 0, len(seen))
	for g := range seen {
		all = append(all, g)
	}
	sort.Strings(all)

	processed := 0
	for _, glNum := range all {
		dr, cr, err := s.movementRepo.SumDrCrByGLAndDate(ctx, glNum, systemDate)
		if err != nil {
			return processed, fmt.Errorf("failed to sum movements for GL %s: %w", glNum, err)
		}

		opening := decimal.Zero
		prev, err := s.balRepo.FindLatestGLBal(ctx, glNum, systemDate.AddDate(0, 0, -1))
		if err == nil {
			opening = prev.ClosingBal
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return processed, fmt.Errorf("failed to read previous GL balance for %s: %w", glNum, err)
		}

		closing := accounting.ClosingBalance(opening, dr, cr)
		if err := s.balRepo.SaveGLBal(ctx, domain.GLBalance{
			GLNum:          glNum,
			TranDate:       systemDate,
			OpeningBal:     opening,
			DrSummation:    dr,
			CrSummation:    cr,
			ClosingBal:     closing,
			CurrentBalance: closing,
			LastUpdated:    startOfDay,
		}); err != nil {
			return processed, fmt.Errorf("failed to save GL balance for %s: %w", glNum, err)
		}
		processed++
	}
	return processed, nil
}

// UpdateAccrualBalances writes the per-account accrual balance rows from the
// day's accrual legs.
func (s *eodBatchService) UpdateAccrualBalances(ctx context.Context, systemDate time.Time) (int, error) {
	startOfDay := time.Date(systemDate.Year(), systemDate.Month(), systemDate.Day(), 0, 0, 0, 0, time.UTC)

	accounts, err := s.accrualRepo.DistinctAccountsByDate(ctx, systemDate)
	if err != nil {
		return 0, fmt.Errorf("failed to list accrued accounts: %w", err)
	}

	processed := 0
	for _, accountNo := range accounts {
		dr, err := s.accrualRepo.SumByAccountAndDate(ctx, accountNo, systemDate, domain.Debit)
		if err != nil {
			return processed, fmt.Errorf("failed to sum accrual debits for %s: %w", accountNo, err)
		}
		cr, err := s.accrualRepo.SumByAccountAndDate(ctx, accountNo, systemDate, domain.Credit)
		if err != nil {
			return processed, fmt.Errorf("failed to sum accrual credits for %s: %w", accountNo, err)
		}

		opening := decimal.Zero
		prev, err := s.balRepo.FindLatestAccrualBal(ctx, accountNo, systemDate.AddDate(0, 0, -1))
		if err == nil {
			opening = prev.ClosingBal
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return processed, fmt.Errorf("failed to read previous accrual balance for %s: %w", accountNo, err)
		}

		if err := s.balRepo.SaveAccrualBal(ctx, domain.AccrualBalance{
			AccountNo:   accountNo,
			TranDate:    systemDate,
			OpeningBal:  opening,
			DrSummation: dr,
			CrSummation: cr,
			ClosingBal:  accounting.ClosingBalance(opening, dr, cr),
			LastUpdated: startOfDay,
		}); err != nil {
			return processed, fmt.Errorf("failed to save accrual balance for %s: %w", accountNo, err)
		}
		processed++
	}
	return processed, nil
}
