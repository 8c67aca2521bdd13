package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/dto"
	"github.com/shopspring/decimal"
)

// transactionHistoryService writes the immutable statement rows consumed by
// the statement-of-accounts generator.
type transactionHistoryService struct {
	historyRepo portsrepo.HistoryRepositoryFacade
	balRepo     portsrepo.BalanceRepositoryFacade
	clock       portssvc.SystemClockSvcFacade
}

// NewTransactionHistoryService creates a new history service.
func NewTransactionHistoryService(
	historyRepo portsrepo.HistoryRepositoryFacade,
	balRepo portsrepo.BalanceRepositoryFacade,
	clock portssvc.SystemClockSvcFacade,
) portssvc.HistorySvcFacade {
	return &transactionHistoryService{
		historyRepo: historyRepo,
		balRepo:     balRepo,
		clock:       clock,
	}
}

var _ portssvc.HistorySvcFacade = (*transactionHistoryService)(nil)

// RecordLeg writes one history row carrying the account balance after the
// transaction so statements render without recomputation.
func (s *transactionHistoryService) RecordLeg(ctx context.Context, leg domain.TransactionLeg, verifiedBy string) error {
	now, err := s.clock.NowTimestamp(ctx)
	if err != nil {
		return err
	}

	balanceAfter := decimal.Zero
	bal, err := s.balRepo.FindLatestAcctBal(ctx, leg.AccountNo, leg.TranDate)
	if err == nil {
		balanceAfter = bal.CurrentBalance
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to read balance for history row of %s: %w", leg.AccountNo, err)
	}

	return s.historyRepo.SaveHistory(ctx, domain.TxnHistory{
		TranID:       leg.TranID,
		AccountNo:    leg.AccountNo,
		TranDate:     leg.TranDate,
		ValueDate:    leg.ValueDate,
		DrCrFlag:     leg.DrCrFlag,
		TranCcy:      leg.TranCcy,
		LcyAmt:       leg.LcyAmt,
		BalanceAfter: balanceAfter,
		Narration:    leg.Narration,
		VerifiedBy:   verifiedBy,
		CreatedAt:    now,
	})
}

func (s *transactionHistoryService) ListByAccount(ctx context.Context, accountNo string, limit int, nextToken *string) (*dto.ListHistoryResponse, error) {
	rows, next, err := s.historyRepo.ListByAccount(ctx, accountNo, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list history for %s: %w", accountNo, err)
	}
	return &dto.ListHistoryResponse{
		AccountNo: accountNo,
		Rows:      dto.ToHistoryRowResponses(rows),
		NextToken: next,
	}, nil
}
