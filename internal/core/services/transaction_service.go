package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
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

// transactionService drives the Entry -> Posted -> Verified state machine
// over multi-leg double-entry transactions.
type transactionService struct {
	tranRepo      portsrepo.TransactionRepositoryFacade
	movementRepo  portsrepo.GLMovementRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	balanceSvc    portssvc.BalanceSvcFacade
	validationSvc portssvc.ValidationSvcFacade
	historySvc    portssvc.HistorySvcFacade
	clock         portssvc.SystemClockSvcFacade
	txm           portsrepo.TxManager
}

// NewTransactionService creates the transaction engine.
func NewTransactionService(
	tranRepo portsrepo.TransactionRepositoryFacade,
	movementRepo portsrepo.GLMovementRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	balanceSvc portssvc.BalanceSvcFacade,
	validationSvc portssvc.ValidationSvcFacade,
	historySvc portssvc.HistorySvcFacade,
	clock portssvc.SystemClockSvcFacade,
	txm portsrepo.TxManager,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		tranRepo:      tranRepo,
		movementRepo:  movementRepo,
		accountRepo:   accountRepo,
		balanceSvc:    balanceSvc,
		validationSvc: validationSvc,
		historySvc:    historySvc,
		clock:         clock,
		txm:           txm,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// Create validates the request and stores the legs in Entry status (Future
// when the value date has not arrived). Nothing beyond the legs themselves
// is mutated.
func (s *transactionService) Create(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: transaction must have at least two legs", apperrors.ErrBusinessRule)
	}

	tranDate, err := s.clock.Now(ctx)
	if err != nil {
		return nil, err
	}

	totalD, totalC := decimal.Zero, decimal.Zero
	for _, line := range req.Lines {
		amount := accounting.Round(line.LcyAmt)
		if !amount.IsPositive() {
			return nil, fmt.Errorf("%w: leg amount must be positive for account %s", apperrors.ErrBusinessRule, line.AccountNo)
		}
		if line.DrCrFlag == domain.Debit {
			totalD = totalD.Add(amount)
		} else {
			totalC = totalC.Add(amount)
		}
	}
	if !totalD.Equal(totalC) {
		return nil, fmt.Errorf("%w: debit total %s does not equal credit total %s",
			apperrors.ErrBusinessRule, totalD.StringFixed(2), totalC.StringFixed(2))
	}

	// Per-leg policy against the hypothetical resulting balances; nothing is
	// committed yet.
	for _, line := range req.Lines {
		if err := s.validationSvc.ValidateLeg(ctx, line.AccountNo, line.DrCrFlag, accounting.Round(line.LcyAmt)); err != nil {
			return nil, fmt.Errorf("leg validation failed for account %s: %w", line.AccountNo, err)
		}
	}

	baseTranID, err := s.newTranID(ctx, tranDate)
	if err != nil {
		return nil, err
	}

	status := domain.TranEntry
	if req.ValueDate.After(tranDate) {
		status = domain.TranFuture
	}

	now, err := s.clock.NowTimestamp(ctx)
	if err != nil {
		return nil, err
	}

	legs := make([]domain.TransactionLeg, len(req.Lines))
	for i, line := range req.Lines {
		lcy := accounting.Round(line.LcyAmt)
		fcy := accounting.Round(line.FcyAmt)
		rate := line.ExchangeRate
		if fcy.IsZero() {
			fcy = lcy
		}
		if rate.IsZero() {
			rate = decimal.NewFromInt(1)
		}
		narration := line.Narration
		if narration == "" {
			narration = req.Narration
		}
		legs[i] = domain.TransactionLeg{
			TranID:       domain.LegTranID(baseTranID, i+1),
			TranDate:     tranDate,
			ValueDate:    req.ValueDate,
			DrCrFlag:     line.DrCrFlag,
			TranStatus:   status,
			AccountNo:    line.AccountNo,
			TranCcy:      line.TranCcy,
			FcyAmt:       fcy,
			ExchangeRate: rate,
			LcyAmt:       lcy,
			Narration:    narration,
			CreatedAt:    now,
		}
	}

	if err := s.tranRepo.SaveLegs(ctx, legs); err != nil {
		logger.Error("Failed to save transaction legs", slog.String("error", err.Error()), slog.String("tran_id", baseTranID))
		return nil, fmt.Errorf("failed to save transaction %s: %w", baseTranID, err)
	}

	logger.Info("Transaction created", slog.String("tran_id", baseTranID), slog.String("status", string(status)))
	return s.buildResponse(ctx, baseTranID, req.Narration, legs)
}

// Post transitions the legs from Entry to Posted inside one unit of work:
// balances mutate and GL movements are appended, or nothing is.
func (s *transactionService) Post(ctx context.Context, tranID string) (*dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var legs []domain.TransactionLeg
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		legs, err = s.tranRepo.FindLegsByBaseAndStatus(ctx, tranID, domain.TranEntry)
		if err != nil {
			return fmt.Errorf("failed to load legs for %s: %w", tranID, err)
		}
		if len(legs) == 0 {
			all, err := s.tranRepo.FindLegsByBase(ctx, tranID)
			if err != nil {
				return fmt.Errorf("failed to load legs for %s: %w", tranID, err)
			}
			if len(all) == 0 {
				return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, tranID)
			}
			return fmt.Errorf("%w: transaction %s is not in Entry status", apperrors.ErrConflict, tranID)
		}

		if !accounting.IsBalanced(legs) {
			return fmt.Errorf("%w: cannot post unbalanced transaction %s", apperrors.ErrBusinessRule, tranID)
		}

		// Re-check the per-leg policy under current balances.
		for _, leg := range legs {
			if err := s.validationSvc.ValidateLeg(ctx, leg.AccountNo, leg.DrCrFlag, leg.LcyAmt); err != nil {
				return fmt.Errorf("leg validation failed for account %s: %w", leg.AccountNo, err)
			}
		}

		for i := range legs {
			if err := s.applyLeg(ctx, &legs[i], domain.TranPosted); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction posted", slog.String("tran_id", tranID))
	return s.buildResponse(ctx, tranID, legs[0].Narration, legs)
}

// applyLeg flips one leg to the target status, mutates its account and GL
// balances and appends the GL movement carrying the running GL balance.
func (s *transactionService) applyLeg(ctx context.Context, leg *domain.TransactionLeg, status domain.TranStatus) error {
	if err := s.tranRepo.UpdateLegStatus(ctx, leg.TranID, status); err != nil {
		return fmt.Errorf("failed to update status of leg %s: %w", leg.TranID, err)
	}
	leg.TranStatus = status

	if _, err := s.balanceSvc.ApplyAcctPosting(ctx, leg.AccountNo, leg.DrCrFlag, leg.LcyAmt); err != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", leg.AccountNo, err)
	}

	info, err := s.accountRepo.FindAccountInfo(ctx, leg.AccountNo)
	if err != nil {
		return err
	}
	glBal, err := s.balanceSvc.ApplyGLPosting(ctx, info.GLNum, leg.DrCrFlag, leg.LcyAmt)
	if err != nil {
		return fmt.Errorf("failed to update GL balance for %s: %w", info.GLNum, err)
	}

	if err := s.movementRepo.SaveMovement(ctx, domain.GLMovement{
		TranID:       leg.TranID,
		GLNum:        info.GLNum,
		DrCrFlag:     leg.DrCrFlag,
		TranDate:     leg.TranDate,
		ValueDate:    leg.ValueDate,
		Amount:       leg.LcyAmt,
		BalanceAfter: glBal.ClosingBal,
	}); err != nil {
		return fmt.Errorf("failed to save GL movement for leg %s: %w", leg.TranID, err)
	}
	return nil
}

// Verify flips the legs to Verified and writes one statement history row per
// leg. Verifying an already-verified transaction reports a conflict.
func (s *transactionService) Verify(ctx context.Context, tranID string, verifierUserID string) (*dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	legs, err := s.tranRepo.FindLegsByBase(ctx, tranID)
	if err != nil {
		return nil, fmt.Errorf("failed to load legs for %s: %w", tranID, err)
	}
	if len(legs) == 0 {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, tranID)
	}

	pending := make([]domain.TransactionLeg, 0, len(legs))
	for _, leg := range legs {
		if leg.TranStatus != domain.TranVerified {
			pending = append(pending, leg)
		}
	}
	if len(pending) == 0 {
		return nil, fmt.Errorf("%w: transaction %s is already verified", apperrors.ErrConflict, tranID)
	}

	err = s.txm.WithinTx(ctx, func(ctx context.Context) error {
		for i := range pending {
			if err := s.tranRepo.UpdateLegStatus(ctx, pending[i].TranID, domain.TranVerified); err != nil {
				return fmt.Errorf("failed to verify leg %s: %w", pending[i].TranID, err)
			}
			pending[i].TranStatus = domain.TranVerified
			if err := s.historySvc.RecordLeg(ctx, pending[i], verifierUserID); err != nil {
				return fmt.Errorf("failed to record history for leg %s: %w", pending[i].TranID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range legs {
		legs[i].TranStatus = domain.TranVerified
	}
	logger.Info("Transaction verified", slog.String("tran_id", tranID))
	return s.buildResponse(ctx, tranID, legs[0].Narration, legs)
}

// Reverse creates an inverse transaction: flipped flags, equal amounts,
// verified immediately, with opposite-direction balance and GL effects. The
// original legs are never mutated.
func (s *transactionService) Reverse(ctx context.Context, tranID string, reason string) (*dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	originals, err := s.tranRepo.FindLegsByBase(ctx, tranID)
	if err != nil {
		return nil, fmt.Errorf("failed to load legs for %s: %w", tranID, err)
	}
	if len(originals) == 0 {
		return nil, fmt.Errorf("%w: original transaction %s", apperrors.ErrNotFound, tranID)
	}

	tranDate, err := s.clock.Now(ctx)
	if err != nil {
		return nil, err
	}
	now, err := s.clock.NowTimestamp(ctx)
	if err != nil {
		return nil, err
	}
	reversalTranID, err := s.newTranID(ctx, tranDate)
	if err != nil {
		return nil, err
	}

	pointingID := tranID
	reversals := make([]domain.TransactionLeg, len(originals))
	for i, orig := range originals {
		reversals[i] = domain.TransactionLeg{
			TranID:       domain.LegTranID(reversalTranID, i+1),
			TranDate:     tranDate,
			ValueDate:    orig.ValueDate,
			DrCrFlag:     orig.DrCrFlag.Opposite(),
			TranStatus:   domain.TranVerified,
			AccountNo:    orig.AccountNo,
			TranCcy:      orig.TranCcy,
			FcyAmt:       orig.FcyAmt,
			ExchangeRate: orig.ExchangeRate,
			LcyAmt:       orig.LcyAmt,
			Narration:    fmt.Sprintf("REVERSAL: %s (Original: %s)", reason, orig.TranID),
			PointingID:   &pointingID,
			CreatedAt:    now,
		}
	}

	err = s.txm.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.tranRepo.SaveLegs(ctx, reversals); err != nil {
			return fmt.Errorf("failed to save reversal legs for %s: %w", reversalTranID, err)
		}
		for i := range reversals {
			leg := &reversals[i]
			if _, err := s.balanceSvc.ApplyAcctPosting(ctx, leg.AccountNo, leg.DrCrFlag, leg.LcyAmt); err != nil {
				return fmt.Errorf("failed to update balance for account %s: %w", leg.AccountNo, err)
			}
			info, err := s.accountRepo.FindAccountInfo(ctx, leg.AccountNo)
			if err != nil {
				return err
			}
			glBal, err := s.balanceSvc.ApplyGLPosting(ctx, info.GLNum, leg.DrCrFlag, leg.LcyAmt)
			if err != nil {
				return fmt.Errorf("failed to update GL balance for %s: %w", info.GLNum, err)
			}
			if err := s.movementRepo.SaveMovement(ctx, domain.GLMovement{
				TranID:       leg.TranID,
				GLNum:        info.GLNum,
				DrCrFlag:     leg.DrCrFlag,
				TranDate:     leg.TranDate,
				ValueDate:    leg.ValueDate,
				Amount:       leg.LcyAmt,
				BalanceAfter: glBal.ClosingBal,
			}); err != nil {
				return fmt.Errorf("failed to save GL movement for leg %s: %w", leg.TranID, err)
			}
			if err := s.historySvc.RecordLeg(ctx, *leg, "SYSTEM"); err != nil {
				return fmt.Errorf("failed to record history for leg %s: %w", leg.TranID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction reversed",
		slog.String("original_tran_id", tranID), slog.String("reversal_tran_id", reversalTranID))
	return s.buildResponse(ctx, reversalTranID, "REVERSAL: "+reason, reversals)
}

func (s *transactionService) Get(ctx context.Context, tranID string) (*dto.TransactionResponse, error) {
	legs, err := s.tranRepo.FindLegsByBase(ctx, tranID)
	if err != nil {
		return nil, fmt.Errorf("failed to load legs for %s: %w", tranID, err)
	}
	if len(legs) == 0 {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, tranID)
	}
	return s.buildResponse(ctx, tranID, legs[0].Narration, legs)
}

// List groups every leg by base tran id and pages the grouped transactions
// newest-first.
func (s *transactionService) List(ctx context.Context, page, size int) (*dto.ListTransactionsResponse, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}

	legs, err := s.tranRepo.ListAllLegs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list legs: %w", err)
	}

	grouped := make(map[string][]domain.TransactionLeg)
	for _, leg := range legs {
		base := domain.BaseTranID(leg.TranID)
		grouped[base] = append(grouped[base], leg)
	}

	baseIDs := make([]string, 0, len(grouped))
	for base := range grouped {
		baseIDs = append(baseIDs, base)
	}
	sort.Slice(baseIDs, func(i, j int) bool {
		li, lj := grouped[baseIDs[i]][0], grouped[baseIDs[j]][0]
		if !li.TranDate.Equal(lj.TranDate) {
			return li.TranDate.After(lj.TranDate)
		}
		return baseIDs[i] > baseIDs[j]
	})

	total := int64(len(baseIDs))
	start := page * size
	if start > len(baseIDs) {
		start = len(baseIDs)
	}
	end := start + size
	if end > len(baseIDs) {
		end = len(baseIDs)
	}

	out := make([]dto.TransactionResponse, 0, end-start)
	for _, base := range baseIDs[start:end] {
		resp, err := s.buildResponse(ctx, base, grouped[base][0].Narration, grouped[base])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}

	return &dto.ListTransactionsResponse{
		Transactions: out,
		Page:         page,
		Size:         size,
		Total:        total,
	}, nil
}

// newTranID mints a base transaction id from the per-date leg count plus a
// 3-digit random component. The primary key on the leg table turns any
// residual collision into a retryable unique violation.
func (s *transactionService) newTranID(ctx context.Context, tranDate time.Time) (string, error) {
	count, err := s.tranRepo.CountLegsByDate(ctx, tranDate)
	if err != nil {
		return "", fmt.Errorf("failed to count legs for %s: %w", tranDate.Format("2006-01-02"), err)
	}
	return domain.NewTranID(tranDate, count+1, rand.IntN(1000)), nil
}

func (s *transactionService) buildResponse(ctx context.Context, baseTranID, narration string, legs []domain.TransactionLeg) (*dto.TransactionResponse, error) {
	names := make(map[string]string)
	for _, leg := range legs {
		if _, ok := names[leg.AccountNo]; ok {
			continue
		}
		info, err := s.accountRepo.FindAccountInfo(ctx, leg.AccountNo)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		names[leg.AccountNo] = info.AcctName
	}

	txn := &domain.Transaction{
		TranID:    baseTranID,
		TranDate:  legs[0].TranDate,
		ValueDate: legs[0].ValueDate,
		Narration: narration,
		Status:    legs[0].TranStatus,
		Legs:      legs,
	}
	resp := dto.ToTransactionResponse(txn, names)
	return &resp, nil
}
