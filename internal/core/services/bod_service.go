package services

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/bancsuite/coreledger/internal/dto"
	"github.com/bancsuite/coreledger/internal/middleware"
)

// bodService promotes future-dated transactions whose value date has arrived
// into the current day with full posting semantics.
type bodService struct {
	tranRepo      portsrepo.TransactionRepositoryFacade
	movementRepo  portsrepo.GLMovementRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	balanceSvc    portssvc.BalanceSvcFacade
	validationSvc portssvc.ValidationSvcFacade
	clock         portssvc.SystemClockSvcFacade
	txm           portsrepo.TxManager
}

// NewBODService creates the beginning-of-day processor.
func NewBODService(
	tranRepo portsrepo.TransactionRepositoryFacade,
	movementRepo portsrepo.GLMovementRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	balanceSvc portssvc.BalanceSvcFacade,
	validationSvc portssvc.ValidationSvcFacade,
	clock portssvc.SystemClockSvcFacade,
	txm portsrepo.TxManager,
) portssvc.BODSvcFacade {
	return &bodService{
		tranRepo:      tranRepo,
		movementRepo:  movementRepo,
		accountRepo:   accountRepo,
		balanceSvc:    balanceSvc,
		validationSvc: validationSvc,
		clock:         clock,
		txm:           txm,
	}
}

var _ portssvc.BODSvcFacade = (*bodService)(nil)

// Run posts every due Future leg. Each leg commits in its own unit of work:
// a mid-run failure rolls back the current leg but leaves earlier legs
// posted.
func (s *bodService) Run(ctx context.Context) (*dto.BODResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	systemDate, err := s.clock.Now(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.BODResult{SystemDate: systemDate, Status: "SUCCESS", Message: "BOD processing completed successfully"}

	result.PendingCountBefore, err = s.tranRepo.CountFutureLegs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count future-dated legs: %w", err)
	}

	due, err := s.tranRepo.ListFutureLegsDue(ctx, systemDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list due future-dated legs: %w", err)
	}
	logger.Info("BOD processing started",
		slog.String("system_date", systemDate.Format(dateLayout)), slog.Int("due_legs", len(due)))

	for _, leg := range due {
		leg := leg
		err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
			if err := s.validationSvc.ValidateLeg(ctx, leg.AccountNo, leg.DrCrFlag, leg.LcyAmt); err != nil {
				return err
			}
			if err := s.tranRepo.UpdateLegStatus(ctx, leg.TranID, domain.TranPosted); err != nil {
				return fmt.Errorf("failed to promote leg %s: %w", leg.TranID, err)
			}
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
			return s.movementRepo.SaveMovement(ctx, domain.GLMovement{
				TranID:       leg.TranID,
				GLNum:        info.GLNum,
				DrCrFlag:     leg.DrCrFlag,
				TranDate:     leg.TranDate,
				ValueDate:    leg.ValueDate,
				Amount:       leg.LcyAmt,
				BalanceAfter: glBal.ClosingBal,
			})
		})
		if err != nil {
			// The failed leg stays Future; earlier legs remain posted.
			logger.Error("BOD failed to promote leg",
				slog.String("tran_id", leg.TranID), slog.String("error", err.Error()))
			result.Status = "FAILED"
			result.Message = fmt.Sprintf("BOD processing failed at leg %s: %v", leg.TranID, err)
			break
		}
		result.ProcessedCount++
	}

	result.PendingCountAfter, err = s.tranRepo.CountFutureLegs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count remaining future-dated legs: %w", err)
	}

	logger.Info("BOD processing finished",
		slog.Int("processed", result.ProcessedCount),
		slog.Int64("pending_after", result.PendingCountAfter),
		slog.String("status", result.Status))
	return result, nil
}

func (s *bodService) Status(ctx context.Context) (*dto.BODStatusResponse, error) {
	systemDate, err := s.clock.Now(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.tranRepo.CountFutureLegs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count future-dated legs: %w", err)
	}
	return &dto.BODStatusResponse{
		SystemDate:              systemDate,
		PendingFutureDatedCount: pending,
	}, nil
}
