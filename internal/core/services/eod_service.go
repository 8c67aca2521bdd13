package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/dto"
	"github.com/bancsuite/coreledger/internal/middleware"
)

// eodService orchestrates the eight EOD batch jobs. Every job logs a Running
// row before its work and a Success/Failed row after, each committed outside
// the job's own unit of work so the audit trail survives a rollback.
type eodService struct {
	logRepo    portsrepo.EODLogRepositoryFacade
	paramRepo  portsrepo.ParameterRepositoryFacade
	clock      portssvc.SystemClockSvcFacade
	txm        portsrepo.TxManager
	batchSvc   portssvc.EODBatchSvcFacade
	accrualSvc portssvc.InterestAccrualSvcFacade
	reportsSvc portssvc.ReportsSvcFacade
}

// NewEODService creates the EOD pipeline orchestrator.
func NewEODService(
	logRepo portsrepo.EODLogRepositoryFacade,
	paramRepo portsrepo.ParameterRepositoryFacade,
	clock portssvc.SystemClockSvcFacade,
	txm portsrepo.TxManager,
	batchSvc portssvc.EODBatchSvcFacade,
	accrualSvc portssvc.InterestAccrualSvcFacade,
	reportsSvc portssvc.ReportsSvcFacade,
) portssvc.EODSvcFacade {
	return &eodService{
		logRepo:    logRepo,
		paramRepo:  paramRepo,
		clock:      clock,
		txm:        txm,
		batchSvc:   batchSvc,
		accrualSvc: accrualSvc,
		reportsSvc: reportsSvc,
	}
}

var _ portssvc.EODSvcFacade = (*eodService)(nil)

// RunEOD executes jobs 1-8 sequentially on the open business day. Jobs that
// already logged Success for the date are skipped, so a re-run after a mid-
// pipeline failure resumes where it stopped.
func (s *eodService) RunEOD(ctx context.Context, userID string) (*dto.EODResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	systemDate, err := s.clock.Now(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("Starting EOD pipeline",
		slog.String("system_date", systemDate.Format(dateLayout)), slog.String("user_id", userID))

	result := &dto.EODResult{Success: true, Message: "EOD completed successfully"}
	counters := []*int{
		&result.AccountsProcessed,
		&result.InterestEntriesProcessed,
		&result.AccrualMovements,
		&result.GLMovementsUpdated,
		&result.GLBalancesUpdated,
		&result.AccrualBalancesUpdated,
		nil, // Job 7 reports
		nil, // Job 8 date increment
	}

	for jobNumber := 1; jobNumber <= len(domain.EODJobNames); jobNumber++ {
		jobName := domain.EODJobNames[jobNumber-1]

		done, err := s.logRepo.HasSuccess(ctx, systemDate, jobName)
		if err != nil {
			return nil, fmt.Errorf("failed to check EOD log for %q: %w", jobName, err)
		}
		if done {
			logger.Info("Skipping already-succeeded EOD job", slog.String("job", jobName))
			continue
		}

		processed, err := s.executeJob(ctx, systemDate, jobNumber, userID)
		if err != nil {
			logger.Error("EOD pipeline stopped",
				slog.String("job", jobName), slog.String("error", err.Error()))
			result.Success = false
			result.Message = fmt.Sprintf("EOD failed at %s: %v", jobName, err)
			return result, err
		}
		if c := counters[jobNumber-1]; c != nil {
			*c = processed
		}
	}

	logger.Info("EOD pipeline completed", slog.String("system_date", systemDate.Format(dateLayout)))
	return result, nil
}

// RunJob executes a single batch job under the same gating as the pipeline:
// the prior job must have succeeded and re-running a succeeded job reports
// AlreadyExecuted.
func (s *eodService) RunJob(ctx context.Context, jobNumber int, userID string) (*dto.EODJobResult, error) {
	if jobNumber < 1 || jobNumber > len(domain.EODJobNames) {
		return nil, fmt.Errorf("%w: job number must be 1-%d", apperrors.ErrValidation, len(domain.EODJobNames))
	}

	systemDate, err := s.clock.Now(ctx)
	if err != nil {
		return nil, err
	}
	jobName := domain.EODJobNames[jobNumber-1]

	done, err := s.logRepo.HasSuccess(ctx, systemDate, jobName)
	if err != nil {
		return nil, fmt.Errorf("failed to check EOD log for %q: %w", jobName, err)
	}
	if done {
		return nil, fmt.Errorf("%w: job %q already executed for %s",
			apperrors.ErrConflict, jobName, systemDate.Format(dateLayout))
	}

	processed, err := s.executeJob(ctx, systemDate, jobNumber, userID)
	if err != nil {
		return nil, err
	}
	return &dto.EODJobResult{
		JobNumber:        jobNumber,
		JobName:          jobName,
		RecordsProcessed: processed,
	}, nil
}

func (s *eodService) Status(ctx context.Context) (*dto.EODStatusResponse, error) {
	systemDate, err := s.clock.Now(ctx)
	if err != nil {
		return nil, err
	}
	lastDate, lastTimestamp, lastUser, err := s.clock.LastEOD(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.EODStatusResponse{
		SystemDate:       systemDate.Format(dateLayout),
		CurrentDate:      time.Now().UTC().Format(dateLayout),
		LastEODDate:      lastDate,
		LastEODTimestamp: lastTimestamp,
		LastEODUser:      lastUser,
	}, nil
}

// executeJob runs one job between its Running and completion log rows. The
// prior job's Success gates execution.
func (s *eodService) executeJob(ctx context.Context, systemDate time.Time, jobNumber int, userID string) (int, error) {
	jobName := domain.EODJobNames[jobNumber-1]

	if jobNumber > 1 {
		prevName := domain.EODJobNames[jobNumber-2]
		prevDone, err := s.logRepo.HasSuccess(ctx, systemDate, prevName)
		if err != nil {
			return 0, fmt.Errorf("failed to check EOD log for %q: %w", prevName, err)
		}
		if !prevDone {
			return 0, fmt.Errorf("%w: job %q has not completed for %s",
				apperrors.ErrConflict, prevName, systemDate.Format(dateLayout))
		}
	}

	startTS, err := s.clock.NowTimestamp(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.logRepo.SaveLog(ctx, domain.EODLog{
		EODDate:        systemDate,
		JobName:        jobName,
		StartTimestamp: startTS,
		SystemDate:     systemDate,
		UserID:         userID,
		Status:         domain.EODRunning,
	}); err != nil {
		return 0, fmt.Errorf("failed to log job start for %q: %w", jobName, err)
	}

	processed, runErr := s.runJobWork(ctx, systemDate, jobNumber, userID)

	endTS := startTS
	completion := domain.EODLog{
		EODDate:          systemDate,
		JobName:          jobName,
		StartTimestamp:   startTS,
		EndTimestamp:     &endTS,
		SystemDate:       systemDate,
		UserID:           userID,
		RecordsProcessed: processed,
		Status:           domain.EODSuccess,
	}
	if runErr != nil {
		completion.Status = domain.EODFailed
		completion.ErrorMessage = runErr.Error()
		completion.FailedAtStep = jobName
		completion.RecordsProcessed = 0
	}
	if logErr := s.logRepo.SaveLog(ctx, completion); logErr != nil {
		if runErr != nil {
			return 0, runErr
		}
		return 0, fmt.Errorf("failed to log job completion for %q: %w", jobName, logErr)
	}

	return processed, runErr
}

// runJobWork dispatches to the job implementation. Jobs 1-6 and 8 run in
// their own unit of work; Job 7 writes report files and runs outside one.
func (s *eodService) runJobWork(ctx context.Context, systemDate time.Time, jobNumber int, userID string) (int, error) {
	var processed int
	run := func(ctx context.Context) error {
		var err error
		switch jobNumber {
		case 1:
			processed, err = s.batchSvc.UpdateAccountBalances(ctx, systemDate)
		case 2:
			var result *dto.AccrualRunResult
			result, err = s.accrualSvc.RunDailyAccruals(ctx, systemDate)
			if result != nil {
				processed = result.EntriesCreated
			}
		case 3:
			processed, err = s.batchSvc.ProcessAccrualMovements(ctx, systemDate)
		case 4:
			processed, err = s.batchSvc.ConsolidateGLMovements(ctx, systemDate)
		case 5:
			processed, err = s.batchSvc.UpdateGLBalances(ctx, systemDate)
		case 6:
			processed, err = s.batchSvc.UpdateAccrualBalances(ctx, systemDate)
		case 8:
			err = s.incrementSystemDate(ctx, systemDate, userID)
			processed = 1
		}
		return err
	}

	if jobNumber == 7 {
		paths, err := s.reportsSvc.Generate(ctx, systemDate)
		return len(paths), err
	}
	if err := s.txm.WithinTx(ctx, run); err != nil {
		return 0, err
	}
	return processed, nil
}

// incrementSystemDate advances the clock to the next business day and stamps
// the Last_EOD_* parameters.
func (s *eodService) incrementSystemDate(ctx context.Context, systemDate time.Time, userID string) error {
	newDate := systemDate.AddDate(0, 0, 1)
	if err := s.clock.Set(ctx, newDate, userID); err != nil {
		return err
	}

	ts := time.Date(systemDate.Year(), systemDate.Month(), systemDate.Day(), 0, 0, 0, 0, time.UTC)
	params := []domain.Parameter{
		{Name: domain.ParamLastEODDate, Value: newDate.Format(dateLayout)},
		{Name: domain.ParamLastEODTimestamp, Value: ts.Format(time.RFC3339)},
		{Name: domain.ParamLastEODUser, Value: userID},
	}
	for _, p := range params {
		p.UpdatedBy = userID
		p.LastUpdated = ts
		if err := s.paramRepo.SaveParameter(ctx, p); err != nil {
			return fmt.Errorf("failed to update %s: %w", p.Name, err)
		}
	}
	return nil
}
