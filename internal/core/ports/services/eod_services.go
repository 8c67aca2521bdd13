package services

import (
	"context"
	"time"

	"github.com/bancsuite/coreledger/internal/dto"
)

// InterestAccrualSvcFacade runs the daily interest accrual batch (EOD Job 2).
type InterestAccrualSvcFacade interface {
	// RunDailyAccruals emits two balanced accrual legs per eligible account.
	// Per-account errors are collected; the batch continues.
	RunDailyAccruals(ctx context.Context, accrualDate time.Time) (*dto.AccrualRunResult, error)
}

// EODBatchSvcFacade implements the data-plane EOD jobs (1, 3, 4, 5, 6).
// Each call processes one business date and returns the records processed.
// All five are overwrite-idempotent for re-runs on the same date.
type EODBatchSvcFacade interface {
	// UpdateAccountBalances (Job 1) writes today's balance row for every
	// Active account from the previous close and the day's legs.
	UpdateAccountBalances(ctx context.Context, systemDate time.Time) (int, error)
	// ProcessAccrualMovements (Job 3) turns Pending accrual legs into GL
	// accrual movements and flips them to Processed.
	ProcessAccrualMovements(ctx context.Context, systemDate time.Time) (int, error)
	// ConsolidateGLMovements (Job 4) consolidates the regular and accrual
	// movement streams for the day.
	ConsolidateGLMovements(ctx context.Context, systemDate time.Time) (int, error)
	// UpdateGLBalances (Job 5) writes one (glNum, date) row per GL touched
	// by the day's unified movement stream.
	UpdateGLBalances(ctx context.Context, systemDate time.Time) (int, error)
	// UpdateAccrualBalances (Job 6) writes per-account accrual balance rows.
	UpdateAccrualBalances(ctx context.Context, systemDate time.Time) (int, error)
}

// EODSvcFacade orchestrates the eight end-of-day batch jobs.
type EODSvcFacade interface {
	// RunEOD executes jobs 1-8 sequentially for the open business day.
	RunEOD(ctx context.Context, userID string) (*dto.EODResult, error)
	// RunJob executes a single job (1-8), gated on the prior job's Success
	// log. Re-running a succeeded job returns apperrors.ErrConflict.
	RunJob(ctx context.Context, jobNumber int, userID string) (*dto.EODJobResult, error)
	Status(ctx context.Context) (*dto.EODStatusResponse, error)
}

// ReportsSvcFacade produces the closed-day financial reports (EOD Job 7).
type ReportsSvcFacade interface {
	// Generate writes the Trial Balance CSV and Balance Sheet XLSX under
	// reports/<yyyymmdd>/ and returns their paths keyed by report kind.
	Generate(ctx context.Context, reportDate time.Time) (map[string]string, error)
	// ReadReport returns the raw bytes of a generated report file.
	ReadReport(ctx context.Context, kind string, yyyymmdd string) ([]byte, string, error)
}
