package pgsql

import (
	"context"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxEODLogRepository persists the EOD audit log. SaveLog always runs
// against the pool, never a caller's transaction, so the audit trail
// survives a rollback of the job's own unit of work.
type PgxEODLogRepository struct {
	BaseRepository
}

// NewPgxEODLogRepository creates a new EOD log repository.
func NewPgxEODLogRepository(pool *pgxpool.Pool) portsrepo.EODLogRepositoryFacade {
	return &PgxEODLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EODLogRepositoryFacade = (*PgxEODLogRepository)(nil)

func (r *PgxEODLogRepository) SaveLog(ctx context.Context, log domain.EODLog) error {
	query := `
		INSERT INTO eod_log_table (eod_date, job_name, start_timestamp, end_timestamp, system_date,
		                           user_id, records_processed, status, error_message, failed_at_step)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''));
	`
	// Deliberately r.Pool, not r.q(ctx): the log row must commit even when
	// the surrounding unit of work rolls back.
	_, err := r.Pool.Exec(ctx, query,
		log.EODDate, log.JobName, log.StartTimestamp, log.EndTimestamp, log.SystemDate,
		log.UserID, log.RecordsProcessed, log.Status, log.ErrorMessage, log.FailedAtStep,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert EOD log row for "+log.JobName, err)
	}
	return nil
}

func (r *PgxEODLogRepository) HasSuccess(ctx context.Context, eodDate time.Time, jobName string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM eod_log_table
			WHERE eod_date = $1 AND job_name = $2 AND status = 'Success'
		);
	`
	var exists bool
	// Reads from the pool for the same reason SaveLog writes to it: the gate
	// must observe committed log rows only.
	if err := r.Pool.QueryRow(ctx, query, eodDate, jobName).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check EOD log for "+jobName, err)
	}
	return exists, nil
}

func (r *PgxEODLogRepository) ListByDate(ctx context.Context, eodDate time.Time) ([]domain.EODLog, error) {
	query := `
		SELECT log_id, eod_date, job_name, start_timestamp, end_timestamp, system_date,
		       user_id, records_processed, status, COALESCE(error_message, ''), COALESCE(failed_at_step, '')
		FROM eod_log_table
		WHERE eod_date = $1
		ORDER BY log_id;
	`
	rows, err := r.q(ctx).Query(ctx, query, eodDate)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query EOD log", err)
	}
	defer rows.Close()

	logs := []domain.EODLog{}
	for rows.Next() {
		var l domain.EODLog
		if err := rows.Scan(
			&l.LogID, &l.EODDate, &l.JobName, &l.StartTimestamp, &l.EndTimestamp, &l.SystemDate,
			&l.UserID, &l.RecordsProcessed, &l.Status, &l.ErrorMessage, &l.FailedAtStep,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan EOD log row", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating EOD log rows", err)
	}
	return logs, nil
}
