package repositories

import (
	"context"
	"time"

	"github.com/bancsuite/coreledger/internal/core/domain"
)

// EODLogRepositoryFacade persists the EOD audit log. Start and completion
// rows are committed independently of the job's own unit of work.
type EODLogRepositoryFacade interface {
	SaveLog(ctx context.Context, log domain.EODLog) error
	// HasSuccess reports whether jobName already logged Success for eodDate.
	HasSuccess(ctx context.Context, eodDate time.Time, jobName string) (bool, error)
	ListByDate(ctx context.Context, eodDate time.Time) ([]domain.EODLog, error)
}
