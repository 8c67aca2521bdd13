package services

import (
	"context"
	"time"
)

// SystemClockSvcFacade is the single authority for the business date. Every
// dated record in the ledger reads from it, never from the OS clock.
type SystemClockSvcFacade interface {
	// Now returns the open business date (System_Date). Fails with
	// apperrors.ErrConfiguration when the parameter row is absent and no
	// default is configured.
	Now(ctx context.Context) (time.Time, error)
	// NowTimestamp returns System_Date at start of day.
	NowTimestamp(ctx context.Context) (time.Time, error)
	// Set persists a new system date, stamping the updating user.
	Set(ctx context.Context, date time.Time, userID string) error
	// LastEOD returns the Last_EOD_* parameters, empty when never run.
	LastEOD(ctx context.Context) (date, timestamp, user string, err error)
}
