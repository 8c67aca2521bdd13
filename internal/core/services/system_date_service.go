package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/middleware"
)

const dateLayout = "2006-01-02"

// systemDateService is the single authority for the open business date.
type systemDateService struct {
	paramRepo   portsrepo.ParameterRepositoryFacade
	defaultDate string
}

// NewSystemDateService creates the clock service. defaultDate (YYYY-MM-DD)
// may be empty; when set it answers Now until the parameter row exists.
func NewSystemDateService(paramRepo portsrepo.ParameterRepositoryFacade, defaultDate string) portssvc.SystemClockSvcFacade {
	return &systemDateService{paramRepo: paramRepo, defaultDate: defaultDate}
}

var _ portssvc.SystemClockSvcFacade = (*systemDateService)(nil)

func (s *systemDateService) Now(ctx context.Context) (time.Time, error) {
	param, err := s.paramRepo.FindParameter(ctx, domain.ParamSystemDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if s.defaultDate != "" {
				return time.Parse(dateLayout, s.defaultDate)
			}
			return time.Time{}, fmt.Errorf("%w: System_Date parameter is not set", apperrors.ErrConfiguration)
		}
		return time.Time{}, fmt.Errorf("failed to read System_Date: %w", err)
	}

	date, err := time.Parse(dateLayout, param.Value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: System_Date %q is not a date", apperrors.ErrConfiguration, param.Value)
	}
	return date, nil
}

// NowTimestamp returns System_Date at start of day, never the wall clock.
func (s *systemDateService) NowTimestamp(ctx context.Context) (time.Time, error) {
	date, err := s.Now(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (s *systemDateService) Set(ctx context.Context, date time.Time, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	ts := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	err := s.paramRepo.SaveParameter(ctx, domain.Parameter{
		Name:        domain.ParamSystemDate,
		Value:       date.Format(dateLayout),
		UpdatedBy:   userID,
		LastUpdated: ts,
	})
	if err != nil {
		logger.Error("Failed to persist System_Date", slog.String("error", err.Error()))
		return fmt.Errorf("failed to persist System_Date: %w", err)
	}

	logger.Info("System_Date updated", slog.String("system_date", date.Format(dateLayout)), slog.String("user_id", userID))
	return nil
}

func (s *systemDateService) LastEOD(ctx context.Context) (string, string, string, error) {
	var values [3]string
	for i, name := range []string{domain.ParamLastEODDate, domain.ParamLastEODTimestamp, domain.ParamLastEODUser} {
		param, err := s.paramRepo.FindParameter(ctx, name)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return "", "", "", fmt.Errorf("failed to read %s: %w", name, err)
		}
		values[i] = param.Value
	}
	return values[0], values[1], values[2], nil
}
