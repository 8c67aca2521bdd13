package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/bancsuite/coreledger/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSystemDateServiceNow(t *testing.T) {
	ctx := context.Background()
	paramRepo := new(MockParameterRepository)
	svc := services.NewSystemDateService(paramRepo, "")

	paramRepo.On("FindParameter", ctx, domain.ParamSystemDate).Return(&domain.Parameter{
		Name:  domain.ParamSystemDate,
		Value: "2024-01-15",
	}, nil)

	date, err := svc.Now(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), date)

	ts, err := svc.NowTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), ts)
}

func TestSystemDateServiceNotConfigured(t *testing.T) {
	ctx := context.Background()
	paramRepo := new(MockParameterRepository)
	svc := services.NewSystemDateService(paramRepo, "")

	paramRepo.On("FindParameter", ctx, domain.ParamSystemDate).Return(nil, apperrors.ErrNotFound)

	_, err := svc.Now(ctx)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestSystemDateServiceDefault(t *testing.T) {
	ctx := context.Background()
	paramRepo := new(MockParameterRepository)
	svc := services.NewSystemDateService(paramRepo, "2024-02-01")

	paramRepo.On("FindParameter", ctx, domain.ParamSystemDate).Return(nil, apperrors.ErrNotFound)

	date, err := svc.Now(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), date)
}

func TestSystemDateServiceSet(t *testing.T) {
	ctx := context.Background()
	paramRepo := new(MockParameterRepository)
	svc := services.NewSystemDateService(paramRepo, "")

	paramRepo.On("SaveParameter", ctx, mock.MatchedBy(func(p domain.Parameter) bool {
		return p.Name == domain.ParamSystemDate && p.Value == "2024-01-16" && p.UpdatedBy == "ADMIN"
	})).Return(nil)

	err := svc.Set(ctx, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), "ADMIN")
	require.NoError(t, err)
	paramRepo.AssertExpectations(t)
}
