package repositories

import (
	"context"

	"github.com/bancsuite/coreledger/internal/core/domain"
)

// ParameterRepositoryFacade persists the key/value parameter table.
type ParameterRepositoryFacade interface {
	// FindParameter returns the row for name, or apperrors.ErrNotFound.
	FindParameter(ctx context.Context, name string) (*domain.Parameter, error)
	// SaveParameter inserts or updates the row for param.Name.
	SaveParameter(ctx context.Context, param domain.Parameter) error
}
