package pgsql

import (
	"context"
	"errors"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxParameterRepository persists the key/value parameter table.
type PgxParameterRepository struct {
	BaseRepository
}

// NewPgxParameterRepository creates a new parameter repository.
func NewPgxParameterRepository(pool *pgxpool.Pool) portsrepo.ParameterRepositoryFacade {
	return &PgxParameterRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ParameterRepositoryFacade = (*PgxParameterRepository)(nil)

func (r *PgxParameterRepository) FindParameter(ctx context.Context, name string) (*domain.Parameter, error) {
	query := `
		SELECT parameter_name, parameter_value, updated_by, last_updated
		FROM parameter_table
		WHERE parameter_name = $1;
	`
	var p domain.Parameter
	err := r.q(ctx).QueryRow(ctx, query, name).Scan(&p.Name, &p.Value, &p.UpdatedBy, &p.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find parameter "+name, err)
	}
	return &p, nil
}

func (r *PgxParameterRepository) SaveParameter(ctx context.Context, param domain.Parameter) error {
	query := `
		INSERT INTO parameter_table (parameter_name, parameter_value, updated_by, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (parameter_name) DO UPDATE
		SET parameter_value = EXCLUDED.parameter_value,
		    updated_by = EXCLUDED.updated_by,
		    last_updated = EXCLUDED.last_updated;
	`
	_, err := r.q(ctx).Exec(ctx, query, param.Name, param.Value, param.UpdatedBy, param.LastUpdated)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save parameter "+param.Name, err)
	}
	return nil
}
