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

// PgxGLSetupRepository reads the chart of accounts.
type PgxGLSetupRepository struct {
	BaseRepository
}

// NewPgxGLSetupRepository creates a new chart-of-accounts repository.
func NewPgxGLSetupRepository(pool *pgxpool.Pool) portsrepo.GLSetupRepositoryFacade {
	return &PgxGLSetupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GLSetupRepositoryFacade = (*PgxGLSetupRepository)(nil)

const glSetupColumns = `gl_num, gl_name, layer_id, layer_gl_num, COALESCE(parent_gl_num, ''),
       created_at, created_by, last_updated_at, last_updated_by`

func scanGLSetup(row pgx.Row) (*domain.GLSetup, error) {
	var g domain.GLSetup
	err := row.Scan(
		&g.GLNum, &g.GLName, &g.LayerID, &g.LayerGLNum, &g.ParentGLNum,
		&g.CreatedAt, &g.CreatedBy, &g.LastUpdatedAt, &g.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *PgxGLSetupRepository) FindGL(ctx context.Context, glNum string) (*domain.GLSetup, error) {
	query := `SELECT ` + glSetupColumns + ` FROM gl_setup WHERE gl_num = $1;`
	gl, err := scanGLSetup(r.q(ctx).QueryRow(ctx, query, glNum))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find GL "+glNum, err)
	}
	return gl, nil
}

func (r *PgxGLSetupRepository) ListGLsByLayer(ctx context.Context, layerID int) ([]domain.GLSetup, error) {
	query := `SELECT ` + glSetupColumns + ` FROM gl_setup WHERE layer_id = $1 ORDER BY gl_num;`
	return r.listGLs(ctx, query, layerID)
}

func (r *PgxGLSetupRepository) ListGLsByLayerAndParent(ctx context.Context, layerID int, parentGLNum string) ([]domain.GLSetup, error) {
	query := `SELECT ` + glSetupColumns + ` FROM gl_setup
		WHERE layer_id = $1 AND parent_gl_num = $2 ORDER BY layer_gl_num;`
	return r.listGLs(ctx, query, layerID, parentGLNum)
}

func (r *PgxGLSetupRepository) listGLs(ctx context.Context, query string, args ...any) ([]domain.GLSetup, error) {
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query gl_setup", err)
	}
	defer rows.Close()

	gls := []domain.GLSetup{}
	for rows.Next() {
		gl, err := scanGLSetup(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan gl_setup row", err)
		}
		gls = append(gls, *gl)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating gl_setup rows", err)
	}
	return gls, nil
}

// ListActiveGLNums returns leaf GLs referenced by a sub-product that has at
// least one open account, via either the customer or the office master.
func (r *PgxGLSetupRepository) ListActiveGLNums(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT g.gl_num
		FROM gl_setup g
		JOIN subprod_master sp ON sp.cum_gl_num = g.gl_num
		WHERE EXISTS (
			SELECT 1 FROM cust_acct_master ca
			WHERE ca.sub_product_id = sp.sub_product_id AND ca.account_status <> 'Closed'
		) OR EXISTS (
			SELECT 1 FROM of_acct_master oa
			WHERE oa.sub_product_id = sp.sub_product_id AND oa.account_status <> 'Closed'
		)
		UNION
		SELECT DISTINCT sp.intt_income_expenditure_gl_num
		FROM subprod_master sp
		WHERE sp.intt_income_expenditure_gl_num IS NOT NULL AND EXISTS (
			SELECT 1 FROM cust_acct_master ca
			WHERE ca.sub_product_id = sp.sub_product_id AND ca.account_status <> 'Closed'
		)
		UNION
		SELECT DISTINCT sp.intt_receivable_payable_gl_num
		FROM subprod_master sp
		WHERE sp.intt_receivable_payable_gl_num IS NOT NULL AND EXISTS (
			SELECT 1 FROM cust_acct_master ca
			WHERE ca.sub_product_id = sp.sub_product_id AND ca.account_status <> 'Closed'
		)
		ORDER BY 1;
	`
	return r.listStrings(ctx, query)
}

// ListBalanceSheetGLNums restricts the active set to balance-sheet codes:
// prefixes 1 and 2 including the accrued interest GLs (14*, 24*).
func (r *PgxGLSetupRepository) ListBalanceSheetGLNums(ctx context.Context) ([]string, error) {
	all, err := r.ListActiveGLNums(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(all))
	for _, glNum := range all {
		if domain.IsBalanceSheetLiabilityGL(glNum) || domain.IsBalanceSheetAssetGL(glNum) {
			out = append(out, glNum)
		}
	}
	return out, nil
}

func (r *PgxGLSetupRepository) listStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query GL numbers", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan GL number", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating GL numbers", err)
	}
	return out, nil
}
