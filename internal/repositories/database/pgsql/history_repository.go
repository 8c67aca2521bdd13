package pgsql

import (
	"context"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	"github.com/bancsuite/coreledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxHistoryRepository persists immutable statement history rows.
type PgxHistoryRepository struct {
	BaseRepository
}

// NewPgxHistoryRepository creates a new history repository.
func NewPgxHistoryRepository(pool *pgxpool.Pool) portsrepo.HistoryRepositoryFacade {
	return &PgxHistoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.HistoryRepositoryFacade = (*PgxHistoryRepository)(nil)

func (r *PgxHistoryRepository) SaveHistory(ctx context.Context, h domain.TxnHistory) error {
	query := `
		INSERT INTO txn_hist_acct (tran_id, account_no, tran_date, value_date, dr_cr_flag,
		                           tran_ccy, lcy_amt, balance_after, narration, verified_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.q(ctx).Exec(ctx, query,
		h.TranID, h.AccountNo, h.TranDate, h.ValueDate, h.DrCrFlag,
		h.TranCcy, h.LcyAmt, h.BalanceAfter, h.Narration, h.VerifiedBy, h.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert history row for "+h.TranID, err)
	}
	return nil
}

// ListByAccount pages history rows newest-first with a keyset cursor over
// (tran_date, hist_id).
func (r *PgxHistoryRepository) ListByAccount(ctx context.Context, accountNo string, limit int, nextToken *string) ([]domain.TxnHistory, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT hist_id, tran_id, account_no, tran_date, value_date, dr_cr_flag,
		       tran_ccy, lcy_amt, balance_after, COALESCE(narration, ''), verified_by, created_at
		FROM txn_hist_acct
		WHERE account_no = $1
	`
	orderBy := `ORDER BY tran_date DESC, hist_id DESC`

	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query := baseQuery + ` AND (tran_date, hist_id) < ($2, $3) ` + orderBy + ` LIMIT $4;`
		rows, err = r.q(ctx).Query(ctx, query, accountNo, lastDate, lastID, fetchLimit)
	} else {
		query := baseQuery + orderBy + ` LIMIT $2;`
		rows, err = r.q(ctx).Query(ctx, query, accountNo, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query history for "+accountNo, err)
	}
	defer rows.Close()

	histories := []domain.TxnHistory{}
	for rows.Next() {
		var h domain.TxnHistory
		if err := rows.Scan(
			&h.HistID, &h.TranID, &h.AccountNo, &h.TranDate, &h.ValueDate, &h.DrCrFlag,
			&h.TranCcy, &h.LcyAmt, &h.BalanceAfter, &h.Narration, &h.VerifiedBy, &h.CreatedAt,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan history row", err)
		}
		histories = append(histories, h)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating history rows", err)
	}

	var nextTokenVal *string
	if len(histories) > limit {
		last := histories[limit-1]
		token := pagination.EncodeToken(last.TranDate, last.HistID)
		nextTokenVal = &token
		histories = histories[:limit]
	}
	return histories, nextTokenVal, nil
}
