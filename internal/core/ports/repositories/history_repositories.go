package repositories

import (
	"context"

	"github.com/bancsuite/coreledger/internal/core/domain"
)

// HistoryRepositoryFacade persists immutable statement history rows.
type HistoryRepositoryFacade interface {
	SaveHistory(ctx context.Context, h domain.TxnHistory) error
	// ListByAccount pages history rows newest-first using a keyset token.
	ListByAccount(ctx context.Context, accountNo string, limit int, nextToken *string) ([]domain.TxnHistory, *string, error)
}
