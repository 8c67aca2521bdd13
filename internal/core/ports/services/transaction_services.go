package services

import (
	"context"

	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/bancsuite/coreledger/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionSvcFacade drives the Entry -> Posted -> Verified state machine.
type TransactionSvcFacade interface {
	Create(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	Post(ctx context.Context, tranID string) (*dto.TransactionResponse, error)
	Verify(ctx context.Context, tranID string, verifierUserID string) (*dto.TransactionResponse, error)
	Reverse(ctx context.Context, tranID string, reason string) (*dto.TransactionResponse, error)
	Get(ctx context.Context, tranID string) (*dto.TransactionResponse, error)
	List(ctx context.Context, page, size int) (*dto.ListTransactionsResponse, error)
}

// ValidationSvcFacade enforces the per-leg debit/credit policy of the
// transaction engine.
type ValidationSvcFacade interface {
	// ValidateLeg checks whether the leg may be applied under current
	// balances. Fails with apperrors.ErrBusinessRule (insufficient balance,
	// inactive account) or apperrors.ErrNotFound.
	ValidateLeg(ctx context.Context, accountNo string, flag domain.DrCrFlag, amount decimal.Decimal) error
}

// HistorySvcFacade writes and serves immutable statement history rows.
type HistorySvcFacade interface {
	// RecordLeg writes one history row carrying the balance after the leg.
	RecordLeg(ctx context.Context, leg domain.TransactionLeg, verifiedBy string) error
	ListByAccount(ctx context.Context, accountNo string, limit int, nextToken *string) (*dto.ListHistoryResponse, error)
}

// BODSvcFacade promotes future-dated transactions whose value date arrived.
type BODSvcFacade interface {
	Run(ctx context.Context) (*dto.BODResult, error)
	Status(ctx context.Context) (*dto.BODStatusResponse, error)
}
