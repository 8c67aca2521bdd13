package repositories

import (
	"context"
)

// TxManager runs a function inside a single durable unit of work at
// REPEATABLE READ. The transaction travels in the context; repository calls
// made with that context join it. Serialization failures and deadlocks are
// retried a bounded number of times before surfacing.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
