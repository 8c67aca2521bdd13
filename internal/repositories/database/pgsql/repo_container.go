package pgsql

import (
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryContainer wires every repository over one connection pool.
type RepositoryContainer struct {
	TxManager  portsrepo.TxManager
	Parameter  portsrepo.ParameterRepositoryFacade
	GLSetup    portsrepo.GLSetupRepositoryFacade
	Account    portsrepo.AccountRepositoryFacade
	Balance    portsrepo.BalanceRepositoryFacade
	Tran       portsrepo.TransactionRepositoryFacade
	Movement   portsrepo.GLMovementRepositoryFacade
	Accrual    portsrepo.AccrualRepositoryFacade
	SubProduct portsrepo.SubProductRepositoryFacade
	History    portsrepo.HistoryRepositoryFacade
	EODLog     portsrepo.EODLogRepositoryFacade
}

// NewRepositoryContainer creates the repository set for a pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		TxManager:  NewTxManager(pool),
		Parameter:  NewPgxParameterRepository(pool),
		GLSetup:    NewPgxGLSetupRepository(pool),
		Account:    NewPgxAccountRepository(pool),
		Balance:    NewPgxBalanceRepository(pool),
		Tran:       NewPgxTransactionRepository(pool),
		Movement:   NewPgxGLMovementRepository(pool),
		Accrual:    NewPgxAccrualRepository(pool),
		SubProduct: NewPgxSubProductRepository(pool),
		History:    NewPgxHistoryRepository(pool),
		EODLog:     NewPgxEODLogRepository(pool),
	}
}
