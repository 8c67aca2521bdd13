package services

import (
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/repositories/database/pgsql"
)

// Container wires every core service over one repository set.
type Container struct {
	Clock       portssvc.SystemClockSvcFacade
	GL          portssvc.GLSvcFacade
	Account     portssvc.AccountSvcFacade
	Balance     portssvc.BalanceSvcFacade
	Validation  portssvc.ValidationSvcFacade
	History     portssvc.HistorySvcFacade
	Transaction portssvc.TransactionSvcFacade
	Accrual     portssvc.InterestAccrualSvcFacade
	EODBatch    portssvc.EODBatchSvcFacade
	Reports     portssvc.ReportsSvcFacade
	EOD         portssvc.EODSvcFacade
	BOD         portssvc.BODSvcFacade
}

// ContainerConfig carries the service-level settings the container needs.
type ContainerConfig struct {
	DefaultSystemDate string
	DefaultCurrency   string
	ReportsDir        string
}

// NewContainer builds the full service graph.
func NewContainer(repos *pgsql.RepositoryContainer, cfg ContainerConfig) *Container {
	clock := NewSystemDateService(repos.Parameter, cfg.DefaultSystemDate)
	gl := NewGLService(repos.GLSetup)
	account := NewAccountService(repos.Account)
	balance := NewBalanceService(repos.Balance, repos.Tran, repos.Account, clock)
	validation := NewValidationService(repos.Account, repos.Balance, balance, clock)
	history := NewTransactionHistoryService(repos.History, repos.Balance, clock)
	transaction := NewTransactionService(
		repos.Tran, repos.Movement, repos.Account,
		balance, validation, history, clock, repos.TxManager,
	)
	accrual := NewInterestAccrualService(repos.Account, repos.SubProduct, repos.Balance, repos.Accrual, cfg.DefaultCurrency)
	batch := NewEODBatchService(repos.Account, repos.Tran, repos.Balance, repos.Movement, repos.Accrual, balance)
	reports := NewReportsService(repos.GLSetup, repos.Balance, cfg.ReportsDir)
	eod := NewEODService(repos.EODLog, repos.Parameter, clock, repos.TxManager, batch, accrual, reports)
	bod := NewBODService(repos.Tran, repos.Movement, repos.Account, balance, validation, clock, repos.TxManager)

	return &Container{
		Clock:       clock,
		GL:          gl,
		Account:     account,
		Balance:     balance,
		Validation:  validation,
		History:     history,
		Transaction: transaction,
		Accrual:     accrual,
		EODBatch:    batch,
		Reports:     reports,
		EOD:         eod,
		BOD:         bod,
	}
}
