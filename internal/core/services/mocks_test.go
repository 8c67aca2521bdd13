package services_test

import (
	"context"
	"time"

	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// dec parses a decimal literal for test fixtures.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// --- Mock ParameterRepository ---

type MockParameterRepository struct {
	mock.Mock
}

var _ portsrepo.ParameterRepositoryFacade = (*MockParameterRepository)(nil)

func (m *MockParameterRepository) FindParameter(ctx context.Context, name string) (*domain.Parameter, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parameter), args.Error(1)
}

func (m *MockParameterRepository) SaveParameter(ctx context.Context, param domain.Parameter) error {
	args := m.Called(ctx, param)
	return args.Error(0)
}

// --- Mock GLSetupRepository ---

type MockGLSetupRepository struct {
	mock.Mock
}

var _ portsrepo.GLSetupRepositoryFacade = (*MockGLSetupRepository)(nil)

func (m *MockGLSetupRepository) FindGL(ctx context.Context, glNum string) (*domain.GLSetup, error) {
	args := m.Called(ctx, glNum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLSetup), args.Error(1)
}

func (m *MockGLSetupRepository) ListGLsByLayer(ctx context.Context, layerID int) ([]domain.GLSetup, error) {
	args := m.Called(ctx, layerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLSetup), args.Error(1)
}

func (m *MockGLSetupRepository) ListGLsByLayerAndParent(ctx context.Context, layerID int, parentGLNum string) ([]domain.GLSetup, error) {
	args := m.Called(ctx, layerID, parentGLNum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLSetup), args.Error(1)
}

func (m *MockGLSetupRepository) ListActiveGLNums(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGLSetupRepository) ListBalanceSheetGLNums(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountInfo(ctx context.Context, accountNo string) (*domain.AccountInfo, error) {
	args := m.Called(ctx, accountNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountInfo), args.Error(1)
}

func (m *MockAccountRepository) AccountExists(ctx context.Context, accountNo string) (bool, error) {
	args := m.Called(ctx, accountNo)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) ListActiveCustomerAccounts(ctx context.Context) ([]domain.CustomerAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerAccount), args.Error(1)
}

func (m *MockAccountRepository) ListActiveOfficeAccounts(ctx context.Context) ([]domain.OfficeAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OfficeAccount), args.Error(1)
}

func (m *MockAccountRepository) FindCustomerAccount(ctx context.Context, accountNo string) (*domain.CustomerAccount, error) {
	args := m.Called(ctx, accountNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerAccount), args.Error(1)
}

func (m *MockAccountRepository) NextAccountSeq(ctx context.Context, glNum string) (int, error) {
	args := m.Called(ctx, glNum)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) CountOfficeAccountsByGL(ctx context.Context, glNum string) (int, error) {
	args := m.Called(ctx, glNum)
	return args.Int(0), args.Error(1)
}

// --- Mock BalanceRepository ---

type MockBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.BalanceRepositoryFacade = (*MockBalanceRepository)(nil)

func (m *MockBalanceRepository) FindLatestAcctBal(ctx context.Context, accountNo string, asOf time.Time) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountNo, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceRepository) FindAcctBal(ctx context.Context, accountNo string, tranDate time.Time) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountNo, tranDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceRepository) EnsureAcctBal(ctx context.Context, accountNo string, tranDate time.Time, opening decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, accountNo, tranDate, opening, now)
	return args.Error(0)
}

func (m *MockBalanceRepository) ApplyAcctPosting(ctx context.Context, accountNo string, tranDate time.Time, flag domain.DrCrFlag, amount, loanLimit decimal.Decimal, now time.Time) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountNo, tranDate, flag, amount, loanLimit, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceRepository) SaveAcctBal(ctx context.Context, bal domain.AccountBalance) error {
	args := m.Called(ctx, bal)
	return args.Error(0)
}

func (m *MockBalanceRepository) FindLatestGLBal(ctx context.Context, glNum string, asOf time.Time) (*domain.GLBalance, error) {
	args := m.Called(ctx, glNum, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLBalance), args.Error(1)
}

func (m *MockBalanceRepository) FindGLBal(ctx context.Context, glNum string, tranDate time.Time) (*domain.GLBalance, error) {
	args := m.Called(ctx, glNum, tranDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLBalance), args.Error(1)
}

func (m *MockBalanceRepository) EnsureGLBal(ctx context.Context, glNum string, tranDate time.Time, opening decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, glNum, tranDate, opening, now)
	return args.Error(0)
}

func (m *MockBalanceRepository) ApplyGLPosting(ctx context.Context, glNum string, tranDate time.Time, flag domain.DrCrFlag, amount decimal.Decimal, now time.Time) (*domain.GLBalance, error) {
	args := m.Called(ctx, glNum, tranDate, flag, amount, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLBalance), args.Error(1)
}

func (m *MockBalanceRepository) SaveGLBal(ctx context.Context, bal domain.GLBalance) error {
	args := m.Called(ctx, bal)
	return args.Error(0)
}

func (m *MockBalanceRepository) ListGLBalsByDate(ctx context.Context, tranDate time.Time, glNums []string) ([]domain.GLBalance, error) {
	args := m.Called(ctx, tranDate, glNums)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLBalance), args.Error(1)
}

func (m *MockBalanceRepository) SaveAccrualBal(ctx context.Context, bal domain.AccrualBalance) error {
	args := m.Called(ctx, bal)
	return args.Error(0)
}

func (m *MockBalanceRepository) FindLatestAccrualBal(ctx context.Context, accountNo string, asOf time.Time) (*domain.AccrualBalance, error) {
	args := m.Called(ctx, accountNo, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccrualBalance), args.Error(1)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveLegs(ctx context.Context, legs []domain.TransactionLeg) error {
	args := m.Called(ctx, legs)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindLegsByBase(ctx context.Context, baseTranID string) ([]domain.TransactionLeg, error) {
	args := m.Called(ctx, baseTranID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionLeg), args.Error(1)
}

func (m *MockTransactionRepository) FindLegsByBaseAndStatus(ctx context.Context, baseTranID string, status domain.TranStatus) ([]domain.TransactionLeg, error) {
	args := m.Called(ctx, baseTranID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionLeg), args.Error(1)
}

func (m *MockTransactionRepository) UpdateLegStatus(ctx context.Context, legTranID string, status domain.TranStatus) error {
	args := m.Called(ctx, legTranID, status)
	return args.Error(0)
}

func (m *MockTransactionRepository) CountLegsByDate(ctx context.Context, tranDate time.Time) (int64, error) {
	args := m.Called(ctx, tranDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SumByAccountAndDate(ctx context.Context, accountNo string, tranDate time.Time, flag domain.DrCrFlag) (decimal.Decimal, error) {
	args := m.Called(ctx, accountNo, tranDate, flag)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) ListFutureLegsDue(ctx context.Context, asOf time.Time) ([]domain.TransactionLeg, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionLeg), args.Error(1)
}

func (m *MockTransactionRepository) CountFutureLegs(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) ListAllLegs(ctx context.Context) ([]domain.TransactionLeg, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionLeg), args.Error(1)
}

func (m *MockTransactionRepository) ListLegsByDateAndStatuses(ctx context.Context, tranDate time.Time, statuses []domain.TranStatus) ([]domain.TransactionLeg, error) {
	args := m.Called(ctx, tranDate, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionLeg), args.Error(1)
}

// --- Mock GLMovementRepository ---

type MockGLMovementRepository struct {
	mock.Mock
}

var _ portsrepo.GLMovementRepositoryFacade = (*MockGLMovementRepository)(nil)

func (m *MockGLMovementRepository) SaveMovement(ctx context.Context, mv domain.GLMovement) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

func (m *MockGLMovementRepository) ListMovementsByDate(ctx context.Context, tranDate time.Time) ([]domain.GLMovement, error) {
	args := m.Called(ctx, tranDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLMovement), args.Error(1)
}

func (m *MockGLMovementRepository) DistinctGLNumsByDate(ctx context.Context, tranDate time.Time) ([]string, error) {
	args := m.Called(ctx, tranDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGLMovementRepository) SumDrCrByGLAndDate(ctx context.Context, glNum string, tranDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, glNum, tranDate)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockGLMovementRepository) SaveAccrualMovement(ctx context.Context, mv domain.GLMovementAccrual) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

func (m *MockGLMovementRepository) ListAccrualMovementsByDate(ctx context.Context, tranDate time.Time) ([]domain.GLMovementAccrual, error) {
	args := m.Called(ctx, tranDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLMovementAccrual), args.Error(1)
}

func (m *MockGLMovementRepository) DistinctAccrualGLNumsByDate(ctx context.Context, tranDate time.Time) ([]string, error) {
	args := m.Called(ctx, tranDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGLMovementRepository) DeleteAccrualMovementsByDate(ctx context.Context, tranDate time.Time) (int64, error) {
	args := m.Called(ctx, tranDate)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AccrualRepository ---

type MockAccrualRepository struct {
	mock.Mock
}

var _ portsrepo.AccrualRepositoryFacade = (*MockAccrualRepository)(nil)

func (m *MockAccrualRepository) SaveAccruals(ctx context.Context, legs []domain.InterestAccrual) error {
	args := m.Called(ctx, legs)
	return args.Error(0)
}

func (m *MockAccrualRepository) MaxSeqByDate(ctx context.Context, accrualDate time.Time) (int, error) {
	args := m.Called(ctx, accrualDate)
	return args.Int(0), args.Error(1)
}

func (m *MockAccrualRepository) ListByDateAndStatus(ctx context.Context, accrualDate time.Time, status domain.AccrualStatus) ([]domain.InterestAccrual, error) {
	args := m.Called(ctx, accrualDate, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterestAccrual), args.Error(1)
}

func (m *MockAccrualRepository) UpdateStatus(ctx context.Context, accrTranID string, status domain.AccrualStatus) error {
	args := m.Called(ctx, accrTranID, status)
	return args.Error(0)
}

func (m *MockAccrualRepository) SumByAccountAndDate(ctx context.Context, accountNo string, accrualDate time.Time, flag domain.DrCrFlag) (decimal.Decimal, error) {
	args := m.Called(ctx, accountNo, accrualDate, flag)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccrualRepository) DistinctAccountsByDate(ctx context.Context, accrualDate time.Time) ([]string, error) {
	args := m.Called(ctx, accrualDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccrualRepository) DeleteByDate(ctx context.Context, accrualDate time.Time) (int64, error) {
	args := m.Called(ctx, accrualDate)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock SubProductRepository ---

type MockSubProductRepository struct {
	mock.Mock
}

var _ portsrepo.SubProductRepositoryFacade = (*MockSubProductRepository)(nil)

func (m *MockSubProductRepository) FindSubProduct(ctx context.Context, subProductID int) (*domain.SubProduct, error) {
	args := m.Called(ctx, subProductID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubProduct), args.Error(1)
}

func (m *MockSubProductRepository) FindLatestRate(ctx context.Context, inttCode string, asOf time.Time) (*domain.InterestRate, error) {
	args := m.Called(ctx, inttCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterestRate), args.Error(1)
}

// --- Mock HistoryRepository ---

type MockHistoryRepository struct {
	mock.Mock
}

var _ portsrepo.HistoryRepositoryFacade = (*MockHistoryRepository)(nil)

func (m *MockHistoryRepository) SaveHistory(ctx context.Context, h domain.TxnHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByAccount(ctx context.Context, accountNo string, limit int, nextToken *string) ([]domain.TxnHistory, *string, error) {
	args := m.Called(ctx, accountNo, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		val := args.Get(1).(string)
		token = &val
	}
	return args.Get(0).([]domain.TxnHistory), token, args.Error(2)
}

// --- Mock EODLogRepository ---

type MockEODLogRepository struct {
	mock.Mock
}

var _ portsrepo.EODLogRepositoryFacade = (*MockEODLogRepository)(nil)

func (m *MockEODLogRepository) SaveLog(ctx context.Context, log domain.EODLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockEODLogRepository) HasSuccess(ctx context.Context, eodDate time.Time, jobName string) (bool, error) {
	args := m.Called(ctx, eodDate, jobName)
	return args.Bool(0), args.Error(1)
}

func (m *MockEODLogRepository) ListByDate(ctx context.Context, eodDate time.Time) ([]domain.EODLog, error) {
	args := m.Called(ctx, eodDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EODLog), args.Error(1)
}

// --- Pass-through TxManager ---

// FakeTxManager runs the unit of work inline, with no transaction.
type FakeTxManager struct{}

var _ portsrepo.TxManager = (*FakeTxManager)(nil)

func (f *FakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- Mock service facades ---

type MockBalanceSvc struct {
	mock.Mock
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceSvc)(nil)

func (m *MockBalanceSvc) PreviousClosingBalance(ctx context.Context, accountNo string, systemDate time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountNo, systemDate)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceSvc) AvailableBalance(ctx context.Context, accountNo string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountNo)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceSvc) ComputedBalance(ctx context.Context, accountNo string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountNo)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceSvc) ApplyAcctPosting(ctx context.Context, accountNo string, flag domain.DrCrFlag, amount decimal.Decimal) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountNo, flag, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockBalanceSvc) ApplyGLPosting(ctx context.Context, glNum string, flag domain.DrCrFlag, amount decimal.Decimal) (*domain.GLBalance, error) {
	args := m.Called(ctx, glNum, flag, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLBalance), args.Error(1)
}

type MockValidationSvc struct {
	mock.Mock
}

var _ portssvc.ValidationSvcFacade = (*MockValidationSvc)(nil)

func (m *MockValidationSvc) ValidateLeg(ctx context.Context, accountNo string, flag domain.DrCrFlag, amount decimal.Decimal) error {
	args := m.Called(ctx, accountNo, flag, amount)
	return args.Error(0)
}

type MockHistorySvc struct {
	mock.Mock
}

var _ portssvc.HistorySvcFacade = (*MockHistorySvc)(nil)

func (m *MockHistorySvc) RecordLeg(ctx context.Context, leg domain.TransactionLeg, verifiedBy string) error {
	args := m.Called(ctx, leg, verifiedBy)
	return args.Error(0)
}

func (m *MockHistorySvc) ListByAccount(ctx context.Context, accountNo string, limit int, nextToken *string) (*dto.ListHistoryResponse, error) {
	args := m.Called(ctx, accountNo, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListHistoryResponse), args.Error(1)
}

// FakeClock serves a fixed business date.
type FakeClock struct {
	Date time.Time
	Err  error
}

var _ portssvc.SystemClockSvcFacade = (*FakeClock)(nil)

func (f *FakeClock) Now(ctx context.Context) (time.Time, error) {
	return f.Date, f.Err
}

func (f *FakeClock) NowTimestamp(ctx context.Context) (time.Time, error) {
	if f.Err != nil {
		return time.Time{}, f.Err
	}
	return time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (f *FakeClock) Set(ctx context.Context, date time.Time, userID string) error {
	f.Date = date
	return nil
}

func (f *FakeClock) LastEOD(ctx context.Context) (string, string, string, error) {
	return "", "", "", nil
}

type MockEODBatchSvc struct {
	mock.Mock
}

var _ portssvc.EODBatchSvcFacade = (*MockEODBatchSvc)(nil)

func (m *MockEODBatchSvc) UpdateAccountBalances(ctx context.Context, systemDate time.Time) (int, error) {
	args := m.Called(ctx, systemDate)
	return args.Int(0), args.Error(1)
}

func (m *MockEODBatchSvc) ProcessAccrualMovements(ctx context.Context, systemDate time.Time) (int, error) {
	args := m.Called(ctx, systemDate)
	return args.Int(0), args.Error(1)
}

func (m *MockEODBatchSvc) ConsolidateGLMovements(ctx context.Context, systemDate time.Time) (int, error) {
	args := m.Called(ctx, systemDate)
	return args.Int(0), args.Error(1)
}

func (m *MockEODBatchSvc) UpdateGLBalances(ctx context.Context, systemDate time.Time) (int, error) {
	args := m.Called(ctx, systemDate)
	return args.Int(0), args.Error(1)
}

func (m *MockEODBatchSvc) UpdateAccrualBalances(ctx context.Context, systemDate time.Time) (int, error) {
	args := m.Called(ctx, systemDate)
	return args.Int(0), args.Error(1)
}

type MockAccrualSvc struct {
	mock.Mock
}

var _ portssvc.InterestAccrualSvcFacade = (*MockAccrualSvc)(nil)

func (m *MockAccrualSvc) RunDailyAccruals(ctx context.Context, accrualDate time.Time) (*dto.AccrualRunResult, error) {
	args := m.Called(ctx, accrualDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccrualRunResult), args.Error(1)
}

type MockReportsSvc struct {
	mock.Mock
}

var _ portssvc.ReportsSvcFacade = (*MockReportsSvc)(nil)

func (m *MockReportsSvc) Generate(ctx context.Context, reportDate time.Time) (map[string]string, error) {
	args := m.Called(ctx, reportDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockReportsSvc) ReadReport(ctx context.Context, kind string, yyyymmdd string) ([]byte, string, error) {
	args := m.Called(ctx, kind, yyyymmdd)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
