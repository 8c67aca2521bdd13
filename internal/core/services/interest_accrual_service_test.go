package services_test

import (
	"context"
	"testing"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/bancsuite/coreledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func runningLiabilityAccount() domain.CustomerAccount {
	return domain.CustomerAccount{
		AccountNo:    "A100000010001",
		SubProductID: 7,
		GLNum:        "110201000", // running liability
		Status:       domain.StatusActive,
	}
}

func savingsSubProduct() *domain.SubProduct {
	return &domain.SubProduct{
		SubProductID:               7,
		SubProductCode:             "SB01",
		CumGLNum:                   "110201000",
		InttCode:                   "SBRATE",
		InterestIncrement:          dec("0.25"),
		InttIncomeExpenditureGLNum: "140101000",
		InttReceivablePayableGLNum: "130101000",
	}
}

func TestRunDailyAccruals(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(MockAccountRepository)
	subProductRepo := new(MockSubProductRepository)
	balRepo := new(MockBalanceRepository)
	accrualRepo := new(MockAccrualRepository)
	svc := services.NewInterestAccrualService(accountRepo, subProductRepo, balRepo, accrualRepo, "BDT")

	accrualRepo.On("DeleteByDate", ctx, systemDate).Return(int64(0), nil)
	accountRepo.On("ListActiveCustomerAccounts", ctx).Return([]domain.CustomerAccount{runningLiabilityAccount()}, nil)
	accrualRepo.On("MaxSeqByDate", ctx, systemDate).Return(0, nil)
	subProductRepo.On("FindSubProduct", ctx, 7).Return(savingsSubProduct(), nil)
	subProductRepo.On("FindLatestRate", ctx, "SBRATE", systemDate).Return(&domain.InterestRate{
		InttCode: "SBRATE", Rate: dec("7.00"),
	}, nil)
	balRepo.On("FindAcctBal", ctx, "A100000010001", systemDate).Return(&domain.AccountBalance{
		ClosingBal: dec("1000000.00"),
	}, nil)

	var saved []domain.InterestAccrual
	accrualRepo.On("SaveAccruals", ctx, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]domain.InterestAccrual)
	}).Return(nil)

	result, err := svc.RunDailyAccruals(ctx, systemDate)
	require.NoError(t, err)

	assert.Equal(t, 2, result.EntriesCreated)
	assert.Equal(t, 1, result.AccountsProcessed)
	assert.Empty(t, result.Errors)

	// Effective rate 7.00 + 0.25 = 7.25; 1,000,000 * 7.25 / 36500 = 198.63.
	require.Len(t, saved, 2)
	assert.Equal(t, "S20240115000000001-1", saved[0].AccrTranID)
	assert.Equal(t, "S20240115000000001-2", saved[1].AccrTranID)
	assert.Equal(t, domain.Debit, saved[0].DrCrFlag)
	assert.Equal(t, domain.Credit, saved[1].DrCrFlag)
	assert.True(t, dec("198.63").Equal(saved[0].Amount), "got %s", saved[0].Amount)
	assert.True(t, saved[0].Amount.Equal(saved[1].Amount))

	// Liability: debit goes to the expenditure GL, credit to the payable GL.
	assert.Equal(t, "140101000", saved[0].GLAccountNo)
	assert.Equal(t, "130101000", saved[1].GLAccountNo)
	assert.Equal(t, domain.AccrualPending, saved[0].Status)
}

func TestRunDailyAccrualsSkipsZeroBalance(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(MockAccountRepository)
	subProductRepo := new(MockSubProductRepository)
	balRepo := new(MockBalanceRepository)
	accrualRepo := new(MockAccrualRepository)
	svc := services.NewInterestAccrualService(accountRepo, subProductRepo, balRepo, accrualRepo, "BDT")

	accrualRepo.On("DeleteByDate", ctx, systemDate).Return(int64(0), nil)
	accountRepo.On("ListActiveCustomerAccounts", ctx).Return([]domain.CustomerAccount{runningLiabilityAccount()}, nil)
	accrualRepo.On("MaxSeqByDate", ctx, systemDate).Return(0, nil)
	subProductRepo.On("FindSubProduct", ctx, 7).Return(savingsSubProduct(), nil)
	subProductRepo.On("FindLatestRate", ctx, "SBRATE", systemDate).Return(&domain.InterestRate{Rate: dec("7.00")}, nil)
	balRepo.On("FindAcctBal", ctx, "A100000010001", systemDate).Return(&domain.AccountBalance{
		ClosingBal: decimal.Zero,
	}, nil)

	result, err := svc.RunDailyAccruals(ctx, systemDate)
	require.NoError(t, err)
	assert.Zero(t, result.EntriesCreated)
	assert.Empty(t, result.Errors)
	accrualRepo.AssertNotCalled(t, "SaveAccruals", mock.Anything, mock.Anything)
}

func TestRunDailyAccrualsCollectsPerAccountErrors(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(MockAccountRepository)
	subProductRepo := new(MockSubProductRepository)
	balRepo := new(MockBalanceRepository)
	accrualRepo := new(MockAccrualRepository)
	svc := services.NewInterestAccrualService(accountRepo, subProductRepo, balRepo, accrualRepo, "BDT")

	broken := runningLiabilityAccount()
	broken.AccountNo = "A100000020001"

	accrualRepo.On("DeleteByDate", ctx, systemDate).Return(int64(0), nil)
	accountRepo.On("ListActiveCustomerAccounts", ctx).Return([]domain.CustomerAccount{broken}, nil)
	accrualRepo.On("MaxSeqByDate", ctx, systemDate).Return(0, nil)
	subProductRepo.On("FindSubProduct", ctx, 7).Return(savingsSubProduct(), nil)
	subProductRepo.On("FindLatestRate", ctx, "SBRATE", systemDate).Return(&domain.InterestRate{Rate: dec("7.00")}, nil)
	// Balance row missing: the account fails but the batch succeeds.
	balRepo.On("FindAcctBal", ctx, "A100000020001", systemDate).Return(nil, apperrors.ErrNotFound)

	result, err := svc.RunDailyAccruals(ctx, systemDate)
	require.NoError(t, err)
	assert.Zero(t, result.EntriesCreated)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "A100000020001", result.Errors[0].AccountNo)
	assert.Contains(t, result.Errors[0].Message, "balance row missing")
}

func TestRunDailyAccrualsNoGLConfigured(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(MockAccountRepository)
	subProductRepo := new(MockSubProductRepository)
	balRepo := new(MockBalanceRepository)
	accrualRepo := new(MockAccrualRepository)
	svc := services.NewInterestAccrualService(accountRepo, subProductRepo, balRepo, accrualRepo, "BDT")

	subProduct := savingsSubProduct()
	subProduct.InttIncomeExpenditureGLNum = ""
	subProduct.InttReceivablePayableGLNum = ""

	accrualRepo.On("DeleteByDate", ctx, systemDate).Return(int64(0), nil)
	accountRepo.On("ListActiveCustomerAccounts", ctx).Return([]domain.CustomerAccount{runningLiabilityAccount()}, nil)
	accrualRepo.On("MaxSeqByDate", ctx, systemDate).Return(0, nil)
	subProductRepo.On("FindSubProduct", ctx, 7).Return(subProduct, nil)
	subProductRepo.On("FindLatestRate", ctx, "SBRATE", systemDate).Return(&domain.InterestRate{Rate: dec("7.00")}, nil)
	balRepo.On("FindAcctBal", ctx, "A100000010001", systemDate).Return(&domain.AccountBalance{
		ClosingBal: dec("1000.00"),
	}, nil)

	result, err := svc.RunDailyAccruals(ctx, systemDate)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "no interest GL configured")
}

func TestLiabilityDealUsesFixedRate(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(MockAccountRepository)
	subProductRepo := new(MockSubProductRepository)
	balRepo := new(MockBalanceRepository)
	accrualRepo := new(MockAccrualRepository)
	svc := services.NewInterestAccrualService(accountRepo, subProductRepo, balRepo, accrualRepo, "BDT")

	dealAccount := domain.CustomerAccount{
		AccountNo:    "A100000030001",
		SubProductID: 9,
		GLNum:        "110203000", // 1102* = liability deal
		Status:       domain.StatusActive,
	}
	fixed := dec("9.50")
	dealSubProduct := &domain.SubProduct{
		SubProductID:               9,
		SubProductCode:             "FD01",
		CumGLNum:                   "110203000",
		InttCode:                   "FDRATE",
		EffectiveInterestRate:      &fixed,
		InttIncomeExpenditureGLNum: "140101000",
		InttReceivablePayableGLNum: "130101000",
	}

	accrualRepo.On("DeleteByDate", ctx, systemDate).Return(int64(0), nil)
	accountRepo.On("ListActiveCustomerAccounts", ctx).Return([]domain.CustomerAccount{dealAccount}, nil)
	accrualRepo.On("MaxSeqByDate", ctx, systemDate).Return(0, nil)
	subProductRepo.On("FindSubProduct", ctx, 9).Return(dealSubProduct, nil)
	balRepo.On("FindAcctBal", ctx, "A100000030001", systemDate).Return(&domain.AccountBalance{
		ClosingBal: dec("100000.00"),
	}, nil)

	var saved []domain.InterestAccrual
	accrualRepo.On("SaveAccruals", ctx, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]domain.InterestAccrual)
	}).Return(nil)

	result, err := svc.RunDailyAccruals(ctx, systemDate)
	require.NoError(t, err)
	assert.Equal(t, 2, result.EntriesCreated)

	// The rate master is never consulted for a liability deal account.
	subProductRepo.AssertNotCalled(t, "FindLatestRate", mock.Anything, mock.Anything, mock.Anything)
	// 100,000 * 9.50 / 36500 = 26.03 (half-up).
	require.Len(t, saved, 2)
	assert.True(t, dec("26.03").Equal(saved[0].Amount), "got %s", saved[0].Amount)
}
