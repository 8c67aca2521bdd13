package services_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/bancsuite/coreledger/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func glSetupFixture(glNum, name string) *domain.GLSetup {
	return &domain.GLSetup{GLNum: glNum, GLName: name, LayerID: 4}
}

func balancedGLBalances(tranDate time.Time) []domain.GLBalance {
	return []domain.GLBalance{
		{
			GLNum: "110101000", TranDate: tranDate,
			OpeningBal: dec("5000.00"), DrSummation: dec("1000.00"), CrSummation: dec("0.00"),
			ClosingBal: dec("4000.00"),
		},
		{
			GLNum: "110102000", TranDate: tranDate,
			OpeningBal: dec("0.00"), DrSummation: dec("0.00"), CrSummation: dec("1000.00"),
			ClosingBal: dec("1000.00"),
		},
	}
}

func TestGenerateReports(t *testing.T) {
	ctx := context.Background()
	reportDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	dir := t.TempDir()

	glRepo := new(MockGLSetupRepository)
	balRepo := new(MockBalanceRepository)
	svc := services.NewReportsService(glRepo, balRepo, dir)

	glNums := []string{"110101000", "110102000"}
	glRepo.On("ListActiveGLNums", ctx).Return(glNums, nil)
	glRepo.On("ListBalanceSheetGLNums", ctx).Return(glNums, nil)
	glRepo.On("FindGL", ctx, "110101000").Return(glSetupFixture("110101000", "Savings Deposits"), nil)
	glRepo.On("FindGL", ctx, "110102000").Return(glSetupFixture("110102000", "Office Payables"), nil)
	balRepo.On("ListGLBalsByDate", ctx, reportDate, glNums).Return(balancedGLBalances(reportDate), nil)

	paths, err := svc.Generate(ctx, reportDate)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	// Trial balance CSV: header, two rows sorted by GL code, TOTAL footer.
	csvBytes, err := os.ReadFile(paths[services.ReportKindTrialBalance])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvBytes)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "GL_Code,GL_Name,Opening_Bal,DR_Summation,CR_Summation,Closing_Bal", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "110101000,Savings Deposits,5000.00,1000.00,0.00,4000.00"))
	assert.True(t, strings.HasPrefix(lines[3], "TOTAL,,5000.00,1000.00,1000.00,5000.00"))

	// Balance sheet workbook: merged title and the liability side populated
	// (both fixture GLs are liabilities, so the asset side stays empty).
	wb, err := excelize.OpenFile(paths[services.ReportKindBalanceSheet])
	require.NoError(t, err)
	defer wb.Close()

	title, err := wb.GetCellValue("Balance Sheet", "A1")
	require.NoError(t, err)
	assert.Equal(t, "BALANCE SHEET - 20240115", title)

	liabGL, err := wb.GetCellValue("Balance Sheet", "A4")
	require.NoError(t, err)
	assert.Equal(t, "110101000", liabGL)

	assert.Equal(t, filepath.Join(dir, "20240115"), filepath.Dir(paths[services.ReportKindTrialBalance]))
}

func TestGenerateTrialBalanceImbalanced(t *testing.T) {
	ctx := context.Background()
	reportDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	dir := t.TempDir()

	glRepo := new(MockGLSetupRepository)
	balRepo := new(MockBalanceRepository)
	svc := services.NewReportsService(glRepo, balRepo, dir)

	// A movement whose opposite leg is missing: DR total != CR total.
	glNums := []string{"110101000"}
	glRepo.On("ListActiveGLNums", ctx).Return(glNums, nil)
	glRepo.On("FindGL", ctx, "110101000").Return(glSetupFixture("110101000", "Savings Deposits"), nil)
	balRepo.On("ListGLBalsByDate", ctx, reportDate, glNums).Return([]domain.GLBalance{
		{
			GLNum: "110101000", TranDate: reportDate,
			DrSummation: dec("1000.00"), CrSummation: dec("0.00"), ClosingBal: dec("-1000.00"),
		},
	}, nil)

	_, err := svc.Generate(ctx, reportDate)
	assert.ErrorIs(t, err, apperrors.ErrInvariant)

	// The failed run leaves no trial balance file behind.
	_, statErr := os.Stat(filepath.Join(dir, "20240115", "TrialBalance_20240115.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateEmptyDay(t *testing.T) {
	ctx := context.Background()
	reportDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	dir := t.TempDir()

	glRepo := new(MockGLSetupRepository)
	balRepo := new(MockBalanceRepository)
	svc := services.NewReportsService(glRepo, balRepo, dir)

	glRepo.On("ListActiveGLNums", ctx).Return([]string{}, nil)
	glRepo.On("ListBalanceSheetGLNums", ctx).Return([]string{}, nil)
	balRepo.On("ListGLBalsByDate", ctx, reportDate, mock.Anything).Return([]domain.GLBalance{}, nil)

	paths, err := svc.Generate(ctx, reportDate)
	require.NoError(t, err, "an empty day produces empty reports, not an error")
	assert.Len(t, paths, 2)
}

func TestReadReport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	glRepo := new(MockGLSetupRepository)
	balRepo := new(MockBalanceRepository)
	svc := services.NewReportsService(glRepo, balRepo, dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "20240115"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20240115", "TrialBalance_20240115.csv"), []byte("data"), 0o644))

	data, name, err := svc.ReadReport(ctx, services.ReportKindTrialBalance, "20240115")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)
	assert.Equal(t, "TrialBalance_20240115.csv", name)

	_, _, err = svc.ReadReport(ctx, services.ReportKindBalanceSheet, "20240115")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, _, err = svc.ReadReport(ctx, "unknown", "20240115")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
