package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	portsrepo "github.com/bancsuite/coreledger/internal/core/ports/repositories"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Report kinds served by the download endpoint.
const (
	ReportKindTrialBalance = "trial-balance"
	ReportKindBalanceSheet = "balance-sheet"
)

// reportsService generates the closed-day financial reports: the Trial
// Balance CSV and the side-by-side Balance Sheet workbook.
type reportsService struct {
	glRepo     portsrepo.GLSetupRepositoryFacade
	balRepo    portsrepo.BalanceRepositoryFacade
	reportsDir string
}

// NewReportsService creates the financial reports service. Files land under
// reportsDir/<yyyymmdd>/.
func NewReportsService(
	glRepo portsrepo.GLSetupRepositoryFacade,
	balRepo portsrepo.BalanceRepositoryFacade,
	reportsDir string,
) portssvc.ReportsSvcFacade {
	return &reportsService{glRepo: glRepo, balRepo: balRepo, reportsDir: reportsDir}
}

var _ portssvc.ReportsSvcFacade = (*reportsService)(nil)

func (s *reportsService) Generate(ctx context.Context, reportDate time.Time) (map[string]string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	dateStr := reportDate.Format("20060102")

	dir := filepath.Join(s.reportsDir, dateStr)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}

	tbPath, err := s.generateTrialBalance(ctx, reportDate, dir, dateStr)
	if err != nil {
		return nil, err
	}
	bsPath, err := s.generateBalanceSheet(ctx, reportDate, dir, dateStr)
	if err != nil {
		return nil, err
	}

	logger.Info("Financial reports generated",
		slog.String("trial_balance", tbPath), slog.String("balance_sheet", bsPath))
	return map[string]string{
		ReportKindTrialBalance: tbPath,
		ReportKindBalanceSheet: bsPath,
	}, nil
}

// generateTrialBalance writes the CSV over the active GL set, sorted by GL
// code, with a TOTAL footer. Generation fails when the DR and CR totals
// disagree.
func (s *reportsService) generateTrialBalance(ctx context.Context, reportDate time.Time, dir, dateStr string) (string, error) {
	rows, err := s.trialBalanceRows(ctx, reportDate)
	if err != nil {
		return "", err
	}

	totalOpening, totalDR, totalCR, totalClosing := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, row := range rows {
		totalOpening = totalOpening.Add(row.OpeningBal)
		totalDR = totalDR.Add(row.DrSum)
		totalCR = totalCR.Add(row.CrSum)
		totalClosing = totalClosing.Add(row.ClosingBal)
	}
	if !totalDR.Equal(totalCR) {
		return "", fmt.Errorf("%w: trial balance DR total %s does not equal CR total %s",
			apperrors.ErrInvariant, totalDR.StringFixed(2), totalCR.StringFixed(2))
	}

	path := filepath.Join(dir, fmt.Sprintf("TrialBalance_%s.csv", dateStr))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create trial balance file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"GL_Code", "GL_Name", "Opening_Bal", "DR_Summation", "CR_Summation", "Closing_Bal"}); err != nil {
		return "", fmt.Errorf("failed to write trial balance header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.GLNum,
			row.GLName,
			row.OpeningBal.StringFixed(2),
			row.DrSum.StringFixed(2),
			row.CrSum.StringFixed(2),
			row.ClosingBal.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write trial balance row: %w", err)
		}
	}
	if err := w.Write([]string{
		"TOTAL", "",
		totalOpening.StringFixed(2),
		totalDR.StringFixed(2),
		totalCR.StringFixed(2),
		totalClosing.StringFixed(2),
	}); err != nil {
		return "", fmt.Errorf("failed to write trial balance total row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush trial balance: %w", err)
	}
	return path, nil
}

func (s *reportsService) trialBalanceRows(ctx context.Context, reportDate time.Time) ([]domain.TrialBalanceRow, error) {
	glNums, err := s.glRepo.ListActiveGLNums(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active GLs: %w", err)
	}

	balances, err := s.balRepo.ListGLBalsByDate(ctx, reportDate, glNums)
	if err != nil {
		return nil, fmt.Errorf("failed to list GL balances: %w", err)
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].GLNum < balances[j].GLNum })

	rows := make([]domain.TrialBalanceRow, 0, len(balances))
	for _, bal := range balances {
		rows = append(rows, domain.TrialBalanceRow{
			GLNum:      bal.GLNum,
			GLName:     s.glName(ctx, bal.GLNum),
			OpeningBal: bal.OpeningBal,
			DrSum:      bal.DrSummation,
			CrSum:      bal.CrSummation,
			ClosingBal: bal.ClosingBal,
		})
	}
	return rows, nil
}

// generateBalanceSheet writes the side-by-side workbook: liabilities in
// columns A-C, assets in E-G, a merged title row, section headers, column
// headers, paired data rows and a totals row.
func (s *reportsService) generateBalanceSheet(ctx context.Context, reportDate time.Time, dir, dateStr string) (string, error) {
	sheetData, err := s.balanceSheetData(ctx, reportDate)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("BalanceSheet_%s.xlsx", dateStr))
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Balance Sheet"
	f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	numberStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &[]string{"#,##0.00"}[0]})
	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &[]string{"#,##0.00"}[0],
	})

	// Merged title row.
	f.SetCellValue(sheet, "A1", "BALANCE SHEET - "+dateStr)
	f.MergeCell(sheet, "A1", "G1")
	f.SetCellStyle(sheet, "A1", "G1", titleStyle)

	// Section header row.
	f.SetCellValue(sheet, "A2", "=== LIABILITIES ===")
	f.SetCellValue(sheet, "E2", "=== ASSETS ===")
	f.SetCellStyle(sheet, "A2", "G2", headerStyle)

	// Column header row.
	for _, cell := range []struct{ ref, val string }{
		{"A3", "GL_Code"}, {"B3", "GL_Name"}, {"C3", "Closing_Bal"},
		{"E3", "GL_Code"}, {"F3", "GL_Name"}, {"G3", "Closing_Bal"},
	} {
		f.SetCellValue(sheet, cell.ref, cell.val)
	}
	f.SetCellStyle(sheet, "A3", "G3", headerStyle)

	// Paired data rows; the shorter side leaves blank cells.
	maxRows := len(sheetData.Liabilities)
	if len(sheetData.Assets) > maxRows {
		maxRows = len(sheetData.Assets)
	}
	for i := 0; i < maxRows; i++ {
		rowIdx := 4 + i
		if i < len(sheetData.Liabilities) {
			line := sheetData.Liabilities[i]
			f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), line.GLNum)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", rowIdx), line.GLName)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", rowIdx), line.ClosingBal.InexactFloat64())
			f.SetCellStyle(sheet, fmt.Sprintf("C%d", rowIdx), fmt.Sprintf("C%d", rowIdx), numberStyle)
		}
		if i < len(sheetData.Assets) {
			line := sheetData.Assets[i]
			f.SetCellValue(sheet, fmt.Sprintf("E%d", rowIdx), line.GLNum)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", rowIdx), line.GLName)
			f.SetCellValue(sheet, fmt.Sprintf("G%d", rowIdx), line.ClosingBal.InexactFloat64())
			f.SetCellStyle(sheet, fmt.Sprintf("G%d", rowIdx), fmt.Sprintf("G%d", rowIdx), numberStyle)
		}
	}

	// Totals row.
	totalRow := 4 + maxRows + 1
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "TOTAL LIABILITIES")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), sheetData.TotalLiabilities.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), "TOTAL ASSETS")
	f.SetCellValue(sheet, fmt.Sprintf("G%d", totalRow), sheetData.TotalAssets.InexactFloat64())
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("G%d", totalRow), totalStyle)

	for _, col := range []string{"A", "B", "C", "E", "F", "G"} {
		f.SetColWidth(sheet, col, col, 18)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to write balance sheet workbook: %w", err)
	}
	return path, nil
}

// balanceSheetData splits the closed-day balances of the balance-sheet GL
// set into liability and asset sides. Interest expenditure (14*) sits on the
// liability side and interest income (24*) on the asset side.
func (s *reportsService) balanceSheetData(ctx context.Context, reportDate time.Time) (*domain.BalanceSheet, error) {
	glNums, err := s.glRepo.ListBalanceSheetGLNums(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance sheet GLs: %w", err)
	}

	balances, err := s.balRepo.ListGLBalsByDate(ctx, reportDate, glNums)
	if err != nil {
		return nil, fmt.Errorf("failed to list GL balances: %w", err)
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].GLNum < balances[j].GLNum })

	sheet := &domain.BalanceSheet{
		TotalLiabilities: decimal.Zero,
		TotalAssets:      decimal.Zero,
	}
	for _, bal := range balances {
		line := domain.BalanceSheetLine{
			GLNum:      bal.GLNum,
			GLName:     s.glName(ctx, bal.GLNum),
			ClosingBal: bal.ClosingBal,
		}
		switch {
		case domain.IsBalanceSheetLiabilityGL(bal.GLNum):
			sheet.Liabilities = append(sheet.Liabilities, line)
			sheet.TotalLiabilities = sheet.TotalLiabilities.Add(bal.ClosingBal)
		case domain.IsBalanceSheetAssetGL(bal.GLNum):
			sheet.Assets = append(sheet.Assets, line)
			sheet.TotalAssets = sheet.TotalAssets.Add(bal.ClosingBal)
		}
	}
	return sheet, nil
}

// ReadReport returns the raw bytes and filename of a generated report.
func (s *reportsService) ReadReport(ctx context.Context, kind string, yyyymmdd string) ([]byte, string, error) {
	var fileName string
	switch kind {
	case ReportKindTrialBalance:
		fileName = fmt.Sprintf("TrialBalance_%s.csv", yyyymmdd)
	case ReportKindBalanceSheet:
		fileName = fmt.Sprintf("BalanceSheet_%s.xlsx", yyyymmdd)
	default:
		return nil, "", fmt.Errorf("%w: unknown report kind %q", apperrors.ErrValidation, kind)
	}

	path := filepath.Join(s.reportsDir, yyyymmdd, fileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: report %s for %s", apperrors.ErrNotFound, kind, yyyymmdd)
		}
		return nil, "", fmt.Errorf("failed to read report %s: %w", path, err)
	}
	return data, fileName, nil
}

func (s *reportsService) glName(ctx context.Context, glNum string) string {
	gl, err := s.glRepo.FindGL(ctx, glNum)
	if err != nil {
		return "Unknown GL"
	}
	return gl.GLName
}
