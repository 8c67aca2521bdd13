package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow is a single row in the trial balance report.
type TrialBalanceRow struct {
	GLNum      string          `json:"glNum"`
	GLName     string          `json:"glName"`
	OpeningBal decimal.Decimal `json:"openingBal"`
	DrSum      decimal.Decimal `json:"drSummation"`
	CrSum      decimal.Decimal `json:"crSummation"`
	ClosingBal decimal.Decimal `json:"closingBal"`
}

// BalanceSheetLine is one GL line on either side of the balance sheet.
type BalanceSheetLine struct {
	GLNum      string          `json:"glNum"`
	GLName     string          `json:"glName"`
	ClosingBal decimal.Decimal `json:"closingBal"`
}

// BalanceSheet is the side-by-side balance sheet for one closed business day.
type BalanceSheet struct {
	Liabilities      []BalanceSheetLine `json:"liabilities"`
	Assets           []BalanceSheetLine `json:"assets"`
	TotalLiabilities decimal.Decimal    `json:"totalLiabilities"`
	TotalAssets      decimal.Decimal    `json:"totalAssets"`
}
