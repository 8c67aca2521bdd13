package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the per-account daily balance row, keyed by
// (accountNo, tranDate). DR and CR summations are non-negative magnitudes;
// ClosingBal = OpeningBal + CR - DR, with the sign interpreted per GL class
// by callers.
type AccountBalance struct {
	AccountNo        string          `json:"accountNo"`
	TranDate         time.Time       `json:"tranDate"`
	OpeningBal       decimal.Decimal `json:"openingBal"`
	DrSummation      decimal.Decimal `json:"drSummation"`
	CrSummation      decimal.Decimal `json:"crSummation"`
	ClosingBal       decimal.Decimal `json:"closingBal"`
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	LastUpdated      time.Time       `json:"lastUpdated"`
}

// GLBalance is the per-GL daily balance row, keyed by (glNum, tranDate).
type GLBalance struct {
	GLNum          string          `json:"glNum"`
	TranDate       time.Time       `json:"tranDate"`
	OpeningBal     decimal.Decimal `json:"openingBal"`
	DrSummation    decimal.Decimal `json:"drSummation"`
	CrSummation    decimal.Decimal `json:"crSummation"`
	ClosingBal     decimal.Decimal `json:"closingBal"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

// AccrualBalance is the per-account interest accrual balance row written by
// EOD Job 6.
type AccrualBalance struct {
	AccountNo   string          `json:"accountNo"`
	TranDate    time.Time       `json:"tranDate"`
	OpeningBal  decimal.Decimal `json:"openingBal"`
	DrSummation decimal.Decimal `json:"drSummation"`
	CrSummation decimal.Decimal `json:"crSummation"`
	ClosingBal  decimal.Decimal `json:"closingBal"`
	LastUpdated time.Time       `json:"lastUpdated"`
}
