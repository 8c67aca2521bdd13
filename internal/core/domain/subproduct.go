package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubProduct carries the interest and GL configuration an account inherits.
// CumGLNum is the leaf GL its accounts roll up to.
type SubProduct struct {
	SubProductID          int              `json:"subProductId"`
	SubProductCode        string           `json:"subProductCode"`
	SubProductName        string           `json:"subProductName"`
	ProductID             int              `json:"productId"`
	CumGLNum              string           `json:"cumGlNum"`
	InttCode              string           `json:"inttCode"`
	InterestIncrement     decimal.Decimal  `json:"interestIncrement"`
	EffectiveInterestRate *decimal.Decimal `json:"effectiveInterestRate,omitempty"`
	// For liability accounts the pair holds expenditure / payable GLs; for
	// asset accounts income / receivable GLs.
	InttIncomeExpenditureGLNum string `json:"inttIncomeExpenditureGlNum"`
	InttReceivablePayableGLNum string `json:"inttReceivablePayableGlNum"`
	Status                     string `json:"status"`
}

// InterestRate is one row of the interest rate master: the rate for an
// interest code effective from a given date.
type InterestRate struct {
	InttCode      string          `json:"inttCode"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	Rate          decimal.Decimal `json:"rate"`
}
