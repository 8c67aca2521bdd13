package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnHistory is one immutable statement row, written per leg when a
// transaction is verified. BalanceAfter carries the account balance after the
// leg so statements can be rendered without recomputation.
type TxnHistory struct {
	HistID       int64           `json:"histId"`
	TranID       string          `json:"tranId"`
	AccountNo    string          `json:"accountNo"`
	TranDate     time.Time       `json:"tranDate"`
	ValueDate    time.Time       `json:"valueDate"`
	DrCrFlag     DrCrFlag        `json:"drCrFlag"`
	TranCcy      string          `json:"tranCcy"`
	LcyAmt       decimal.Decimal `json:"lcyAmt"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Narration    string          `json:"narration"`
	VerifiedBy   string          `json:"verifiedBy"`
	CreatedAt    time.Time       `json:"createdAt"`
}
