package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DrCrFlag marks a leg as debit or credit.
type DrCrFlag string

const (
	Debit  DrCrFlag = "D"
	Credit DrCrFlag = "C"
)

// Opposite returns the inverse flag, used when building reversal legs.
func (f DrCrFlag) Opposite() DrCrFlag {
	if f == Debit {
		return Credit
	}
	return Debit
}

// TranStatus is the lifecycle state of a transaction. All legs of one
// transaction transition together.
type TranStatus string

const (
	TranEntry    TranStatus = "Entry"
	TranPosted   TranStatus = "Posted"
	TranVerified TranStatus = "Verified"
	TranFuture   TranStatus = "Future"
)

// TransactionLeg is one line of a multi-leg double-entry transaction.
// Immutable after creation except for TranStatus transitions.
type TransactionLeg struct {
	TranID       string          `json:"tranId"`
	TranDate     time.Time       `json:"tranDate"`
	ValueDate    time.Time       `json:"valueDate"`
	DrCrFlag     DrCrFlag        `json:"drCrFlag"`
	TranStatus   TranStatus      `json:"tranStatus"`
	AccountNo    string          `json:"accountNo"`
	TranCcy      string          `json:"tranCcy"`
	FcyAmt       decimal.Decimal `json:"fcyAmt"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	LcyAmt       decimal.Decimal `json:"lcyAmt"`
	Narration    string          `json:"narration"`
	PointingID   *string         `json:"pointingId,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Transaction is the grouped view over the legs sharing one base tran id.
type Transaction struct {
	TranID    string           `json:"tranId"`
	TranDate  time.Time        `json:"tranDate"`
	ValueDate time.Time        `json:"valueDate"`
	Narration string           `json:"narration"`
	Status    TranStatus       `json:"status"`
	Legs      []TransactionLeg `json:"legs"`
}

// NewTranID builds a base transaction id: "T" + yyyymmdd + 6-digit sequence
// + 3-digit random component.
func NewTranID(tranDate time.Time, seq int64, random int) string {
	return fmt.Sprintf("T%s%06d%03d", tranDate.Format("20060102"), seq, random)
}

// LegTranID appends the line number to a base tran id.
func LegTranID(baseTranID string, lineNo int) string {
	return fmt.Sprintf("%s-%d", baseTranID, lineNo)
}

// BaseTranID strips the line-number suffix from a leg id.
// "T20240115000001123-1" -> "T20240115000001123".
func BaseTranID(legTranID string) string {
	if i := strings.LastIndex(legTranID, "-"); i > 0 {
		return legTranID[:i]
	}
	return legTranID
}

// GLMovement is the append-only record of one posted leg's effect on its GL.
type GLMovement struct {
	MovementID   int64           `json:"movementId"`
	TranID       string          `json:"tranId"`
	GLNum        string          `json:"glNum"`
	DrCrFlag     DrCrFlag        `json:"drCrFlag"`
	TranDate     time.Time       `json:"tranDate"`
	ValueDate    time.Time       `json:"valueDate"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
}
