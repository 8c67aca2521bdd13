package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// AccrualStatus is the processing state of an interest accrual leg.
type AccrualStatus string

const (
	AccrualPending   AccrualStatus = "Pending"
	AccrualProcessed AccrualStatus = "Processed"
)

// MaxAccrualSeq bounds the 9-digit per-date accrual sequence.
const MaxAccrualSeq = 999999999

// InterestAccrual is one leg of a daily interest accrual. Each accrual
// produces exactly two legs (one D, one C) with equal amounts; the GL account
// carried on each leg depends on whether the underlying account is asset or
// liability.
type InterestAccrual struct {
	AccrTranID   string          `json:"accrTranId"`
	AccountNo    string          `json:"accountNo"`
	AccrualDate  time.Time       `json:"accrualDate"`
	TranDate     time.Time       `json:"tranDate"`
	ValueDate    time.Time       `json:"valueDate"`
	InttRate     decimal.Decimal `json:"inttRate"`
	Amount       decimal.Decimal `json:"amount"`
	DrCrFlag     DrCrFlag        `json:"drCrFlag"`
	GLAccountNo  string          `json:"glAccountNo"`
	TranCcy      string          `json:"tranCcy"`
	FcyAmt       decimal.Decimal `json:"fcyAmt"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	LcyAmt       decimal.Decimal `json:"lcyAmt"`
	Narration    string          `json:"narration"`
	Status       AccrualStatus   `json:"status"`
	TranStatus   TranStatus      `json:"tranStatus"`
}

// NewAccrTranID builds an accrual id: "S" + yyyymmdd + 9-digit sequence +
// "-" + row (1 for debit, 2 for credit). Always exactly 20 characters.
func NewAccrTranID(accrualDate time.Time, seq int, row int) (string, error) {
	if seq < 1 || seq > MaxAccrualSeq {
		return "", fmt.Errorf("accrual sequence %d out of range [1, %d]", seq, MaxAccrualSeq)
	}
	if row != 1 && row != 2 {
		return "", fmt.Errorf("accrual row suffix must be 1 or 2, got %d", row)
	}
	return fmt.Sprintf("S%s%09d-%d", accrualDate.Format("20060102"), seq, row), nil
}

// AccrTranIDSeq extracts the 9-digit sequence from an accrual id. The format
// has no delimiter between date and sequence, so fixed offsets are used:
// positions 1..8 hold the date and 9..17 the sequence.
func AccrTranIDSeq(accrTranID string) (int, error) {
	if len(accrTranID) != 20 || accrTranID[0] != 'S' || accrTranID[18] != '-' {
		return 0, fmt.Errorf("malformed accrual id %q", accrTranID)
	}
	seq, err := strconv.Atoi(accrTranID[9:18])
	if err != nil {
		return 0, fmt.Errorf("malformed accrual id %q: %w", accrTranID, err)
	}
	return seq, nil
}

// GLMovementAccrual is the GL movement row written for a processed accrual
// leg by EOD Job 3.
type GLMovementAccrual struct {
	MovementID   int64           `json:"movementId"`
	AccrTranID   string          `json:"accrTranId"`
	GLNum        string          `json:"glNum"`
	DrCrFlag     DrCrFlag        `json:"drCrFlag"`
	TranDate     time.Time       `json:"tranDate"`
	ValueDate    time.Time       `json:"valueDate"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
}
