package dto

import (
	"time"

	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// HistoryRowResponse is one statement history row.
type HistoryRowResponse struct {
	TranID       string          `json:"tranId"`
	TranDate     time.Time       `json:"tranDate"`
	ValueDate    time.Time       `json:"valueDate"`
	DrCrFlag     domain.DrCrFlag `json:"drCrFlag"`
	TranCcy      string          `json:"tranCcy"`
	LcyAmt       decimal.Decimal `json:"lcyAmt"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Narration    string          `json:"narration"`
}

// ListHistoryResponse is a token-paged list of statement rows.
type ListHistoryResponse struct {
	AccountNo string               `json:"accountNo"`
	Rows      []HistoryRowResponse `json:"rows"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ToHistoryRowResponses converts domain history rows to the response shape.
func ToHistoryRowResponses(rows []domain.TxnHistory) []HistoryRowResponse {
	out := make([]HistoryRowResponse, len(rows))
	for i, h := range rows {
		out[i] = HistoryRowResponse{
			TranID:       h.TranID,
			TranDate:     h.TranDate,
			ValueDate:    h.ValueDate,
			DrCrFlag:     h.DrCrFlag,
			TranCcy:      h.TranCcy,
			LcyAmt:       h.LcyAmt,
			BalanceAfter: h.BalanceAfter,
			Narration:    h.Narration,
		}
	}
	return out
}
