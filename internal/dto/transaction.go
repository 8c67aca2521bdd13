package dto

import (
	"time"

	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionLineRequest is one leg of a create-transaction request.
type TransactionLineRequest struct {
	AccountNo    string          `json:"accountNo" binding:"required,len=13"`
	DrCrFlag     domain.DrCrFlag `json:"drCrFlag" binding:"required,oneof=D C"`
	TranCcy      string          `json:"tranCcy" binding:"required,len=3,uppercase"`
	FcyAmt       decimal.Decimal `json:"fcyAmt"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	LcyAmt       decimal.Decimal `json:"lcyAmt" binding:"required"`
	Narration    string          `json:"narration"`
}

// CreateTransactionRequest creates a multi-leg transaction in Entry status.
type CreateTransactionRequest struct {
	ValueDate time.Time                `json:"valueDate" binding:"required"`
	Narration string                   `json:"narration" binding:"required"`
	Lines     []TransactionLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// TransactionLineResponse is one leg of a transaction response.
type TransactionLineResponse struct {
	TranID       string          `json:"tranId"`
	AccountNo    string          `json:"accountNo"`
	AccountName  string          `json:"accountName,omitempty"`
	DrCrFlag     domain.DrCrFlag `json:"drCrFlag"`
	TranCcy      string          `json:"tranCcy"`
	FcyAmt       decimal.Decimal `json:"fcyAmt"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	LcyAmt       decimal.Decimal `json:"lcyAmt"`
}

// TransactionResponse is the grouped view over the legs of one transaction.
type TransactionResponse struct {
	TranID    string                    `json:"tranId"`
	TranDate  time.Time                 `json:"tranDate"`
	ValueDate time.Time                 `json:"valueDate"`
	Narration string                    `json:"narration"`
	Status    string                    `json:"status"`
	Balanced  bool                      `json:"balanced"`
	Lines     []TransactionLineResponse `json:"lines"`
}

// ListTransactionsResponse is a page of transactions grouped by base tran id.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         int                   `json:"page"`
	Size         int                   `json:"size"`
	Total        int64                 `json:"total"`
}

// ReverseTransactionRequest reverses a transaction by creating inverse legs.
type ReverseTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ToTransactionResponse converts grouped domain legs into the response shape.
func ToTransactionResponse(txn *domain.Transaction, accountNames map[string]string) TransactionResponse {
	lines := make([]TransactionLineResponse, len(txn.Legs))
	for i, leg := range txn.Legs {
		lines[i] = TransactionLineResponse{
			TranID:       leg.TranID,
			AccountNo:    leg.AccountNo,
			AccountName:  accountNames[leg.AccountNo],
			DrCrFlag:     leg.DrCrFlag,
			TranCcy:      leg.TranCcy,
			FcyAmt:       leg.FcyAmt,
			ExchangeRate: leg.ExchangeRate,
			LcyAmt:       leg.LcyAmt,
		}
	}
	return TransactionResponse{
		TranID:    txn.TranID,
		TranDate:  txn.TranDate,
		ValueDate: txn.ValueDate,
		Narration: txn.Narration,
		Status:    string(txn.Status),
		Balanced:  true,
		Lines:     lines,
	}
}
