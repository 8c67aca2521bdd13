package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	StatusActive   AccountStatus = "Active"
	StatusInactive AccountStatus = "Inactive"
	StatusClosed   AccountStatus = "Closed"
	StatusDormant  AccountStatus = "Dormant"
)

// AccountKind distinguishes customer accounts from office accounts.
type AccountKind string

const (
	KindCustomer AccountKind = "CUSTOMER"
	KindOffice   AccountKind = "OFFICE"
)

// CustomerAccount is a row of the customer account master.
type CustomerAccount struct {
	AccountNo    string          `json:"accountNo"`
	CustID       string          `json:"custId"`
	SubProductID int             `json:"subProductId"`
	GLNum        string          `json:"glNum"`
	AcctName     string          `json:"acctName"`
	DateOpening  time.Time       `json:"dateOpening"`
	Tenor        *int            `json:"tenor,omitempty"`
	DateMaturity *time.Time      `json:"dateMaturity,omitempty"`
	DateClosure  *time.Time      `json:"dateClosure,omitempty"`
	BranchCode   string          `json:"branchCode"`
	Status       AccountStatus   `json:"status"`
	LoanLimit    decimal.Decimal `json:"loanLimit"`
}

// OfficeAccount is a row of the office account master. Office account
// numbers are "9" + GL + 2-digit sequence, at most 99 accounts per GL.
type OfficeAccount struct {
	AccountNo    string        `json:"accountNo"`
	SubProductID *int          `json:"subProductId,omitempty"`
	GLNum        string        `json:"glNum"`
	AcctName     string        `json:"acctName"`
	DateOpening  time.Time     `json:"dateOpening"`
	DateClosure  *time.Time    `json:"dateClosure,omitempty"`
	BranchCode   string        `json:"branchCode"`
	Status       AccountStatus `json:"status"`
}

// AccountInfo is the unified, read-only snapshot the registry hands out for
// any account number. Callers never mutate the underlying record through it.
type AccountInfo struct {
	AccountNo string          `json:"accountNo"`
	Kind      AccountKind     `json:"kind"`
	GLNum     string          `json:"glNum"`
	Status    AccountStatus   `json:"status"`
	LoanLimit decimal.Decimal `json:"loanLimit"`
	AcctName  string          `json:"acctName"`
}

// IsCustomer reports whether the account lives in the customer master.
func (a AccountInfo) IsCustomer() bool {
	return a.Kind == KindCustomer
}

// Class is the accounting class of the account's owning GL.
func (a AccountInfo) Class() GLClass {
	return ClassifyGL(a.GLNum)
}

// IsAsset reports whether the owning GL is an asset-side code (prefix 2).
func (a AccountInfo) IsAsset() bool {
	return strings.HasPrefix(a.GLNum, "2")
}

// IsLiability reports whether the owning GL is a liability-side code (prefix 1).
func (a AccountInfo) IsLiability() bool {
	return strings.HasPrefix(a.GLNum, "1")
}
