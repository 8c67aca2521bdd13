package accounting

import (
	"testing"

	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct{ in, want string }{
		{"1.004", "1.00"},
		{"1.005", "1.01"},
		{"1.015", "1.02"},
		{"198.6301369", "198.63"},
		{"-1.005", "-1.01"},
	}
	for _, tt := range tests {
		assert.True(t, dec(tt.want).Equal(Round(dec(tt.in))), "Round(%s) = %s, want %s", tt.in, Round(dec(tt.in)), tt.want)
	}
}

func TestClosingBalance(t *testing.T) {
	// closing = opening + CR - DR
	got := ClosingBalance(dec("5000.00"), dec("1000.00"), dec("250.00"))
	assert.True(t, dec("4250.00").Equal(got))
}

func TestSignedBalanceZeroSum(t *testing.T) {
	// Liability and income count positive, asset and expenditure negative;
	// a balanced book sums to zero once signs are applied.
	sum := decimal.Zero
	sum = sum.Add(SignedBalance(domain.Liability, dec("1000.00")))
	sum = sum.Add(SignedBalance(domain.Income, dec("200.00")))
	sum = sum.Add(SignedBalance(domain.Asset, dec("1100.00")))
	sum = sum.Add(SignedBalance(domain.Expenditure, dec("100.00")))
	assert.True(t, sum.IsZero(), "signed sum is %s", sum)
}

func TestDailyInterest(t *testing.T) {
	// 1,000,000 at 7.25% over 365 days: 1,000,000 * 7.25 / 36500 = 198.63
	got := DailyInterest(dec("1000000.00"), dec("7.25"))
	assert.True(t, dec("198.63").Equal(got), "got %s", got)

	assert.True(t, DailyInterest(decimal.Zero, dec("7.25")).IsZero())
	assert.True(t, DailyInterest(dec("1000000.00"), decimal.Zero).IsZero())
}

func TestIsBalanced(t *testing.T) {
	legs := []domain.TransactionLeg{
		{DrCrFlag: domain.Debit, LcyAmt: dec("1000.00")},
		{DrCrFlag: domain.Credit, LcyAmt: dec("600.00")},
		{DrCrFlag: domain.Credit, LcyAmt: dec("400.00")},
	}
	assert.True(t, IsBalanced(legs))

	legs[2].LcyAmt = dec("399.99")
	assert.False(t, IsBalanced(legs))
}

func TestSumByFlag(t *testing.T) {
	legs := []domain.TransactionLeg{
		{DrCrFlag: domain.Debit, LcyAmt: dec("10.00")},
		{DrCrFlag: domain.Debit, LcyAmt: dec("5.50")},
		{DrCrFlag: domain.Credit, LcyAmt: dec("15.50")},
	}
	assert.True(t, dec("15.50").Equal(SumByFlag(legs, domain.Debit)))
	assert.True(t, dec("15.50").Equal(SumByFlag(legs, domain.Credit)))
}
