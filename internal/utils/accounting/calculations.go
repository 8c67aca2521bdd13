package accounting

import (
	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// interestYearDivisor converts an annual percentage rate into one day's
// simple interest on a 365-day year: bal * rate / 36500.
var interestYearDivisor = decimal.NewFromInt(36500)

// Round applies half-up rounding at scale 2. Every currency amount in the
// ledger passes through this before comparison or storage.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ClosingBalance derives the closing balance of a daily balance row from its
// arithmetic components: opening + CR - DR. DR and CR are non-negative
// magnitudes; callers interpret the sign per GL class.
func ClosingBalance(opening, drSum, crSum decimal.Decimal) decimal.Decimal {
	return opening.Add(crSum).Sub(drSum)
}

// SignedBalance applies the accounting sign convention to a closing balance:
// liability and income balances count positive, asset and expenditure
// balances negative. Summed across all GLs for one date the result is zero.
func SignedBalance(class domain.GLClass, closing decimal.Decimal) decimal.Decimal {
	switch class {
	case domain.Liability, domain.Income:
		return closing
	default:
		return closing.Neg()
	}
}

// DailyInterest computes one day of simple interest on bal at an annual
// percentage rate, rounded half-up to scale 2.
func DailyInterest(bal, annualRatePct decimal.Decimal) decimal.Decimal {
	return bal.Mul(annualRatePct).DivRound(interestYearDivisor, 2)
}

// SumByFlag totals the local-currency amounts of legs carrying the given
// flag.
func SumByFlag(legs []domain.TransactionLeg, flag domain.DrCrFlag) decimal.Decimal {
	sum := decimal.Zero
	for _, leg := range legs {
		if leg.DrCrFlag == flag {
			sum = sum.Add(leg.LcyAmt)
		}
	}
	return sum
}

// IsBalanced reports whether the legs' debits equal their credits at scale 2.
// Amounts are rounded half-up before comparison.
func IsBalanced(legs []domain.TransactionLeg) bool {
	return Round(SumByFlag(legs, domain.Debit)).Equal(Round(SumByFlag(legs, domain.Credit)))
}
