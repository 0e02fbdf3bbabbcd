package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// maxConvertibleDays caps how much of a balance may be converted to cash in
// one conversion.
var maxConvertibleDays = decimal.NewFromInt(5)

var twelveMonths = decimal.NewFromInt(12)

// ProratedLeave returns the portion of the annual quota earned by reference,
// at one twelfth per full month employed. Capped at the annual quota so
// long-tenured employees accrue the full grant, never more.
func ProratedLeave(annualQuota decimal.Decimal, hireDate, reference time.Time) decimal.Decimal {
	if annualQuota.IsNegative() || reference.Before(hireDate) {
		return decimal.Zero
	}

	months := fullMonthsBetween(hireDate, reference)
	accrued := annualQuota.Mul(decimal.NewFromInt(int64(months))).Div(twelveMonths)
	if accrued.GreaterThan(annualQuota) {
		return annualQuota
	}
	return accrued
}

// AnniversaryLeave returns one bonus day per full year of regularized
// service. A nil regularization date means the employee never regularized and
// earns nothing.
func AnniversaryLeave(regularizationDate *time.Time, reference time.Time) int {
	if regularizationDate == nil || reference.Before(*regularizationDate) {
		return 0
	}
	return fullMonthsBetween(*regularizationDate, reference) / 12
}

// ConvertibleDays returns how many days of a balance may be cashed out:
// never more than the ceiling, never negative.
func ConvertibleDays(balance decimal.Decimal) decimal.Decimal {
	if balance.IsNegative() {
		return decimal.Zero
	}
	if balance.GreaterThan(maxConvertibleDays) {
		return maxConvertibleDays
	}
	return balance
}

// fullMonthsBetween counts completed calendar months from start to end,
// clamped at zero.
func fullMonthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
