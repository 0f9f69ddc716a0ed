package decimal

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount in a single implied currency unit
type Money struct {
	decimal.Decimal
}

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Units rounds the amount to whole currency units, half away from zero
func (m Money) Units() Money {
	return Money{RoundUnits(m.Decimal)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(twelve)}
}

// AfterTaxOn deducts tax at a percentage rate (e.g. 10 = 10%) levied on gains only.
func (m Money) AfterTaxOn(gains Money, ratePercent decimal.Decimal) Money {
	return Money{m.Decimal.Sub(gains.Decimal.Mul(PercentRate(ratePercent)))}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// GreaterThanOrEqual checks if this amount is greater than or equal to another
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.Decimal.GreaterThanOrEqual(other.Decimal)
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String prints the amount in whole units.
func (m Money) String() string {
	return m.Decimal.StringFixed(0)
}

// RoundUnits rounds to whole currency units. shopspring rounds half away from zero.
func RoundUnits(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// PercentRate converts a percentage (12 = 12%) into a fractional rate (0.12).
func PercentRate(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// MonthlyRate converts an annual percentage into the per-month fractional rate.
func MonthlyRate(annualPct decimal.Decimal) decimal.Decimal {
	return annualPct.Div(twelve.Mul(hundred))
}

// CompoundFactor returns (1 + pct/100)^periods.
func CompoundFactor(pct decimal.Decimal, periods int) decimal.Decimal {
	return decimal.NewFromInt(1).Add(PercentRate(pct)).Pow(decimal.NewFromInt(int64(periods)))
}

// Ratio returns num/den, or zero when den is zero.
func Ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}
