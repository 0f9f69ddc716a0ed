package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sipcalc/sip-calculator/internal/domain"
	money "github.com/sipcalc/sip-calculator/pkg/decimal"
)

var hundred = decimal.NewFromInt(100)

// effectiveReturn deducts the expense ratio from the nominal return, floored at zero.
func effectiveReturn(cfg domain.InvestmentConfig) decimal.Decimal {
	return decimal.Max(decimal.Zero, cfg.ExpectedReturn.Sub(cfg.ExpenseRatio))
}

// taxOnGains applies the flat rate to returns only. Negative returns yield a
// negative tax (a credit); that is the established behavior and is kept.
func taxOnGains(totalReturns, taxRate decimal.Decimal) decimal.Decimal {
	return totalReturns.Mul(money.PercentRate(taxRate))
}

// realValue discounts the post-tax value by compound inflation over the horizon.
// A zero factor (inflation of exactly -100%) has no meaningful discount and yields zero.
func realValue(postTaxValue, inflationRate decimal.Decimal, years int) decimal.Decimal {
	factor := money.CompoundFactor(inflationRate, years)
	if factor.IsZero() {
		return decimal.Zero
	}
	return money.RoundUnits(postTaxValue.Div(factor))
}

// goalProgress is post-tax value over target as a percentage in [0, 100].
// Zero when no target is set.
func goalProgress(postTaxValue, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	pct := postTaxValue.Div(target).Mul(hundred)
	return decimal.Max(decimal.Zero, decimal.Min(hundred, pct))
}

func goalShortfall(postTaxValue, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	return decimal.Max(decimal.Zero, target.Sub(postTaxValue))
}

func chartPoints(breakdown []domain.YearlyRecord) []domain.ChartPoint {
	points := make([]domain.ChartPoint, len(breakdown))
	for i, rec := range breakdown {
		points[i] = domain.ChartPoint{
			Year:     fmt.Sprintf("Y%d", rec.Year),
			Invested: rec.InvestedAmount,
			Wealth:   rec.TotalValue,
		}
	}
	return points
}
