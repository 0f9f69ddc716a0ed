package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

// analyzeScenarios fills the ranking fields of a comparison. Ties keep the
// earlier scenario. Goal ranking is only set when some scenario has a target.
func analyzeScenarios(comparison *domain.ScenarioComparison) {
	var bestReal, bestPostTax, bestGoal, lowestDelay *domain.ScenarioSummary

	for i := range comparison.Scenarios {
		sc := &comparison.Scenarios[i]
		res := sc.Result
		if res == nil {
			continue
		}
		if bestReal == nil || res.RealValue.GreaterThan(bestReal.Result.RealValue) {
			bestReal = sc
		}
		if bestPostTax == nil || res.PostTaxValue.GreaterThan(bestPostTax.Result.PostTaxValue) {
			bestPostTax = sc
		}
		if sc.Config.HasGoal() && (bestGoal == nil || res.GoalAchievedPercentage.GreaterThan(bestGoal.Result.GoalAchievedPercentage)) {
			bestGoal = sc
		}
		if lowestDelay == nil || res.CostOfDelay.LessThan(lowestDelay.Result.CostOfDelay) {
			lowestDelay = sc
		}
	}

	if bestReal != nil {
		comparison.BestForRealValue = bestReal.Name
	}
	if bestPostTax != nil {
		comparison.BestForPostTaxValue = bestPostTax.Name
	}
	if bestGoal != nil {
		comparison.BestForGoalProgress = bestGoal.Name
	}
	if lowestDelay != nil {
		comparison.LowestCostOfDelay = lowestDelay.Name
	}
}

// ModelAssumptions are the fixed modeling rules behind every projection.
var ModelAssumptions = []string{
	"Contributions are added at the start of each month, then the balance compounds monthly",
	"Expense ratio is deducted from the annual return, never below 0%",
	"Step-up raises the monthly contribution at each year boundary",
	"Tax is a flat rate on gains only, applied once at the end of the horizon",
	"Real value discounts the post-tax value by compound inflation",
	"Cost of delay compares against the same plan started one year later",
}

// GenerateAssumptions lists the model rules followed by the inputs each scenario used.
func GenerateAssumptions(summaries []domain.ScenarioSummary) []string {
	out := append([]string(nil), ModelAssumptions...)
	for _, sc := range summaries {
		c := sc.Config
		out = append(out, fmt.Sprintf("%s: %s%% return (%s%% after expenses), %s%% step-up, %s%% inflation, %s%% tax over %d years",
			sc.Name, pctString(c.ExpectedReturn), pctString(effectiveReturn(c)), pctString(c.StepUpPercentage),
			pctString(c.InflationRate), pctString(c.TaxRate), c.TimePeriod))
	}
	return out
}

func pctString(d decimal.Decimal) string {
	return d.StringFixed(1)
}
