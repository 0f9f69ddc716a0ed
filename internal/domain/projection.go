package domain

import (
	"github.com/shopspring/decimal"
)

// YearlyRecord is the state of the plan at the end of one simulated year.
// All amounts are rounded to whole currency units.
type YearlyRecord struct {
	Year           int             `json:"year"`
	InvestedAmount decimal.Decimal `json:"investedAmount"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	// InterestEarned is cumulative growth (TotalValue - InvestedAmount), not the year's increment.
	InterestEarned decimal.Decimal `json:"interestEarned"`
	// MonthlyInvestment is the contribution active during this year.
	MonthlyInvestment decimal.Decimal `json:"monthlyInvestment"`
}

// Milestone records the first year the corpus reached Threshold. Year is nil when never reached.
type Milestone struct {
	Label     string          `json:"label"`
	Threshold decimal.Decimal `json:"threshold"`
	Year      *int            `json:"year"`
}

// Reached reports whether the milestone was hit within the horizon.
func (m Milestone) Reached() bool { return m.Year != nil }

// ChartPoint is one sample of the wealth-growth trajectory.
type ChartPoint struct {
	Year     string          `json:"year"`
	Invested decimal.Decimal `json:"invested"`
	Wealth   decimal.Decimal `json:"wealth"`
}

// ProjectionResult is the complete output of one engine run.
type ProjectionResult struct {
	TotalInvested   decimal.Decimal `json:"totalInvested"`
	TotalReturns    decimal.Decimal `json:"totalReturns"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	EffectiveReturn decimal.Decimal `json:"effectiveReturn"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	PostTaxValue    decimal.Decimal `json:"postTaxValue"`
	RealValue       decimal.Decimal `json:"realValue"` // post-tax value in today's purchasing power
	Breakdown       []YearlyRecord  `json:"breakdown"`
	CostOfDelay     decimal.Decimal `json:"costOfDelay"`
	Milestones      []Milestone     `json:"milestones"`

	AbsoluteReturnPercentage decimal.Decimal `json:"absoluteReturnPercentage"`
	WealthMultiplier         decimal.Decimal `json:"wealthMultiplier"`
	GoalAchievedPercentage   decimal.Decimal `json:"goalAchievedPercentage"`
	GoalShortfall            decimal.Decimal `json:"goalShortfall"`

	Chart []ChartPoint `json:"chart"`
}

// FinalYear returns the last breakdown row, or false for an empty horizon.
func (r *ProjectionResult) FinalYear() (YearlyRecord, bool) {
	if len(r.Breakdown) == 0 {
		return YearlyRecord{}, false
	}
	return r.Breakdown[len(r.Breakdown)-1], true
}

// MilestoneByLabel looks up a milestone by its label (e.g. "100k").
func (r *ProjectionResult) MilestoneByLabel(label string) (Milestone, bool) {
	for _, m := range r.Milestones {
		if m.Label == label {
			return m, true
		}
	}
	return Milestone{}, false
}

// ScenarioSummary pairs a named scenario with its projection
type ScenarioSummary struct {
	Name   string            `json:"name"`
	Config InvestmentConfig  `json:"config"`
	Result *ProjectionResult `json:"result"`
}

// ScenarioComparison provides a comparison of all scenarios
type ScenarioComparison struct {
	Currency            string            `json:"currency"`
	Scenarios           []ScenarioSummary `json:"scenarios"`
	BestForRealValue    string            `json:"best_for_real_value"`
	BestForPostTaxValue string            `json:"best_for_post_tax_value"`
	BestForGoalProgress string            `json:"best_for_goal_progress,omitempty"`
	LowestCostOfDelay   string            `json:"lowest_cost_of_delay"`
	Assumptions         []string          `json:"assumptions"`
}
