package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

// MilestoneThreshold is one wealth level tracked in every projection.
type MilestoneThreshold struct {
	Label  string
	Amount decimal.Decimal
}

// DefaultMilestones are the thresholds reported by the engine, ascending.
// They are plain amounts in the same unit as the inputs.
var DefaultMilestones = []MilestoneThreshold{
	{Label: "100k", Amount: decimal.NewFromInt(100_000)},
	{Label: "1 Million", Amount: decimal.NewFromInt(1_000_000)},
	{Label: "5 Million", Amount: decimal.NewFromInt(5_000_000)},
	{Label: "10 Million", Amount: decimal.NewFromInt(10_000_000)},
	{Label: "100 Million", Amount: decimal.NewFromInt(100_000_000)},
}

// FindMilestones reports, for each threshold, the first year whose total value
// reaches it. Unreached thresholds keep a nil Year.
func FindMilestones(breakdown []domain.YearlyRecord, thresholds []MilestoneThreshold) []domain.Milestone {
	milestones := make([]domain.Milestone, len(thresholds))
	for i, th := range thresholds {
		milestones[i] = domain.Milestone{Label: th.Label, Threshold: th.Amount}
		for _, rec := range breakdown {
			if rec.TotalValue.GreaterThanOrEqual(th.Amount) {
				year := rec.Year
				milestones[i].Year = &year
				break
			}
		}
	}
	return milestones
}
