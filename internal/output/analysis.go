package output

import (
	"github.com/sipcalc/sip-calculator/internal/domain"
)

// Highlight names the scenario that wins one comparison criterion.
type Highlight struct {
	Criterion string
	Scenario  string
}

// Highlights lists the comparison winners recorded on results, skipping
// criteria that have no winner. Single-scenario comparisons have no highlights.
func Highlights(results *domain.ScenarioComparison) []Highlight {
	if results == nil || len(results.Scenarios) < 2 {
		return nil
	}
	candidates := []Highlight{
		{"Highest real (inflation-adjusted) value", results.BestForRealValue},
		{"Highest post-tax value", results.BestForPostTaxValue},
		{"Closest to goal", results.BestForGoalProgress},
		{"Lowest cost of delay", results.LowestCostOfDelay},
	}
	out := make([]Highlight, 0, len(candidates))
	for _, h := range candidates {
		if h.Scenario != "" {
			out = append(out, h)
		}
	}
	return out
}
