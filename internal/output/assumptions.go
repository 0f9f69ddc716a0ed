package output

import (
	"github.com/sipcalc/sip-calculator/internal/calculation"
	"github.com/sipcalc/sip-calculator/internal/domain"
)

// assumptionsFor returns the assumptions recorded on results, or the fixed
// model assumptions when the comparison was built without them.
func assumptionsFor(results *domain.ScenarioComparison) []string {
	if len(results.Assumptions) > 0 {
		return results.Assumptions
	}
	return calculation.ModelAssumptions
}
