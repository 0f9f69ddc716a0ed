package output

import (
	"bytes"
	"fmt"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	cur := currencyOf(results)

	fmt.Fprintln(&buf, "SIP PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintln(&buf)
	for _, sc := range results.Scenarios {
		r := sc.Result
		fmt.Fprintf(&buf, "%s: Invested=%s Value=%s PostTax=%s Real=%s\n",
			sc.Name,
			FormatCurrency(r.TotalInvested, cur),
			FormatCurrency(r.TotalValue, cur),
			FormatCurrency(r.PostTaxValue, cur),
			FormatCurrency(r.RealValue, cur),
		)
		fmt.Fprintf(&buf, "  Returns=%s (%s) Multiplier=%s CostOfDelay=%s\n",
			FormatCurrency(r.TotalReturns, cur),
			FormatPercentage(r.AbsoluteReturnPercentage),
			FormatMultiplier(r.WealthMultiplier),
			FormatCurrency(r.CostOfDelay, cur),
		)
		if sc.Config.HasGoal() {
			fmt.Fprintf(&buf, "  Goal=%s Achieved=%s Shortfall=%s\n",
				FormatCurrency(sc.Config.TargetAmount, cur),
				FormatPercentage(r.GoalAchievedPercentage),
				FormatCurrency(r.GoalShortfall, cur),
			)
		}
	}
	if hs := Highlights(results); len(hs) > 0 {
		fmt.Fprintln(&buf)
		for _, h := range hs {
			fmt.Fprintf(&buf, "%s: %s\n", h.Criterion, h.Scenario)
		}
	}
	return buf.Bytes(), nil
}
