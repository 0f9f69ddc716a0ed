package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sipcalc/sip-calculator/internal/domain"
	money "github.com/sipcalc/sip-calculator/pkg/decimal"
)

// ConsoleVerboseFormatter renders the detailed console report: inputs,
// headline figures, milestones and the year-by-year breakdown per scenario.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	cur := currencyOf(results)

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "SYSTEMATIC INVESTMENT PLAN PROJECTION")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, scenario := range results.Scenarios {
		cfg, r := scenario.Config, scenario.Result
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, scenario.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))

		fmt.Fprintln(&buf, "INPUTS:")
		fmt.Fprintf(&buf, "  Monthly Investment:     %s\n", FormatCurrency(cfg.MonthlyInvestment, cur))
		fmt.Fprintf(&buf, "  Year-1 Contribution:   %s\n", FormatCurrency(money.NewMoneyFromDecimal(cfg.MonthlyInvestment).Annual().Decimal, cur))
		fmt.Fprintf(&buf, "  Expected Return:        %s (effective %s)\n", FormatPercentage(cfg.ExpectedReturn), FormatPercentage(r.EffectiveReturn))
		fmt.Fprintf(&buf, "  Time Period:            %d years\n", cfg.TimePeriod)
		fmt.Fprintf(&buf, "  Annual Step-up:         %s\n", FormatPercentage(cfg.StepUpPercentage))
		fmt.Fprintf(&buf, "  Inflation:              %s\n", FormatPercentage(cfg.InflationRate))
		fmt.Fprintf(&buf, "  Initial Lumpsum:        %s\n", FormatCurrency(cfg.InitialLumpsum, cur))
		fmt.Fprintf(&buf, "  Expense Ratio:          %s\n", FormatPercentage(cfg.ExpenseRatio))
		fmt.Fprintf(&buf, "  Capital Gains Tax:      %s\n", FormatPercentage(cfg.TaxRate))
		fmt.Fprintln(&buf)

		fmt.Fprintln(&buf, "RESULTS:")
		fmt.Fprintf(&buf, "  Total Invested:         %s\n", FormatCurrency(r.TotalInvested, cur))
		fmt.Fprintf(&buf, "  Total Returns:          %s\n", FormatCurrency(r.TotalReturns, cur))
		fmt.Fprintf(&buf, "  Total Value:            %s\n", FormatCurrency(r.TotalValue, cur))
		fmt.Fprintf(&buf, "  Tax on Gains:           %s\n", FormatCurrency(r.TaxAmount, cur))
		fmt.Fprintf(&buf, "  Post-Tax Value:         %s\n", FormatCurrency(r.PostTaxValue, cur))
		fmt.Fprintf(&buf, "  Real Value (today):     %s\n", FormatCurrency(r.RealValue, cur))
		fmt.Fprintf(&buf, "  Absolute Return:        %s\n", FormatPercentage(r.AbsoluteReturnPercentage))
		fmt.Fprintf(&buf, "  Wealth Multiplier:      %s\n", FormatMultiplier(r.WealthMultiplier))
		fmt.Fprintf(&buf, "  Cost of 1-Year Delay:   %s\n", FormatCurrency(r.CostOfDelay, cur))
		if cfg.HasGoal() {
			fmt.Fprintf(&buf, "  Goal:                   %s\n", FormatCurrency(cfg.TargetAmount, cur))
			fmt.Fprintf(&buf, "  Goal Achieved:          %s\n", FormatPercentage(r.GoalAchievedPercentage))
			if r.GoalShortfall.IsPositive() {
				fmt.Fprintf(&buf, "  Shortfall:              %s\n", FormatCurrency(r.GoalShortfall, cur))
			}
		}
		fmt.Fprintln(&buf)

		fmt.Fprintln(&buf, "MILESTONES:")
		for _, m := range r.Milestones {
			fmt.Fprintf(&buf, "  %-12s %s\n", m.Label, FormatMilestoneYear(m))
		}
		fmt.Fprintln(&buf)

		fmt.Fprintln(&buf, "YEARLY BREAKDOWN:")
		fmt.Fprintf(&buf, "%-6s %18s %18s %18s %18s\n", "Year", "Monthly", "Invested", "Interest", "Total Value")
		fmt.Fprintln(&buf, strings.Repeat("-", 82))
		for _, y := range r.Breakdown {
			fmt.Fprintf(&buf, "%-6d %18s %18s %18s %18s\n", y.Year,
				FormatCurrency(y.MonthlyInvestment, cur),
				FormatCurrency(y.InvestedAmount, cur),
				FormatCurrency(y.InterestEarned, cur),
				FormatCurrency(y.TotalValue, cur),
			)
		}
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf)
	}

	if hs := Highlights(results); len(hs) > 0 {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		for _, h := range hs {
			fmt.Fprintf(&buf, "%s: %s\n", h.Criterion, h.Scenario)
		}
	}

	return buf.Bytes(), nil
}
