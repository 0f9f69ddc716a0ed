package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "MonthlyInvestment", "ExpectedReturn", "TimePeriod", "StepUpPercentage", "TotalInvested", "TotalReturns", "TotalValue", "TaxAmount", "PostTaxValue", "RealValue", "CostOfDelay", "AbsoluteReturnPercentage", "WealthMultiplier", "GoalAchievedPercentage"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		r := sc.Result
		row := []string{
			sc.Name,
			sc.Config.MonthlyInvestment.String(),
			sc.Config.ExpectedReturn.String(),
			intToString(sc.Config.TimePeriod),
			sc.Config.StepUpPercentage.String(),
			r.TotalInvested.String(),
			r.TotalReturns.String(),
			r.TotalValue.String(),
			r.TaxAmount.StringFixed(2),
			r.PostTaxValue.String(),
			r.RealValue.String(),
			r.CostOfDelay.String(),
			r.AbsoluteReturnPercentage.StringFixed(2),
			r.WealthMultiplier.StringFixed(4),
			r.GoalAchievedPercentage.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
