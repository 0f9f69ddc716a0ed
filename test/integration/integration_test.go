package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipcalc/sip-calculator/internal/calculation"
	"github.com/sipcalc/sip-calculator/internal/config"
	"github.com/sipcalc/sip-calculator/internal/domain"
)

func loadAndRun(t *testing.T, path string) *domain.ScenarioComparison {
	t.Helper()
	parser := config.NewInputParser()
	file, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	results, err := calculation.NewProjectionEngine().RunScenarios(context.Background(), file)
	require.NoError(t, err)
	return results
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEndToEndCalculation(t *testing.T) {
	results := loadAndRun(t, "../testdata/example_config.yaml")

	assert.Equal(t, "USD", results.Currency)
	require.Len(t, results.Scenarios, 2)

	starter := results.Scenarios[0].Result
	assert.True(t, starter.TotalInvested.Equal(dec("60000")))
	assert.True(t, starter.TotalValue.Equal(dec("116170")))
	assert.True(t, starter.TaxAmount.Equal(dec("5617")))
	assert.True(t, starter.PostTaxValue.Equal(dec("110553")))
	assert.True(t, starter.RealValue.Equal(dec("61732")))
	assert.True(t, starter.CostOfDelay.Equal(dec("18759")))
	assert.True(t, starter.GoalAchievedPercentage.Round(4).Equal(dec("55.2765")))
	assert.True(t, starter.GoalShortfall.Equal(dec("89447")))

	stepUp := results.Scenarios[1].Result
	assert.True(t, stepUp.TotalInvested.Equal(dec("6973000")))
	assert.True(t, stepUp.TotalValue.Equal(dec("19842631")))
	assert.True(t, stepUp.PostTaxValue.Equal(dec("18233927")))
	assert.True(t, stepUp.RealValue.Equal(dec("5685425")))
	assert.True(t, stepUp.CostOfDelay.Equal(dec("2842674")))
	assert.True(t, stepUp.EffectiveReturn.Equal(dec("11.5")))
	assert.True(t, stepUp.GoalAchievedPercentage.Round(6).Equal(dec("36.467854")))
	assert.Len(t, stepUp.Breakdown, 20)
	assert.Len(t, stepUp.Chart, 20)

	assert.Equal(t, "Step-up with lumpsum", results.BestForRealValue)
	assert.Equal(t, "Step-up with lumpsum", results.BestForPostTaxValue)
	assert.Equal(t, "Starter with goal", results.BestForGoalProgress)
	assert.Equal(t, "Starter with goal", results.LowestCostOfDelay)
	assert.Len(t, results.Assumptions, len(calculation.ModelAssumptions)+2)
}

func TestBreakdownInvariants(t *testing.T) {
	results := loadAndRun(t, "../testdata/example_config.yaml")

	for _, sc := range results.Scenarios {
		r := sc.Result
		require.Len(t, r.Breakdown, sc.Config.TimePeriod, sc.Name)

		last := r.Breakdown[len(r.Breakdown)-1]
		assert.True(t, last.InvestedAmount.Equal(r.TotalInvested), sc.Name)
		assert.True(t, last.TotalValue.Equal(r.TotalValue), sc.Name)

		for i, row := range r.Breakdown {
			assert.Equal(t, i+1, row.Year)
			// each column is rounded on its own, so they may disagree by one unit
			drift := row.TotalValue.Sub(row.InvestedAmount).Sub(row.InterestEarned).Abs()
			assert.True(t, drift.LessThanOrEqual(decimal.NewFromInt(1)), "%s year %d", sc.Name, row.Year)
			if i > 0 {
				prev := r.Breakdown[i-1]
				assert.True(t, row.InvestedAmount.GreaterThan(prev.InvestedAmount))
				assert.True(t, row.MonthlyInvestment.GreaterThanOrEqual(prev.MonthlyInvestment))
			}
		}
	}
}

func TestPresetScenarios(t *testing.T) {
	results := loadAndRun(t, "../testdata/presets_config.yaml")

	require.Len(t, results.Scenarios, 3)
	assert.True(t, results.Scenarios[0].Config.ExpectedReturn.Equal(dec("8")))
	assert.True(t, results.Scenarios[1].Config.ExpectedReturn.Equal(dec("12")))
	assert.True(t, results.Scenarios[2].Config.ExpectedReturn.Equal(dec("15")))

	for _, sc := range results.Scenarios {
		assert.True(t, sc.Result.TotalInvested.Equal(dec("900000")), sc.Name)
	}
	assert.True(t, results.Scenarios[2].Result.TotalValue.GreaterThan(results.Scenarios[1].Result.TotalValue))
	assert.True(t, results.Scenarios[1].Result.TotalValue.GreaterThan(results.Scenarios[0].Result.TotalValue))

	assert.Equal(t, "Aggressive", results.BestForRealValue)
	assert.Equal(t, "Conservative", results.LowestCostOfDelay)
	assert.Empty(t, results.BestForGoalProgress, "no scenario has a goal")
}

func TestQueryBootstrapMatchesScenarioFile(t *testing.T) {
	results := loadAndRun(t, "../testdata/example_config.yaml")
	want := results.Scenarios[1]

	cfg, err := config.FromQuery(config.ToQuery(want.Config))
	require.NoError(t, err)
	got := calculation.NewProjectionEngine().Compute(cfg)

	assert.True(t, got.TotalValue.Equal(want.Result.TotalValue))
	assert.True(t, got.RealValue.Equal(want.Result.RealValue))
}
