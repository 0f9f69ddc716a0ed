package calculation

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func makeConfig(monthly, ret float64, years int, stepUp, inflation, lumpsum, expense, tax, target float64) domain.InvestmentConfig {
	return domain.InvestmentConfig{
		MonthlyInvestment: dec(monthly),
		ExpectedReturn:    dec(ret),
		TimePeriod:        years,
		StepUpPercentage:  dec(stepUp),
		InflationRate:     dec(inflation),
		InitialLumpsum:    dec(lumpsum),
		ExpenseRatio:      dec(expense),
		TaxRate:           dec(tax),
		TargetAmount:      dec(target),
	}
}

func assertAmount(t *testing.T, want int64, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, decimal.NewFromInt(want).Equal(got), "%s: want %d, got %s", field, want, got.String())
}

func TestCompute_DefaultScenario(t *testing.T) {
	engine := NewProjectionEngine()
	res := engine.Compute(domain.DefaultInvestmentConfig())

	require.Len(t, res.Breakdown, 10)
	assertAmount(t, 60000, res.TotalInvested, "TotalInvested")
	assertAmount(t, 116170, res.TotalValue, "TotalValue")
	assertAmount(t, 56170, res.TotalReturns, "TotalReturns")
	assertAmount(t, 116170, res.PostTaxValue, "PostTaxValue")
	assertAmount(t, 64869, res.RealValue, "RealValue")
	assertAmount(t, 18759, res.CostOfDelay, "CostOfDelay")
	assert.True(t, res.TaxAmount.IsZero())
	assert.True(t, res.GoalAchievedPercentage.IsZero())
	assert.True(t, res.GoalShortfall.IsZero())
	assert.InDelta(t, 93.6166667, res.AbsoluteReturnPercentage.InexactFloat64(), 1e-6)
	assert.InDelta(t, 1.9361667, res.WealthMultiplier.InexactFloat64(), 1e-6)

	first := res.Breakdown[0]
	assert.Equal(t, 1, first.Year)
	assertAmount(t, 6000, first.InvestedAmount, "year1 invested")
	assertAmount(t, 6405, first.TotalValue, "year1 value")
	assertAmount(t, 405, first.InterestEarned, "year1 interest")
	assertAmount(t, 500, first.MonthlyInvestment, "year1 monthly")

	m, ok := res.MilestoneByLabel("100k")
	require.True(t, ok)
	require.NotNil(t, m.Year)
	assert.Equal(t, 10, *m.Year)
	for _, label := range []string{"1 Million", "5 Million", "10 Million", "100 Million"} {
		m, ok := res.MilestoneByLabel(label)
		require.True(t, ok, label)
		assert.Nil(t, m.Year, label)
	}

	require.Len(t, res.Chart, 10)
	assert.Equal(t, "Y10", res.Chart[9].Year)
	assert.True(t, res.Chart[9].Wealth.Equal(res.TotalValue))
}

func TestCompute_ReferenceScenarios(t *testing.T) {
	tests := []struct {
		name        string
		config      domain.InvestmentConfig
		invested    int64
		returns     int64
		value       int64
		postTax     int64
		real        int64
		costOfDelay int64
		goalPct     float64
		milestones  []int // 0 = not reached
	}{
		{
			name:        "tax and goal",
			config:      makeConfig(500, 12, 10, 0, 6, 0, 0, 10, 200000),
			invested:    60000,
			returns:     56170,
			value:       116170,
			postTax:     110553,
			real:        61732,
			costOfDelay: 18759,
			goalPct:     55.2765,
			milestones:  []int{10, 0, 0, 0, 0},
		},
		{
			name:        "step-up, lumpsum, expense ratio",
			config:      makeConfig(10000, 12, 20, 10, 6, 100000, 0.5, 12.5, 50000000),
			invested:    6973000,
			returns:     12869631,
			value:       19842631,
			postTax:     18233927,
			real:        5685425,
			costOfDelay: 2842674,
			goalPct:     36.467854,
			milestones:  []int{1, 5, 12, 16, 0},
		},
		{
			name:        "single year with lumpsum",
			config:      makeConfig(500, 12, 1, 0, 6, 10000, 0, 0, 0),
			invested:    16000,
			returns:     1673,
			value:       17673,
			postTax:     17673,
			real:        16673,
			costOfDelay: 7673,
			milestones:  []int{0, 0, 0, 0, 0},
		},
		{
			name:        "goal exceeded is capped",
			config:      makeConfig(5000, 10, 15, 5, 6, 0, 1, 20, 1000000),
			invested:    1294714,
			returns:     1235401,
			value:       2530115,
			postTax:     2283035,
			real:        952631,
			costOfDelay: 331038,
			goalPct:     100,
			milestones:  []int{2, 10, 0, 0, 0},
		},
		{
			name:        "expense ratio above return floors growth at zero",
			config:      makeConfig(500, 1, 10, 0, 6, 0, 5, 10, 0),
			invested:    60000,
			returns:     0,
			value:       60000,
			postTax:     60000,
			real:        33504,
			costOfDelay: 6000,
			milestones:  []int{0, 0, 0, 0, 0},
		},
	}

	engine := NewProjectionEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.Compute(tt.config)

			assertAmount(t, tt.invested, res.TotalInvested, "TotalInvested")
			assertAmount(t, tt.returns, res.TotalReturns, "TotalReturns")
			assertAmount(t, tt.value, res.TotalValue, "TotalValue")
			assertAmount(t, tt.postTax, res.PostTaxValue, "PostTaxValue")
			assertAmount(t, tt.real, res.RealValue, "RealValue")
			assertAmount(t, tt.costOfDelay, res.CostOfDelay, "CostOfDelay")
			assert.InDelta(t, tt.goalPct, res.GoalAchievedPercentage.InexactFloat64(), 1e-6)

			require.Len(t, res.Milestones, len(tt.milestones))
			for i, want := range tt.milestones {
				if want == 0 {
					assert.Nil(t, res.Milestones[i].Year, res.Milestones[i].Label)
					continue
				}
				require.NotNil(t, res.Milestones[i].Year, res.Milestones[i].Label)
				assert.Equal(t, want, *res.Milestones[i].Year, res.Milestones[i].Label)
			}
		})
	}
}

func TestCompute_StepUpTakesEffectNextYear(t *testing.T) {
	res := NewProjectionEngine().Compute(makeConfig(10000, 12, 20, 10, 6, 100000, 0.5, 12.5, 50000000))
	require.Len(t, res.Breakdown, 20)

	want := []struct {
		invested, value, interest, monthly int64
	}{
		{220000, 239870, 19870, 10000},
		{352000, 409475, 57475, 11000},
		{497200, 613698, 116498, 12100},
	}
	for i, w := range want {
		rec := res.Breakdown[i]
		assertAmount(t, w.invested, rec.InvestedAmount, "invested")
		assertAmount(t, w.value, rec.TotalValue, "value")
		assertAmount(t, w.interest, rec.InterestEarned, "interest")
		assertAmount(t, w.monthly, rec.MonthlyInvestment, "monthly")
	}
	last := res.Breakdown[19]
	assertAmount(t, 61159, last.MonthlyInvestment, "final monthly")
}

func TestCompute_MatchesAnnuityDueClosedForm(t *testing.T) {
	cases := []struct {
		monthly float64
		ret     float64
		years   int
	}{
		{500, 12, 10},
		{1000, 8, 5},
		{2000, 15, 30},
		{750, 9.5, 25},
	}
	engine := NewProjectionEngine()
	for _, c := range cases {
		res := engine.Compute(makeConfig(c.monthly, c.ret, c.years, 0, 6, 0, 0, 0, 0))
		r := c.ret / 12 / 100
		n := float64(c.years * 12)
		fv := c.monthly * (math.Pow(1+r, n) - 1) / r * (1 + r)
		assert.InDelta(t, fv, res.TotalValue.InexactFloat64(), 1.0, "monthly=%v ret=%v years=%d", c.monthly, c.ret, c.years)
	}
}

func TestCompute_Invariants(t *testing.T) {
	configs := []domain.InvestmentConfig{
		domain.DefaultInvestmentConfig(),
		makeConfig(100, 1, 1, 0, 0, 0, 0, 0, 0),
		makeConfig(100000, 30, 40, 50, 20, 1000000, 5, 30, 50000000),
		makeConfig(2500, 14, 25, 7.5, 5, 250000, 1.5, 15, 10000000),
		makeConfig(800, 11, 12, -5, 4, 0, 0.2, 10, 100000),
		makeConfig(1200, 7, 18, 3, 8, 5000, 7, 25, 0),
	}

	engine := NewProjectionEngine()
	for _, cfg := range configs {
		res := engine.Compute(cfg)

		require.Len(t, res.Breakdown, cfg.TimePeriod)
		for i, rec := range res.Breakdown {
			assert.Equal(t, i+1, rec.Year)
			if i > 0 {
				assert.True(t, rec.InvestedAmount.GreaterThanOrEqual(res.Breakdown[i-1].InvestedAmount), "invested non-decreasing")
			}
			if cfg.ExpectedReturn.GreaterThanOrEqual(cfg.ExpenseRatio) {
				assert.True(t, rec.TotalValue.GreaterThanOrEqual(rec.InvestedAmount), "value >= invested")
			}
		}
		if cfg.StepUpPercentage.IsZero() {
			year1 := cfg.InitialLumpsum.Add(cfg.MonthlyInvestment.Mul(decimal.NewFromInt(12)))
			assert.True(t, res.Breakdown[0].InvestedAmount.Equal(year1.Round(0)))
		}
		assert.True(t, res.TotalValue.GreaterThanOrEqual(res.TotalInvested))
		assert.True(t, res.PostTaxValue.LessThanOrEqual(res.TotalValue))
		if cfg.InflationRate.IsPositive() {
			assert.True(t, res.RealValue.LessThanOrEqual(res.PostTaxValue))
		}
		if cfg.TargetAmount.IsPositive() {
			assert.True(t, res.GoalAchievedPercentage.GreaterThanOrEqual(decimal.Zero))
			assert.True(t, res.GoalAchievedPercentage.LessThanOrEqual(decimal.NewFromInt(100)))
		}
		prev := 0
		for _, m := range res.Milestones {
			if m.Year == nil {
				continue
			}
			assert.GreaterOrEqual(t, *m.Year, prev, "milestones monotonic")
			prev = *m.Year
		}
	}
}

func TestCompute_CostOfDelaySingleYear(t *testing.T) {
	for _, lumpsum := range []float64{0, 10000, 250000} {
		cfg := makeConfig(1500, 12, 1, 10, 6, lumpsum, 0, 0, 0)
		res := NewProjectionEngine().Compute(cfg)
		want := res.TotalValue.Sub(cfg.InitialLumpsum)
		assert.True(t, want.Equal(res.CostOfDelay), "lumpsum=%v want %s got %s", lumpsum, want, res.CostOfDelay)
	}
}

func TestCompute_DegenerateInputs(t *testing.T) {
	engine := NewProjectionEngine()

	t.Run("zero contributions", func(t *testing.T) {
		res := engine.Compute(makeConfig(0, 12, 5, 0, 6, 0, 0, 0, 0))
		assert.True(t, res.TotalInvested.IsZero())
		assert.True(t, res.TotalValue.IsZero())
		assert.True(t, res.AbsoluteReturnPercentage.IsZero())
		assert.True(t, res.WealthMultiplier.IsZero())
		assert.Len(t, res.Breakdown, 5)
	})

	t.Run("zero horizon", func(t *testing.T) {
		res := engine.Compute(makeConfig(500, 12, 0, 0, 6, 1000, 0, 0, 0))
		assert.NotNil(t, res.Breakdown)
		assert.Empty(t, res.Breakdown)
		assertAmount(t, 1000, res.TotalValue, "TotalValue")
		assert.True(t, res.CostOfDelay.IsZero())
		assertAmount(t, 1000, res.RealValue, "RealValue")
	})

	t.Run("inflation of minus one hundred percent", func(t *testing.T) {
		res := engine.Compute(makeConfig(500, 12, 3, 0, -100, 0, 0, 0, 0))
		assert.True(t, res.RealValue.IsZero())
	})

	t.Run("shortfall", func(t *testing.T) {
		res := engine.Compute(makeConfig(500, 12, 10, 0, 6, 0, 0, 0, 200000))
		assertAmount(t, 200000-116170, res.GoalShortfall, "GoalShortfall")
	})
}

func TestCompute_Deterministic(t *testing.T) {
	engine := NewProjectionEngine()
	engine.SetLogger(zap.NewNop().Sugar())
	cfg := makeConfig(2500, 14, 25, 7.5, 5, 250000, 1.5, 15, 10000000)
	want := engine.Compute(cfg)

	var wg sync.WaitGroup
	results := make([]*domain.ProjectionResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Compute(cfg)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.True(t, want.TotalValue.Equal(got.TotalValue))
		assert.True(t, want.RealValue.Equal(got.RealValue))
		assert.Equal(t, len(want.Breakdown), len(got.Breakdown))
	}
}

func TestTaxOnGains_NegativeReturnsProduceCredit(t *testing.T) {
	tax := taxOnGains(decimal.NewFromInt(-1000), decimal.NewFromInt(10))
	assert.True(t, tax.Equal(decimal.NewFromInt(-100)))
}

func TestRunScenarios(t *testing.T) {
	engine := NewProjectionEngine()
	file := &domain.ScenarioFile{
		Currency: "INR",
		Scenarios: []domain.Scenario{
			{Name: "Starter", Config: domain.DefaultInvestmentConfig()},
			{Name: "Aggressive", Preset: PresetAggressive, Config: domain.DefaultInvestmentConfig()},
			{Name: "Goal", Config: makeConfig(5000, 10, 15, 5, 6, 0, 1, 20, 1000000)},
		},
	}

	cmp, err := engine.RunScenarios(context.Background(), file)
	require.NoError(t, err)
	require.Len(t, cmp.Scenarios, 3)
	assert.Equal(t, "INR", cmp.Currency)
	assert.True(t, cmp.Scenarios[1].Config.ExpectedReturn.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, "Goal", cmp.BestForRealValue)
	assert.Equal(t, "Goal", cmp.BestForPostTaxValue)
	assert.Equal(t, "Goal", cmp.BestForGoalProgress)
	assert.Equal(t, "Starter", cmp.LowestCostOfDelay)
	assert.Len(t, cmp.Assumptions, len(ModelAssumptions)+3)
}

func TestRunScenarios_Errors(t *testing.T) {
	engine := NewProjectionEngine()

	_, err := engine.RunScenarios(context.Background(), &domain.ScenarioFile{})
	assert.ErrorIs(t, err, ErrNoScenarios)

	_, err = engine.RunScenarios(context.Background(), &domain.ScenarioFile{
		Scenarios: []domain.Scenario{{Name: "bad", Preset: "reckless"}},
	})
	assert.ErrorContains(t, err, "unknown preset")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.RunScenarios(ctx, &domain.ScenarioFile{
		Scenarios: []domain.Scenario{{Name: "x", Config: domain.DefaultInvestmentConfig()}},
	})
	assert.ErrorIs(t, err, context.Canceled)
}
