package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/sipcalc/sip-calculator/internal/domain"
	money "github.com/sipcalc/sip-calculator/pkg/decimal"
)

// ErrNoScenarios is returned when a scenario run is requested with nothing to compute.
var ErrNoScenarios = errors.New("no scenarios provided")

// ProjectionEngine computes SIP projections. It holds no state between calls
// and is safe for concurrent use.
type ProjectionEngine struct {
	Milestones []MilestoneThreshold
	Logger     Logger
}

// NewProjectionEngine creates a new projection engine
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{
		Milestones: DefaultMilestones,
		Logger:     NopLogger{},
	}
}

// SetLogger sets the logger for the projection engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	pe.Logger = OrNop(l)
}

// Compute runs the projection for cfg. It performs no validation: inputs are
// expected to be clamped by the caller, and degenerate values such as a zero
// horizon or zero target resolve to defined results rather than errors.
func (pe *ProjectionEngine) Compute(cfg domain.InvestmentConfig) *domain.ProjectionResult {
	logger := OrNop(pe.Logger)
	thresholds := pe.Milestones
	if thresholds == nil {
		thresholds = DefaultMilestones
	}

	effective := effectiveReturn(cfg)
	plan := newContributionPlan(cfg, effective)
	acc := plan.run(cfg.TimePeriod, true)

	totalValue := money.RoundUnits(acc.corpus)
	totalReturns := money.RoundUnits(totalValue.Sub(acc.totalInvested))

	taxAmount := taxOnGains(totalReturns, cfg.TaxRate)
	postTaxValue := money.RoundUnits(totalValue.Sub(taxAmount))

	costOfDelay := money.RoundUnits(totalValue.Sub(plan.delayedValue(cfg.TimePeriod)))

	result := &domain.ProjectionResult{
		TotalInvested:            money.RoundUnits(acc.totalInvested),
		TotalReturns:             totalReturns,
		TotalValue:               totalValue,
		EffectiveReturn:          effective,
		TaxAmount:                taxAmount,
		PostTaxValue:             postTaxValue,
		RealValue:                realValue(postTaxValue, cfg.InflationRate, cfg.TimePeriod),
		Breakdown:                acc.breakdown,
		CostOfDelay:              costOfDelay,
		Milestones:               FindMilestones(acc.breakdown, thresholds),
		AbsoluteReturnPercentage: money.Ratio(totalReturns, acc.totalInvested).Mul(hundred),
		WealthMultiplier:         money.Ratio(totalValue, acc.totalInvested),
		GoalAchievedPercentage:   goalProgress(postTaxValue, cfg.TargetAmount),
		GoalShortfall:            goalShortfall(postTaxValue, cfg.TargetAmount),
		Chart:                    chartPoints(acc.breakdown),
	}
	if result.Breakdown == nil {
		result.Breakdown = []domain.YearlyRecord{}
	}

	logger.Debugf("projection computed: %s -> invested=%s value=%s post_tax=%s real=%s delay_cost=%s",
		cfg, result.TotalInvested, result.TotalValue, result.PostTaxValue, result.RealValue, result.CostOfDelay)
	return result
}

// RunScenarios computes every scenario in the file and ranks them. The context
// is checked between scenarios; a single projection is never interrupted.
func (pe *ProjectionEngine) RunScenarios(ctx context.Context, file *domain.ScenarioFile) (*domain.ScenarioComparison, error) {
	if file == nil || len(file.Scenarios) == 0 {
		return nil, ErrNoScenarios
	}
	logger := OrNop(pe.Logger)

	summaries := make([]domain.ScenarioSummary, 0, len(file.Scenarios))
	for _, scenario := range file.Scenarios {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		cfg := scenario.Config
		if scenario.Preset != "" {
			var err error
			if cfg, err = ApplyPreset(cfg, scenario.Preset); err != nil {
				return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
			}
		}
		logger.Infof("running scenario %q", scenario.Name)
		summaries = append(summaries, domain.ScenarioSummary{
			Name:   scenario.Name,
			Config: cfg,
			Result: pe.Compute(cfg),
		})
	}

	comparison := &domain.ScenarioComparison{
		Currency:    file.Currency,
		Scenarios:   summaries,
		Assumptions: GenerateAssumptions(summaries),
	}
	analyzeScenarios(comparison)
	return comparison, nil
}
