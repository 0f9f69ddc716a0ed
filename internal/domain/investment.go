package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvestmentConfig holds the parameters of one SIP projection. Rates are
// percentages (12 means 12%); amounts share one implied currency unit.
type InvestmentConfig struct {
	MonthlyInvestment decimal.Decimal `yaml:"monthly_investment" json:"monthlyInvestment"`
	ExpectedReturn    decimal.Decimal `yaml:"expected_return" json:"expectedReturn"`
	TimePeriod        int             `yaml:"time_period" json:"timePeriod"`
	StepUpPercentage  decimal.Decimal `yaml:"step_up_percentage" json:"stepUpPercentage"`
	InflationRate     decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	InitialLumpsum    decimal.Decimal `yaml:"initial_lumpsum" json:"initialLumpsum"`
	ExpenseRatio      decimal.Decimal `yaml:"expense_ratio" json:"expenseRatio"`
	TaxRate           decimal.Decimal `yaml:"tax_rate" json:"taxRate"`
	// TargetAmount of zero disables goal tracking.
	TargetAmount decimal.Decimal `yaml:"target_amount,omitempty" json:"targetAmount"`
}

// DefaultInvestmentConfig returns the inputs a fresh session starts with.
func DefaultInvestmentConfig() InvestmentConfig {
	return InvestmentConfig{
		MonthlyInvestment: decimal.NewFromInt(500),
		ExpectedReturn:    decimal.NewFromInt(12),
		TimePeriod:        10,
		StepUpPercentage:  decimal.Zero,
		InflationRate:     decimal.NewFromInt(6),
		InitialLumpsum:    decimal.Zero,
		ExpenseRatio:      decimal.Zero,
		TaxRate:           decimal.Zero,
		TargetAmount:      decimal.Zero,
	}
}

// HasGoal reports whether goal progress should be tracked.
func (c InvestmentConfig) HasGoal() bool {
	return c.TargetAmount.IsPositive()
}

// String renders a compact one-line description, used in logs and assumptions.
func (c InvestmentConfig) String() string {
	return fmt.Sprintf("monthly=%s return=%s%% years=%d stepup=%s%% inflation=%s%% lumpsum=%s expense=%s%% tax=%s%% target=%s",
		c.MonthlyInvestment.String(), c.ExpectedReturn.String(), c.TimePeriod, c.StepUpPercentage.String(),
		c.InflationRate.String(), c.InitialLumpsum.String(), c.ExpenseRatio.String(), c.TaxRate.String(),
		c.TargetAmount.String())
}

// Scenario is a named InvestmentConfig inside a scenario file.
type Scenario struct {
	Name   string           `yaml:"name" json:"name"`
	Preset string           `yaml:"preset,omitempty" json:"preset,omitempty"`
	Config InvestmentConfig `yaml:"config" json:"config"`
}

// ScenarioFile is the on-disk YAML document the CLI and scheduler consume.
type ScenarioFile struct {
	Currency  string     `yaml:"currency,omitempty" json:"currency,omitempty"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}
