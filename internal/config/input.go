package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/sipcalc/sip-calculator/internal/calculation"
	"github.com/sipcalc/sip-calculator/internal/domain"
)

// ErrOutOfRange marks a parameter outside the accepted input limits.
var ErrOutOfRange = errors.New("value out of range")

// Range is an inclusive numeric bound.
type Range struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func newRange(min, max float64) Range {
	return Range{Min: decimal.NewFromFloat(min), Max: decimal.NewFromFloat(max)}
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(r.Min) && v.LessThanOrEqual(r.Max)
}

// Clamp pins v into the range.
func (r Range) Clamp(v decimal.Decimal) decimal.Decimal {
	return decimal.Min(r.Max, decimal.Max(r.Min, v))
}

// Limits are the input ranges enforced before a config reaches the engine.
type Limits struct {
	MonthlyInvestment Range
	ExpectedReturn    Range
	TimePeriodMin     int
	TimePeriodMax     int
	StepUpPercentage  Range
	InflationRate     Range
	InitialLumpsum    Range
	ExpenseRatio      Range
	TaxRate           Range
	TargetAmount      Range
}

// DefaultLimits mirror the ranges of the interactive input controls.
var DefaultLimits = Limits{
	MonthlyInvestment: newRange(100, 100_000),
	ExpectedReturn:    newRange(1, 30),
	TimePeriodMin:     1,
	TimePeriodMax:     40,
	StepUpPercentage:  newRange(0, 50),
	InflationRate:     newRange(-10, 20),
	InitialLumpsum:    newRange(0, 1_000_000),
	ExpenseRatio:      newRange(0, 5),
	TaxRate:           newRange(0, 30),
	TargetAmount:      newRange(0, 50_000_000),
}

// InputParser handles parsing of scenario files
type InputParser struct {
	Limits Limits
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Limits: DefaultLimits}
}

// LoadFromFile loads a scenario file from YAML
func (ip *InputParser) LoadFromFile(filename string) (*domain.ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML scenario document.
func (ip *InputParser) Parse(data []byte) (*domain.ScenarioFile, error) {
	var file domain.ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateScenarioFile(&file); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &file, nil
}

// ValidateScenarioFile validates the loaded scenario file
func (ip *InputParser) ValidateScenarioFile(file *domain.ScenarioFile) error {
	if len(file.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}
	if file.Currency != "" && !domain.IsSupportedCurrency(file.Currency) {
		return fmt.Errorf("unsupported currency %q", file.Currency)
	}

	seen := make(map[string]bool, len(file.Scenarios))
	for i, scenario := range file.Scenarios {
		if err := ip.validateScenario(&scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true
	}

	return nil
}

// validateScenario validates a single scenario
func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	if strings.TrimSpace(scenario.Name) == "" {
		return fmt.Errorf("scenario name is required")
	}
	cfg := scenario.Config
	if scenario.Preset != "" {
		var err error
		if cfg, err = calculation.ApplyPreset(cfg, scenario.Preset); err != nil {
			return err
		}
	}
	return ip.ValidateInvestmentConfig(cfg)
}

// ValidateInvestmentConfig checks every field against the parser's limits.
func (ip *InputParser) ValidateInvestmentConfig(cfg domain.InvestmentConfig) error {
	l := ip.Limits
	checks := []struct {
		name  string
		value decimal.Decimal
		r     Range
	}{
		{"monthly investment", cfg.MonthlyInvestment, l.MonthlyInvestment},
		{"expected return", cfg.ExpectedReturn, l.ExpectedReturn},
		{"step-up percentage", cfg.StepUpPercentage, l.StepUpPercentage},
		{"inflation rate", cfg.InflationRate, l.InflationRate},
		{"initial lumpsum", cfg.InitialLumpsum, l.InitialLumpsum},
		{"expense ratio", cfg.ExpenseRatio, l.ExpenseRatio},
		{"tax rate", cfg.TaxRate, l.TaxRate},
		{"target amount", cfg.TargetAmount, l.TargetAmount},
	}
	for _, c := range checks {
		if !c.r.Contains(c.value) {
			return fmt.Errorf("%w: %s must be between %s and %s, got %s",
				ErrOutOfRange, c.name, c.r.Min, c.r.Max, c.value)
		}
	}
	if cfg.TimePeriod < l.TimePeriodMin || cfg.TimePeriod > l.TimePeriodMax {
		return fmt.Errorf("%w: time period must be between %d and %d years, got %d",
			ErrOutOfRange, l.TimePeriodMin, l.TimePeriodMax, cfg.TimePeriod)
	}
	return nil
}

// Clamp pins every field of cfg into the parser's limits.
func (ip *InputParser) Clamp(cfg domain.InvestmentConfig) domain.InvestmentConfig {
	l := ip.Limits
	cfg.MonthlyInvestment = l.MonthlyInvestment.Clamp(cfg.MonthlyInvestment)
	cfg.ExpectedReturn = l.ExpectedReturn.Clamp(cfg.ExpectedReturn)
	cfg.StepUpPercentage = l.StepUpPercentage.Clamp(cfg.StepUpPercentage)
	cfg.InflationRate = l.InflationRate.Clamp(cfg.InflationRate)
	cfg.InitialLumpsum = l.InitialLumpsum.Clamp(cfg.InitialLumpsum)
	cfg.ExpenseRatio = l.ExpenseRatio.Clamp(cfg.ExpenseRatio)
	cfg.TaxRate = l.TaxRate.Clamp(cfg.TaxRate)
	cfg.TargetAmount = l.TargetAmount.Clamp(cfg.TargetAmount)
	if cfg.TimePeriod < l.TimePeriodMin {
		cfg.TimePeriod = l.TimePeriodMin
	}
	if cfg.TimePeriod > l.TimePeriodMax {
		cfg.TimePeriod = l.TimePeriodMax
	}
	return cfg
}

// CreateExampleConfiguration creates an example scenario file
func (ip *InputParser) CreateExampleConfiguration() *domain.ScenarioFile {
	stepUp := domain.DefaultInvestmentConfig()
	stepUp.MonthlyInvestment = decimal.NewFromInt(5000)
	stepUp.TimePeriod = 15
	stepUp.StepUpPercentage = decimal.NewFromInt(10)
	stepUp.ExpenseRatio = decimal.NewFromFloat(0.5)
	stepUp.TaxRate = decimal.NewFromInt(10)
	stepUp.TargetAmount = decimal.NewFromInt(5_000_000)

	lumpsum := stepUp
	lumpsum.InitialLumpsum = decimal.NewFromInt(200_000)
	lumpsum.StepUpPercentage = decimal.NewFromInt(5)

	return &domain.ScenarioFile{
		Currency: "INR",
		Scenarios: []domain.Scenario{
			{Name: "Starter SIP", Config: domain.DefaultInvestmentConfig()},
			{Name: "Step-up SIP", Config: stepUp},
			{Name: "Lumpsum + SIP (conservative)", Preset: calculation.PresetConservative, Config: lumpsum},
		},
	}
}

// SaveConfiguration writes a scenario file as YAML.
func SaveConfiguration(file *domain.ScenarioFile, filename string) error {
	b, err := yaml.Marshal(file)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
