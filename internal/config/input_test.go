package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
	assert.Equal(t, DefaultLimits, parser.Limits)
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "currency: INR\n" +
		"scenarios:\n" +
		"  - name: \"Baseline\"\n" +
		"    config:\n" +
		"      monthly_investment: 500\n" +
		"      expected_return: 12\n" +
		"      time_period: 10\n" +
		"      step_up_percentage: 0\n" +
		"      inflation_rate: 6\n" +
		"      initial_lumpsum: 0\n" +
		"      expense_ratio: 0\n" +
		"      tax_rate: 0\n" +
		"  - name: \"Aggressive step-up\"\n" +
		"    preset: aggressive\n" +
		"    config:\n" +
		"      monthly_investment: 10000\n" +
		"      time_period: 20\n" +
		"      step_up_percentage: 10\n" +
		"      inflation_rate: 6\n" +
		"      expense_ratio: 0.5\n" +
		"      tax_rate: 12.5\n" +
		"      target_amount: 5000000\n"

	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))

	parser := NewInputParser()
	file, err := parser.LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "INR", file.Currency)
	require.Len(t, file.Scenarios, 2)

	baseline := file.Scenarios[0].Config
	assert.True(t, baseline.MonthlyInvestment.Equal(decimal.NewFromInt(500)))
	assert.True(t, baseline.ExpectedReturn.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, 10, baseline.TimePeriod)
	assert.False(t, baseline.HasGoal())

	aggressive := file.Scenarios[1]
	assert.Equal(t, "aggressive", aggressive.Preset)
	assert.True(t, aggressive.Config.ExpenseRatio.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, aggressive.Config.TaxRate.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, aggressive.Config.HasGoal())
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	file, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, file)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_InvalidYAML(t *testing.T) {
	parser := NewInputParser()
	file, err := parser.Parse([]byte("scenarios: [unclosed"))

	assert.Error(t, err)
	assert.Nil(t, file)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParse_InvalidDecimal(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.Parse([]byte("scenarios:\n  - name: x\n    config:\n      monthly_investment: lots\n"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func validFile() *domain.ScenarioFile {
	return &domain.ScenarioFile{
		Scenarios: []domain.Scenario{{Name: "Default", Config: domain.DefaultInvestmentConfig()}},
	}
}

func TestValidateScenarioFile(t *testing.T) {
	parser := NewInputParser()

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, parser.ValidateScenarioFile(validFile()))
	})

	t.Run("no scenarios", func(t *testing.T) {
		err := parser.ValidateScenarioFile(&domain.ScenarioFile{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no scenarios")
	})

	t.Run("unsupported currency", func(t *testing.T) {
		file := validFile()
		file.Currency = "XYZ"
		err := parser.ValidateScenarioFile(file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported currency")
	})

	t.Run("lower-case currency accepted", func(t *testing.T) {
		file := validFile()
		file.Currency = "eur"
		assert.NoError(t, parser.ValidateScenarioFile(file))
	})

	t.Run("empty name", func(t *testing.T) {
		file := validFile()
		file.Scenarios[0].Name = "  "
		err := parser.ValidateScenarioFile(file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scenario name is required")
	})

	t.Run("duplicate name", func(t *testing.T) {
		file := validFile()
		file.Scenarios = append(file.Scenarios, file.Scenarios[0])
		err := parser.ValidateScenarioFile(file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate name")
	})

	t.Run("unknown preset", func(t *testing.T) {
		file := validFile()
		file.Scenarios[0].Preset = "reckless"
		err := parser.ValidateScenarioFile(file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown preset")
	})

	t.Run("preset overrides out-of-range return", func(t *testing.T) {
		file := validFile()
		file.Scenarios[0].Config.ExpectedReturn = decimal.NewFromInt(99)
		file.Scenarios[0].Preset = "moderate"
		assert.NoError(t, parser.ValidateScenarioFile(file))
	})
}

func TestValidateInvestmentConfig_Ranges(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name   string
		mutate func(*domain.InvestmentConfig)
		field  string
	}{
		{"monthly too small", func(c *domain.InvestmentConfig) { c.MonthlyInvestment = decimal.NewFromInt(99) }, "monthly investment"},
		{"monthly too large", func(c *domain.InvestmentConfig) { c.MonthlyInvestment = decimal.NewFromInt(100_001) }, "monthly investment"},
		{"return below floor", func(c *domain.InvestmentConfig) { c.ExpectedReturn = decimal.RequireFromString("0.5") }, "expected return"},
		{"return above cap", func(c *domain.InvestmentConfig) { c.ExpectedReturn = decimal.NewFromInt(31) }, "expected return"},
		{"zero years", func(c *domain.InvestmentConfig) { c.TimePeriod = 0 }, "time period"},
		{"too many years", func(c *domain.InvestmentConfig) { c.TimePeriod = 41 }, "time period"},
		{"step-up too high", func(c *domain.InvestmentConfig) { c.StepUpPercentage = decimal.NewFromInt(51) }, "step-up percentage"},
		{"deflation too deep", func(c *domain.InvestmentConfig) { c.InflationRate = decimal.NewFromInt(-11) }, "inflation rate"},
		{"negative lumpsum", func(c *domain.InvestmentConfig) { c.InitialLumpsum = decimal.NewFromInt(-1) }, "initial lumpsum"},
		{"expense too high", func(c *domain.InvestmentConfig) { c.ExpenseRatio = decimal.RequireFromString("5.01") }, "expense ratio"},
		{"tax too high", func(c *domain.InvestmentConfig) { c.TaxRate = decimal.NewFromInt(31) }, "tax rate"},
		{"target too high", func(c *domain.InvestmentConfig) { c.TargetAmount = decimal.NewFromInt(50_000_001) }, "target amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultInvestmentConfig()
			tt.mutate(&cfg)
			err := parser.ValidateInvestmentConfig(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrOutOfRange)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidateInvestmentConfig_Boundaries(t *testing.T) {
	parser := NewInputParser()
	cfg := domain.InvestmentConfig{
		MonthlyInvestment: decimal.NewFromInt(100_000),
		ExpectedReturn:    decimal.NewFromInt(1),
		TimePeriod:        40,
		StepUpPercentage:  decimal.NewFromInt(50),
		InflationRate:     decimal.NewFromInt(-10),
		InitialLumpsum:    decimal.NewFromInt(1_000_000),
		ExpenseRatio:      decimal.NewFromInt(5),
		TaxRate:           decimal.NewFromInt(30),
		TargetAmount:      decimal.NewFromInt(50_000_000),
	}
	assert.NoError(t, parser.ValidateInvestmentConfig(cfg))
}

func TestClamp(t *testing.T) {
	parser := NewInputParser()
	cfg := domain.InvestmentConfig{
		MonthlyInvestment: decimal.NewFromInt(10),
		ExpectedReturn:    decimal.NewFromInt(45),
		TimePeriod:        90,
		StepUpPercentage:  decimal.NewFromInt(-5),
		InflationRate:     decimal.NewFromInt(6),
		InitialLumpsum:    decimal.NewFromInt(5_000_000),
		ExpenseRatio:      decimal.NewFromInt(1),
		TaxRate:           decimal.NewFromInt(100),
		TargetAmount:      decimal.NewFromInt(-1),
	}

	clamped := parser.Clamp(cfg)

	assert.True(t, clamped.MonthlyInvestment.Equal(decimal.NewFromInt(100)))
	assert.True(t, clamped.ExpectedReturn.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 40, clamped.TimePeriod)
	assert.True(t, clamped.StepUpPercentage.IsZero())
	assert.True(t, clamped.InflationRate.Equal(decimal.NewFromInt(6)))
	assert.True(t, clamped.InitialLumpsum.Equal(decimal.NewFromInt(1_000_000)))
	assert.True(t, clamped.TaxRate.Equal(decimal.NewFromInt(30)))
	assert.True(t, clamped.TargetAmount.IsZero())
	assert.NoError(t, parser.ValidateInvestmentConfig(clamped))

	cfg.TimePeriod = -3
	assert.Equal(t, 1, parser.Clamp(cfg).TimePeriod)
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	file := parser.CreateExampleConfiguration()

	require.NotNil(t, file)
	assert.Equal(t, "INR", file.Currency)
	assert.Len(t, file.Scenarios, 3)
	assert.NoError(t, parser.ValidateScenarioFile(file))
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	original := parser.CreateExampleConfiguration()
	path := filepath.Join(t.TempDir(), "example.yaml")

	require.NoError(t, SaveConfiguration(original, path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Scenarios, len(original.Scenarios))
	for i := range original.Scenarios {
		want, got := original.Scenarios[i], loaded.Scenarios[i]
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Preset, got.Preset)
		assert.True(t, want.Config.MonthlyInvestment.Equal(got.Config.MonthlyInvestment))
		assert.True(t, want.Config.ExpenseRatio.Equal(got.Config.ExpenseRatio))
		assert.True(t, want.Config.TargetAmount.Equal(got.Config.TargetAmount))
		assert.Equal(t, want.Config.TimePeriod, got.Config.TimePeriod)
	}
}
