package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

// ErrInvalidParameter marks a query parameter that could not be parsed.
var ErrInvalidParameter = errors.New("invalid parameter")

// Query parameter names accepted by FromQuery. They match the JSON field names.
const (
	ParamMonthlyInvestment = "monthlyInvestment"
	ParamExpectedReturn    = "expectedReturn"
	ParamTimePeriod        = "timePeriod"
	ParamStepUpPercentage  = "stepUpPercentage"
	ParamInflationRate     = "inflationRate"
	ParamInitialLumpsum    = "initialLumpsum"
	ParamExpenseRatio      = "expenseRatio"
	ParamTaxRate           = "taxRate"
	ParamTargetAmount      = "targetAmount"
)

// HasProjectionQuery reports whether values carry a shared projection.
// A link is only honored when it names a monthly investment.
func HasProjectionQuery(values url.Values) bool {
	return values.Has(ParamMonthlyInvestment)
}

// FromQuery builds a config from URL query values. Parameters that are absent
// or empty keep their default; unknown parameters are ignored.
func FromQuery(values url.Values) (domain.InvestmentConfig, error) {
	cfg := domain.DefaultInvestmentConfig()

	decimals := []struct {
		name string
		dst  *decimal.Decimal
	}{
		{ParamMonthlyInvestment, &cfg.MonthlyInvestment},
		{ParamExpectedReturn, &cfg.ExpectedReturn},
		{ParamStepUpPercentage, &cfg.StepUpPercentage},
		{ParamInflationRate, &cfg.InflationRate},
		{ParamInitialLumpsum, &cfg.InitialLumpsum},
		{ParamExpenseRatio, &cfg.ExpenseRatio},
		{ParamTaxRate, &cfg.TaxRate},
		{ParamTargetAmount, &cfg.TargetAmount},
	}
	for _, p := range decimals {
		raw := strings.TrimSpace(values.Get(p.name))
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidParameter, p.name, raw)
		}
		*p.dst = d
	}

	if raw := strings.TrimSpace(values.Get(ParamTimePeriod)); raw != "" {
		years, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q is not a whole number of years", ErrInvalidParameter, ParamTimePeriod, raw)
		}
		cfg.TimePeriod = years
	}

	return cfg, nil
}

// ToQuery encodes cfg as shareable query values, the inverse of FromQuery.
func ToQuery(cfg domain.InvestmentConfig) url.Values {
	v := url.Values{}
	v.Set(ParamMonthlyInvestment, cfg.MonthlyInvestment.String())
	v.Set(ParamExpectedReturn, cfg.ExpectedReturn.String())
	v.Set(ParamTimePeriod, strconv.Itoa(cfg.TimePeriod))
	v.Set(ParamStepUpPercentage, cfg.StepUpPercentage.String())
	v.Set(ParamInflationRate, cfg.InflationRate.String())
	v.Set(ParamInitialLumpsum, cfg.InitialLumpsum.String())
	v.Set(ParamExpenseRatio, cfg.ExpenseRatio.String())
	v.Set(ParamTaxRate, cfg.TaxRate.String())
	v.Set(ParamTargetAmount, cfg.TargetAmount.String())
	return v
}
