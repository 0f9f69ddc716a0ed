package calculation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

// Return presets offered next to the expected-return input.
const (
	PresetConservative = "conservative"
	PresetModerate     = "moderate"
	PresetAggressive   = "aggressive"
)

var presetReturns = map[string]decimal.Decimal{
	PresetConservative: decimal.NewFromInt(8),
	PresetModerate:     decimal.NewFromInt(12),
	PresetAggressive:   decimal.NewFromInt(15),
}

// PresetNames returns the known preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presetReturns))
	for name := range presetReturns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetReturn returns the expected annual return for a preset name.
func PresetReturn(name string) (decimal.Decimal, bool) {
	r, ok := presetReturns[strings.ToLower(strings.TrimSpace(name))]
	return r, ok
}

// ApplyPreset returns cfg with ExpectedReturn replaced by the preset's rate.
func ApplyPreset(cfg domain.InvestmentConfig, name string) (domain.InvestmentConfig, error) {
	r, ok := PresetReturn(name)
	if !ok {
		return cfg, fmt.Errorf("unknown preset %q (want one of: %s)", name, strings.Join(PresetNames(), ", "))
	}
	cfg.ExpectedReturn = r
	return cfg, nil
}
