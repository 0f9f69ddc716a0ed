package domain

import "strings"

// Currency is an ISO 4217 code used only for display; the engine is currency-agnostic.
type Currency string

const (
	USD Currency = "USD"
	INR Currency = "INR"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	AUD Currency = "AUD"
	CAD Currency = "CAD"
	SGD Currency = "SGD"
)

// DefaultCurrency is used when a scenario file or request names none.
const DefaultCurrency = USD

// SupportedCurrencies lists the display currencies in menu order.
var SupportedCurrencies = []Currency{USD, INR, EUR, GBP, JPY, AUD, CAD, SGD}

// ParseCurrency normalizes code and reports whether it is supported.
func ParseCurrency(code string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	for _, s := range SupportedCurrencies {
		if s == c {
			return c, true
		}
	}
	return "", false
}

// IsSupportedCurrency reports whether code names a supported display currency.
func IsSupportedCurrency(code string) bool {
	_, ok := ParseCurrency(code)
	return ok
}
