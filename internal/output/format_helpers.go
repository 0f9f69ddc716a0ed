package output

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

var currencySymbols = map[domain.Currency]string{
	domain.USD: "$",
	domain.INR: "₹",
	domain.EUR: "€",
	domain.GBP: "£",
	domain.JPY: "¥",
	domain.AUD: "A$",
	domain.CAD: "CA$",
	domain.SGD: "SGD ",
}

// FormatCurrency formats a whole-unit amount for display in currency. INR uses
// lakh/crore grouping; every other currency groups by thousands. Unknown
// codes fall back to USD.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	c, ok := domain.ParseCurrency(currency)
	if !ok {
		c = domain.DefaultCurrency
	}
	return formatWith(amount, currencySymbols[c], c == domain.INR)
}

// FormatCurrencyCode formats like FormatCurrency but prefixes the ISO code
// instead of a symbol. Used where only Latin-1 text is available.
func FormatCurrencyCode(amount decimal.Decimal, currency string) string {
	c, ok := domain.ParseCurrency(currency)
	if !ok {
		c = domain.DefaultCurrency
	}
	return formatWith(amount, string(c)+" ", c == domain.INR)
}

func formatWith(amount decimal.Decimal, prefix string, lakh bool) string {
	units := amount.Round(0)
	sign := ""
	if units.IsNegative() {
		sign = "-"
		units = units.Neg()
	}
	var digits string
	if lakh {
		digits = groupIndian(units.String())
	} else {
		digits = humanize.Comma(units.IntPart())
	}
	return sign + prefix + digits
}

// groupIndian inserts separators as 12,34,56,789: the last three digits, then pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(parts, ",") + "," + tail
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatMultiplier renders a wealth multiplier such as "1.94x".
func FormatMultiplier(m decimal.Decimal) string { return m.StringFixed(2) + "x" }

// FormatMilestoneYear renders a milestone year, or "-" when never reached.
func FormatMilestoneYear(m domain.Milestone) string {
	if m.Year == nil {
		return "-"
	}
	return "Year " + intToString(*m.Year)
}

func intToString(i int) string { return strconv.Itoa(i) }

func currencyOf(results *domain.ScenarioComparison) string {
	if results == nil || results.Currency == "" {
		return string(domain.DefaultCurrency)
	}
	return results.Currency
}
