package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

type rule int

const (
	ruleNone rule = iota
	ruleWhole
	ruleHundreds
	ruleNearestFive
	ruleSuffix95
	ruleSuffix99
)

var currencyRules = map[string]rule{
	"JPY": ruleWhole, "KRW": ruleWhole, "HUF": ruleWhole, "ISK": ruleWhole, "CLP": ruleWhole,
	"IDR": ruleHundreds, "VND": ruleHundreds,
	"BRL": ruleNearestFive, "RUB": ruleNearestFive, "INR": ruleNearestFive,
	"AUD": ruleSuffix95, "NZD": ruleSuffix95,
	"USD": ruleSuffix99, "EUR": ruleSuffix99, "GBP": ruleSuffix99, "CAD": ruleSuffix99,
	"SEK": ruleSuffix99, "NOK": ruleSuffix99, "DKK": ruleSuffix99, "CZK": ruleSuffix99,
	"PLN": ruleSuffix99, "CHF": ruleSuffix99,
}

var (
	five     = decimal.NewFromInt(5)
	hundred  = decimal.NewFromInt(100)
	suffix95 = decimal.RequireFromString("0.95")
	suffix99 = decimal.RequireFromString("0.99")
)

// Vanity rounds value to a price ending conventional for currency.
// Currencies without a rule are returned unchanged.
func Vanity(currency string, value float64) float64 {
	return VanityDecimal(currency, decimal.NewFromFloat(value)).InexactFloat64()
}

// VanityDecimal is Vanity for decimal values.
func VanityDecimal(currency string, value decimal.Decimal) decimal.Decimal {
	switch currencyRules[strings.ToUpper(currency)] {
	case ruleWhole:
		return value.Round(0)
	case ruleHundreds:
		return value.Div(hundred).Round(0).Mul(hundred)
	case ruleNearestFive:
		return value.Div(five).Round(0).Mul(five)
	case ruleSuffix95:
		return forceSuffix(value, suffix95)
	case ruleSuffix99:
		return forceSuffix(value, suffix99)
	default:
		return value
	}
}

// forceSuffix returns the smallest value ending with suffix not below value,
// e.g. 59.40 -> 59.99 and 60.00 -> 60.99.
func forceSuffix(value decimal.Decimal, suffix decimal.Decimal) decimal.Decimal {
	whole := value.Truncate(0)
	candidate := whole.Add(suffix)
	if candidate.GreaterThanOrEqual(value) {
		return candidate
	}
	return whole.Add(decimal.NewFromInt(1)).Add(suffix)
}
