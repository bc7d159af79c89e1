package money

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when text holds no parsable amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses price text written in any common locale convention,
// e.g. "69.99", "1.234,56", "1,234.56", "R$ 1.299,90" or "¥ 8,580".
//
// When both separators appear, the right-most one is the decimal point.
// A lone separator is a decimal point unless exactly three digits follow it,
// so "8,580" and "Rp 729.000" are whole amounts. Repeated separators of one
// kind are always thousands separators.
func ParseAmount(text string) (float64, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == ',' {
			return r
		}
		return -1
	}, text)
	digits = strings.Trim(digits, ".,")

	if digits == "" {
		return 0, ErrInvalidAmount
	}

	normalized := normalizeSeparators(digits)

	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	return value.InexactFloat64(), nil
}

// ParseMinorUnits converts amount in minor units (e.g. cents) to major units.
func ParseMinorUnits(minor int64) float64 {
	return decimal.New(minor, -2).InexactFloat64()
}

func normalizeSeparators(s string) string {
	lastComma := strings.LastIndexByte(s, ',')
	lastDot := strings.LastIndexByte(s, '.')

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			return strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		return normalizeSingle(s, ",")
	case lastDot >= 0:
		return normalizeSingle(s, ".")
	default:
		return s
	}
}

// normalizeSingle handles text with a single kind of separator.
func normalizeSingle(s string, sep string) string {
	if strings.Count(s, sep) > 1 {
		return strings.ReplaceAll(s, sep, "")
	}

	// no supported market prices in three-decimal currencies.
	_, fraction, _ := strings.Cut(s, sep)
	if len(fraction) == 3 {
		return strings.ReplaceAll(s, sep, "")
	}
	return strings.Replace(s, sep, ".", 1)
}
