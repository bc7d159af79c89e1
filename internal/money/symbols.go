package money

import (
	"regexp"
	"sort"
	"strings"
)

var isoCodeRe = regexp.MustCompile(`\b([A-Z]{3})\b`)

type symbol struct {
	token    string
	currency string
}

// symbols maps display tokens to currencies. Ambiguous tokens ("$", "kr")
// are resolved with the currency hint first, see CurrencyFromText.
var symbols = sortedSymbols([]symbol{
	{"$", "USD"}, {"US$", "USD"}, {"CA$", "CAD"}, {"CAD$", "CAD"}, {"C$", "CAD"},
	{"A$", "AUD"}, {"AU$", "AUD"}, {"NZ$", "NZD"}, {"R$", "BRL"}, {"HK$", "HKD"},
	{"NT$", "TWD"}, {"S$", "SGD"}, {"MX$", "MXN"},
	{"€", "EUR"}, {"£", "GBP"}, {"¥", "JPY"}, {"円", "JPY"}, {"₩", "KRW"},
	{"₪", "ILS"}, {"₺", "TRY"}, {"₹", "INR"}, {"₴", "UAH"}, {"₽", "RUB"},
	{"₱", "PHP"}, {"฿", "THB"}, {"₫", "VND"}, {"zł", "PLN"}, {"Kč", "CZK"},
	{"Ft", "HUF"}, {"lei", "RON"}, {"лв.", "BGN"}, {"Rp", "IDR"}, {"RM", "MYR"},
	{"kr", "SEK"}, {"CHF", "CHF"}, {"R", "ZAR"},
})

// isoCodes are currencies usually displayed by code rather than symbol.
var isoCodes = map[string]struct{}{
	"AED": {}, "SAR": {}, "QAR": {}, "KWD": {}, "MXN": {}, "ARS": {}, "CLP": {},
	"COP": {}, "PEN": {}, "UYU": {}, "CRC": {}, "GTQ": {}, "HNL": {}, "NIO": {},
	"PYG": {}, "DOP": {}, "BOB": {}, "NOK": {}, "DKK": {}, "ISK": {}, "SGD": {},
	"MYR": {}, "THB": {}, "IDR": {}, "PHP": {}, "VND": {}, "INR": {}, "ZAR": {},
}

func sortedSymbols(list []symbol) []symbol {
	sort.SliceStable(list, func(i, j int) bool {
		return len(list[i].token) > len(list[j].token)
	})
	return list
}

// CurrencyFromText guesses currency of a displayed price like "HK$ 499.00".
// An explicit ISO code wins, then symbols of hint, then the longest known symbol.
// Empty string is returned when nothing matches.
func CurrencyFromText(text string, hint string) string {
	if match := isoCodeRe.FindStringSubmatch(text); match != nil && knownCurrency(match[1]) {
		return match[1]
	}

	hint = strings.ToUpper(hint)
	if hint != "" && hintMatches(text, hint) {
		return hint
	}

	for _, sym := range symbols {
		if strings.Contains(text, sym.token) {
			return sym.currency
		}
	}

	return ""
}

// SymbolPattern returns regexp alternation of all known symbols, longest first.
func SymbolPattern() string {
	quoted := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		quoted = append(quoted, regexp.QuoteMeta(sym.token))
	}
	return strings.Join(quoted, "|")
}

// sharedTokens lists currencies a bare "$" or "kr" may stand for.
var sharedTokens = map[string]map[string]struct{}{
	"$": {
		"USD": {}, "CAD": {}, "AUD": {}, "NZD": {}, "HKD": {}, "SGD": {}, "TWD": {},
		"MXN": {}, "CLP": {}, "COP": {}, "ARS": {}, "UYU": {},
	},
	"kr": {"SEK": {}, "NOK": {}, "DKK": {}, "ISK": {}},
}

func hintMatches(text string, hint string) bool {
	for _, sym := range symbols {
		if !strings.Contains(text, sym.token) {
			continue
		}
		if sym.currency == hint {
			return true
		}
		_, shared := sharedTokens[sym.token][hint]
		return shared
	}
	return false
}

func knownCurrency(code string) bool {
	if _, ok := isoCodes[code]; ok {
		return true
	}
	for _, sym := range symbols {
		if sym.currency == code {
			return true
		}
	}
	return false
}
