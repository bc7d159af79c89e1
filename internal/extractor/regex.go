package extractor

import (
	"regexp"
	"strings"

	"github.com/MichalMitros/game-price-puller/internal/money"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
)

var (
	delRe      = regexp.MustCompile(`(?is)<del[^>]*>(.*?)</del>`)
	tagRe      = regexp.MustCompile(`<[^>]+>`)
	priceKeyRe = regexp.MustCompile(`(?i)"(basePrice|regularPrice|originalPrice|strikethroughPrice|discountedPrice|finalPrice|current|value|priceValue)"\s*:\s*("[^"]{1,32}"|[0-9]+(?:[.,][0-9]+)*)`)
	currencyRe = regexp.MustCompile(`"(?:currency|priceCurrency|currencyCode)"\s*:\s*"([A-Z]{3})"`)
	symbolRe   = regexp.MustCompile(`(?:` + money.SymbolPattern() + `)\s?[0-9][0-9.,]*|[0-9][0-9.,]*\s?(?:` + money.SymbolPattern() + `)`)
)

// RegexFallback scans raw html for price shaped tokens when structured data failed.
type RegexFallback struct{}

func (RegexFallback) Source() models.ParseSource {
	return models.SourceRegexFallback
}

func (s RegexFallback) Extract(doc *Document, res *Result) {
	s.crossedOut(doc, res)
	s.displayPrices(doc, res)
	s.keyedValues(doc, res)

	if match := currencyRe.FindStringSubmatch(doc.Raw); match != nil && currencyMatches(match[1], doc.CurrencyHint) {
		res.setCurrency(match[1], s.Source())
	}

	s.symbols(doc, res)
}

// crossedOut treats the highest <del> value as list price.
func (s RegexFallback) crossedOut(doc *Document, res *Result) {
	var (
		highest float64
		text    string
	)

	for _, match := range delRe.FindAllStringSubmatch(doc.Raw, -1) {
		inner := strings.TrimSpace(tagRe.ReplaceAllString(match[1], " "))
		amount, err := money.ParseAmount(inner)
		if err != nil || amount <= highest {
			continue
		}
		highest, text = amount, inner
	}

	if highest > 0 {
		res.setBase(highest, s.Source())
		res.setCurrency(money.CurrencyFromText(text, doc.CurrencyHint), s.Source())
	}
}

// displayPrices reads PlayStation call-to-action price markup.
func (s RegexFallback) displayPrices(doc *Document, res *Result) {
	original := strings.TrimSpace(doc.DOM.Find(`[data-qa$="#originalPrice"]`).First().Text())
	if amount, err := money.ParseAmount(original); err == nil {
		res.setBase(amount, s.Source())
	}

	display := strings.TrimSpace(doc.DOM.Find(`[data-qa$="#displayPrice"]`).First().Text())
	if amount, err := money.ParseAmount(display); err == nil {
		res.setDiscounted(amount, s.Source())
		res.setCurrency(money.CurrencyFromText(display, doc.CurrencyHint), s.Source())
	}
}

// keyedValues reads numbers following known price keys in raw json-like text.
func (s RegexFallback) keyedValues(doc *Document, res *Result) {
	for _, match := range priceKeyRe.FindAllStringSubmatch(doc.Raw, -1) {
		if res.BasePrice != nil && res.DiscountedPrice != nil {
			return
		}

		raw := strings.Trim(match[2], `"`)
		amount, err := money.ParseAmount(raw)
		if err != nil {
			continue
		}

		if isBaseKey(match[1]) {
			res.setBase(amount, s.Source())
		} else {
			res.setDiscounted(amount, s.Source())
		}
	}
}

// symbols reads the first currency symbol adjacent to a number in visible text.
func (s RegexFallback) symbols(doc *Document, res *Result) {
	if res.DiscountedPrice != nil && res.Currency != nil {
		return
	}

	body := doc.DOM.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	text := strings.Join(strings.Fields(body.Text()), " ")

	for _, token := range symbolRe.FindAllString(text, -1) {
		amount, err := money.ParseAmount(token)
		if err != nil {
			continue
		}
		currency := money.CurrencyFromText(token, doc.CurrencyHint)
		if !currencyMatches(currency, doc.CurrencyHint) {
			continue
		}

		res.setDiscounted(amount, s.Source())
		res.setCurrency(currency, s.Source())
		return
	}
}

func isBaseKey(key string) bool {
	for _, base := range baseKeys {
		if strings.EqualFold(base, key) {
			return true
		}
	}
	return false
}
