package extractor

import (
	"strings"

	"github.com/MichalMitros/game-price-puller/internal/money"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/PuerkitoBio/goquery"
)

// MetaTags reads Open Graph price tags and microdata properties.
type MetaTags struct{}

func (MetaTags) Source() models.ParseSource {
	return models.SourceMetaTag
}

func (s MetaTags) Extract(doc *Document, res *Result) {
	res.setTitle(attr(doc.DOM.Selection, `meta[property="og:title"]`, "content"))

	pairs := [][2]string{
		{`meta[property="og:price:amount"]`, `meta[property="og:price:currency"]`},
		{`meta[property="product:price:amount"]`, `meta[property="product:price:currency"]`},
	}
	for _, pair := range pairs {
		if s.read(res, doc.CurrencyHint, attr(doc.DOM.Selection, pair[0], "content"), attr(doc.DOM.Selection, pair[1], "content")) {
			return
		}
	}

	price := doc.DOM.Find(`[itemprop="price"]`).First()
	currency := doc.DOM.Find(`[itemprop="priceCurrency"]`).First()
	s.read(res, doc.CurrencyHint, contentOrText(price), contentOrText(currency))
}

func (s MetaTags) read(res *Result, hint string, rawAmount string, currency string) bool {
	amount, err := money.ParseAmount(rawAmount)
	if err != nil || amount <= 0 || !currencyMatches(currency, hint) {
		return false
	}

	if currency == "" {
		currency = money.CurrencyFromText(rawAmount, hint)
	}

	res.setDiscounted(amount, s.Source())
	res.setCurrency(currency, s.Source())
	return true
}

func attr(sel *goquery.Selection, selector string, name string) string {
	value, _ := sel.Find(selector).First().Attr(name)
	return strings.TrimSpace(value)
}

func contentOrText(sel *goquery.Selection) string {
	if content, ok := sel.Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(sel.Text())
}
