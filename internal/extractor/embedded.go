package extractor

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/MichalMitros/game-price-puller/internal/money"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/samber/lo"
)

var (
	baseKeys       = []string{"basePrice", "regularPrice", "originalPrice", "strikethroughPrice"}
	discountedKeys = []string{"discountedPrice", "finalPrice", "current", "value", "priceValue"}
	currencyKeys   = []string{"currency", "priceCurrency", "currencyCode"}
)

// EmbeddedJSON reads the framework injected __NEXT_DATA__ payload.
type EmbeddedJSON struct{}

func (EmbeddedJSON) Source() models.ParseSource {
	return models.SourceEmbeddedJSON
}

func (s EmbeddedJSON) Extract(doc *Document, res *Result) {
	payload := strings.TrimSpace(doc.DOM.Find(`script#__NEXT_DATA__`).First().Text())
	if payload == "" {
		return
	}

	var root any
	if err := json.Unmarshal([]byte(payload), &root); err != nil {
		return
	}

	if product, ok := dig(root, "props", "pageProps", "product"); ok {
		res.setTitle(firstString(product, "name", "title"))
		res.setEdition(editionOf(product))

		if price, ok := product["price"].(map[string]any); ok {
			readPrice(price, doc.CurrencyHint, res, s.Source())
		}
	}

	if res.HasPrice() {
		return
	}

	if price, ok := bestPriceObject(root, doc.CurrencyHint); ok {
		readPrice(price, doc.CurrencyHint, res, s.Source())
	}
}

func editionOf(product map[string]any) string {
	switch edition := product["edition"].(type) {
	case string:
		return edition
	case map[string]any:
		if name := firstString(edition, "name", "type"); name != "" {
			return name
		}
	}

	switch badge := product["badge"].(type) {
	case string:
		return badge
	case map[string]any:
		return firstString(badge, "text", "name")
	}

	return ""
}

// readPrice copies base, discounted and currency fields of price object into res.
func readPrice(price map[string]any, hint string, res *Result, source models.ParseSource) {
	currency := firstString(price, currencyKeys...)

	if amount, raw, ok := firstAmount(price, baseKeys...); ok {
		res.setBase(amount, source)
		if currency == "" && raw != "" {
			currency = money.CurrencyFromText(raw, hint)
		}
	}
	if amount, raw, ok := firstAmount(price, discountedKeys...); ok {
		res.setDiscounted(amount, source)
		if currency == "" && raw != "" {
			currency = money.CurrencyFromText(raw, hint)
		}
	}

	if res.HasPrice() && currency != "" {
		res.setCurrency(currency, source)
	}
}

// bestPriceObject scans the whole JSON tree for objects carrying price keys and
// returns the one most likely to describe the product price in hint currency.
func bestPriceObject(root any, hint string) (map[string]any, bool) {
	var (
		best      map[string]any
		bestScore = -1
	)

	walk(root, func(obj map[string]any) {
		_, _, hasBase := firstAmount(obj, baseKeys...)
		_, _, hasDiscounted := firstAmount(obj, discountedKeys...)
		if !hasBase && !hasDiscounted {
			return
		}

		currency := firstString(obj, currencyKeys...)
		if !currencyMatches(currency, hint) {
			return
		}

		score := 0
		if currency != "" {
			score += 10
		}
		if hasDiscounted {
			score += 2
		}
		if hasBase {
			score++
		}

		if score > bestScore {
			best, bestScore = obj, score
		}
	})

	return best, best != nil
}

// walk calls fn for every object of JSON tree in depth first order,
// visiting object keys alphabetically.
func walk(node any, fn func(map[string]any)) {
	switch v := node.(type) {
	case map[string]any:
		fn(v)
		keys := lo.Keys(v)
		sort.Strings(keys)
		for _, key := range keys {
			walk(v[key], fn)
		}
	case []any:
		for _, child := range v {
			walk(child, fn)
		}
	}
}
