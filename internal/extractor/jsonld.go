package extractor

import (
	"encoding/json"
	"strings"

	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/PuerkitoBio/goquery"
)

var jsonLDTypes = map[string]struct{}{
	"product":   {},
	"videogame": {},
	"offer":     {},
}

// JSONLD reads schema.org Product, VideoGame and Offer objects.
type JSONLD struct{}

func (JSONLD) Source() models.ParseSource {
	return models.SourceJSONLD
}

func (s JSONLD) Extract(doc *Document, res *Result) {
	doc.DOM.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, script *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(strings.TrimSpace(script.Text())), &data); err != nil {
			return true
		}

		for _, obj := range jsonLDObjects(data) {
			if !isPriced(obj) {
				continue
			}

			for _, offer := range offersOf(obj) {
				amount, ok := amountOf(offer["price"])
				if !ok {
					amount, ok = amountOf(offer["lowPrice"])
				}
				currency := firstString(offer, "priceCurrency")
				if !ok || !currencyMatches(currency, doc.CurrencyHint) {
					continue
				}

				res.setTitle(firstString(obj, "name"))
				res.setDiscounted(amount, s.Source())
				res.setCurrency(currency, s.Source())
				return false
			}
		}

		return true
	})
}

// jsonLDObjects flattens top level arrays and @graph containers.
func jsonLDObjects(data any) []map[string]any {
	out := make([]map[string]any, 0)
	for _, obj := range objects(data) {
		out = append(out, obj)
		if graph, ok := obj["@graph"]; ok {
			out = append(out, objects(graph)...)
		}
	}
	return out
}

func isPriced(obj map[string]any) bool {
	if _, ok := obj["offers"]; ok {
		return true
	}

	for _, typ := range typesOf(obj["@type"]) {
		if _, ok := jsonLDTypes[strings.ToLower(typ)]; ok {
			return true
		}
	}
	return false
}

func typesOf(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []any:
		types := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				types = append(types, s)
			}
		}
		return types
	default:
		return nil
	}
}

// offersOf returns offers of obj, or obj itself when it is an offer.
func offersOf(obj map[string]any) []map[string]any {
	if offers, ok := obj["offers"]; ok {
		out := make([]map[string]any, 0)
		for _, offer := range objects(offers) {
			out = append(out, offer)
			// AggregateOffer may nest the real offers once more.
			if nested, ok := offer["offers"]; ok {
				out = append(out, objects(nested)...)
			}
		}
		return out
	}
	return []map[string]any{obj}
}
