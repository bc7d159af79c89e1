package extractor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MichalMitros/game-price-puller/internal/extractor"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitChainExtract(t *testing.T) {
	tests := map[string]struct {
		file string
		hint string
		want extractor.Result
	}{
		"embedded json": {
			file: "next_data.html",
			hint: "USD",
			want: extractor.Result{
				Title:            lo.ToPtr("Game"),
				Edition:          lo.ToPtr("Standard Edition"),
				BasePrice:        lo.ToPtr(69.99),
				DiscountedPrice:  lo.ToPtr(49.99),
				Currency:         lo.ToPtr("USD"),
				BaseSource:       models.SourceEmbeddedJSON,
				DiscountedSource: models.SourceEmbeddedJSON,
				CurrencySource:   models.SourceEmbeddedJSON,
			},
		},
		"embedded json deep scan picks hint currency": {
			file: "next_data_deep.html",
			hint: "GBP",
			want: extractor.Result{
				BasePrice:        lo.ToPtr(59.99),
				DiscountedPrice:  lo.ToPtr(59.99),
				Currency:         lo.ToPtr("GBP"),
				BaseSource:       models.SourceEmbeddedJSON,
				DiscountedSource: models.SourceEmbeddedJSON,
				CurrencySource:   models.SourceEmbeddedJSON,
			},
		},
		"json-ld offer in hint currency": {
			file: "json_ld.html",
			hint: "EUR",
			want: extractor.Result{
				Title:            lo.ToPtr("Game Deluxe Edition"),
				DiscountedPrice:  lo.ToPtr(79.99),
				Currency:         lo.ToPtr("EUR"),
				DiscountedSource: models.SourceJSONLD,
				CurrencySource:   models.SourceJSONLD,
			},
		},
		"json-ld first offer without hint": {
			file: "json_ld.html",
			want: extractor.Result{
				Title:            lo.ToPtr("Game Deluxe Edition"),
				DiscountedPrice:  lo.ToPtr(89.99),
				Currency:         lo.ToPtr("USD"),
				DiscountedSource: models.SourceJSONLD,
				CurrencySource:   models.SourceJSONLD,
			},
		},
		"open graph": {
			file: "meta.html",
			hint: "BRL",
			want: extractor.Result{
				Title:            lo.ToPtr("Game Cross-Gen Bundle"),
				DiscountedPrice:  lo.ToPtr(1299.9),
				Currency:         lo.ToPtr("BRL"),
				DiscountedSource: models.SourceMetaTag,
				CurrencySource:   models.SourceMetaTag,
			},
		},
		"microdata": {
			file: "microdata.html",
			hint: "JPY",
			want: extractor.Result{
				DiscountedPrice:  lo.ToPtr(6600.0),
				Currency:         lo.ToPtr("JPY"),
				DiscountedSource: models.SourceMetaTag,
				CurrencySource:   models.SourceMetaTag,
			},
		},
		"crossed out markup and keyed values": {
			file: "regex.html",
			hint: "CAD",
			want: extractor.Result{
				BasePrice:        lo.ToPtr(79.99),
				DiscountedPrice:  lo.ToPtr(39.99),
				Currency:         lo.ToPtr("CAD"),
				BaseSource:       models.SourceRegexFallback,
				DiscountedSource: models.SourceRegexFallback,
				CurrencySource:   models.SourceRegexFallback,
			},
		},
		"display price markup": {
			file: "display_price.html",
			hint: "PLN",
			want: extractor.Result{
				BasePrice:        lo.ToPtr(349.9),
				DiscountedPrice:  lo.ToPtr(174.95),
				Currency:         lo.ToPtr("PLN"),
				BaseSource:       models.SourceRegexFallback,
				DiscountedSource: models.SourceRegexFallback,
				CurrencySource:   models.SourceRegexFallback,
			},
		},
		"display price with dot thousands": {
			file: "display_price_idr.html",
			hint: "IDR",
			want: extractor.Result{
				DiscountedPrice:  lo.ToPtr(729000.0),
				Currency:         lo.ToPtr("IDR"),
				DiscountedSource: models.SourceRegexFallback,
				CurrencySource:   models.SourceRegexFallback,
			},
		},
		"dollar price skipped on euro page": {
			file: "dollar_on_euro_page.html",
			hint: "EUR",
			want: extractor.Result{
				DiscountedPrice:  lo.ToPtr(69.99),
				Currency:         lo.ToPtr("EUR"),
				DiscountedSource: models.SourceRegexFallback,
				CurrencySource:   models.SourceRegexFallback,
			},
		},
		"currency symbol in visible text": {
			file: "symbols.html",
			hint: "HKD",
			want: extractor.Result{
				DiscountedPrice:  lo.ToPtr(468.0),
				Currency:         lo.ToPtr("HKD"),
				DiscountedSource: models.SourceRegexFallback,
				CurrencySource:   models.SourceRegexFallback,
			},
		},
		"nothing found": {
			file: "empty.html",
			hint: "USD",
			want: extractor.Result{},
		},
	}

	chain := extractor.DefaultChain()

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			doc := loadDocument(t, tt.file, tt.hint)

			got := chain.Extract(doc)

			assert.Equal(t, tt.want, got, "should extract correct result")
		})
	}
}

func TestUnitJSONLDSkipsOtherCurrencies(t *testing.T) {
	doc := loadDocument(t, "json_ld.html", "GBP")
	var res extractor.Result

	extractor.JSONLD{}.Extract(doc, &res)

	assert.False(t, res.HasPrice(), "should skip offers in other currencies")
}

func TestUnitStrategiesFillOnlyEmptyFields(t *testing.T) {
	doc := loadDocument(t, "regex.html", "CAD")
	res := extractor.Result{
		DiscountedPrice:  lo.ToPtr(10.0),
		DiscountedSource: models.SourceJSONLD,
	}

	extractor.RegexFallback{}.Extract(doc, &res)

	assert.Equal(t, 10.0, *res.DiscountedPrice, "should keep price found earlier")
	assert.Equal(t, models.SourceJSONLD, res.DiscountedSource)
	require.NotNil(t, res.BasePrice)
	assert.Equal(t, 79.99, *res.BasePrice, "should fill missing base price")
}

func TestUnitChainSkipsPanickingStrategy(t *testing.T) {
	doc := loadDocument(t, "next_data.html", "USD")
	chain := extractor.NewChain(panickingStrategy{}, extractor.EmbeddedJSON{})

	var res extractor.Result
	require.NotPanics(t, func() {
		res = chain.Extract(doc)
	})

	require.NotNil(t, res.DiscountedPrice, "should run next strategies")
	assert.Equal(t, 49.99, *res.DiscountedPrice)
}

func TestUnitResultLabel(t *testing.T) {
	tests := map[string]struct {
		res  extractor.Result
		want string
	}{
		"title and edition": {
			res:  extractor.Result{Title: lo.ToPtr("Game"), Edition: lo.ToPtr("Deluxe Edition")},
			want: "Game Deluxe Edition",
		},
		"title already names edition": {
			res:  extractor.Result{Title: lo.ToPtr("Game Deluxe Edition"), Edition: lo.ToPtr("deluxe edition")},
			want: "Game Deluxe Edition",
		},
		"edition only": {
			res:  extractor.Result{Edition: lo.ToPtr("Standard")},
			want: "Standard",
		},
		"empty": {},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.Label())
		})
	}
}

type panickingStrategy struct{}

func (panickingStrategy) Source() models.ParseSource {
	return models.SourceRegexFallback
}

func (panickingStrategy) Extract(*extractor.Document, *extractor.Result) {
	panic("unexpected page shape")
}

func loadDocument(t *testing.T, file string, hint string) *extractor.Document {
	t.Helper()

	body, err := os.ReadFile(filepath.Join("testdata", file))
	require.NoError(t, err, "should read fixture")

	doc, err := extractor.NewDocument("https://store.example/"+file, body, hint)
	require.NoError(t, err, "should parse fixture")

	return doc
}
