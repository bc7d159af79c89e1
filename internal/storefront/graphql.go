package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/MichalMitros/game-price-puller/internal/edition"
	"github.com/MichalMitros/game-price-puller/internal/fetcher"
	"github.com/MichalMitros/game-price-puller/internal/locale"
	"github.com/MichalMitros/game-price-puller/internal/money"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/samber/lo"
)

const (
	conceptOperation = "conceptRetrieveForCtasWithPrice"
	conceptQueryHash = "eab9d873f90d4ad98fd55f07b6a0a606e6b3925f2d03b70477234b79c1df30b5"
)

type conceptPrice struct {
	CurrencyCode    string `json:"currencyCode"`
	BasePrice       string `json:"basePrice"`
	DiscountedPrice string `json:"discountedPrice"`
}

type conceptCTA struct {
	Price *conceptPrice `json:"price"`
}

type conceptResponse struct {
	Data struct {
		Concept struct {
			Name     string `json:"name"`
			Products []struct {
				Name    string        `json:"name"`
				Price   *conceptPrice `json:"price"`
				WebCTAs []conceptCTA  `json:"webctas"`
			} `json:"products"`
		} `json:"conceptRetrieveForCtasWithPrice"`
	} `json:"data"`
}

// conceptOffer is priced product of a concept.
type conceptOffer struct {
	name  string
	price conceptPrice
}

// fetchConcept asks storefront GraphQL API for prices of concept editions and
// returns the best scoring edition.
func (s *PlayStation) fetchConcept(
	ctx context.Context,
	query models.PriceQuery,
	market locale.Market,
	product models.ResolvedProduct,
) (models.PriceObservation, error) {
	variables, _ := json.Marshal(map[string]string{"conceptId": product.ConceptID})
	extensions, _ := json.Marshal(map[string]any{
		"persistedQuery": map[string]any{"version": 1, "sha256Hash": conceptQueryHash},
	})

	conceptURL := s.resolver.ConceptURL(product.Locale, product.ConceptID)

	var resp conceptResponse
	err := s.fetcher.GetJSON(ctx, fetcher.Request{
		URL: s.opts.graphQLURL,
		Params: url.Values{
			"operationName": {conceptOperation},
			"variables":     {string(variables)},
			"extensions":    {string(extensions)},
		},
		Headers: map[string]string{
			"Referer":                     conceptURL,
			"x-psn-store-locale-override": product.Locale,
		},
		Locale: product.Locale,
	}, &resp)
	if err != nil {
		return models.PriceObservation{}, fmt.Errorf("can't fetch concept %s prices: %w", product.ConceptID, err)
	}

	offers := make([]conceptOffer, 0)
	for _, p := range resp.Data.Concept.Products {
		prices := lo.FilterMap(p.WebCTAs, func(cta conceptCTA, _ int) (conceptPrice, bool) {
			return lo.FromPtr(cta.Price), cta.Price != nil && cta.Price.CurrencyCode != ""
		})
		if p.Price != nil {
			prices = append(prices, *p.Price)
		}
		if len(prices) > 0 {
			offers = append(offers, conceptOffer{name: p.Name, price: prices[0]})
		}
	}

	if len(offers) == 0 {
		return models.PriceObservation{}, fmt.Errorf("%w: concept %s", ErrNoPrice, product.ConceptID)
	}

	best := lo.MaxBy(offers, func(a conceptOffer, b conceptOffer) bool {
		return edition.Score(a.name) > edition.Score(b.name)
	})

	base := parsedPrice(best.price.BasePrice)
	discounted := parsedPrice(best.price.DiscountedPrice)

	amount, ok := chooseAmount(base, discounted, query.PreferMSRP)
	if !ok {
		return models.PriceObservation{}, fmt.Errorf("%w: concept %s", ErrNoPrice, product.ConceptID)
	}

	label := best.name
	if label == "" {
		label = resp.Data.Concept.Name
	}

	return models.PriceObservation{
		Platform:        models.PlatformPlayStation,
		Title:           query.Title,
		Country:         market.Country,
		Currency:        lo.Ternary(best.price.CurrencyCode != "", best.price.CurrencyCode, market.Currency),
		Amount:          amount,
		BasePrice:       base,
		DiscountedPrice: discounted,
		SourceURL:       conceptURL,
		EditionLabel:    lo.EmptyableToPtr(label),
		ParseSource:     models.SourceGraphQL,
	}, nil
}

func parsedPrice(text string) *float64 {
	amount, err := money.ParseAmount(text)
	if err != nil || amount <= 0 {
		return nil
	}
	return &amount
}
