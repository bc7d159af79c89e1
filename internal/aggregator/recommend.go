package aggregator

import (
	"sort"

	"github.com/MichalMitros/game-price-puller/internal/fx"
	"github.com/MichalMitros/game-price-puller/internal/money"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// referenceCountry is the country other recommendations are compared with.
const referenceCountry = "US"

type groupKey struct {
	platform models.Platform
	country  string
	currency string
}

type weightedSum struct {
	total  decimal.Decimal
	weight decimal.Decimal
}

// Recommend computes recommended price per platform, country and currency as
// weighted mean of scaled observed prices, vanity rounded in local currency.
// USD price and difference to the US price of the same platform are set when
// rates allow conversion.
func (a *Aggregator) Recommend(results []models.UnitResult, rates fx.Rates) []models.Recommendation {
	sums := make(map[groupKey]*weightedSum)

	for _, result := range results {
		observation, ok := result.Outcome.Observation()
		if !ok || observation.Amount <= 0 {
			continue
		}

		key := groupKey{
			platform: observation.Platform,
			country:  observation.Country,
			currency: observation.Currency,
		}
		sum, ok := sums[key]
		if !ok {
			sum = &weightedSum{total: decimal.Zero, weight: decimal.Zero}
			sums[key] = sum
		}

		weight := decimal.NewFromFloat(result.Item.WeightOrDefault())
		price := decimal.NewFromFloat(observation.Amount).Mul(decimal.NewFromFloat(result.Item.ScaleOrDefault()))
		sum.total = sum.total.Add(price.Mul(weight))
		sum.weight = sum.weight.Add(weight)
	}

	recommendations := make([]models.Recommendation, 0, len(sums))
	for key, sum := range sums {
		price := money.VanityDecimal(key.currency, sum.total.Div(sum.weight).Round(2))

		rec := models.Recommendation{
			Platform:    key.platform,
			Country:     key.country,
			CountryName: a.markets.Name(key.country),
			Currency:    key.currency,
			Price:       price.InexactFloat64(),
		}
		if usd, ok := rates.ToUSD(key.currency, rec.Price); ok {
			rec.USDPrice = lo.ToPtr(decimal.NewFromFloat(usd).Round(2).InexactFloat64())
		}

		recommendations = append(recommendations, rec)
	}

	sortRecommendations(recommendations)
	setDiffUSD(recommendations)

	return recommendations
}

// setDiffUSD sets difference to the reference country USD price of the same platform.
func setDiffUSD(recommendations []models.Recommendation) {
	references := make(map[models.Platform]float64)
	for _, rec := range recommendations {
		if rec.Country != referenceCountry || rec.USDPrice == nil {
			continue
		}
		if _, ok := references[rec.Platform]; ok && rec.Currency != fx.Base {
			continue
		}
		references[rec.Platform] = *rec.USDPrice
	}

	for ix := range recommendations {
		reference, ok := references[recommendations[ix].Platform]
		if !ok || recommendations[ix].USDPrice == nil {
			continue
		}
		diff := decimal.NewFromFloat(*recommendations[ix].USDPrice).Sub(decimal.NewFromFloat(reference))
		recommendations[ix].DiffUSD = lo.ToPtr(diff.Round(2).InexactFloat64())
	}
}

func sortRecommendations(recommendations []models.Recommendation) {
	order := lo.SliceToMap(models.Platforms, func(p models.Platform) (models.Platform, int) {
		return p, lo.IndexOf(models.Platforms, p)
	})

	sort.Slice(recommendations, func(i, j int) bool {
		a, b := recommendations[i], recommendations[j]
		if a.Platform != b.Platform {
			return order[a.Platform] < order[b.Platform]
		}
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		return a.Currency < b.Currency
	})
}
