package aggregator_test

import (
	"testing"

	"github.com/MichalMitros/game-price-puller/internal/aggregator"
	"github.com/MichalMitros/game-price-puller/internal/fx"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/MichalMitros/game-price-puller/internal/platform/models/modelstesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unit(item models.BasketItem, country string, currency string, amount float64) models.UnitResult {
	result := modelstesting.FakeUnitResult(item, country, true)
	observation, _ := result.Outcome.Observation()
	observation.Currency = currency
	observation.Amount = amount
	result.Outcome = models.Observed(observation)
	return result
}

func TestUnitRecommend(t *testing.T) {
	steamA := modelstesting.FakeBasketItem(func(i *models.BasketItem) {
		i.Platform, i.Scale, i.Weight = models.PlatformSteam, 0, 1
	})
	steamB := modelstesting.FakeBasketItem(func(i *models.BasketItem) {
		i.Platform, i.Scale, i.Weight = models.PlatformSteam, 1, 3
	})
	steamScaled := modelstesting.FakeBasketItem(func(i *models.BasketItem) {
		i.Platform, i.Scale, i.Weight = models.PlatformSteam, 1.5, 0
	})
	xbox := modelstesting.FakeBasketItem(func(i *models.BasketItem) {
		i.Platform, i.Scale, i.Weight = models.PlatformXbox, 1, 1
	})

	results := []models.UnitResult{
		unit(steamA, "US", "USD", 59.99),
		unit(steamB, "US", "USD", 69.99),
		unit(steamA, "DE", "EUR", 49.99),
		unit(steamB, "DE", "EUR", 59.99),
		unit(steamScaled, "JP", "JPY", 7000),
		modelstesting.FakeUnitResult(steamA, "GB", false),
		unit(xbox, "GB", "GBP", 54.5),
	}
	rates := fx.Rates{"USD": 1, "EUR": 0.9, "GBP": 0.5}

	agg := aggregator.NewAggregator(nil, markets(t), &logger)
	recommendations := agg.Recommend(results, rates)

	type want struct {
		platform models.Platform
		country  string
		name     string
		currency string
		price    float64
		usd      *float64
		diff     *float64
	}
	ptr := func(v float64) *float64 { return &v }

	wants := []want{
		{models.PlatformSteam, "DE", "Germany", "EUR", 57.99, ptr(64.43), ptr(-3.56)},
		{models.PlatformSteam, "JP", "Japan", "JPY", 10500, nil, nil},
		{models.PlatformSteam, "US", "United States", "USD", 67.99, ptr(67.99), ptr(0)},
		{models.PlatformXbox, "GB", "United Kingdom", "GBP", 54.99, ptr(109.98), nil},
	}

	require.Len(t, recommendations, len(wants), "should group by platform, country and currency, skipping misses")

	for ix, w := range wants {
		rec := recommendations[ix]
		assert.Equal(t, w.platform, rec.Platform)
		assert.Equal(t, w.country, rec.Country)
		assert.Equal(t, w.name, rec.CountryName)
		assert.Equal(t, w.currency, rec.Currency)
		assert.InDelta(t, w.price, rec.Price, 1e-9, "should return vanity rounded weighted mean for %s", w.country)

		if w.usd == nil {
			assert.Nil(t, rec.USDPrice, "shouldn't convert without rate for %s", w.country)
		} else if assert.NotNil(t, rec.USDPrice) {
			assert.InDelta(t, *w.usd, *rec.USDPrice, 1e-9)
		}

		if w.diff == nil {
			assert.Nil(t, rec.DiffUSD, "shouldn't compare without US price for %s", w.country)
		} else if assert.NotNil(t, rec.DiffUSD) {
			assert.InDelta(t, *w.diff, *rec.DiffUSD, 1e-9)
		}
	}
}

func TestUnitRecommendNoObservations(t *testing.T) {
	item := modelstesting.FakeBasketItem()
	agg := aggregator.NewAggregator(nil, markets(t), &logger)

	recommendations := agg.Recommend([]models.UnitResult{
		modelstesting.FakeUnitResult(item, "US", false),
	}, fx.Rates{"USD": 1})

	assert.Empty(t, recommendations)
}
