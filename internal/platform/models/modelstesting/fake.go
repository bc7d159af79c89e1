package modelstesting

import (
	"math/rand"

	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
)

// FakeBasketItem returns models.BasketItem with fake data.
func FakeBasketItem(ops ...func(i *models.BasketItem)) models.BasketItem {
	item := models.BasketItem{
		Platform:  lo.Sample(models.Platforms),
		Title:     faker.Word(),
		Reference: faker.Word(),
		Scale:     1,
		Weight:    float64(rand.Intn(3) + 1),
	}

	for _, op := range ops {
		op(&item)
	}

	return item
}

// FakeObservation returns models.PriceObservation with fake data and positive amount.
func FakeObservation(ops ...func(o *models.PriceObservation)) models.PriceObservation {
	amount := float64(rand.Intn(9000)+100) / 100
	observation := models.PriceObservation{
		Platform:        lo.Sample(models.Platforms),
		Title:           faker.Word(),
		Country:         "US",
		Currency:        "USD",
		Amount:          amount,
		BasePrice:       lo.ToPtr(amount),
		DiscountedPrice: lo.ToPtr(amount),
		SourceURL:       faker.URL(),
		EditionLabel:    lo.ToPtr(faker.Word()),
		ParseSource:     models.SourceEmbeddedJSON,
	}

	for _, op := range ops {
		op(&observation)
	}

	return observation
}

// FakeMiss returns models.MissObservation with fake data.
func FakeMiss(ops ...func(m *models.MissObservation)) models.MissObservation {
	miss := models.MissObservation{
		Platform: lo.Sample(models.Platforms),
		Title:    faker.Word(),
		Country:  "US",
		Reason:   lo.Sample([]models.MissReason{models.MissNoID, models.MissNoPrice, models.MissHTTPError}),
		Detail:   faker.Sentence(),
	}

	for _, op := range ops {
		op(&miss)
	}

	return miss
}

// FakeUnitResult returns models.UnitResult holding observation or miss for item.
func FakeUnitResult(item models.BasketItem, country string, observed bool) models.UnitResult {
	query := models.PriceQuery{
		Platform:  item.Platform,
		Title:     item.Title,
		Reference: item.Reference,
		Country:   country,
	}

	if !observed {
		return models.UnitResult{
			Item:  item,
			Query: query,
			Outcome: models.Missed(FakeMiss(func(m *models.MissObservation) {
				m.Platform = item.Platform
				m.Title = item.Title
				m.Country = country
			})),
		}
	}

	return models.UnitResult{
		Item:  item,
		Query: query,
		Outcome: models.Observed(FakeObservation(func(o *models.PriceObservation) {
			o.Platform = item.Platform
			o.Title = item.Title
			o.Country = country
		})),
	}
}
