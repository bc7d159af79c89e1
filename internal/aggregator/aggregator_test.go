package aggregator_test

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MichalMitros/game-price-puller/internal/aggregator"
	"github.com/MichalMitros/game-price-puller/internal/aggregator/mocks"
	"github.com/MichalMitros/game-price-puller/internal/locale"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/MichalMitros/game-price-puller/internal/platform/models/modelstesting"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = zerolog.Nop()

func markets(t *testing.T) *locale.Table {
	t.Helper()

	table, err := locale.Default()
	require.NoError(t, err)
	return table
}

// funcSource is a Source answering with fn.
type funcSource struct {
	platform models.Platform
	fn       func(models.PriceQuery) models.Outcome
}

func (s funcSource) Platform() models.Platform { return s.platform }

func (s funcSource) Fetch(_ context.Context, query models.PriceQuery) models.Outcome {
	return s.fn(query)
}

func observed(query models.PriceQuery) models.Outcome {
	return models.Observed(modelstesting.FakeObservation(func(o *models.PriceObservation) {
		o.Platform = query.Platform
		o.Title = query.Title
		o.Country = query.Country
	}))
}

func mockSource(t *testing.T, platform models.Platform, fn func(models.PriceQuery) models.Outcome) *mocks.Source {
	source := mocks.NewSource(t)
	source.On("Platform").Return(platform)
	source.On("Fetch", mock.Anything, mock.AnythingOfType("models.PriceQuery")).
		Return(func(_ context.Context, query models.PriceQuery) models.Outcome { return fn(query) })
	return source
}

func TestUnitCollect(t *testing.T) {
	steamItem := modelstesting.FakeBasketItem(func(i *models.BasketItem) { i.Platform = models.PlatformSteam })
	xboxItem := modelstesting.FakeBasketItem(func(i *models.BasketItem) { i.Platform = models.PlatformXbox })

	steam := mockSource(t, models.PlatformSteam, func(q models.PriceQuery) models.Outcome {
		if q.Country == "DE" {
			return models.Missed(models.MissObservation{
				Platform: q.Platform, Title: q.Title, Country: q.Country, Reason: models.MissNoPrice,
			})
		}
		return observed(q)
	})
	xbox := mockSource(t, models.PlatformXbox, observed)

	agg := aggregator.NewAggregator([]aggregator.Source{steam, xbox}, markets(t), &logger)

	results, err := agg.Collect(context.TODO(), models.PullRequest{
		Items:      []models.BasketItem{steamItem, xboxItem},
		Countries:  []string{"us", "DE", " us ", ""},
		PreferMSRP: true,
	})

	require.NoError(t, err)
	require.Len(t, results, 4, "should produce one result per item and country")

	wantUnits := []struct {
		item    models.BasketItem
		country string
		miss    bool
	}{
		{steamItem, "DE", true},
		{steamItem, "US", false},
		{xboxItem, "DE", false},
		{xboxItem, "US", false},
	}

	for ix, want := range wantUnits {
		result := results[ix]
		assert.Equal(t, want.item, result.Item)
		assert.Equal(t, want.country, result.Query.Country)
		assert.True(t, result.Query.PreferMSRP, "should pass msrp preference to queries")

		_, isObserved := result.Outcome.Observation()
		miss, isMissed := result.Outcome.Miss()
		assert.NotEqual(t, isObserved, isMissed, "should hold exactly one of observation and miss")
		assert.Equal(t, want.miss, isMissed)
		if isMissed {
			assert.Equal(t, models.MissNoPrice, miss.Reason)
		}
	}
}

func TestUnitCollectCountries(t *testing.T) {
	table := markets(t)
	agg := aggregator.NewAggregator(nil, table, &logger)

	tests := map[string]struct {
		req  models.PullRequest
		want []string
	}{
		"sorted and deduplicated": {
			req:  models.PullRequest{Countries: []string{"jp", "US", "de", "JP"}},
			want: []string{"DE", "JP", "US"},
		},
		"capped": {
			req:  models.PullRequest{Countries: []string{"US", "DE", "GB", "JP"}, MaxCountries: 2},
			want: []string{"DE", "GB"},
		},
		"all markets when empty": {
			req:  models.PullRequest{MaxCountries: 3},
			want: table.Countries()[:3],
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, agg.Countries(tt.req))
		})
	}
}

func TestUnitCollectInvalidRequest(t *testing.T) {
	steam := funcSource{platform: models.PlatformSteam, fn: observed}
	agg := aggregator.NewAggregator([]aggregator.Source{steam}, markets(t), &logger)

	_, err := agg.Collect(context.TODO(), models.PullRequest{Countries: []string{"US"}})
	assert.ErrorIs(t, err, aggregator.ErrEmptyBasket)

	_, err = agg.Collect(context.TODO(), models.PullRequest{
		Items:     []models.BasketItem{modelstesting.FakeBasketItem(func(i *models.BasketItem) { i.Platform = models.PlatformPlayStation })},
		Countries: []string{"US"},
	})
	assert.ErrorIs(t, err, aggregator.ErrUnsupportedPlatform)
}

func TestUnitCollectUnknownCountry(t *testing.T) {
	var buf bytes.Buffer
	warnLogger := zerolog.New(&buf).Level(zerolog.WarnLevel)

	steam := funcSource{platform: models.PlatformSteam, fn: observed}
	agg := aggregator.NewAggregator([]aggregator.Source{steam}, markets(t), &warnLogger)

	results, err := agg.Collect(context.TODO(), models.PullRequest{
		Items:     []models.BasketItem{modelstesting.FakeBasketItem(func(i *models.BasketItem) { i.Platform = models.PlatformSteam })},
		Countries: []string{"US", "zz"},
	})

	require.NoError(t, err)
	assert.Len(t, results, 2, "should still pull unknown country with default market")
	assert.Contains(t, buf.String(), `"country":"ZZ"`, "should warn about unknown country")
	assert.NotContains(t, buf.String(), `"country":"US"`, "shouldn't warn about known country")
}

func TestUnitCollectNeverLeavesEmptyResult(t *testing.T) {
	source := funcSource{platform: models.PlatformSteam, fn: func(q models.PriceQuery) models.Outcome {
		switch q.Country {
		case "DE":
			panic("boom")
		case "GB":
			return models.Outcome{}
		default:
			return observed(q)
		}
	}}
	agg := aggregator.NewAggregator([]aggregator.Source{source}, markets(t), &logger)

	results, err := agg.Collect(context.TODO(), models.PullRequest{
		Items:     []models.BasketItem{modelstesting.FakeBasketItem(func(i *models.BasketItem) { i.Platform = models.PlatformSteam })},
		Countries: []string{"DE", "GB", "US"},
	})

	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, country := range []string{"DE", "GB"} {
		result, ok := lo.Find(results, func(r models.UnitResult) bool { return r.Query.Country == country })
		require.True(t, ok)
		miss, isMissed := result.Outcome.Miss()
		require.True(t, isMissed, "should turn %s failure into miss", country)
		assert.Equal(t, models.MissException, miss.Reason)
	}

	_, ok := results[2].Outcome.Observation()
	assert.True(t, ok, "should keep other units unaffected")
}

func TestUnitCollectBoundedWorkers(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32

	source := funcSource{platform: models.PlatformXbox, fn: func(q models.PriceQuery) models.Outcome {
		current := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			seen := maxInFlight.Load()
			if current <= seen || maxInFlight.CompareAndSwap(seen, current) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		return observed(q)
	}}
	agg := aggregator.NewAggregator([]aggregator.Source{source}, markets(t), &logger, aggregator.WithWorkers(2))

	results, err := agg.Collect(context.TODO(), models.PullRequest{
		Items:        []models.BasketItem{modelstesting.FakeBasketItem(func(i *models.BasketItem) { i.Platform = models.PlatformXbox })},
		MaxCountries: 10,
	})

	require.NoError(t, err)
	assert.Len(t, results, 10)
	assert.LessOrEqual(t, maxInFlight.Load(), int32(2), "shouldn't exceed worker limit")
}
