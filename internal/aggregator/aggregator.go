package aggregator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MichalMitros/game-price-puller/internal/locale"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 8

//go:generate mockery --name Source --filename source.go

// Source fetches price of a single query from one storefront.
type Source interface {
	Platform() models.Platform
	Fetch(ctx context.Context, query models.PriceQuery) models.Outcome
}

// Option is custom configuration of Aggregator.
type Option func(a *Aggregator)

// WithWorkers sets number of units fetched concurrently.
func WithWorkers(workers int) Option {
	return func(a *Aggregator) {
		if workers > 0 {
			a.workers = workers
		}
	}
}

// Aggregator fans pull requests out over storefronts and countries and
// turns observed prices into recommendations.
type Aggregator struct {
	sources map[models.Platform]Source
	markets *locale.Table
	logger  *zerolog.Logger
	workers int
}

// NewAggregator returns new Aggregator.
func NewAggregator(sources []Source, markets *locale.Table, logger *zerolog.Logger, opts ...Option) *Aggregator {
	agg := &Aggregator{
		sources: lo.KeyBy(sources, func(s Source) models.Platform { return s.Platform() }),
		markets: markets,
		logger:  logger,
		workers: defaultWorkers,
	}

	for _, opt := range opts {
		opt(agg)
	}

	return agg
}

// Countries returns normalized, deduplicated and sorted countries of req,
// all known markets when req lists none, capped to req.MaxCountries when set.
func (a *Aggregator) Countries(req models.PullRequest) []string {
	countries := lo.Uniq(lo.FilterMap(req.Countries, func(c string, _ int) (string, bool) {
		c = strings.ToUpper(strings.TrimSpace(c))
		return c, c != ""
	}))
	if len(countries) == 0 {
		countries = a.markets.Countries()
	}
	sort.Strings(countries)

	if req.MaxCountries > 0 && len(countries) > req.MaxCountries {
		countries = countries[:req.MaxCountries]
	}
	return countries
}

// Collect fetches price of every basket item in every country of req.
// Results are ordered by item, then country, and each unit holds exactly one
// observation or miss. Storefront failures never fail the whole batch.
func (a *Aggregator) Collect(ctx context.Context, req models.PullRequest) ([]models.UnitResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyBasket
	}

	for _, item := range req.Items {
		if _, ok := a.sources[item.Platform]; !ok {
			return nil, fmt.Errorf("%w: %q (item %q)", ErrUnsupportedPlatform, item.Platform, item.Title)
		}
	}

	countries := a.Countries(req)
	for _, country := range countries {
		if !a.markets.Known(country) {
			a.logger.Warn().Str("country", country).Msg("unknown country, using default market")
		}
	}

	results := make([]models.UnitResult, 0, len(req.Items)*len(countries))
	for _, item := range req.Items {
		for _, country := range countries {
			results = append(results, models.UnitResult{
				Item: item,
				Query: models.PriceQuery{
					Platform:   item.Platform,
					Title:      item.Title,
					Reference:  item.Reference,
					Country:    country,
					PreferMSRP: req.PreferMSRP,
				},
			})
		}
	}

	var group errgroup.Group
	group.SetLimit(a.workers)

	for ix := range results {
		// every unit writes only its own slot.
		unit := &results[ix]
		group.Go(func() error {
			unit.Outcome = a.fetch(ctx, unit.Query)
			return nil
		})
	}
	_ = group.Wait()

	for ix := range results {
		if results[ix].Outcome.IsZero() {
			results[ix].Outcome = exception(results[ix].Query, "source returned empty outcome")
		}
		if miss, ok := results[ix].Outcome.Miss(); ok {
			a.logger.Debug().
				Str("platform", string(miss.Platform)).
				Str("title", miss.Title).
				Str("country", miss.Country).
				Str("reason", string(miss.Reason)).
				Str("detail", miss.Detail).
				Msg("price miss")
		}
	}

	return results, nil
}

func (a *Aggregator) fetch(ctx context.Context, query models.PriceQuery) (out models.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = exception(query, fmt.Sprintf("panic: %v", r))
		}
	}()

	return a.sources[query.Platform].Fetch(ctx, query)
}

func exception(query models.PriceQuery, detail string) models.Outcome {
	return models.Missed(models.MissObservation{
		Platform: query.Platform,
		Title:    query.Title,
		Country:  query.Country,
		Reason:   models.MissException,
		Detail:   detail,
	})
}
