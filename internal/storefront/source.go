package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/MichalMitros/game-price-puller/internal/fetcher"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/MichalMitros/game-price-puller/internal/resolver"
)

// Source fetches price of a single query from one storefront.
// Fetch never fails: problems are reported as a miss.
type Source interface {
	Platform() models.Platform
	Fetch(ctx context.Context, query models.PriceQuery) models.Outcome
}

// Fetcher fetches storefront pages and APIs.
type Fetcher interface {
	Get(ctx context.Context, req fetcher.Request) (*fetcher.Response, error)
	GetJSON(ctx context.Context, req fetcher.Request, dst any) error
}

// chooseAmount picks base price when MSRP is preferred and discounted price
// otherwise, falling back to the other one when the preferred is missing.
func chooseAmount(base *float64, discounted *float64, preferMSRP bool) (float64, bool) {
	first, second := discounted, base
	if preferMSRP {
		first, second = base, discounted
	}

	for _, amount := range []*float64{first, second} {
		if amount != nil && *amount > 0 {
			return *amount, true
		}
	}
	return 0, false
}

// reasonOf maps pipeline error to miss reason.
func reasonOf(err error) models.MissReason {
	switch {
	case errors.Is(err, resolver.ErrCannotResolveID):
		return models.MissNoID
	case errors.Is(err, ErrNoData), errors.Is(err, fetcher.ErrInvalidJSON):
		return models.MissNoData
	case errors.Is(err, ErrNoPrice):
		return models.MissNoPrice
	default:
		return models.MissHTTPError
	}
}

func missed(query models.PriceQuery, err error) models.Outcome {
	return models.Missed(models.MissObservation{
		Platform: query.Platform,
		Title:    query.Title,
		Country:  query.Country,
		Reason:   reasonOf(err),
		Detail:   err.Error(),
	})
}

// recoverMiss turns panic of a fetch into exception miss stored in out.
func recoverMiss(out *models.Outcome, query models.PriceQuery) {
	if r := recover(); r != nil {
		*out = models.Missed(models.MissObservation{
			Platform: query.Platform,
			Title:    query.Title,
			Country:  query.Country,
			Reason:   models.MissException,
			Detail:   fmt.Sprintf("panic: %v", r),
		})
	}
}
