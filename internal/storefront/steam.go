package storefront

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MichalMitros/game-price-puller/internal/fetcher"
	"github.com/MichalMitros/game-price-puller/internal/locale"
	"github.com/MichalMitros/game-price-puller/internal/money"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/MichalMitros/game-price-puller/internal/resolver"
	"github.com/samber/lo"
)

type steamApp struct {
	Success bool `json:"success"`
	Data    struct {
		Name          string `json:"name"`
		PriceOverview *struct {
			Currency string `json:"currency"`
			Initial  int64  `json:"initial"`
			Final    int64  `json:"final"`
		} `json:"price_overview"`
	} `json:"data"`
}

// Steam reads prices from Steam store appdetails API.
type Steam struct {
	fetcher Fetcher
	markets *locale.Table
	baseURL string
}

// NewSteam returns new Steam source.
func NewSteam(f Fetcher, markets *locale.Table, opts ...Option) *Steam {
	return &Steam{
		fetcher: f,
		markets: markets,
		baseURL: apply(opts).steamURL,
	}
}

func (s *Steam) Platform() models.Platform {
	return models.PlatformSteam
}

func (s *Steam) Fetch(ctx context.Context, query models.PriceQuery) (out models.Outcome) {
	defer recoverMiss(&out, query)

	appID, err := resolver.SteamAppID(query.Reference)
	if err != nil {
		return missed(query, err)
	}

	market := s.markets.Market(query.Country)

	var payload map[string]steamApp
	err = s.fetcher.GetJSON(ctx, fetcher.Request{
		URL: s.baseURL + "/api/appdetails",
		Params: url.Values{
			"appids": {appID},
			"cc":     {strings.ToLower(market.Country)},
			"l":      {"en"},
		},
		Locale: market.PSLocale,
	}, &payload)
	if err != nil {
		return missed(query, fmt.Errorf("can't fetch steam app %s: %w", appID, err))
	}

	app, ok := payload[appID]
	if !ok || !app.Success {
		return missed(query, fmt.Errorf("%w: steam app %s", ErrNoData, appID))
	}

	overview := app.Data.PriceOverview
	if overview == nil {
		return missed(query, fmt.Errorf("%w: steam app %s has no price overview", ErrNoPrice, appID))
	}

	base := lo.Ternary(overview.Initial > 0, lo.ToPtr(money.ParseMinorUnits(overview.Initial)), nil)
	discounted := lo.Ternary(overview.Final > 0, lo.ToPtr(money.ParseMinorUnits(overview.Final)), nil)

	amount, ok := chooseAmount(base, discounted, query.PreferMSRP)
	if !ok {
		return missed(query, fmt.Errorf("%w: steam app %s", ErrNoPrice, appID))
	}

	currency := strings.ToUpper(overview.Currency)
	if currency == "" {
		currency = market.Currency
	}

	return models.Observed(models.PriceObservation{
		Platform:        models.PlatformSteam,
		Title:           query.Title,
		Country:         market.Country,
		Currency:        currency,
		Amount:          amount,
		BasePrice:       base,
		DiscountedPrice: discounted,
		SourceURL:       fmt.Sprintf("%s/app/%s", s.baseURL, appID),
		EditionLabel:    lo.EmptyableToPtr(app.Data.Name),
		ParseSource:     models.SourceAPI,
	})
}
