package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MichalMitros/game-price-puller/internal/fetcher"
	"github.com/MichalMitros/game-price-puller/internal/locale"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/MichalMitros/game-price-puller/internal/resolver"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const xboxClientID = "game-price-puller/1.0"

// xboxCatalog is the part of store edge and display catalog responses holding prices.
// Field names are matched case-insensitively, which covers both endpoints.
type xboxCatalog struct {
	Products []struct {
		LocalizedProperties []struct {
			ProductTitle string `json:"ProductTitle"`
		} `json:"LocalizedProperties"`
		DisplaySkuAvailabilities []struct {
			Availabilities []struct {
				OrderManagementData struct {
					Price struct {
						MSRP         float64 `json:"MSRP"`
						ListPrice    float64 `json:"ListPrice"`
						CurrencyCode string  `json:"CurrencyCode"`
					} `json:"Price"`
				} `json:"OrderManagementData"`
			} `json:"Availabilities"`
		} `json:"DisplaySkuAvailabilities"`
	} `json:"Products"`
}

// Xbox reads prices from Microsoft store catalog APIs.
type Xbox struct {
	fetcher     Fetcher
	markets     *locale.Table
	baseURL     string
	fallbackURL string
}

// NewXbox returns new Xbox source.
func NewXbox(f Fetcher, markets *locale.Table, opts ...Option) *Xbox {
	o := apply(opts)
	return &Xbox{
		fetcher:     f,
		markets:     markets,
		baseURL:     o.xboxURL,
		fallbackURL: o.xboxFallbackURL,
	}
}

func (s *Xbox) Platform() models.Platform {
	return models.PlatformXbox
}

func (s *Xbox) Fetch(ctx context.Context, query models.PriceQuery) (out models.Outcome) {
	defer recoverMiss(&out, query)

	storeID, err := resolver.XboxStoreID(query.Reference)
	if err != nil {
		return missed(query, err)
	}

	market := s.markets.Market(query.Country)
	headers := map[string]string{
		"MS-CV":       msCV(),
		"Accept":      "application/json",
		"X-Client-Id": xboxClientID,
	}

	requests := []fetcher.Request{
		{
			URL: s.baseURL + "/v9.0/sdk/products",
			Params: url.Values{
				"bigIds": {storeID},
				"market": {market.Country},
				"locale": {market.XboxLocale},
			},
			Headers: headers,
			Locale:  market.XboxLocale,
		},
		{
			URL: s.fallbackURL + "/v7.0/products",
			Params: url.Values{
				"bigIds":         {storeID},
				"market":         {market.Country},
				"languages":      {market.XboxLocale},
				"fieldsTemplate": {"Store"},
				"deviceFamily":   {"Windows.Xbox"},
			},
			Headers: headers,
			Locale:  market.XboxLocale,
		},
	}

	errs := make([]error, 0, len(requests))
	for _, req := range requests {
		observation, err := s.fetchCatalog(ctx, req, query, market, storeID)
		if err == nil {
			return models.Observed(observation)
		}
		errs = append(errs, err)
	}

	return missed(query, mostSpecific(errs))
}

func (s *Xbox) fetchCatalog(
	ctx context.Context,
	req fetcher.Request,
	query models.PriceQuery,
	market locale.Market,
	storeID string,
) (models.PriceObservation, error) {
	var catalog xboxCatalog
	if err := s.fetcher.GetJSON(ctx, req, &catalog); err != nil {
		return models.PriceObservation{}, fmt.Errorf("can't fetch xbox product %s: %w", storeID, err)
	}

	if len(catalog.Products) == 0 {
		return models.PriceObservation{}, fmt.Errorf("%w: xbox product %s", ErrNoData, storeID)
	}

	product := catalog.Products[0]
	for _, sku := range product.DisplaySkuAvailabilities {
		for _, availability := range sku.Availabilities {
			price := availability.OrderManagementData.Price

			msrp := lo.Ternary(price.MSRP > 0, lo.ToPtr(price.MSRP), nil)
			list := lo.Ternary(price.ListPrice > 0, lo.ToPtr(price.ListPrice), nil)

			amount, ok := chooseAmount(msrp, list, query.PreferMSRP)
			if !ok {
				continue
			}

			currency := strings.ToUpper(price.CurrencyCode)
			if currency == "" {
				currency = market.Currency
			}

			var label *string
			if len(product.LocalizedProperties) > 0 {
				label = lo.EmptyableToPtr(product.LocalizedProperties[0].ProductTitle)
			}

			return models.PriceObservation{
				Platform:        models.PlatformXbox,
				Title:           query.Title,
				Country:         market.Country,
				Currency:        currency,
				Amount:          amount,
				BasePrice:       msrp,
				DiscountedPrice: list,
				SourceURL:       fmt.Sprintf("%s/%s/games/store/x/%s", defaultXboxWebURL, market.XboxLocale, storeID),
				EditionLabel:    label,
				ParseSource:     models.SourceAPI,
			}, nil
		}
	}

	return models.PriceObservation{}, fmt.Errorf("%w: xbox product %s", ErrNoPrice, storeID)
}

// mostSpecific returns the error carrying the most information about a miss:
// a missing price beats missing data, which beats transport errors.
func mostSpecific(errs []error) error {
	for _, target := range []error{ErrNoPrice, ErrNoData} {
		if err, ok := lo.Find(errs, func(err error) bool { return errors.Is(err, target) }); ok {
			return err
		}
	}
	return errors.Join(errs...)
}

// msCV returns random correlation vector for Microsoft APIs.
func msCV() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:28]
}
