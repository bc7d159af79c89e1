package storefront

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/MichalMitros/game-price-puller/internal/edition"
	"github.com/MichalMitros/game-price-puller/internal/extractor"
	"github.com/MichalMitros/game-price-puller/internal/fetcher"
	"github.com/MichalMitros/game-price-puller/internal/locale"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/MichalMitros/game-price-puller/internal/resolver"
	"github.com/samber/lo"
)

var localePathRe = regexp.MustCompile(`^/([a-z]{2}-[a-z]{2})/`)

// page is a fetched and extracted product page.
type page struct {
	url    string
	doc    *extractor.Document
	result extractor.Result
}

// PlayStation scrapes prices from PlayStation Store product pages.
type PlayStation struct {
	fetcher  Fetcher
	resolver *resolver.PlayStation
	chain    *extractor.Chain
	markets  *locale.Table
	opts     options
}

// NewPlayStation returns new PlayStation source.
func NewPlayStation(f Fetcher, res *resolver.PlayStation, chain *extractor.Chain, markets *locale.Table, opts ...Option) *PlayStation {
	return &PlayStation{
		fetcher:  f,
		resolver: res,
		chain:    chain,
		markets:  markets,
		opts:     apply(opts),
	}
}

func (s *PlayStation) Platform() models.Platform {
	return models.PlatformPlayStation
}

func (s *PlayStation) Fetch(ctx context.Context, query models.PriceQuery) (out models.Outcome) {
	defer recoverMiss(&out, query)

	market := s.markets.Market(query.Country)

	product, err := s.resolver.Resolve(ctx, query.Reference, market.PSLocale)
	if err != nil {
		return missed(query, fmt.Errorf("can't resolve %q: %w", query.Reference, err))
	}

	errs := make([]error, 0, 2)
	for ix, productID := range resolver.Candidates(product.ProductID) {
		pageURL := s.resolver.ProductURL(product.Locale, productID)
		if ix == 0 && product.CanonicalURL != "" {
			pageURL = product.CanonicalURL
		}

		pg, err := s.priced(ctx, pageURL, market.Currency)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		observation, err := s.observe(query, market, pg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return models.Observed(observation)
	}

	if s.opts.graphQL && product.ConceptID != "" {
		observation, err := s.fetchConcept(ctx, query, market, product)
		if err == nil {
			return models.Observed(observation)
		}
		errs = append(errs, err)
	}

	return missed(query, mostSpecific(errs))
}

// priced fetches product page and, when it looks like a premium edition,
// hops once to a better scoring sibling edition.
func (s *PlayStation) priced(ctx context.Context, pageURL string, currency string) (page, error) {
	current, err := s.page(ctx, pageURL, currency)
	if err != nil {
		return page{}, err
	}

	score := edition.Score(current.result.Label())
	if score >= 0 {
		return current, nil
	}

	base, _ := url.Parse(current.url)
	sibling, ok := edition.Sibling(edition.ProductLinks(current.doc.DOM.Selection, base), current.url, score)
	if !ok {
		return current, nil
	}

	hopped, err := s.page(ctx, sibling.URL, currency)
	if err != nil || !hopped.result.HasPrice() {
		return current, nil
	}

	return hopped, nil
}

func (s *PlayStation) page(ctx context.Context, pageURL string, currency string) (page, error) {
	resp, err := s.fetcher.Get(ctx, fetcher.Request{
		URL:    pageURL,
		Locale: localeOf(pageURL),
		Kind:   fetcher.KindHTML,
	})
	if err != nil {
		return page{}, fmt.Errorf("can't fetch product page %s: %w", pageURL, err)
	}

	doc, err := extractor.NewDocument(resp.URL, resp.Body, currency)
	if err != nil {
		return page{}, fmt.Errorf("%w: %w", ErrNoData, err)
	}

	return page{
		url:    resp.URL,
		doc:    doc,
		result: s.chain.Extract(doc),
	}, nil
}

func (s *PlayStation) observe(query models.PriceQuery, market locale.Market, pg page) (models.PriceObservation, error) {
	res := pg.result

	amount, ok := chooseAmount(res.BasePrice, res.DiscountedPrice, query.PreferMSRP)
	if !ok {
		return models.PriceObservation{}, fmt.Errorf("%w: %s", ErrNoPrice, pg.url)
	}

	source := res.DiscountedSource
	if (query.PreferMSRP && res.BasePrice != nil) || res.DiscountedPrice == nil {
		source = res.BaseSource
	}

	return models.PriceObservation{
		Platform:        models.PlatformPlayStation,
		Title:           query.Title,
		Country:         market.Country,
		Currency:        lo.FromPtrOr(res.Currency, market.Currency),
		Amount:          amount,
		BasePrice:       res.BasePrice,
		DiscountedPrice: res.DiscountedPrice,
		SourceURL:       pg.url,
		EditionLabel:    lo.EmptyableToPtr(res.Label()),
		ParseSource:     source,
	}, nil
}

// localeOf returns locale path segment of storefront url, e.g. "en-gb".
func localeOf(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	if match := localePathRe.FindStringSubmatch(parsed.Path); match != nil {
		return match[1]
	}
	return ""
}
