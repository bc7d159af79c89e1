package resolver

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MichalMitros/game-price-puller/internal/edition"
	"github.com/MichalMitros/game-price-puller/internal/fetcher"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/PuerkitoBio/goquery"
)

const (
	defaultStoreURL = "https://store.playstation.com"
	defaultLocale   = "en-us"
	// maxDepth limits marketing page -> store link recursion to a single hop.
	maxDepth = 1
)

// Fetcher fetches pages.
type Fetcher interface {
	Get(ctx context.Context, req fetcher.Request) (*fetcher.Response, error)
}

// PlayStation resolves arbitrary PlayStation references (bare product ids,
// product urls, concept urls, marketing pages) to canonical product pages.
type PlayStation struct {
	fetcher  Fetcher
	storeURL string
	hosts    map[string]struct{}
}

// Option configures PlayStation resolver.
type Option func(r *PlayStation)

// WithStoreURL sets storefront base url, e.g. for tests.
func WithStoreURL(storeURL string) Option {
	return func(r *PlayStation) {
		r.storeURL = strings.TrimRight(storeURL, "/")
	}
}

// NewPlayStation returns new PlayStation resolver.
func NewPlayStation(f Fetcher, opts ...Option) *PlayStation {
	r := &PlayStation{
		fetcher:  f,
		storeURL: defaultStoreURL,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.hosts = map[string]struct{}{"store.playstation.com": {}}
	if parsed, err := url.Parse(r.storeURL); err == nil && parsed.Host != "" {
		r.hosts[strings.ToLower(parsed.Host)] = struct{}{}
	}

	return r
}

// ProductURL returns canonical product page url in locale.
func (r *PlayStation) ProductURL(locale string, productID string) string {
	return fmt.Sprintf("%s/%s/product/%s", r.storeURL, localeOrDefault(locale), productID)
}

// ConceptURL returns concept page url in locale.
func (r *PlayStation) ConceptURL(locale string, conceptID string) string {
	return fmt.Sprintf("%s/%s/concept/%s", r.storeURL, localeOrDefault(locale), conceptID)
}

// Resolve returns product reference points to in locale.
// ErrCannotResolveID is returned when no product id can be found.
func (r *PlayStation) Resolve(ctx context.Context, reference string, locale string) (models.ResolvedProduct, error) {
	return r.resolve(ctx, strings.TrimSpace(reference), localeOrDefault(locale), 0)
}

func (r *PlayStation) resolve(ctx context.Context, reference string, locale string, depth int) (models.ResolvedProduct, error) {
	if reference == "" {
		return models.ResolvedProduct{}, ErrCannotResolveID
	}

	if match := productPathRe.FindStringSubmatch(reference); match != nil {
		return r.product(strings.ToUpper(match[1]), locale, ""), nil
	}

	if !strings.Contains(reference, "://") {
		if IsProductID(reference) {
			return r.product(strings.ToUpper(reference), locale, ""), nil
		}
		return models.ResolvedProduct{}, ErrCannotResolveID
	}

	if match := conceptPathRe.FindStringSubmatch(reference); match != nil {
		return r.resolveConcept(ctx, match[1], locale)
	}

	if r.isStoreURL(reference) || depth >= maxDepth {
		return models.ResolvedProduct{}, ErrCannotResolveID
	}

	return r.resolveMarketing(ctx, reference, locale, depth)
}

// resolveConcept picks the best scoring edition linked from concept page.
func (r *PlayStation) resolveConcept(ctx context.Context, conceptID string, locale string) (models.ResolvedProduct, error) {
	conceptURL := r.ConceptURL(locale, conceptID)

	doc, raw, err := r.fetchPage(ctx, conceptURL, locale)
	if err != nil {
		return models.ResolvedProduct{}, fmt.Errorf("can't fetch concept page: %w", err)
	}

	base, _ := url.Parse(conceptURL)
	if best, ok := edition.Best(edition.ProductLinks(doc.Selection, base)); ok {
		if match := productPathRe.FindStringSubmatch(best.URL); match != nil {
			return r.product(strings.ToUpper(match[1]), locale, conceptID), nil
		}
	}

	// Concept pages render editions client side in some releases, ids are
	// still present in embedded data.
	if match := productAnyRe.FindStringSubmatch(raw); match != nil {
		return r.product(strings.ToUpper(match[1]), locale, conceptID), nil
	}

	return models.ResolvedProduct{}, ErrCannotResolveID
}

// resolveMarketing follows the first storefront link of a marketing page,
// preferring concept links over product links.
func (r *PlayStation) resolveMarketing(ctx context.Context, pageURL string, locale string, depth int) (models.ResolvedProduct, error) {
	doc, _, err := r.fetchPage(ctx, pageURL, locale)
	if err != nil {
		return models.ResolvedProduct{}, fmt.Errorf("can't fetch marketing page: %w", err)
	}

	base, _ := url.Parse(pageURL)
	var conceptLink, productLink string

	doc.Find("a[href]").EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
		href, _ := anchor.Attr("href")
		link := edition.Absolute(base, href)
		if link == "" || !r.isStoreURL(link) {
			return true
		}

		switch {
		case conceptLink == "" && conceptPathRe.MatchString(link):
			conceptLink = link
			return false
		case productLink == "" && productPathRe.MatchString(link):
			productLink = link
		}
		return true
	})

	for _, link := range []string{conceptLink, productLink} {
		if link == "" {
			continue
		}
		return r.resolve(ctx, link, locale, depth+1)
	}

	return models.ResolvedProduct{}, ErrCannotResolveID
}

func (r *PlayStation) fetchPage(ctx context.Context, pageURL string, locale string) (*goquery.Document, string, error) {
	resp, err := r.fetcher.Get(ctx, fetcher.Request{
		URL:    pageURL,
		Locale: locale,
		Kind:   fetcher.KindHTML,
	})
	if err != nil {
		return nil, "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, "", fmt.Errorf("can't parse page: %w", err)
	}

	return doc, string(resp.Body), nil
}

func (r *PlayStation) product(productID string, locale string, conceptID string) models.ResolvedProduct {
	return models.ResolvedProduct{
		ProductID:    productID,
		CanonicalURL: r.ProductURL(locale, productID),
		Locale:       locale,
		ConceptID:    conceptID,
	}
}

func (r *PlayStation) isStoreURL(link string) bool {
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}
	_, ok := r.hosts[strings.ToLower(parsed.Host)]
	return ok
}

func localeOrDefault(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return defaultLocale
	}
	return locale
}
