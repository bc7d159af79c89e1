package fx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MichalMitros/game-price-puller/internal/fetcher"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

const (
	defaultTTL = 2 * time.Hour
	// Base is the currency all rates are quoted against.
	Base = "USD"
)

// DefaultProviders are queried in order until one answers with rates.
var DefaultProviders = []string{
	"https://api.exchangerate.host/latest?base=USD",
	"https://open.er-api.com/v6/latest/USD",
}

// Fetcher fetches JSON documents.
type Fetcher interface {
	GetJSON(ctx context.Context, req fetcher.Request, dst any) error
}

// Rates maps currency code to units of that currency per one USD.
type Rates map[string]float64

// ToUSD converts amount in currency to USD.
// Returns false when currency is unknown.
func (r Rates) ToUSD(currency string, amount float64) (float64, bool) {
	rate, ok := r[strings.ToUpper(currency)]
	if !ok || rate <= 0 {
		return 0, false
	}
	return amount / rate, true
}

type snapshot struct {
	rates     Rates
	fetchedAt time.Time
}

// Option configures Cache.
type Option func(c *Cache)

// WithTTL sets how long fetched rates are served before refreshing.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithProviders sets provider urls queried in order.
func WithProviders(providers ...string) Option {
	return func(c *Cache) {
		c.providers = providers
	}
}

// WithNow sets custom time source.
func WithNow(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// Cache serves exchange rates, refreshing them at most once per TTL.
// Safe for concurrent use.
type Cache struct {
	fetcher   Fetcher
	logger    *zerolog.Logger
	providers []string
	ttl       time.Duration
	now       func() time.Time

	current atomic.Pointer[snapshot]
	refresh sync.Mutex
}

// NewCache returns new Cache.
func NewCache(f Fetcher, logger *zerolog.Logger, opts ...Option) *Cache {
	c := &Cache{
		fetcher:   f,
		logger:    logger,
		providers: DefaultProviders,
		ttl:       defaultTTL,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Rates returns current rates table, refreshing it when stale.
// A failed refresh keeps serving the last table. The table always contains USD.
func (c *Cache) Rates(ctx context.Context) Rates {
	if snap := c.current.Load(); c.fresh(snap) {
		return snap.rates
	}

	c.refresh.Lock()
	defer c.refresh.Unlock()

	snap := c.current.Load()
	if c.fresh(snap) {
		return snap.rates
	}

	rates, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("can't refresh exchange rates")
		if snap != nil {
			return snap.rates
		}
		return Rates{Base: 1}
	}

	c.current.Store(&snapshot{rates: rates, fetchedAt: c.now()})
	return rates
}

func (c *Cache) fresh(snap *snapshot) bool {
	return snap != nil && c.now().Sub(snap.fetchedAt) < c.ttl
}

type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

func (c *Cache) fetch(ctx context.Context) (Rates, error) {
	errs := make([]error, 0, len(c.providers))

	for _, provider := range c.providers {
		var resp ratesResponse
		if err := c.fetcher.GetJSON(ctx, fetcher.Request{URL: provider}, &resp); err != nil {
			errs = append(errs, fmt.Errorf("can't fetch rates from %s: %w", provider, err))
			continue
		}

		rates := lo.MapKeys(
			lo.PickBy(resp.Rates, func(_ string, rate float64) bool { return rate > 0 }),
			func(_ float64, code string) string { return strings.ToUpper(code) },
		)
		if len(rates) == 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrNoRates, provider))
			continue
		}

		rates[Base] = 1
		return rates, nil
	}

	if len(errs) == 0 {
		return nil, ErrNoRates
	}
	return nil, errors.Join(errs...)
}
