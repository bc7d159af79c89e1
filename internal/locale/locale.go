package locale

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed markets.yaml
var defaultMarkets []byte

var (
	countryRe  = regexp.MustCompile(`^[A-Z]{2}$`)
	localeRe   = regexp.MustCompile(`^[a-z]{2}-[a-z]{2}$`)
	currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Market is storefront locale and fallback currency of single country.
type Market struct {
	Country    string `yaml:"country"`
	Name       string `yaml:"name"`
	PSLocale   string `yaml:"ps_locale"`
	XboxLocale string `yaml:"xbox_locale"`
	Currency   string `yaml:"currency"`
}

type file struct {
	Default Market   `yaml:"default"`
	Markets []Market `yaml:"markets"`
}

// Table maps ISO country codes to markets.
type Table struct {
	fallback Market
	markets  map[string]Market
}

// Default returns table built from embedded markets file.
func Default() (*Table, error) {
	return Parse(defaultMarkets)
}

// Load returns table read from file at path, or the embedded table when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read markets file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates markets file content.
func Parse(data []byte) (*Table, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("can't decode markets file: %w", err)
	}

	if err := validateDefault(f.Default); err != nil {
		return nil, err
	}

	table := &Table{
		fallback: f.Default,
		markets:  make(map[string]Market, len(f.Markets)),
	}

	for ix, market := range f.Markets {
		market.Country = strings.ToUpper(strings.TrimSpace(market.Country))
		if market.XboxLocale == "" {
			market.XboxLocale = f.Default.XboxLocale
		}

		if err := validateMarket(market); err != nil {
			return nil, fmt.Errorf("market #%d: %w", ix, err)
		}
		if _, ok := table.markets[market.Country]; ok {
			return nil, fmt.Errorf("market #%d: %w: %s", ix, ErrDuplicateCountry, market.Country)
		}

		table.markets[market.Country] = market
	}

	return table, nil
}

// Market returns market of country, or the default market with Country set
// to the normalized code when the country is unknown.
func (t *Table) Market(country string) Market {
	country = strings.ToUpper(strings.TrimSpace(country))

	if market, ok := t.markets[country]; ok {
		return market
	}

	market := t.fallback
	market.Country = country
	if market.Name == "" {
		market.Name = country
	}
	return market
}

// Known reports whether country is listed in the table.
func (t *Table) Known(country string) bool {
	_, ok := t.markets[strings.ToUpper(strings.TrimSpace(country))]
	return ok
}

// Countries returns sorted list of all listed countries.
func (t *Table) Countries() []string {
	countries := make([]string, 0, len(t.markets))
	for country := range t.markets {
		countries = append(countries, country)
	}
	sort.Strings(countries)
	return countries
}

// Name returns display name of country.
func (t *Table) Name(country string) string {
	return t.Market(country).Name
}

func validateDefault(m Market) error {
	if !localeRe.MatchString(m.PSLocale) || !localeRe.MatchString(m.XboxLocale) {
		return fmt.Errorf("default: %w", ErrInvalidLocale)
	}
	if !currencyRe.MatchString(m.Currency) {
		return fmt.Errorf("default: %w", ErrInvalidCurrency)
	}
	return nil
}

func validateMarket(m Market) error {
	if !countryRe.MatchString(m.Country) {
		return fmt.Errorf("%w: %q", ErrInvalidCountry, m.Country)
	}
	if !localeRe.MatchString(m.PSLocale) || !localeRe.MatchString(m.XboxLocale) {
		return fmt.Errorf("%s: %w", m.Country, ErrInvalidLocale)
	}
	if !currencyRe.MatchString(m.Currency) {
		return fmt.Errorf("%s: %w", m.Country, ErrInvalidCurrency)
	}
	return nil
}
