package locale_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MichalMitros/game-price-puller/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFile = `
default:
  ps_locale: en-us
  xbox_locale: en-us
  currency: USD
markets:
  - country: gb
    name: United Kingdom
    ps_locale: en-gb
    xbox_locale: en-gb
    currency: GBP
  - country: PL
    name: Poland
    ps_locale: pl-pl
    currency: PLN
`

func TestUnitDefault(t *testing.T) {
	table, err := locale.Default()
	require.NoError(t, err, "embedded markets file should be valid")

	tests := map[string]locale.Market{
		"US": {Country: "US", Name: "United States", PSLocale: "en-us", XboxLocale: "en-us", Currency: "USD"},
		"JP": {Country: "JP", Name: "Japan", PSLocale: "ja-jp", XboxLocale: "ja-jp", Currency: "JPY"},
		"TH": {Country: "TH", Name: "Thailand", PSLocale: "th-th", XboxLocale: "en-us", Currency: "THB"},
		"de": {Country: "DE", Name: "Germany", PSLocale: "de-de", XboxLocale: "de-de", Currency: "EUR"},
	}

	for country, want := range tests {
		t.Run(country, func(t *testing.T) {
			assert.Equal(t, want, table.Market(country), "should return correct market")
		})
	}

	assert.Greater(t, len(table.Countries()), 40, "should list many countries")
}

func TestUnitMarketFallback(t *testing.T) {
	table, err := locale.Parse([]byte(validFile))
	require.NoError(t, err)

	market := table.Market("zz")

	assert.Equal(t, "ZZ", market.Country, "should keep normalized country")
	assert.Equal(t, "USD", market.Currency, "should fall back to default currency")
	assert.Equal(t, "en-us", market.PSLocale, "should fall back to default locale")
	assert.False(t, table.Known("ZZ"))
	assert.True(t, table.Known("gb"))
}

func TestUnitParse(t *testing.T) {
	table, err := locale.Parse([]byte(validFile))
	require.NoError(t, err)

	assert.Equal(t, []string{"GB", "PL"}, table.Countries(), "should normalize and sort countries")
	assert.Equal(t, "en-us", table.Market("PL").XboxLocale, "should fill empty xbox locale from default")
	assert.Equal(t, "United Kingdom", table.Name("GB"))
}

func TestUnitParseInvalid(t *testing.T) {
	tests := map[string]struct {
		content string
		wantErr error
	}{
		"bad country": {
			content: `
default: {ps_locale: en-us, xbox_locale: en-us, currency: USD}
markets:
  - {country: USA, ps_locale: en-us, currency: USD}
`,
			wantErr: locale.ErrInvalidCountry,
		},
		"bad locale": {
			content: `
default: {ps_locale: en-us, xbox_locale: en-us, currency: USD}
markets:
  - {country: US, ps_locale: en_US, currency: USD}
`,
			wantErr: locale.ErrInvalidLocale,
		},
		"bad currency": {
			content: `
default: {ps_locale: en-us, xbox_locale: en-us, currency: USD}
markets:
  - {country: US, ps_locale: en-us, currency: dollar}
`,
			wantErr: locale.ErrInvalidCurrency,
		},
		"duplicate country": {
			content: `
default: {ps_locale: en-us, xbox_locale: en-us, currency: USD}
markets:
  - {country: US, ps_locale: en-us, currency: USD}
  - {country: us, ps_locale: en-us, currency: USD}
`,
			wantErr: locale.ErrDuplicateCountry,
		},
		"bad default": {
			content: `
default: {ps_locale: en-us, currency: USD}
markets: []
`,
			wantErr: locale.ErrInvalidLocale,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := locale.Parse([]byte(tt.content))
			assert.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}

func TestUnitLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validFile), 0o600))

	table, err := locale.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "GBP", table.Market("GB").Currency)

	_, err = locale.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "should fail on missing file")

	table, err = locale.Load("")
	require.NoError(t, err, "should load embedded table for empty path")
	assert.True(t, table.Known("US"))
}
