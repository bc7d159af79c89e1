package commander_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MichalMitros/game-price-puller/pkg/v1/commander"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basketYAML = `basket: shooters
prefer_msrp: true
max_countries: 5
countries: [US, DE, JP]
items:
  - platform: Steam
    title: Helldivers 2
    reference: "553850"
    weight: 2
  - platform: PlayStation
    title: Helldivers 2
    reference: https://store.playstation.com/en-us/concept/10002694
    scale: 1.5
`

func TestUnitParseBasket(t *testing.T) {
	tests := map[string]struct {
		data    string
		want    commander.PullCommand
		wantErr error
	}{
		"ok": {
			data: basketYAML,
			want: commander.PullCommand{
				Basket: "shooters",
				Items: []commander.Item{
					{Platform: "Steam", Title: "Helldivers 2", Reference: "553850", Weight: 2},
					{
						Platform:  "PlayStation",
						Title:     "Helldivers 2",
						Reference: "https://store.playstation.com/en-us/concept/10002694",
						Scale:     1.5,
					},
				},
				Countries:    []string{"US", "DE", "JP"},
				PreferMSRP:   true,
				MaxCountries: 5,
			},
		},
		"no items": {
			data:    "basket: empty\n",
			wantErr: commander.ErrInvalidCommand,
		},
		"unsupported platform": {
			data:    "basket: handhelds\nitems:\n  - platform: Switch\n    reference: \"70010000000025\"\n",
			wantErr: commander.ErrInvalidCommand,
		},
		"lowercase platform": {
			data:    "basket: shooters\nitems:\n  - platform: steam\n    reference: \"553850\"\n",
			wantErr: commander.ErrInvalidCommand,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := commander.ParseBasket([]byte(tt.data))

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := commander.ParseBasket([]byte("basket: [unterminated"))
		assert.Error(t, err)
	})
}

func TestUnitLoadBasket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basket.yaml")
	require.NoError(t, os.WriteFile(path, []byte(basketYAML), 0o600))

	cmd, err := commander.LoadBasket(path)

	require.NoError(t, err)
	assert.Equal(t, "shooters", cmd.Basket)
	assert.Len(t, cmd.Items, 2)

	_, err = commander.LoadBasket(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
