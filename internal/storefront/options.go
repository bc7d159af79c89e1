package storefront

import "strings"

const (
	defaultSteamURL         = "https://store.steampowered.com"
	defaultXboxURL          = "https://storeedgefd.dsx.mp.microsoft.com"
	defaultXboxFallbackURL  = "https://displaycatalog.mp.microsoft.com"
	defaultXboxWebURL       = "https://www.xbox.com"
	defaultPlayStationQLURL = "https://web.np.playstation.com/api/graphql/v1/op"
)

type options struct {
	steamURL        string
	xboxURL         string
	xboxFallbackURL string
	graphQLURL      string
	graphQL         bool
}

func defaultOptions() options {
	return options{
		steamURL:        defaultSteamURL,
		xboxURL:         defaultXboxURL,
		xboxFallbackURL: defaultXboxFallbackURL,
		graphQLURL:      defaultPlayStationQLURL,
		graphQL:         true,
	}
}

// Option configures sources.
type Option func(o *options)

// WithSteamURL sets Steam store base url.
func WithSteamURL(u string) Option {
	return func(o *options) {
		o.steamURL = strings.TrimRight(u, "/")
	}
}

// WithXboxURLs sets Xbox store edge and display catalog base urls.
func WithXboxURLs(storeEdge string, displayCatalog string) Option {
	return func(o *options) {
		o.xboxURL = strings.TrimRight(storeEdge, "/")
		o.xboxFallbackURL = strings.TrimRight(displayCatalog, "/")
	}
}

// WithGraphQL enables or disables PlayStation concept GraphQL fallback and sets its endpoint.
// Empty endpoint keeps the default.
func WithGraphQL(enabled bool, endpoint string) Option {
	return func(o *options) {
		o.graphQL = enabled
		if endpoint != "" {
			o.graphQLURL = endpoint
		}
	}
}

func apply(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
