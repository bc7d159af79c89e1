package commander

// Item is a single title of a basket.
type Item struct {
	// Platform is one of "Steam", "Xbox", "PlayStation".
	Platform string `json:"platform" yaml:"platform"`
	Title    string `json:"title" yaml:"title"`
	// Reference is storefront url or product id.
	Reference string `json:"reference" yaml:"reference"`
	// Scale multiplies observed price, 1 when zero.
	Scale float64 `json:"scale,omitempty" yaml:"scale"`
	// Weight weights item in recommended price mean, 1 when zero.
	Weight float64 `json:"weight,omitempty" yaml:"weight"`
}

// PullCommand asks puller to pull prices of basket items.
type PullCommand struct {
	Basket string `json:"basket" yaml:"basket"`
	Items  []Item `json:"items" yaml:"items"`
	// Countries are ISO 3166 alpha-2 codes, all known markets when empty.
	Countries    []string `json:"countries,omitempty" yaml:"countries"`
	PreferMSRP   bool     `json:"preferMsrp,omitempty" yaml:"prefer_msrp"`
	MaxCountries int      `json:"maxCountries,omitempty" yaml:"max_countries"`
}

// Recommendation is recommended regional price.
type Recommendation struct {
	Platform    string   `json:"platform"`
	Country     string   `json:"country"`
	CountryName string   `json:"countryName"`
	Currency    string   `json:"currency"`
	Price       float64  `json:"price"`
	USDPrice    *float64 `json:"usdPrice,omitempty"`
	DiffUSD     *float64 `json:"diffUsd,omitempty"`
}

// RunSummary is published after pull command is handled.
type RunSummary struct {
	RunID           int              `json:"runId,omitempty"`
	Basket          string           `json:"basket"`
	Success         bool             `json:"success"`
	Error           string           `json:"error,omitempty"`
	Observed        int32            `json:"observed"`
	Missed          int32            `json:"missed"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}
