package models

import "time"

// Platform is a storefront prices are pulled from.
type Platform string

const (
	PlatformSteam       Platform = "Steam"
	PlatformXbox        Platform = "Xbox"
	PlatformPlayStation Platform = "PlayStation"
)

// Platforms lists all supported platforms.
var Platforms = []Platform{PlatformSteam, PlatformXbox, PlatformPlayStation}

// Valid reports whether p is one of supported platforms.
func (p Platform) Valid() bool {
	switch p {
	case PlatformSteam, PlatformXbox, PlatformPlayStation:
		return true
	default:
		return false
	}
}

// ParseSource tells which extraction stage produced a price.
type ParseSource string

const (
	SourceEmbeddedJSON  ParseSource = "embedded_json"
	SourceJSONLD        ParseSource = "json_ld"
	SourceMetaTag       ParseSource = "meta_tag"
	SourceRegexFallback ParseSource = "regex_fallback"
	SourceAPI           ParseSource = "api"
	SourceGraphQL       ParseSource = "graphql"
)

// MissReason is the reason no price could be observed.
type MissReason string

const (
	// MissNoID is used when no product id could be resolved from the reference.
	MissNoID MissReason = "no_id"
	// MissHTTPError is used when storefront could not be fetched.
	MissHTTPError MissReason = "http_error"
	// MissNoData is used when storefront answered without product data.
	MissNoData MissReason = "no_data"
	// MissNoPrice is used when product data was fetched, but contained no usable price.
	MissNoPrice MissReason = "no_price"
	// MissException is used when fetching panicked.
	MissException MissReason = "exception"
)

// PriceQuery is a single (item, country) unit of work.
type PriceQuery struct {
	Platform   Platform
	Title      string
	Reference  string
	Country    string
	PreferMSRP bool
}

// ResolvedProduct is a storefront product derived from a query reference.
type ResolvedProduct struct {
	ProductID    string
	CanonicalURL string
	Locale       string
	ConceptID    string
}

// PriceObservation is a successfully observed price.
type PriceObservation struct {
	Platform        Platform
	Title           string
	Country         string
	Currency        string
	Amount          float64
	BasePrice       *float64
	DiscountedPrice *float64
	SourceURL       string
	EditionLabel    *string
	ParseSource     ParseSource
}

// MissObservation describes a query for which no price could be observed.
type MissObservation struct {
	Platform Platform
	Title    string
	Country  string
	Reason   MissReason
	Detail   string
}

// Outcome holds either an observation or a miss, never both.
// Use Observed and Missed to build it.
type Outcome struct {
	observation *PriceObservation
	miss        *MissObservation
}

// Observed returns Outcome holding observation.
func Observed(observation PriceObservation) Outcome {
	return Outcome{observation: &observation}
}

// Missed returns Outcome holding miss.
func Missed(miss MissObservation) Outcome {
	return Outcome{miss: &miss}
}

// Observation returns observed price and true, or false if outcome is a miss.
func (o Outcome) Observation() (PriceObservation, bool) {
	if o.observation == nil {
		return PriceObservation{}, false
	}
	return *o.observation, true
}

// Miss returns miss and true, or false if outcome is an observation.
func (o Outcome) Miss() (MissObservation, bool) {
	if o.miss == nil {
		return MissObservation{}, false
	}
	return *o.miss, true
}

// IsZero reports whether outcome was never set.
func (o Outcome) IsZero() bool {
	return o.observation == nil && o.miss == nil
}

// BasketItem is a single title of a pricing basket.
type BasketItem struct {
	Platform  Platform `json:"platform" yaml:"platform"`
	Title     string   `json:"title" yaml:"title"`
	Reference string   `json:"reference" yaml:"reference"`
	Scale     float64  `json:"scale,omitempty" yaml:"scale"`
	Weight    float64  `json:"weight,omitempty" yaml:"weight"`
}

// ScaleOrDefault returns item scale factor, 1 if unset.
func (i BasketItem) ScaleOrDefault() float64 {
	if i.Scale <= 0 {
		return 1
	}
	return i.Scale
}

// WeightOrDefault returns item weight, 1 if unset.
func (i BasketItem) WeightOrDefault() float64 {
	if i.Weight <= 0 {
		return 1
	}
	return i.Weight
}

// PullRequest asks for prices of basket items in countries.
type PullRequest struct {
	Basket       string
	Items        []BasketItem
	Countries    []string
	PreferMSRP   bool
	MaxCountries int
}

// UnitResult is the outcome of a single basket item in a single country.
type UnitResult struct {
	Item    BasketItem
	Query   PriceQuery
	Outcome Outcome
}

// Recommendation is a recommended regional price for platform.
type Recommendation struct {
	Platform    Platform
	Country     string
	CountryName string
	Currency    string
	Price       float64
	USDPrice    *float64
	DiffUSD     *float64
}

// Report is the result of a pull.
type Report struct {
	RunID           int
	Results         []UnitResult
	Recommendations []Recommendation
}

// Observations returns number of observed prices and number of misses in report.
func (r *Report) Observations() (observed int32, missed int32) {
	for ix := range r.Results {
		if _, ok := r.Results[ix].Outcome.Observation(); ok {
			observed++
			continue
		}
		missed++
	}
	return observed, missed
}

// Run is pull process run model.
type Run struct {
	ID            int
	BasketID      int
	CreatedAt     time.Time
	FinishedAt    *time.Time
	IsSuccess     *bool
	StatusMessage *string
	PreferMSRP    bool
	Observed      *int32
	Missed        *int32
}
