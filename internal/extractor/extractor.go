package extractor

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/PuerkitoBio/goquery"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Document is fetched storefront page parsed once and shared by all strategies.
type Document struct {
	URL string
	Raw string
	DOM *goquery.Document
	// CurrencyHint is currency expected for the page's market.
	CurrencyHint string
}

// NewDocument parses html body of page fetched from pageURL.
func NewDocument(pageURL string, body []byte, currencyHint string) (*Document, error) {
	dom, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("can't parse html: %w", err)
	}

	return &Document{
		URL:          pageURL,
		Raw:          string(body),
		DOM:          dom,
		CurrencyHint: strings.ToUpper(currencyHint),
	}, nil
}

// Result is data extracted from a page. Every field is independently optional
// and remembers the strategy that filled it.
type Result struct {
	Title           *string
	Edition         *string
	BasePrice       *float64
	DiscountedPrice *float64
	Currency        *string

	BaseSource       models.ParseSource
	DiscountedSource models.ParseSource
	CurrencySource   models.ParseSource
}

// HasPrice reports whether any price was found.
func (r *Result) HasPrice() bool {
	return r.BasePrice != nil || r.DiscountedPrice != nil
}

// Complete reports whether every field is filled and later strategies can be skipped.
func (r *Result) Complete() bool {
	return r.Title != nil && r.Edition != nil && r.BasePrice != nil && r.DiscountedPrice != nil && r.Currency != nil
}

// Label returns edition label if present, title otherwise.
func (r *Result) Label() string {
	switch {
	case r.Edition != nil && r.Title != nil && !strings.Contains(strings.ToLower(*r.Title), strings.ToLower(*r.Edition)):
		return *r.Title + " " + *r.Edition
	case r.Title != nil:
		return *r.Title
	case r.Edition != nil:
		return *r.Edition
	default:
		return ""
	}
}

func (r *Result) setTitle(title string) {
	title = strings.Join(strings.Fields(title), " ")
	if r.Title == nil && title != "" {
		r.Title = &title
	}
}

func (r *Result) setEdition(edition string) {
	edition = strings.Join(strings.Fields(edition), " ")
	if r.Edition == nil && edition != "" {
		r.Edition = &edition
	}
}

func (r *Result) setBase(amount float64, source models.ParseSource) {
	if r.BasePrice == nil && amount > 0 {
		r.BasePrice = &amount
		r.BaseSource = source
	}
}

func (r *Result) setDiscounted(amount float64, source models.ParseSource) {
	if r.DiscountedPrice == nil && amount > 0 {
		r.DiscountedPrice = &amount
		r.DiscountedSource = source
	}
}

func (r *Result) setCurrency(currency string, source models.ParseSource) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if r.Currency == nil && currencyCodeRe.MatchString(currency) {
		r.Currency = &currency
		r.CurrencySource = source
	}
}

// Strategy extracts whatever it can from document into result, filling only
// fields that are still empty.
type Strategy interface {
	Source() models.ParseSource
	Extract(doc *Document, res *Result)
}

// Chain runs strategies in order.
type Chain struct {
	strategies []Strategy
}

// NewChain returns Chain running strategies in given order.
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// DefaultChain returns chain of all page strategies from most to least reliable.
func DefaultChain() *Chain {
	return NewChain(EmbeddedJSON{}, JSONLD{}, MetaTags{}, RegexFallback{})
}

// Extract runs the chain over doc. A panicking strategy is skipped.
func (c *Chain) Extract(doc *Document) Result {
	var res Result

	for _, strategy := range c.strategies {
		if res.Complete() {
			break
		}
		run(strategy, doc, &res)
	}

	return res
}

func run(strategy Strategy, doc *Document, res *Result) {
	defer func() {
		_ = recover()
	}()

	strategy.Extract(doc, res)
}

// currencyMatches reports whether currency is compatible with hint.
// Missing values on either side are compatible.
func currencyMatches(currency string, hint string) bool {
	if currency == "" || hint == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(currency), hint)
}
