package edition

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	crossGenKeywords = []string{"cross-gen", "cross gen", "crossgen"}
	standardKeywords = []string{"standard", "standard edition", "base game"}
	premiumKeywords  = []string{"deluxe", "ultimate", "premium", "super", "vault", "gold", "mvp", "champion", "bundle"}
)

const (
	crossGenScore = 200
	standardScore = 150
	premiumScore  = -100
)

// Score rates how much label looks like a standard edition. Higher is better,
// negative scores mark premium editions and bundles.
func Score(label string) int {
	label = strings.ToLower(label)

	score := 0
	if containsAny(label, crossGenKeywords) {
		score += crossGenScore
	}
	if containsAny(label, standardKeywords) {
		score += standardScore
	}
	if score == 0 && containsAny(label, premiumKeywords) {
		score += premiumScore
	}

	return score
}

// Link is a scored link to a storefront product page.
type Link struct {
	URL   string
	Label string
	Score int
}

// ProductLinks returns absolute urls of all product links in sel with their
// labels and scores, in document order and without duplicates.
func ProductLinks(sel *goquery.Selection, base *url.URL) []Link {
	seen := make(map[string]struct{})
	links := make([]Link, 0)

	sel.Find(`a[href*="/product/"]`).Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		absolute := Absolute(base, href)
		if absolute == "" {
			return
		}
		if _, ok := seen[absolute]; ok {
			return
		}
		seen[absolute] = struct{}{}

		label := strings.Join(strings.Fields(anchor.Text()), " ")
		if label == "" {
			label, _ = anchor.Attr("aria-label")
		}

		links = append(links, Link{
			URL:   absolute,
			Label: label,
			Score: Score(label),
		})
	})

	return links
}

// Best returns the highest scoring link, the first one on ties.
func Best(links []Link) (Link, bool) {
	if len(links) == 0 {
		return Link{}, false
	}

	best := links[0]
	for _, link := range links[1:] {
		if link.Score > best.Score {
			best = link
		}
	}

	return best, true
}

// Sibling returns a link scoring strictly higher than current that points to
// a different page than currentURL.
func Sibling(links []Link, currentURL string, current int) (Link, bool) {
	candidates := make([]Link, 0, len(links))
	for _, link := range links {
		if link.Score > current && !sameURL(link.URL, currentURL) {
			candidates = append(candidates, link)
		}
	}

	return Best(candidates)
}

// Absolute resolves href against base. Empty string is returned for
// unparsable or non-http references.
func Absolute(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	ref.Fragment = ""

	return ref.String()
}

func sameURL(a, b string) bool {
	return strings.TrimRight(strings.SplitN(a, "?", 2)[0], "/") == strings.TrimRight(strings.SplitN(b, "?", 2)[0], "/")
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
