package resolver

import (
	"regexp"
	"strings"
)

var (
	productIDRe   = regexp.MustCompile(`(?i)^[A-Z]{2}\d{4}-[A-Z]{4}\d{5}_\d{2}-[A-Z0-9]{16}$`)
	productPathRe = regexp.MustCompile(`(?i)/product/([A-Z]{2}\d{4}-[A-Z]{4}\d{5}_\d{2}-[A-Z0-9]{16})`)
	productAnyRe  = regexp.MustCompile(`(?i)\b([A-Z]{2}\d{4}-[A-Z]{4}\d{5}_\d{2}-[A-Z0-9]{16})\b`)
	conceptPathRe = regexp.MustCompile(`(?i)/concept/(\d+)`)

	steamAppIDRe = regexp.MustCompile(`^\d+$`)
	steamAppRe   = regexp.MustCompile(`/app/(\d+)`)
	xboxIDRe     = regexp.MustCompile(`(?i)(?:^|[^A-Z0-9])(9[A-Z0-9]{11})(?:$|[^A-Z0-9])`)
)

// interchangeable PlayStation id prefixes.
var prefixSwaps = map[string]string{
	"UP": "EP",
	"EP": "UP",
}

// Candidates returns product id followed by its twin with swapped region prefix, if any.
func Candidates(productID string) []string {
	productID = strings.ToUpper(productID)
	if len(productID) < 2 {
		return []string{productID}
	}

	swapped, ok := prefixSwaps[productID[:2]]
	if !ok {
		return []string{productID}
	}

	return []string{productID, swapped + productID[2:]}
}

// IsProductID reports whether s has PlayStation product id shape,
// e.g. "UP0001-PPSA01234_00-GAMESTANDARD0000".
func IsProductID(s string) bool {
	return productIDRe.MatchString(strings.TrimSpace(s))
}

// SteamAppID returns Steam app id from bare id or store url.
func SteamAppID(reference string) (string, error) {
	reference = strings.TrimSpace(reference)

	if steamAppIDRe.MatchString(reference) {
		return reference, nil
	}
	if match := steamAppRe.FindStringSubmatch(reference); match != nil {
		return match[1], nil
	}

	return "", ErrCannotResolveID
}

// XboxStoreID returns Xbox store id (e.g. "9NBLGGH4R315") from bare id or store url.
func XboxStoreID(reference string) (string, error) {
	if match := xboxIDRe.FindStringSubmatch(strings.TrimSpace(reference)); match != nil {
		return strings.ToUpper(match[1]), nil
	}

	return "", ErrCannotResolveID
}
