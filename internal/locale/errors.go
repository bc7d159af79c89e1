package locale

import "errors"

var (
	ErrInvalidCountry   = errors.New("invalid country code")
	ErrInvalidLocale    = errors.New("invalid storefront locale")
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrDuplicateCountry = errors.New("duplicate country")
)
