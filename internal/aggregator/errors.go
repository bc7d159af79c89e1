package aggregator

import "errors"

var (
	// ErrUnsupportedPlatform is returned when basket contains item of platform with no source.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrEmptyBasket is returned when pull request has no items.
	ErrEmptyBasket = errors.New("basket has no items")
)
