package storefront

import "errors"

var (
	// ErrNoData is returned when storefront answered without product data.
	ErrNoData = errors.New("no product data")
	// ErrNoPrice is returned when product data holds no usable price.
	ErrNoPrice = errors.New("no price found")
)
