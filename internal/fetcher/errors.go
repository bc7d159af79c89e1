package fetcher

import "errors"

var (
	// ErrStatusNotOK is returned when http response had status different than 200 OK.
	ErrStatusNotOK = errors.New("response status is not 200 OK")
	// ErrContentTypeNotSupported is returned when response content type is not supported.
	ErrContentTypeNotSupported = errors.New("response content type not supported")
	// ErrBodyTooLarge is returned when response body exceeds configured limit.
	ErrBodyTooLarge = errors.New("response body too large")
	// ErrInvalidJSON is returned when JSON response can't be decoded.
	ErrInvalidJSON = errors.New("invalid json response")
)
