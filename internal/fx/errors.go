package fx

import "errors"

// ErrNoRates is returned when no provider returned a usable rates table.
var ErrNoRates = errors.New("no exchange rates available")
