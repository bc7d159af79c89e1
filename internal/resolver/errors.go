package resolver

import "errors"

// ErrCannotResolveID is returned when no product id could be found for a reference.
var ErrCannotResolveID = errors.New("cannot resolve product id")
