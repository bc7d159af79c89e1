package commander

import "errors"

// ErrInvalidCommand is returned when pull command has no basket name or no items.
var ErrInvalidCommand = errors.New("invalid pull command")
