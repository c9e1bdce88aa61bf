package effects

import "errors"

// ErrPanicked wraps a panic recovered from a handler.
var ErrPanicked = errors.New("effect handler panicked")
