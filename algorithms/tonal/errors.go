package tonal

import "errors"

var (
	// ErrInvalidInput reports a vector that is not exactly 12 elements long.
	ErrInvalidInput = errors.New("tonal: vector must have exactly 12 pitch classes")

	// ErrDegenerateInput reports a zero-variance vector. The z-score of a
	// constant vector is undefined, and this module rejects it outright
	// rather than producing NaN or an arbitrary sentinel.
	ErrDegenerateInput = errors.New("tonal: zero-variance vector cannot be standardized")
)
