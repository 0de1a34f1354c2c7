package chroma

import "errors"

// ErrInvalidInput reports a chroma frame that is not exactly 12 bins wide.
var ErrInvalidInput = errors.New("chroma: frame must have exactly 12 bins")
