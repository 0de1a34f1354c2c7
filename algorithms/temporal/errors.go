package temporal

import "errors"

// ErrInvalidInput reports an empty set of tempo readings.
var ErrInvalidInput = errors.New("temporal: no tempo readings to aggregate")
