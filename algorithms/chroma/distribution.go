package chroma

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// PitchClassDistribution sums a chromagram across the time axis into a
// 12-element energy vector: index i holds the accumulated energy of pitch
// class i (C=0 ... B=11) over the whole track. No normalization is applied;
// key estimation standardizes the vector itself.
func PitchClassDistribution(chromagram [][]float64) ([]float64, error) {
	distribution := make([]float64, NumBins)
	for t, frame := range chromagram {
		if len(frame) != NumBins {
			return nil, fmt.Errorf("%w: frame %d has %d bins", ErrInvalidInput, t, len(frame))
		}
		floats.Add(distribution, frame)
	}
	return distribution, nil
}
