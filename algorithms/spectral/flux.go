package spectral

import "math"

// Flux computes spectral flux, the frame-to-frame increase of spectral
// energy. Only positive changes count, so note and beat attacks show up as
// peaks while decays do not.
func Flux(magnitude [][]float64) []float64 {
	if len(magnitude) < 2 {
		return []float64{}
	}

	flux := make([]float64, len(magnitude)-1)
	for t := 1; t < len(magnitude); t++ {
		sum := 0.0
		for f := range magnitude[t] {
			diff := magnitude[t][f] - magnitude[t-1][f]
			if diff > 0 {
				sum += diff * diff
			}
		}
		flux[t-1] = math.Sqrt(sum)
	}
	return flux
}
