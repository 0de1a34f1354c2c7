package spectral

import (
	"fmt"
	"math"
)

// Window is a function applied to each analysis frame before the FFT.
type Window interface {
	ApplyInPlace(frame []float64) error
}

// Hann is the periodic Hann window, the default for all STFT-based analysis
// in this module.
type Hann struct {
	size         int
	coefficients []float64
}

// NewHann precomputes a periodic Hann window of the given size.
func NewHann(size int) *Hann {
	h := &Hann{size: size, coefficients: make([]float64, size)}
	for i := 0; i < size; i++ {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/float64(size)))
	}
	return h
}

// ApplyInPlace multiplies the frame by the window coefficients.
func (h *Hann) ApplyInPlace(frame []float64) error {
	if len(frame) != h.size {
		return fmt.Errorf("frame length (%d) doesn't match window size (%d)", len(frame), h.size)
	}
	for i := range frame {
		frame[i] *= h.coefficients[i]
	}
	return nil
}
