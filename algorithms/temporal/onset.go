package temporal

import (
	"fmt"

	"github.com/callistachang/mashup-tools/algorithms/spectral"
)

// OnsetExtractor computes an onset-strength envelope: a time series
// estimating how strongly a new note or beat attack occurs at each frame.
type OnsetExtractor struct {
	stft       *spectral.STFT
	window     *spectral.Hann
	windowSize int
	hopSize    int
}

// NewOnsetExtractor creates an extractor with the given STFT geometry.
func NewOnsetExtractor(windowSize, hopSize int) *OnsetExtractor {
	return &OnsetExtractor{
		stft:       spectral.NewSTFT(),
		window:     spectral.NewHann(windowSize),
		windowSize: windowSize,
		hopSize:    hopSize,
	}
}

// NewOnsetExtractorDefault creates an extractor with a 1024-sample window
// and 512-sample hop.
func NewOnsetExtractorDefault() *OnsetExtractor {
	return NewOnsetExtractor(1024, 512)
}

// OnsetStrength computes the envelope as the positive spectral flux of the
// magnitude spectrogram. The second return value is the envelope's frame
// rate in frames per second.
func (oe *OnsetExtractor) OnsetStrength(signal []float64, sampleRate int) ([]float64, float64, error) {
	stftResult, err := oe.stft.Compute(signal, oe.windowSize, oe.hopSize, sampleRate, oe.window)
	if err != nil {
		return nil, 0, fmt.Errorf("onset strength stft: %w", err)
	}
	return spectral.Flux(stftResult.Magnitude), stftResult.FrameRate, nil
}
