package chroma

import (
	"fmt"
	"math"

	"github.com/callistachang/mashup-tools/algorithms/spectral"
)

// NumBins is the number of pitch classes in the octave-folded representation.
const NumBins = 12

// Extractor computes an STFT-based chromagram: each analysis frame's
// magnitude spectrum is folded into 12 semitone bins, so every C maps to the
// same bin regardless of octave.
type Extractor struct {
	stft       *spectral.STFT
	window     *spectral.Hann
	windowSize int
	hopSize    int
	tuningFreq float64 // A4 reference, default 440 Hz
	minFreq    float64
	maxFreq    float64
}

// NewExtractor creates a chromagram extractor with the given STFT geometry
// and A4 tuning reference.
func NewExtractor(windowSize, hopSize int, tuningFreq float64) *Extractor {
	return &Extractor{
		stft:       spectral.NewSTFT(),
		window:     spectral.NewHann(windowSize),
		windowSize: windowSize,
		hopSize:    hopSize,
		tuningFreq: tuningFreq,
		minFreq:    80.0,   // around E2, below that the bin mapping gets unreliable
		maxFreq:    8000.0, // high enough to catch harmonics
	}
}

// NewExtractorDefault creates an extractor with standard analysis settings:
// 2048-sample window, 512-sample hop, A4 = 440 Hz.
func NewExtractorDefault() *Extractor {
	return NewExtractor(2048, 512, 440.0)
}

// Chromagram computes the chromagram of a signal. The result has one row per
// time frame and NumBins columns of non-negative energies, each frame
// normalized to unit sum.
func (e *Extractor) Chromagram(signal []float64, sampleRate int) ([][]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive: %d", sampleRate)
	}

	stftResult, err := e.stft.Compute(signal, e.windowSize, e.hopSize, sampleRate, e.window)
	if err != nil {
		return nil, fmt.Errorf("chromagram stft: %w", err)
	}

	mapping := e.binMapping(stftResult.FreqBins, stftResult.FreqResolution)

	chromagram := make([][]float64, stftResult.TimeFrames)
	for t := range chromagram {
		frame := make([]float64, NumBins)
		for f, bin := range mapping {
			if bin < 0 {
				continue
			}
			mag := stftResult.Magnitude[t][f]
			frame[bin] += mag * mag
		}
		normalizeFrame(frame)
		chromagram[t] = frame
	}

	return chromagram, nil
}

// binMapping precomputes which pitch class each FFT bin folds into, or -1
// when the bin falls outside the analyzed frequency range.
func (e *Extractor) binMapping(freqBins int, freqResolution float64) []int {
	mapping := make([]int, freqBins)
	for f := 0; f < freqBins; f++ {
		frequency := float64(f) * freqResolution
		if frequency < e.minFreq || frequency > e.maxFreq {
			mapping[f] = -1
			continue
		}
		midi := e.frequencyToMIDI(frequency)
		mapping[f] = ((int(math.Round(midi)) % NumBins) + NumBins) % NumBins
	}
	return mapping
}

// frequencyToMIDI converts a frequency to a MIDI note number, where A4 at
// the tuning reference is note 69.
func (e *Extractor) frequencyToMIDI(frequency float64) float64 {
	return 69.0 + 12.0*math.Log2(frequency/e.tuningFreq)
}

// normalizeFrame scales one chroma frame to unit sum. Silent frames stay
// all-zero.
func normalizeFrame(frame []float64) {
	total := 0.0
	for _, v := range frame {
		total += v
	}
	if total > 1e-10 {
		for i := range frame {
			frame[i] /= total
		}
	}
}
