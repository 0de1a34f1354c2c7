package spectral

import (
	"fmt"
	"math/cmplx"
	"runtime"
	"sync"
)

// STFT provides Short-Time Fourier Transform analysis. Frames are computed
// concurrently but the API is blocking; the result is fully materialized
// before returning.
type STFT struct {
	fft *FFT
}

// STFTResult holds the magnitude spectrogram plus the geometry needed to
// interpret it.
type STFTResult struct {
	Magnitude      [][]float64 // time frames x frequency bins
	TimeFrames     int
	FreqBins       int
	SampleRate     int
	WindowSize     int
	HopSize        int
	FreqResolution float64 // Hz per bin
	FrameRate      float64 // frames per second
}

// NewSTFT creates a new STFT calculator.
func NewSTFT() *STFT {
	return &STFT{fft: NewFFT()}
}

// Compute runs a windowed STFT over the signal. A nil window means
// rectangular framing.
func (s *STFT) Compute(signal []float64, windowSize, hopSize, sampleRate int, window Window) (*STFTResult, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if windowSize <= 0 || hopSize <= 0 {
		return nil, fmt.Errorf("window size and hop size must be positive (got %d, %d)", windowSize, hopSize)
	}

	numFrames := (len(signal)-windowSize)/hopSize + 1
	if numFrames <= 0 {
		return nil, fmt.Errorf("signal too short: %d samples for window size %d", len(signal), windowSize)
	}

	freqBins := windowSize/2 + 1
	magnitude := make([][]float64, numFrames)
	for i := range magnitude {
		magnitude[i] = make([]float64, freqBins)
	}

	jobs := make(chan int, numFrames)
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		frameErr error
	)
	for w := 0; w < workerCount(numFrames); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			frame := make([]float64, windowSize)
			for idx := range jobs {
				start := idx * hopSize
				copy(frame, signal[start:start+windowSize])
				if window != nil {
					if err := window.ApplyInPlace(frame); err != nil {
						errOnce.Do(func() { frameErr = err })
						continue
					}
				}
				spectrum := s.fft.Compute(frame)
				for b := 0; b < freqBins; b++ {
					magnitude[idx][b] = cmplx.Abs(spectrum[b])
				}
			}
		}()
	}

	for idx := 0; idx < numFrames; idx++ {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	if frameErr != nil {
		return nil, fmt.Errorf("stft window: %w", frameErr)
	}

	return &STFTResult{
		Magnitude:      magnitude,
		TimeFrames:     numFrames,
		FreqBins:       freqBins,
		SampleRate:     sampleRate,
		WindowSize:     windowSize,
		HopSize:        hopSize,
		FreqResolution: float64(sampleRate) / float64(windowSize),
		FrameRate:      float64(sampleRate) / float64(hopSize),
	}, nil
}

// workerCount sizes the frame pool to the workload so tiny signals don't
// spawn idle goroutines.
func workerCount(numFrames int) int {
	n := runtime.NumCPU()
	if numFrames < n {
		n = numFrames
	}
	if n < 1 {
		n = 1
	}
	return n
}
