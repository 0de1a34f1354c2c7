package temporal

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/callistachang/mashup-tools/logging"
)

// BeatTrackerConfig bounds the tempo search.
type BeatTrackerConfig struct {
	MinBPM        float64
	MaxBPM        float64
	MaxCandidates int     // how many readings to report at most
	DefaultBPM    float64 // reported when no periodicity is found
}

// DefaultBeatTrackerConfig covers the bulk of popular music.
func DefaultBeatTrackerConfig() BeatTrackerConfig {
	return BeatTrackerConfig{
		MinBPM:        60.0,
		MaxBPM:        180.0,
		MaxCandidates: 3,
		DefaultBPM:    120.0,
	}
}

// BeatTracker estimates candidate tempos from an onset-strength envelope by
// autocorrelation: a periodic beat shows up as peaks at lags that are
// multiples of the beat period.
type BeatTracker struct {
	config BeatTrackerConfig
}

// NewBeatTracker creates a beat tracker with the given configuration.
func NewBeatTracker(config BeatTrackerConfig) *BeatTracker {
	return &BeatTracker{config: config}
}

// TrackTempo returns one or more BPM readings for an onset envelope, ordered
// by autocorrelation strength. frameRate is the envelope's frames per second.
// The result always has at least one element; when the envelope shows no
// periodicity at all the configured default is reported.
func (bt *BeatTracker) TrackTempo(envelope []float64, frameRate float64) []float64 {
	autocorr := autocorrelate(envelope)

	// Round the lag band inward so every candidate stays inside
	// [MinBPM, MaxBPM]: truncation would admit a lag one frame too short,
	// whose BPM overshoots the ceiling.
	minLag := int(math.Ceil(frameRate * 60.0 / bt.config.MaxBPM))
	if minLag < 1 {
		minLag = 1
	}
	maxLag := int(math.Floor(frameRate * 60.0 / bt.config.MinBPM))
	if maxLag > len(autocorr)-2 {
		maxLag = len(autocorr) - 2
	}

	type peak struct {
		value float64
		lag   int
	}
	var peaks []peak
	for lag := minLag; lag <= maxLag; lag++ {
		if autocorr[lag] > autocorr[lag-1] && autocorr[lag] > autocorr[lag+1] {
			peaks = append(peaks, peak{value: autocorr[lag], lag: lag})
		}
	}

	if len(peaks) == 0 {
		logging.Debug("no periodicity found, reporting default tempo", logging.Fields{
			"default_bpm": bt.config.DefaultBPM,
		})
		return []float64{bt.config.DefaultBPM}
	}

	// Strongest peaks first; equal strengths settle on the shorter lag.
	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].value != peaks[j].value {
			return peaks[i].value > peaks[j].value
		}
		return peaks[i].lag < peaks[j].lag
	})
	if len(peaks) > bt.config.MaxCandidates {
		peaks = peaks[:bt.config.MaxCandidates]
	}

	readings := make([]float64, len(peaks))
	for i, p := range peaks {
		readings[i] = 60.0 * frameRate / float64(p.lag)
	}
	return readings
}

// autocorrelate computes the count-normalized autocorrelation of a signal up
// to half its length, scaled so lag 0 equals 1.
func autocorrelate(signal []float64) []float64 {
	maxLag := len(signal) / 2
	autocorr := make([]float64, maxLag)
	for lag := 0; lag < maxLag; lag++ {
		sum := 0.0
		for i := 0; i < len(signal)-lag; i++ {
			sum += signal[i] * signal[i+lag]
		}
		autocorr[lag] = sum / float64(len(signal)-lag)
	}
	if len(autocorr) > 0 && autocorr[0] > 0 {
		for i := range autocorr {
			autocorr[i] /= autocorr[0]
		}
	}
	return autocorr
}

// AggregateTempo reduces one or more raw tempo readings to a single scalar
// by arithmetic mean, at full precision. Rounding for display is the
// caller's concern.
func AggregateTempo(readings []float64) (float64, error) {
	if len(readings) == 0 {
		return 0, ErrInvalidInput
	}
	return stat.Mean(readings, nil), nil
}

// TempoEstimator chains onset extraction, beat tracking, and aggregation
// into a single scalar BPM estimate. It holds no state across calls.
type TempoEstimator struct {
	onsets  *OnsetExtractor
	tracker *BeatTracker
}

// NewTempoEstimator creates a tempo estimator with default analysis settings.
func NewTempoEstimator() *TempoEstimator {
	return &TempoEstimator{
		onsets:  NewOnsetExtractorDefault(),
		tracker: NewBeatTracker(DefaultBeatTrackerConfig()),
	}
}

// EstimateTempo estimates a song's tempo in beats per minute.
func (te *TempoEstimator) EstimateTempo(signal []float64, sampleRate int) (float64, error) {
	envelope, frameRate, err := te.onsets.OnsetStrength(signal, sampleRate)
	if err != nil {
		return 0, err
	}

	readings := te.tracker.TrackTempo(envelope, frameRate)

	logging.Debug("tempo readings", logging.Fields{
		"readings":   readings,
		"frame_rate": frameRate,
	})

	return AggregateTempo(readings)
}
