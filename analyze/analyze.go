// Package analyze ties decoding, chroma analysis, key estimation and tempo
// estimation together behind a per-file API.
package analyze

import (
	"fmt"
	"time"

	"github.com/callistachang/mashup-tools/algorithms/chroma"
	"github.com/callistachang/mashup-tools/algorithms/temporal"
	"github.com/callistachang/mashup-tools/algorithms/tonal"
	"github.com/callistachang/mashup-tools/logging"
	"github.com/callistachang/mashup-tools/transcode"
)

// AudioDecoder loads a waveform and its sample rate from a file path.
type AudioDecoder interface {
	DecodeFile(path string) (*transcode.AudioData, error)
}

// ChromaExtractor computes a chromagram (time frames x 12 pitch classes).
type ChromaExtractor interface {
	Chromagram(signal []float64, sampleRate int) ([][]float64, error)
}

// OnsetExtractor computes an onset-strength envelope and its frame rate.
type OnsetExtractor interface {
	OnsetStrength(signal []float64, sampleRate int) ([]float64, float64, error)
}

// BeatTracker produces one or more raw BPM readings from an onset envelope.
type BeatTracker interface {
	TrackTempo(envelope []float64, frameRate float64) []float64
}

// Config holds the analysis parameters of an Analyzer.
type Config struct {
	// MaxDuration limits how much of each file is decoded; zero decodes
	// everything.
	MaxDuration time.Duration

	// Chromagram STFT geometry and A4 tuning reference.
	WindowSize int
	HopSize    int
	TuningFreq float64

	// Onset envelope STFT geometry used by tempo analysis. Kept separate
	// because onset detection wants finer time resolution than chroma.
	OnsetWindowSize int
	OnsetHopSize    int

	// Tempo search bounds.
	Tempo temporal.BeatTrackerConfig
}

// DefaultConfig analyzes whole files with standard settings.
func DefaultConfig() Config {
	return Config{
		MaxDuration:     0,
		WindowSize:      2048,
		HopSize:         512,
		TuningFreq:      440.0,
		OnsetWindowSize: 1024,
		OnsetHopSize:    512,
		Tempo:           temporal.DefaultBeatTrackerConfig(),
	}
}

// Analyzer estimates musical key and tempo of audio files. It is stateless
// across calls; every method decodes its input fresh and retains nothing.
type Analyzer struct {
	decoder AudioDecoder
	chroma  ChromaExtractor
	onsets  OnsetExtractor
	tracker BeatTracker
	keys    *tonal.KeyEstimator
}

// New creates an analyzer with the default collaborators.
func New(cfg Config) *Analyzer {
	return &Analyzer{
		decoder: transcode.NewDecoder(&transcode.DecoderConfig{MaxDuration: cfg.MaxDuration}),
		chroma:  chroma.NewExtractor(cfg.WindowSize, cfg.HopSize, cfg.TuningFreq),
		onsets:  temporal.NewOnsetExtractor(cfg.OnsetWindowSize, cfg.OnsetHopSize),
		tracker: temporal.NewBeatTracker(cfg.Tempo),
		keys:    tonal.NewKeyEstimator(),
	}
}

// NewWith creates an analyzer with explicit collaborators.
func NewWith(decoder AudioDecoder, chromaExtractor ChromaExtractor, onsets OnsetExtractor, tracker BeatTracker) *Analyzer {
	return &Analyzer{
		decoder: decoder,
		chroma:  chromaExtractor,
		onsets:  onsets,
		tracker: tracker,
		keys:    tonal.NewKeyEstimator(),
	}
}

// Key estimates the musical key of an audio file.
func (a *Analyzer) Key(path string) (tonal.KeyEstimate, error) {
	audio, err := a.decoder.DecodeFile(path)
	if err != nil {
		return tonal.KeyEstimate{}, err
	}

	chromagram, err := a.chroma.Chromagram(audio.PCM, audio.SampleRate)
	if err != nil {
		return tonal.KeyEstimate{}, fmt.Errorf("chromagram of %s: %w", path, err)
	}

	distribution, err := chroma.PitchClassDistribution(chromagram)
	if err != nil {
		return tonal.KeyEstimate{}, fmt.Errorf("pitch class distribution of %s: %w", path, err)
	}

	estimate, err := a.keys.EstimateKey(distribution)
	if err != nil {
		return tonal.KeyEstimate{}, fmt.Errorf("key estimation of %s: %w", path, err)
	}

	logging.Debug("estimated key", logging.Fields{
		"path":  path,
		"label": estimate.Label,
	})

	return estimate, nil
}

// Tempo estimates the tempo of an audio file in beats per minute, at full
// precision. Rounding is up to the caller.
func (a *Analyzer) Tempo(path string) (float64, error) {
	audio, err := a.decoder.DecodeFile(path)
	if err != nil {
		return 0, err
	}

	envelope, frameRate, err := a.onsets.OnsetStrength(audio.PCM, audio.SampleRate)
	if err != nil {
		return 0, fmt.Errorf("onset envelope of %s: %w", path, err)
	}

	readings := a.tracker.TrackTempo(envelope, frameRate)
	bpm, err := temporal.AggregateTempo(readings)
	if err != nil {
		return 0, fmt.Errorf("tempo aggregation of %s: %w", path, err)
	}

	logging.Debug("estimated tempo", logging.Fields{
		"path":     path,
		"bpm":      bpm,
		"readings": readings,
	})

	return bpm, nil
}
