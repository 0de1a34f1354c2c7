package transcode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/callistachang/mashup-tools/logging"
)

// AudioData represents decoded audio: mono float64 PCM plus the properties
// of the source stream.
type AudioData struct {
	PCM        []float64     // mono samples in [-1, 1]
	SampleRate int           // Hz
	Channels   int           // channel count of the source before downmix
	Duration   time.Duration // duration of the decoded window
}

// DecoderConfig holds decoder configuration.
type DecoderConfig struct {
	// MaxDuration limits decoding to the leading window of the file.
	// Zero means decode the entire file.
	MaxDuration time.Duration
}

// DefaultDecoderConfig decodes whole files.
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{MaxDuration: 0}
}

// Decoder decodes audio files into mono PCM. Formats are dispatched on the
// file extension: wav, mp3 and ogg (vorbis) are supported.
type Decoder struct {
	config *DecoderConfig
}

// NewDecoder creates a decoder. A nil config decodes whole files.
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{config: config}
}

// DecodeFile decodes an audio file and returns its mono PCM data. Decode
// failures are wrapped with the file path and propagated unchanged
// otherwise; the decoder never retries or falls back.
func (d *Decoder) DecodeFile(path string) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "transcode",
		"path":      path,
	})

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var audio *AudioData
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		audio, err = d.decodeWAV(f)
	case ".mp3":
		audio, err = d.decodeMP3(f)
	case ".ogg":
		audio, err = d.decodeVorbis(f)
	default:
		return nil, fmt.Errorf("decode %s: %w: %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	logger.Debug("decoded audio file", logging.Fields{
		"sample_rate": audio.SampleRate,
		"channels":    audio.Channels,
		"samples":     len(audio.PCM),
		"duration":    audio.Duration.Seconds(),
	})

	return audio, nil
}

// maxFrames converts the configured duration limit into a per-channel frame
// count for the given rate. Zero means unlimited.
func (d *Decoder) maxFrames(sampleRate int) int {
	if d.config.MaxDuration <= 0 {
		return 0
	}
	return int(d.config.MaxDuration.Seconds() * float64(sampleRate))
}

// newAudioData assembles the result and derives the decoded duration.
func newAudioData(pcm []float64, sampleRate, channels int) *AudioData {
	return &AudioData{
		PCM:        pcm,
		SampleRate: sampleRate,
		Channels:   channels,
		Duration:   time.Duration(len(pcm)) * time.Second / time.Duration(sampleRate),
	}
}

// downmixInterleaved averages interleaved multichannel samples into mono.
// Mono input is returned as-is.
func downmixInterleaved(samples []float64, channels int) []float64 {
	if channels <= 1 {
		return samples
	}
	frames := len(samples) / channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += samples[i*channels+c]
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}
