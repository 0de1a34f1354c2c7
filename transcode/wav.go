package transcode

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// decodeWAV decodes PCM wav data via go-audio, reading in chunks so a
// configured duration limit stops early instead of loading the whole file.
func (d *Decoder) decodeWAV(rs io.ReadSeeker) (*AudioData, error) {
	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wav: not a valid wave file")
	}

	sampleRate := int(dec.SampleRate)
	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	if sampleRate <= 0 || channels <= 0 || bitDepth <= 0 || bitDepth > 32 {
		return nil, fmt.Errorf("wav: invalid stream format (rate=%d channels=%d bits=%d)",
			sampleRate, channels, bitDepth)
	}

	scale := float64(int(1) << (bitDepth - 1))
	limit := d.maxFrames(sampleRate)

	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:   make([]int, 4096*channels),
	}

	var interleaved []float64
	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return nil, fmt.Errorf("wav: read pcm: %w", err)
		}
		if n == 0 {
			break
		}
		for _, v := range buf.Data[:n] {
			interleaved = append(interleaved, float64(v)/scale)
		}
		if limit > 0 && len(interleaved) >= limit*channels {
			interleaved = interleaved[:limit*channels]
			break
		}
	}

	if len(interleaved) == 0 {
		return nil, fmt.Errorf("wav: no samples decoded")
	}

	mono := downmixInterleaved(interleaved, channels)
	return newAudioData(mono, sampleRate, channels), nil
}
