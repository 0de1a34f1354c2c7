package transcode

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// decodeVorbis decodes an ogg/vorbis stream via jfreymuth/oggvorbis, which
// yields interleaved float32 samples directly.
func (d *Decoder) decodeVorbis(r io.Reader) (*AudioData, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}

	sampleRate := dec.SampleRate()
	channels := dec.Channels()
	limit := d.maxFrames(sampleRate)

	var interleaved []float64
	buf := make([]float32, 4096*channels)

	for {
		n, err := dec.Read(buf)
		for _, v := range buf[:n] {
			interleaved = append(interleaved, float64(v))
		}
		if limit > 0 && len(interleaved) >= limit*channels {
			interleaved = interleaved[:limit*channels]
			break
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("vorbis: read pcm: %w", err)
		}
	}

	if len(interleaved) == 0 {
		return nil, fmt.Errorf("vorbis: no samples decoded")
	}

	mono := downmixInterleaved(interleaved, channels)
	return newAudioData(mono, sampleRate, channels), nil
}
