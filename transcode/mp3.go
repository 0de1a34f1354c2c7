package transcode

import (
	"encoding/binary"
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// decodeMP3 decodes an mp3 stream. go-mp3 always emits 16-bit little-endian
// stereo frames regardless of the source channel layout, so the downmix here
// is fixed at two channels.
func (d *Decoder) decodeMP3(r io.Reader) (*AudioData, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	sampleRate := dec.SampleRate()
	limit := d.maxFrames(sampleRate)

	const bytesPerFrame = 4 // two int16 channels
	var mono []float64
	buf := make([]byte, 4096*bytesPerFrame)
	carry := 0

	for {
		n, err := dec.Read(buf[carry:])
		if n > 0 {
			n += carry
			frames := n / bytesPerFrame
			for i := 0; i < frames; i++ {
				left := int16(binary.LittleEndian.Uint16(buf[i*bytesPerFrame:]))
				right := int16(binary.LittleEndian.Uint16(buf[i*bytesPerFrame+2:]))
				mono = append(mono, (float64(left)+float64(right))/2.0/32768.0)
			}
			// Keep any trailing partial frame for the next read.
			carry = n % bytesPerFrame
			copy(buf, buf[frames*bytesPerFrame:n])

			if limit > 0 && len(mono) >= limit {
				mono = mono[:limit]
				break
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mp3: read pcm: %w", err)
		}
	}

	if len(mono) == 0 {
		return nil, fmt.Errorf("mp3: no samples decoded")
	}

	return newAudioData(mono, sampleRate, 2), nil
}
