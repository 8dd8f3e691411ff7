package decode

import (
	"fmt"

	goaudio "github.com/go-audio/audio"
)

// fromIntBuffer normalizes integer PCM of any supported depth to 16 bits.
// unsigned8 marks 8-bit data stored with a 128 bias, as WAV does.
func fromIntBuffer(buf *goaudio.IntBuffer, bitDepth int, unsigned8 bool) (*Stream, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrInvalidFile
	}
	channels := buf.Format.NumChannels
	if channels < 1 || buf.Format.SampleRate < 1 {
		return nil, fmt.Errorf("%d channels at %d Hz: %w", channels, buf.Format.SampleRate, ErrInvalidFile)
	}

	var shift func(v int) int16
	switch bitDepth {
	case 8:
		if unsigned8 {
			shift = func(v int) int16 { return int16((v - 128) << 8) }
		} else {
			shift = func(v int) int16 { return int16(v << 8) }
		}
	case 16:
		shift = func(v int) int16 { return int16(v) }
	case 24:
		shift = func(v int) int16 { return int16(v >> 8) }
	case 32:
		shift = func(v int) int16 { return int16(v >> 16) }
	default:
		return nil, fmt.Errorf("%d-bit samples: %w", bitDepth, ErrUnsupportedEncoding)
	}

	frames := len(buf.Data) / channels
	data := make([]byte, frames*channels*2)
	for i := 0; i < frames*channels; i++ {
		putSample(data, i, shift(buf.Data[i]))
	}
	return &Stream{Format: Canonical(buf.Format.SampleRate, channels), Data: data}, nil
}
