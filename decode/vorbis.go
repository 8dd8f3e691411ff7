package decode

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// VorbisDecoder decodes Ogg Vorbis.
type VorbisDecoder struct{}

func (VorbisDecoder) Decode(r io.ReadSeeker) (*Stream, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}
	if format.Channels < 1 {
		return nil, fmt.Errorf("vorbis: %w", ErrInvalidFile)
	}

	n := len(samples) / format.Channels * format.Channels
	data := make([]byte, n*2)
	for i := 0; i < n; i++ {
		putSample(data, i, floatToInt16(samples[i]))
	}
	return &Stream{Format: Canonical(format.SampleRate, format.Channels), Data: data}, nil
}
