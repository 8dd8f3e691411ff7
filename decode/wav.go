package decode

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xfffe
)

// WAVDecoder decodes integer PCM RIFF/WAVE files.
type WAVDecoder struct{}

func (WAVDecoder) Decode(r io.ReadSeeker) (*Stream, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wav: %w", ErrInvalidFile)
	}
	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("wav format tag %#x: %w", dec.WavAudioFormat, ErrUnsupportedEncoding)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	return fromIntBuffer(buf, int(dec.BitDepth), true)
}
