package decode

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
)

// AIFFDecoder decodes uncompressed AIFF files.
type AIFFDecoder struct{}

func (AIFFDecoder) Decode(r io.ReadSeeker) (*Stream, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("aiff: %w", ErrInvalidFile)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("aiff: %w", err)
	}
	return fromIntBuffer(buf, int(dec.BitDepth), false)
}
