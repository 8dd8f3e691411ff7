package decode

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// MP3Decoder decodes MPEG-1/2 layer III. go-mp3 always produces 16-bit
// little-endian stereo, which is already canonical.
type MP3Decoder struct{}

func (MP3Decoder) Decode(r io.ReadSeeker) (*Stream, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	format := Canonical(dec.SampleRate(), 2)
	return &Stream{Format: format, Data: wholeFrames(data, format.FrameSize())}, nil
}

// wholeFrames drops a trailing partial frame.
func wholeFrames(data []byte, frameSize int) []byte {
	return data[:len(data)/frameSize*frameSize]
}
