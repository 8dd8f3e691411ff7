// Package decode turns encoded sound resources into playback-ready PCM.
//
// Every decoder normalizes its output to the canonical playback format:
// signed 16-bit little-endian PCM with the channel count and sample rate of
// the source, so one frame is Channels*2 bytes.
package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"
)

const (
	FormatWAV  = "wav"
	FormatAIFF = "aiff"
	FormatMP3  = "mp3"
	FormatOgg  = "ogg"
)

// Format describes interleaved signed little-endian PCM.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// Canonical returns the playback format for a source with the given rate and
// channel count.
func Canonical(sampleRate, channels int) Format {
	return Format{SampleRate: sampleRate, Channels: channels, BitDepth: 16}
}

func (f Format) FrameSize() int {
	return f.Channels * f.BitDepth / 8
}

func (f Format) String() string {
	return fmt.Sprintf("PCM_SIGNED %d Hz, %d bit, %d ch, %d bytes/frame, little-endian",
		f.SampleRate, f.BitDepth, f.Channels, f.FrameSize())
}

// Stream is a fully decoded sound in canonical format.
type Stream struct {
	Format Format
	Data   []byte
}

func (s *Stream) Frames() int {
	fs := s.Format.FrameSize()
	if fs == 0 {
		return 0
	}
	return len(s.Data) / fs
}

func (s *Stream) Duration() time.Duration {
	if s.Format.SampleRate == 0 {
		return 0
	}
	return time.Duration(s.Frames()) * time.Second / time.Duration(s.Format.SampleRate)
}

// Sample returns the value of channel ch in the given frame.
func (s *Stream) Sample(frame, ch int) int16 {
	off := frame*s.Format.FrameSize() + ch*2
	return int16(binary.LittleEndian.Uint16(s.Data[off:]))
}

// Decoder decodes one encoding.
type Decoder interface {
	Decode(r io.ReadSeeker) (*Stream, error)
}

type DecoderFunc func(r io.ReadSeeker) (*Stream, error)

func (f DecoderFunc) Decode(r io.ReadSeeker) (*Stream, error) {
	return f(r)
}

// Registry maps format names to decoders.
type Registry struct {
	codecs map[string]Decoder
	mtx    sync.Mutex
}

func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[string]Decoder)}
	r.Register(FormatWAV, WAVDecoder{})
	r.Register(FormatAIFF, AIFFDecoder{})
	r.Register(FormatMP3, MP3Decoder{})
	r.Register(FormatOgg, VorbisDecoder{})
	return r
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.codecs == nil {
		r.codecs = make(map[string]Decoder)
	}
	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Decode sniffs the encoding of rs, falling back to the extension of name,
// and decodes it with the registered decoder.
func (r *Registry) Decode(name string, rs io.ReadSeeker) (*Stream, error) {
	header := make([]byte, 12)
	n, err := io.ReadFull(rs, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}

	format := Sniff(header[:n])
	if format == "" {
		format = formatFromExt(name)
	}
	if format == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownFormat)
	}
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%s (%s): %w", name, format, ErrUnknownFormat)
	}

	stream, err := d.Decode(rs)
	if err != nil {
		return nil, fmt.Errorf("decode %s as %s: %w", name, format, err)
	}
	if stream.Frames() == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyStream)
	}
	return stream, nil
}

// Sniff identifies an encoding from the leading bytes of a resource and
// returns "" when nothing matches.
func Sniff(header []byte) string {
	switch {
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")):
		return FormatWAV
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("FORM")) &&
		(bytes.Equal(header[8:12], []byte("AIFF")) || bytes.Equal(header[8:12], []byte("AIFC"))):
		return FormatAIFF
	case bytes.HasPrefix(header, []byte("OggS")):
		return FormatOgg
	case bytes.HasPrefix(header, []byte("ID3")):
		return FormatMP3
	case len(header) >= 2 && header[0] == 0xff && header[1]&0xe0 == 0xe0:
		return FormatMP3
	}
	return ""
}

func formatFromExt(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".wav", ".wave":
		return FormatWAV
	case ".aif", ".aiff", ".aifc":
		return FormatAIFF
	case ".mp3":
		return FormatMP3
	case ".ogg", ".oga":
		return FormatOgg
	}
	return ""
}

func putSample(dst []byte, i int, v int16) {
	binary.LittleEndian.PutUint16(dst[i*2:], uint16(v))
}

func floatToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return int16(x * 32767.0)
}
