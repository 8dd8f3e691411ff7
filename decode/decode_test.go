package decode

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/aiff"

	"github.com/ushitora-anqou/notalone/internal/soundtest"
)

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
		want   string
	}{
		{"wav", []byte("RIFF\x00\x00\x00\x00WAVE"), FormatWAV},
		{"aiff", []byte("FORM\x00\x00\x00\x00AIFF"), FormatAIFF},
		{"aifc", []byte("FORM\x00\x00\x00\x00AIFC"), FormatAIFF},
		{"ogg", []byte("OggS\x00\x02"), FormatOgg},
		{"id3", []byte("ID3\x04"), FormatMP3},
		{"frame sync", []byte{0xff, 0xfb, 0x90, 0x00}, FormatMP3},
		{"riff but not wave", []byte("RIFF\x00\x00\x00\x00AVI "), ""},
		{"empty", nil, ""},
		{"text", []byte("hello world!"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff(tt.header); got != tt.want {
				t.Errorf("Sniff(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestRegistryDecodeWAV(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 100, 200, -100, -200, 32767}
	data := soundtest.WAV(22050, 2, samples)

	stream, err := NewRegistry().Decode("hit.wav", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	want := Format{SampleRate: 22050, Channels: 2, BitDepth: 16}
	if stream.Format != want {
		t.Errorf("Format = %+v, want %+v", stream.Format, want)
	}
	if stream.Format.FrameSize() != 4 {
		t.Errorf("FrameSize() = %d, want 4", stream.Format.FrameSize())
	}
	if stream.Frames() != 3 {
		t.Fatalf("Frames() = %d, want 3", stream.Frames())
	}
	for i, s := range samples {
		if got := stream.Sample(i/2, i%2); got != s {
			t.Errorf("Sample(%d, %d) = %d, want %d", i/2, i%2, got, s)
		}
	}
}

func TestRegistryDecodeWAV8Bit(t *testing.T) {
	t.Parallel()

	data := soundtest.WAV8(8000, 1, []uint8{128, 255, 0})
	stream, err := NewRegistry().Decode("blip", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}
	if stream.Format.BitDepth != 16 || stream.Format.Channels != 1 || stream.Format.SampleRate != 8000 {
		t.Fatalf("Format = %+v, want 8000 Hz mono 16-bit", stream.Format)
	}

	want := []int16{0, 127 << 8, -128 << 8}
	for i, w := range want {
		if got := stream.Sample(i, 0); got != w {
			t.Errorf("Sample(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestRegistryDecodeAIFF(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := aiff.NewEncoder(f, 11025, 16, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 11025},
		Data:           []int{1, -1, 1000, -1000},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	stream, err := NewRegistry().Decode("tone.aiff", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}
	if stream.Format != Canonical(11025, 1) {
		t.Errorf("Format = %+v, want %+v", stream.Format, Canonical(11025, 1))
	}
	if stream.Frames() != 4 || stream.Sample(2, 0) != 1000 {
		t.Errorf("Frames() = %d, Sample(2) = %d, want 4, 1000", stream.Frames(), stream.Sample(2, 0))
	}
}

func TestRegistryDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"noise.bin", []byte("definitely not audio"), ErrUnknownFormat},
		{"empty.wav", soundtest.WAV(8000, 1, nil), nil},
		{"bad.wav", []byte("RIFF\x00\x00\x00\x00WAVEjunk"), nil},
		{"bad.mp3", []byte("ID3 but nothing else"), nil},
		{"bad.ogg", []byte("OggS garbage"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry().Decode(tt.name, bytes.NewReader(tt.data))
			if err == nil {
				t.Fatal("Decode() error = nil, want an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistryCustomDecoder(t *testing.T) {
	t.Parallel()

	r := &Registry{}
	if _, ok := r.Get(FormatWAV); ok {
		t.Fatal("empty registry knows wav")
	}
	called := false
	r.Register(FormatWAV, DecoderFunc(func(rs io.ReadSeeker) (*Stream, error) {
		called = true
		return &Stream{Format: Canonical(8000, 1), Data: []byte{1, 0}}, nil
	}))

	if _, err := r.Decode("x.wav", bytes.NewReader(nil)); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !called {
		t.Error("registered decoder was not used for the .wav extension")
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	mono := &Stream{Format: Canonical(8000, 1), Data: make([]byte, 8)}
	for i, v := range []int16{0, 100, 200, 300} {
		putSample(mono.Data, i, v)
	}

	if got := Convert(mono, 8000, 1); got != mono {
		t.Error("Convert() copied a stream already in the target format")
	}

	stereo := Convert(mono, 8000, 2)
	if stereo.Format != Canonical(8000, 2) || stereo.Frames() != 4 {
		t.Fatalf("stereo = %+v with %d frames", stereo.Format, stereo.Frames())
	}
	if stereo.Sample(3, 0) != 300 || stereo.Sample(3, 1) != 300 {
		t.Errorf("stereo frame 3 = %d/%d, want 300/300", stereo.Sample(3, 0), stereo.Sample(3, 1))
	}

	up := Convert(mono, 16000, 1)
	if up.Frames() != 8 {
		t.Fatalf("upsampled frames = %d, want 8", up.Frames())
	}
	if up.Sample(1, 0) != 50 || up.Sample(2, 0) != 100 {
		t.Errorf("upsampled = %d, %d, want 50, 100", up.Sample(1, 0), up.Sample(2, 0))
	}

	down := Convert(stereo, 8000, 1)
	if down.Sample(2, 0) != 200 {
		t.Errorf("downmixed frame 2 = %d, want 200", down.Sample(2, 0))
	}
}

func TestFormatString(t *testing.T) {
	t.Parallel()

	want := "PCM_SIGNED 44100 Hz, 16 bit, 2 ch, 4 bytes/frame, little-endian"
	if got := Canonical(44100, 2).String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRegistryDecodeOgg(t *testing.T) {
	t.Parallel()

	f, err := os.Open(filepath.Join("testdata", "tone.ogg"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	stream, err := NewRegistry().Decode("tone.ogg", f)
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	want := Format{SampleRate: 44100, Channels: 1, BitDepth: 16}
	if stream.Format != want || stream.Format.FrameSize() != 2 {
		t.Errorf("Format = %+v, want %+v", stream.Format, want)
	}
	if stream.Frames() != 22050 {
		t.Errorf("Frames() = %d, want 22050", stream.Frames())
	}
	if !hasSignal(stream) {
		t.Error("decoded stream is silent")
	}
}

func TestRegistryDecodeMP3(t *testing.T) {
	t.Parallel()

	f, err := os.Open(filepath.Join("testdata", "tone.mp3"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	stream, err := NewRegistry().Decode("tone.mp3", f)
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	// go-mp3 always produces stereo, even from a mono file.
	want := Format{SampleRate: 44100, Channels: 2, BitDepth: 16}
	if stream.Format != want || stream.Format.FrameSize() != 4 {
		t.Errorf("Format = %+v, want %+v", stream.Format, want)
	}
	// The exact length depends on the encoder padding.
	if stream.Frames() < 22050 {
		t.Errorf("Frames() = %d, want at least 22050", stream.Frames())
	}
	if len(stream.Data)%4 != 0 {
		t.Errorf("len(Data) = %d, want whole frames", len(stream.Data))
	}
	if !hasSignal(stream) {
		t.Error("decoded stream is silent")
	}
}

func hasSignal(s *Stream) bool {
	for i := 0; i < s.Frames(); i++ {
		if s.Sample(i, 0) != 0 {
			return true
		}
	}
	return false
}

func TestWholeFrames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, frameSize, want int
	}{
		{0, 4, 0},
		{3, 4, 0},
		{8, 4, 8},
		{11, 4, 8},
		{5, 2, 4},
	}

	for _, tt := range tests {
		if got := len(wholeFrames(make([]byte, tt.n), tt.frameSize)); got != tt.want {
			t.Errorf("wholeFrames(%d bytes, %d) = %d bytes, want %d", tt.n, tt.frameSize, got, tt.want)
		}
	}
}

func TestFloatToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float32
		want int16
	}{
		{-1.5, -32767},
		{-1, -32767},
		{0, 0},
		{0.5, 16383},
		{1, 32767},
		{1.5, 32767},
	}

	for _, tt := range tests {
		if got := floatToInt16(tt.in); got != tt.want {
			t.Errorf("floatToInt16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
