package sound

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/ushitora-anqou/notalone/decode"
	"github.com/ushitora-anqou/notalone/util"
)

// OtoDevice plays every line through one process-wide oto context. oto
// allows a single context per process, so create one OtoDevice at startup.
type OtoDevice struct {
	ctx    *oto.Context
	format decode.Format
}

func NewOtoDevice(sampleRate, channels int) (*OtoDevice, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	util.Trace("sound: oto output initialized: %dHz, %d channels", sampleRate, channels)
	return &OtoDevice{ctx: ctx, format: decode.Canonical(sampleRate, channels)}, nil
}

func (d *OtoDevice) Open(stream *decode.Stream) (Line, error) {
	conv := decode.Convert(stream, d.format.SampleRate, d.format.Channels)
	src := &pcmReader{r: bytes.NewReader(conv.Data)}
	player := d.ctx.NewPlayer(src)
	if err := player.Err(); err != nil {
		return nil, err
	}
	return &otoLine{
		player:    player,
		src:       src,
		frameSize: d.format.FrameSize(),
		frames:    conv.Frames(),
	}, nil
}

// pcmReader is read by oto's mixer goroutine while the owner seeks.
type pcmReader struct {
	mtx sync.Mutex
	r   *bytes.Reader
}

func (p *pcmReader) Read(buf []byte) (int, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.r.Read(buf)
}

func (p *pcmReader) Seek(offset int64, whence int) (int64, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.r.Seek(offset, whence)
}

func (p *pcmReader) offset() int64 {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.r.Size() - int64(p.r.Len())
}

type otoLine struct {
	player    *oto.Player
	src       *pcmReader
	frameSize int
	frames    int
}

func (l *otoLine) Start() {
	l.player.Play()
}

func (l *otoLine) Stop() {
	l.player.Pause()
}

func (l *otoLine) IsRunning() bool {
	return l.player.IsPlaying()
}

// FramePosition counts frames handed to oto minus those still queued in
// its buffer.
func (l *otoLine) FramePosition() int {
	played := l.src.offset() - int64(l.player.BufferedSize())
	return clampFrame(int(played)/l.frameSize, l.frames)
}

func (l *otoLine) SetFramePosition(frame int) {
	frame = clampFrame(frame, l.frames)
	if _, err := l.player.Seek(int64(frame*l.frameSize), io.SeekStart); err != nil {
		util.Trace("sound: oto seek to frame %d: %v", frame, err)
	}
}

func (l *otoLine) FrameLength() int {
	return l.frames
}

func (l *otoLine) Close() error {
	return l.player.Close()
}
