//go:build ebiten

package sound

import (
	"bytes"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/ushitora-anqou/notalone/decode"
)

// EbitenDevice plays lines through ebiten's audio context, which only
// accepts 16-bit stereo.
type EbitenDevice struct {
	ctx *audio.Context
}

func NewEbitenDevice(sampleRate int) *EbitenDevice {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &EbitenDevice{ctx: ctx}
}

func (d *EbitenDevice) Open(stream *decode.Stream) (Line, error) {
	conv := decode.Convert(stream, d.ctx.SampleRate(), 2)
	player, err := d.ctx.NewPlayer(bytes.NewReader(conv.Data))
	if err != nil {
		return nil, err
	}
	return &ebitenLine{player: player, rate: d.ctx.SampleRate(), frames: conv.Frames()}, nil
}

type ebitenLine struct {
	player *audio.Player
	rate   int
	frames int
}

func (l *ebitenLine) Start() {
	l.player.Play()
}

func (l *ebitenLine) Stop() {
	l.player.Pause()
}

func (l *ebitenLine) IsRunning() bool {
	return l.player.IsPlaying()
}

func (l *ebitenLine) FramePosition() int {
	// Round so that a drained player reports exactly FrameLength.
	frame := int((l.player.Position()*time.Duration(l.rate) + time.Second/2) / time.Second)
	return clampFrame(frame, l.frames)
}

func (l *ebitenLine) SetFramePosition(frame int) {
	frame = clampFrame(frame, l.frames)
	l.player.SetPosition(time.Duration(frame) * time.Second / time.Duration(l.rate))
}

func (l *ebitenLine) FrameLength() int {
	return l.frames
}

func (l *ebitenLine) Close() error {
	return l.player.Close()
}
