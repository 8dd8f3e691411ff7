package sound

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/ushitora-anqou/notalone/decode"
)

// BeepDevice plays lines through the beep speaker. Each line stays in the
// speaker's mixer from Open to Close and is paused while stopped.
type BeepDevice struct {
	sampleRate beep.SampleRate
}

func NewBeepDevice(sampleRate int) (*BeepDevice, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	return &BeepDevice{sampleRate: sr}, nil
}

func (d *BeepDevice) Open(stream *decode.Stream) (Line, error) {
	conv := decode.Convert(stream, int(d.sampleRate), stream.Format.Channels)
	st := newPCMStreamer(conv)
	line := &beepLine{
		st:   st,
		ctrl: &beep.Ctrl{Streamer: st, Paused: true},
	}
	speaker.Play(line.ctrl)
	return line, nil
}

// pcmStreamer serves a decoded stream to beep. At the end of the stream it
// keeps producing silence so that the speaker does not drop it.
type pcmStreamer struct {
	stream *decode.Stream
	frames int
	pos    int
}

func newPCMStreamer(s *decode.Stream) *pcmStreamer {
	return &pcmStreamer{stream: s, frames: s.Frames()}
}

func (s *pcmStreamer) Stream(samples [][2]float64) (int, bool) {
	last := s.stream.Format.Channels - 1
	for i := range samples {
		if s.pos >= s.frames {
			samples[i] = [2]float64{}
			continue
		}
		samples[i][0] = float64(s.stream.Sample(s.pos, 0)) / 32768
		samples[i][1] = float64(s.stream.Sample(s.pos, min(1, last))) / 32768
		s.pos++
	}
	return len(samples), true
}

func (s *pcmStreamer) Err() error {
	return nil
}

func (s *pcmStreamer) Len() int {
	return s.frames
}

func (s *pcmStreamer) Position() int {
	return s.pos
}

func (s *pcmStreamer) Seek(p int) error {
	if p < 0 || p > s.frames {
		return fmt.Errorf("seek %d outside [0, %d]", p, s.frames)
	}
	s.pos = p
	return nil
}

var _ beep.StreamSeeker = (*pcmStreamer)(nil)

type beepLine struct {
	st     *pcmStreamer
	ctrl   *beep.Ctrl
	closed bool
}

func (l *beepLine) Start() {
	speaker.Lock()
	l.ctrl.Paused = false
	speaker.Unlock()
}

func (l *beepLine) Stop() {
	speaker.Lock()
	l.ctrl.Paused = true
	speaker.Unlock()
}

func (l *beepLine) IsRunning() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return !l.ctrl.Paused && l.st.pos < l.st.frames
}

func (l *beepLine) FramePosition() int {
	speaker.Lock()
	defer speaker.Unlock()
	return l.st.Position()
}

func (l *beepLine) SetFramePosition(frame int) {
	speaker.Lock()
	l.st.Seek(clampFrame(frame, l.st.frames))
	speaker.Unlock()
}

func (l *beepLine) FrameLength() int {
	return l.st.frames
}

// Close detaches the streamer; a Ctrl without a streamer is drained and the
// speaker drops it.
func (l *beepLine) Close() error {
	speaker.Lock()
	defer speaker.Unlock()
	if l.closed {
		return ErrLineClosed
	}
	l.closed = true
	l.ctrl.Paused = true
	l.ctrl.Streamer = nil
	return nil
}
