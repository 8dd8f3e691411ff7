package sound

import (
	"math"
	"sync"

	"github.com/ushitora-anqou/notalone/decode"
)

// mixer sums running lines into one interleaved 16-bit output. It backs the
// devices that own their output thread (SDL callback, headless clock).
type mixer struct {
	format decode.Format
	mtx    sync.Mutex
	lines  []*mixerLine
}

func newMixer(sampleRate, channels int) *mixer {
	return &mixer{format: decode.Canonical(sampleRate, channels)}
}

func (m *mixer) open(stream *decode.Stream) *mixerLine {
	conv := decode.Convert(stream, m.format.SampleRate, m.format.Channels)
	samples := make([]int16, conv.Frames()*m.format.Channels)
	for i := range samples {
		samples[i] = conv.Sample(i/m.format.Channels, i%m.format.Channels)
	}

	line := &mixerLine{m: m, samples: samples, frames: conv.Frames()}
	m.mtx.Lock()
	m.lines = append(m.lines, line)
	m.mtx.Unlock()
	return line
}

// mix overwrites dst with the next len(dst)/channels frames of output and
// advances every running line.
func (m *mixer) mix(dst []int16) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	channels := m.format.Channels
	frames := len(dst) / channels
	acc := make([]int32, frames*channels)

	for _, line := range m.lines {
		if !line.running {
			continue
		}
		n := frames
		if rest := line.frames - line.pos; rest < n {
			n = rest
		}
		src := line.samples[line.pos*channels : (line.pos+n)*channels]
		for i, v := range src {
			acc[i] += int32(v)
		}
		line.pos += n
		if line.pos >= line.frames {
			line.running = false
		}
	}

	for i, v := range acc {
		if v > math.MaxInt16 {
			v = math.MaxInt16
		} else if v < math.MinInt16 {
			v = math.MinInt16
		}
		dst[i] = int16(v)
	}
	for i := len(acc); i < len(dst); i++ {
		dst[i] = 0
	}
}

// active returns the number of lines currently producing sound.
func (m *mixer) active() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	n := 0
	for _, line := range m.lines {
		if line.running {
			n++
		}
	}
	return n
}

func (m *mixer) remove(line *mixerLine) {
	for i, l := range m.lines {
		if l == line {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			return
		}
	}
}

type mixerLine struct {
	m       *mixer
	samples []int16
	frames  int
	pos     int
	running bool
	closed  bool
}

func (l *mixerLine) Start() {
	l.m.mtx.Lock()
	defer l.m.mtx.Unlock()
	if !l.closed && l.pos < l.frames {
		l.running = true
	}
}

func (l *mixerLine) Stop() {
	l.m.mtx.Lock()
	l.running = false
	l.m.mtx.Unlock()
}

func (l *mixerLine) IsRunning() bool {
	l.m.mtx.Lock()
	defer l.m.mtx.Unlock()
	return l.running
}

func (l *mixerLine) FramePosition() int {
	l.m.mtx.Lock()
	defer l.m.mtx.Unlock()
	return l.pos
}

func (l *mixerLine) SetFramePosition(frame int) {
	l.m.mtx.Lock()
	l.pos = clampFrame(frame, l.frames)
	l.m.mtx.Unlock()
}

func (l *mixerLine) FrameLength() int {
	return l.frames
}

func (l *mixerLine) Close() error {
	l.m.mtx.Lock()
	defer l.m.mtx.Unlock()
	if l.closed {
		return ErrLineClosed
	}
	l.closed = true
	l.running = false
	l.m.remove(l)
	return nil
}
