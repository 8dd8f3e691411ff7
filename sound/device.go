// Package sound loads short sound effects and plays them with
// play/stop/loop semantics. Load and release failures never reach the
// caller; they are reported to a failure.Sink and the clip stays silent.
package sound

import (
	"errors"

	"github.com/ushitora-anqou/notalone/decode"
)

var (
	ErrNoDevice   = errors.New("no playback device")
	ErrNoResolver = errors.New("no resource resolver")
	ErrLineClosed = errors.New("line already closed")
	ErrNotLoaded  = errors.New("sound not loaded")
)

// Device opens playback lines. Sample output runs on a thread owned by the
// device; no Line method waits for it.
type Device interface {
	Open(stream *decode.Stream) (Line, error)
}

// Line is one open playback handle bound to one decoded stream. Positions
// are in frames of the line's own output format.
type Line interface {
	Start()
	Stop()
	IsRunning() bool
	FramePosition() int
	SetFramePosition(frame int)
	FrameLength() int
	Close() error
}

type State int

const (
	Unloaded State = iota
	Loaded
	Playing
	Stopped
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "UNLOADED"
	case Loaded:
		return "LOADED"
	case Playing:
		return "PLAYING"
	case Stopped:
		return "STOPPED"
	}
	return "UNKNOWN"
}

func clampFrame(frame, length int) int {
	if frame < 0 {
		return 0
	}
	if frame > length {
		return length
	}
	return frame
}
