package window

import (
	"fmt"
	"image"
	"sync"

	"github.com/ushitora-anqou/notalone/input"
)

type presenter interface {
	Present(frame *image.RGBA) error
}

// Surface is the drawing area of a window. Its preferred, minimum and
// maximum sizes are the same and never change.
type Surface struct {
	size      image.Point
	presenter presenter

	mtx      sync.Mutex
	realized bool
	strategy *BufferStrategy
	mouse    []input.MouseListener
}

func newSurface(width, height int, p presenter) *Surface {
	return &Surface{size: image.Pt(width, height), presenter: p}
}

func (s *Surface) PreferredSize() image.Point { return s.size }
func (s *Surface) MinimumSize() image.Point   { return s.size }
func (s *Surface) MaximumSize() image.Point   { return s.size }

func (s *Surface) Bounds() image.Rectangle {
	return image.Rectangle{Max: s.size}
}

func (s *Surface) realize() {
	s.mtx.Lock()
	s.realized = true
	s.mtx.Unlock()
}

// CreateBufferStrategy allocates numBuffers frame buffers, replacing any
// previous strategy. The surface must already be on screen.
func (s *Surface) CreateBufferStrategy(numBuffers int) error {
	if numBuffers < 1 {
		return fmt.Errorf("%d: %w", numBuffers, ErrInvalidBufferCount)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	if !s.realized {
		return ErrNotRealized
	}
	s.strategy = newBufferStrategy(numBuffers, s.size, s.presenter)
	return nil
}

// BufferStrategy returns the current strategy or nil if none was created.
func (s *Surface) BufferStrategy() *BufferStrategy {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.strategy
}

func (s *Surface) AddMouseListener(l input.MouseListener) {
	s.mtx.Lock()
	s.mouse = append(s.mouse, l)
	s.mtx.Unlock()
}

func (s *Surface) listeners(e input.MouseEvent) ([]input.MouseListener, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.mouse, image.Pt(e.X, e.Y).In(s.Bounds())
}

// Mouse events from the window reach the surface's listeners only when they
// fall inside the surface. Releases are always delivered so that a drag
// that leaves the surface still ends.
func (s *Surface) MousePressed(e input.MouseEvent) {
	ls, inside := s.listeners(e)
	if !inside {
		return
	}
	for _, l := range ls {
		l.MousePressed(e)
	}
}

func (s *Surface) MouseReleased(e input.MouseEvent) {
	ls, _ := s.listeners(e)
	for _, l := range ls {
		l.MouseReleased(e)
	}
}

func (s *Surface) MouseMoved(e input.MouseEvent) {
	ls, inside := s.listeners(e)
	if !inside {
		return
	}
	for _, l := range ls {
		l.MouseMoved(e)
	}
}

// BufferStrategy rotates a fixed set of frame buffers: draw into
// DrawGraphics, then Show puts it on screen and moves to the next buffer.
type BufferStrategy struct {
	mtx       sync.Mutex
	buffers   []*image.RGBA
	back      int
	shown     uint64
	presenter presenter
}

func newBufferStrategy(n int, size image.Point, p presenter) *BufferStrategy {
	bs := &BufferStrategy{buffers: make([]*image.RGBA, n), presenter: p}
	for i := range bs.buffers {
		bs.buffers[i] = image.NewRGBA(image.Rectangle{Max: size})
	}
	return bs
}

// DrawGraphics returns the buffer the next frame is drawn into.
func (bs *BufferStrategy) DrawGraphics() *image.RGBA {
	bs.mtx.Lock()
	defer bs.mtx.Unlock()
	return bs.buffers[bs.back]
}

// Show presents the current back buffer and advances to the next one.
func (bs *BufferStrategy) Show() error {
	bs.mtx.Lock()
	defer bs.mtx.Unlock()

	if err := bs.presenter.Present(bs.buffers[bs.back]); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	bs.back = (bs.back + 1) % len(bs.buffers)
	bs.shown++
	return nil
}

func (bs *BufferStrategy) Buffers() int {
	return len(bs.buffers)
}

// Frames returns how many frames have been shown.
func (bs *BufferStrategy) Frames() uint64 {
	bs.mtx.Lock()
	defer bs.mtx.Unlock()
	return bs.shown
}
