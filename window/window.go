// Package window owns the game's top-level window and its drawing surface.
package window

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/ushitora-anqou/notalone/input"
	"github.com/ushitora-anqou/notalone/lifecycle"
	"github.com/ushitora-anqou/notalone/util"
)

var (
	ErrNotRealized        = errors.New("surface is not on screen yet")
	ErrInvalidBufferCount = errors.New("buffer count must be at least 1")
	ErrInvalidSize        = errors.New("window size must be positive")

	// ErrStop ends Shell.Run without an error when returned by the step
	// function.
	ErrStop = errors.New("stop")
)

// Platform creates native top-level windows.
type Platform interface {
	NewWindow(title string, width, height int) (NativeWindow, error)
}

// NativeWindow is one platform window. Its methods are called from the
// platform's event thread; listeners and the close handler are invoked on
// that thread as well.
type NativeWindow interface {
	SetResizable(resizable bool)
	Center()
	Show()
	// SetContentSize sizes the window to fit a content area of the given
	// size.
	SetContentSize(width, height int)
	SetFocusable(focusable bool)
	RequestFocus()

	SetKeyListener(l input.KeyListener)
	SetMouseListener(l input.MouseListener)
	SetCloseHandler(fn func())

	// Present puts a finished frame on screen.
	Present(frame *image.RGBA) error

	// Ticks returns a monotonic time in microseconds.
	Ticks() int64
	// Delay sleeps for about us microseconds.
	Delay(us int64)

	// Run pumps events and calls step once per frame until step returns an
	// error or the window goes away.
	Run(step func() error) error
	Destroy() error
}

// Config describes the window created by New.
type Config struct {
	Title         string
	Width, Height int

	Keys  input.KeyListener
	Mouse input.MouseListener
	// Game is stopped when the user closes the window.
	Game lifecycle.Stopper
}

// Shell is the game window: one native window, one fixed-size drawing
// surface, input listeners and the close gesture wired to the game.
type Shell struct {
	native    NativeWindow
	surface   *Surface
	title     string
	width     int
	height    int
	resizable bool

	game      lifecycle.Stopper
	closeOnce sync.Once
	closed    *util.AtomicBool
}

// New creates the window and puts it on screen. Platform failures are
// returned as is; there is no fallback.
func New(platform Platform, cfg Config) (*Shell, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", cfg.Width, cfg.Height, ErrInvalidSize)
	}

	native, err := platform.NewWindow(cfg.Title, cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	s := &Shell{
		native: native,
		title:  cfg.Title,
		width:  cfg.Width,
		height: cfg.Height,
		game:   cfg.Game,
		closed: util.NewAtomicBool(false),
	}

	s.resizable = false
	native.SetResizable(s.resizable)
	native.Center()
	native.Show()

	s.surface = newSurface(cfg.Width, cfg.Height, native)
	size := s.surface.PreferredSize()
	native.SetContentSize(size.X, size.Y)
	s.surface.realize()

	if cfg.Keys != nil {
		native.SetKeyListener(cfg.Keys)
	}
	native.SetFocusable(true)
	native.SetCloseHandler(s.handleClose)
	if cfg.Mouse != nil {
		s.surface.AddMouseListener(cfg.Mouse)
	}
	native.SetMouseListener(s.surface)

	util.Trace("window: %q %dx%d on screen", cfg.Title, cfg.Width, cfg.Height)
	return s, nil
}

// handleClose runs on the close gesture. However often the gesture fires,
// the game is stopped exactly once.
func (s *Shell) handleClose() {
	s.closeOnce.Do(func() {
		s.closed.Set(true)
		util.Trace("window: close requested")
		if s.game != nil {
			s.game.StopGame()
		}
	})
}

// CanvasBufferStrategy returns the surface's buffer strategy, or nil before
// CreateCanvasBufferStrategy.
func (s *Shell) CanvasBufferStrategy() *BufferStrategy {
	return s.surface.BufferStrategy()
}

// CreateCanvasBufferStrategy gives the surface numBuffers buffers.
func (s *Shell) CreateCanvasBufferStrategy(numBuffers int) error {
	return s.surface.CreateBufferStrategy(numBuffers)
}

// RequestWindowFocus asks the platform to focus the window. The platform
// may ignore it.
func (s *Shell) RequestWindowFocus() {
	s.native.RequestFocus()
}

// Run hands the calling goroutine to the platform's event loop and calls step
// once per frame until step returns ErrStop or an error, or the window is
// closed.
func (s *Shell) Run(step func() error) error {
	err := s.native.Run(func() error {
		if s.closed.Get() {
			return ErrStop
		}
		return step()
	})
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

// Close destroys the native window.
func (s *Shell) Close() error {
	return s.native.Destroy()
}

func (s *Shell) Surface() *Surface {
	return s.surface
}

func (s *Shell) Title() string {
	return s.title
}

func (s *Shell) Size() (int, int) {
	return s.width, s.height
}

func (s *Shell) Resizable() bool {
	return s.resizable
}

// Closed reports whether the close gesture has happened.
func (s *Shell) Closed() bool {
	return s.closed.Get()
}

func (s *Shell) Ticks() int64 {
	return s.native.Ticks()
}

func (s *Shell) Delay(us int64) {
	s.native.Delay(us)
}
