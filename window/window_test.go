package window

import (
	"errors"
	"image"
	"image/color"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ushitora-anqou/notalone/input"
	"github.com/ushitora-anqou/notalone/lifecycle"
)

type counter struct {
	n atomic.Int32
}

func (c *counter) StopGame() {
	c.n.Add(1)
}

func newTestShell(t *testing.T, cfg Config) (*Shell, *HeadlessWindow) {
	t.Helper()
	platform := NewHeadless()
	shell, err := New(platform, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	windows := platform.Windows()
	if len(windows) != 1 {
		t.Fatalf("Wrong number of windows: (got: %d) (expected: 1)", len(windows))
	}
	return shell, windows[0]
}

func testConfig() Config {
	return Config{Title: "Not Alone", Width: 800, Height: 600}
}

func TestNew(t *testing.T) {
	cfg := testConfig()
	cfg.Keys = input.NewKeyboard()
	cfg.Mouse = input.NewMouse()
	shell, native := newTestShell(t, cfg)

	if shell.Title() != "Not Alone" || native.Title() != "Not Alone" {
		t.Fatalf("Wrong title: (got: %q, %q)", shell.Title(), native.Title())
	}
	if w, h := shell.Size(); w != 800 || h != 600 {
		t.Fatalf("Wrong size: (got: %dx%d) (expected: 800x600)", w, h)
	}
	if w, h := native.Size(); w != 800 || h != 600 {
		t.Fatalf("Wrong native size: (got: %dx%d) (expected: 800x600)", w, h)
	}
	if shell.Resizable() || native.Resizable() {
		t.Fatalf("Window must not be resizable")
	}
	if shell.Resizable() != native.Resizable() {
		t.Fatalf("Shell and native window disagree on resizing: (got: %t) (expected: %t)", shell.Resizable(), native.Resizable())
	}
	if !native.Visible() {
		t.Fatalf("Window must be on screen after New")
	}

	want := image.Pt(800, 600)
	surface := shell.Surface()
	for _, got := range []image.Point{surface.PreferredSize(), surface.MinimumSize(), surface.MaximumSize()} {
		if got != want {
			t.Fatalf("Wrong surface size: (got: %v) (expected: %v)", got, want)
		}
	}

	calls := []string{
		"resizable false",
		"center",
		"show",
		"content 800x600",
		"key listener",
		"focusable true",
		"close handler",
		"mouse listener",
	}
	if got := native.Calls(); !reflect.DeepEqual(got, calls) {
		t.Fatalf("Wrong construction order: (got: %v) (expected: %v)", got, calls)
	}
}

func TestNewErrors(t *testing.T) {
	platform := NewHeadless()
	platform.Err = errors.New("no display")
	if _, err := New(platform, testConfig()); err == nil || err.Error() != "create window: no display" {
		t.Fatalf("Wrong error: (got: %v)", err)
	}

	for _, size := range [][2]int{{0, 600}, {800, 0}, {-1, -1}} {
		cfg := testConfig()
		cfg.Width, cfg.Height = size[0], size[1]
		if _, err := New(NewHeadless(), cfg); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("Wrong error for %v: (got: %v) (expected: %v)", size, err, ErrInvalidSize)
		}
	}
}

func TestCloseStopsGameOnce(t *testing.T) {
	var game counter
	cfg := testConfig()
	cfg.Game = &game
	shell, native := newTestShell(t, cfg)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			native.RequestClose()
		}()
	}
	wg.Wait()

	if got := game.n.Load(); got != 1 {
		t.Fatalf("Wrong number of StopGame calls: (got: %d) (expected: 1)", got)
	}
	if !shell.Closed() {
		t.Fatalf("Shell must report the close")
	}
}

func TestCloseWithoutGame(t *testing.T) {
	shell, native := newTestShell(t, testConfig())
	native.RequestClose()
	native.RequestClose()
	if !shell.Closed() {
		t.Fatalf("Shell must report the close")
	}
}

func TestBufferStrategy(t *testing.T) {
	shell, native := newTestShell(t, testConfig())

	if bs := shell.CanvasBufferStrategy(); bs != nil {
		t.Fatalf("Strategy before creation: (got: %v) (expected: nil)", bs)
	}
	for _, n := range []int{0, -3} {
		if err := shell.CreateCanvasBufferStrategy(n); !errors.Is(err, ErrInvalidBufferCount) {
			t.Fatalf("Wrong error for %d buffers: (got: %v)", n, err)
		}
	}
	if err := shell.CreateCanvasBufferStrategy(2); err != nil {
		t.Fatalf("CreateCanvasBufferStrategy: %v", err)
	}
	bs := shell.CanvasBufferStrategy()
	if bs == nil || bs.Buffers() != 2 {
		t.Fatalf("Wrong strategy: (got: %v)", bs)
	}

	first := bs.DrawGraphics()
	if first.Bounds() != image.Rect(0, 0, 800, 600) {
		t.Fatalf("Wrong buffer bounds: (got: %v)", first.Bounds())
	}
	first.SetRGBA(0, 0, color.RGBA{R: 0xff, A: 0xff})
	if err := bs.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}
	second := bs.DrawGraphics()
	if second == first {
		t.Fatalf("Show must move to the next buffer")
	}
	if err := bs.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if bs.DrawGraphics() != first {
		t.Fatalf("Buffers must rotate")
	}

	frames, last := native.Frames()
	if frames != 2 || last != second {
		t.Fatalf("Wrong presented frames: (got: %d, %p) (expected: 2, %p)", frames, last, second)
	}
	if bs.Frames() != 2 {
		t.Fatalf("Wrong frame count: (got: %d) (expected: 2)", bs.Frames())
	}

	if err := shell.CreateCanvasBufferStrategy(3); err != nil {
		t.Fatalf("CreateCanvasBufferStrategy: %v", err)
	}
	if got := shell.CanvasBufferStrategy().Buffers(); got != 3 {
		t.Fatalf("Strategy must be replaced: (got: %d buffers) (expected: 3)", got)
	}
}

func TestSingleBuffer(t *testing.T) {
	shell, _ := newTestShell(t, testConfig())
	if err := shell.CreateCanvasBufferStrategy(1); err != nil {
		t.Fatalf("CreateCanvasBufferStrategy: %v", err)
	}
	bs := shell.CanvasBufferStrategy()
	buf := bs.DrawGraphics()
	if err := bs.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if bs.DrawGraphics() != buf {
		t.Fatalf("A single buffer is always the back buffer")
	}
}

func TestBufferStrategyBeforeRealize(t *testing.T) {
	s := newSurface(10, 10, &HeadlessWindow{})
	if err := s.CreateBufferStrategy(2); !errors.Is(err, ErrNotRealized) {
		t.Fatalf("Wrong error: (got: %v) (expected: %v)", err, ErrNotRealized)
	}
	if s.BufferStrategy() != nil {
		t.Fatalf("No strategy must be created")
	}
}

func TestShowAfterDestroy(t *testing.T) {
	shell, _ := newTestShell(t, testConfig())
	if err := shell.CreateCanvasBufferStrategy(2); err != nil {
		t.Fatalf("CreateCanvasBufferStrategy: %v", err)
	}
	if err := shell.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := shell.CanvasBufferStrategy().Show(); err == nil {
		t.Fatalf("Show on a destroyed window must fail")
	}
}

func TestRun(t *testing.T) {
	shell, native := newTestShell(t, testConfig())

	steps := 0
	err := shell.Run(func() error {
		steps++
		if steps == 3 {
			return ErrStop
		}
		return nil
	})
	if err != nil || steps != 3 {
		t.Fatalf("Wrong Run result: (got: %v, %d steps) (expected: nil, 3 steps)", err, steps)
	}

	boom := errors.New("boom")
	if err := shell.Run(func() error { return boom }); err != boom {
		t.Fatalf("Wrong Run error: (got: %v) (expected: %v)", err, boom)
	}

	game := lifecycle.NewGame()
	cfg := testConfig()
	cfg.Game = game
	shell, native = newTestShell(t, cfg)
	steps = 0
	err = shell.Run(func() error {
		steps++
		if steps == 2 {
			native.RequestClose()
		}
		return nil
	})
	if err != nil || steps != 2 {
		t.Fatalf("Wrong Run result after close: (got: %v, %d steps) (expected: nil, 2 steps)", err, steps)
	}
	if game.Running() {
		t.Fatalf("Game must be stopped by the close gesture")
	}
}

func TestInputRouting(t *testing.T) {
	kb := input.NewKeyboard()
	mouse := input.NewMouse()
	cfg := testConfig()
	cfg.Keys = kb
	cfg.Mouse = mouse
	_, native := newTestShell(t, cfg)

	native.PressKey(input.KeyW)
	if !kb.IsPressed(input.KeyW) {
		t.Fatalf("Key press must reach the keyboard")
	}
	native.ReleaseKey(input.KeyW)
	if kb.IsPressed(input.KeyW) {
		t.Fatalf("Key release must reach the keyboard")
	}

	native.Click(100, 200, input.MouseButtonLeft)
	native.Click(900, 10, input.MouseButtonLeft)
	native.MoveMouse(10, 20)
	clicks := mouse.Clicks()
	if len(clicks) != 1 || clicks[0].X != 100 || clicks[0].Y != 200 {
		t.Fatalf("Wrong clicks: (got: %v) (expected: one at (100, 200))", clicks)
	}
	if x, y := mouse.Position(); x != 10 || y != 20 {
		t.Fatalf("Wrong position: (got: %d, %d) (expected: 10, 20)", x, y)
	}
}

func TestRequestWindowFocus(t *testing.T) {
	shell, native := newTestShell(t, testConfig())
	shell.RequestWindowFocus()
	if !native.Focused() {
		t.Fatalf("Window must be focused")
	}
}

type fakeClock struct {
	now   int64
	slept []int64
}

func (c *fakeClock) Ticks() int64 { return c.now }

func (c *fakeClock) Delay(us int64) {
	c.slept = append(c.slept, us)
	c.now += us
}

func TestTimeSynchronizer(t *testing.T) {
	c := &fakeClock{}
	ts := NewTimeSynchronizer(c, 50)

	c.now += 5000
	ts.MaySleep()
	c.now += 100000 // fall far behind
	ts.MaySleep()
	ts.MaySleep()

	want := []int64{15000, 20000}
	if !reflect.DeepEqual(c.slept, want) {
		t.Fatalf("Wrong sleeps: (got: %v) (expected: %v)", c.slept, want)
	}
}
