package window

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/ushitora-anqou/notalone/input"
)

// Headless is a platform without a display. Its windows record what was
// asked of them and let the caller inject input and close gestures.
type Headless struct {
	mtx     sync.Mutex
	windows []*HeadlessWindow
	// Err, when set, is returned by the next NewWindow.
	Err error
}

func NewHeadless() *Headless {
	return &Headless{}
}

func (h *Headless) NewWindow(title string, width, height int) (NativeWindow, error) {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	if err := h.Err; err != nil {
		h.Err = nil
		return nil, err
	}
	wind := &HeadlessWindow{
		title:     title,
		width:     width,
		height:    height,
		resizable: true,
		start:     time.Now(),
	}
	h.windows = append(h.windows, wind)
	return wind, nil
}

// Windows returns the windows created so far.
func (h *Headless) Windows() []*HeadlessWindow {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	return append([]*HeadlessWindow(nil), h.windows...)
}

type HeadlessWindow struct {
	mtx       sync.Mutex
	calls     []string
	title     string
	width     int
	height    int
	resizable bool
	centered  bool
	visible   bool
	focusable bool
	focused   bool
	destroyed bool
	start     time.Time

	frames    int
	lastFrame *image.RGBA

	keys    input.KeyListener
	mouse   input.MouseListener
	onClose func()
}

func (w *HeadlessWindow) record(format string, v ...interface{}) {
	w.calls = append(w.calls, fmt.Sprintf(format, v...))
}

func (w *HeadlessWindow) SetResizable(resizable bool) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.resizable = resizable
	w.record("resizable %t", resizable)
}

func (w *HeadlessWindow) Center() {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.centered = true
	w.record("center")
}

func (w *HeadlessWindow) Show() {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.visible = true
	w.record("show")
}

func (w *HeadlessWindow) SetContentSize(width, height int) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.width, w.height = width, height
	w.record("content %dx%d", width, height)
}

func (w *HeadlessWindow) SetFocusable(focusable bool) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.focusable = focusable
	w.record("focusable %t", focusable)
}

func (w *HeadlessWindow) RequestFocus() {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.focused = w.focusable && w.visible
	w.record("focus")
}

func (w *HeadlessWindow) SetKeyListener(l input.KeyListener) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.keys = l
	w.record("key listener")
}

func (w *HeadlessWindow) SetMouseListener(l input.MouseListener) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.mouse = l
	w.record("mouse listener")
}

func (w *HeadlessWindow) SetCloseHandler(fn func()) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.onClose = fn
	w.record("close handler")
}

func (w *HeadlessWindow) Present(frame *image.RGBA) error {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if !w.visible {
		return errors.New("present on a hidden window")
	}
	w.frames++
	w.lastFrame = frame
	return nil
}

func (w *HeadlessWindow) Ticks() int64 {
	return time.Since(w.start).Microseconds()
}

func (w *HeadlessWindow) Delay(us int64) {
	if us > 0 {
		time.Sleep(time.Duration(us) * time.Microsecond)
	}
}

func (w *HeadlessWindow) Run(step func() error) error {
	for !w.Destroyed() {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (w *HeadlessWindow) Destroy() error {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.destroyed = true
	w.visible = false
	return nil
}

// RequestClose performs the user's close gesture.
func (w *HeadlessWindow) RequestClose() {
	w.mtx.Lock()
	fn := w.onClose
	w.mtx.Unlock()
	if fn != nil {
		fn()
	}
}

func (w *HeadlessWindow) PressKey(k input.Key) {
	if l := w.keyListener(); l != nil {
		l.KeyPressed(input.KeyEvent{Key: k})
	}
}

func (w *HeadlessWindow) ReleaseKey(k input.Key) {
	if l := w.keyListener(); l != nil {
		l.KeyReleased(input.KeyEvent{Key: k})
	}
}

// Click presses and releases b at (x, y).
func (w *HeadlessWindow) Click(x, y int, b input.MouseButton) {
	l := w.mouseListener()
	if l == nil {
		return
	}
	e := input.MouseEvent{X: x, Y: y, Button: b}
	l.MousePressed(e)
	l.MouseReleased(e)
}

func (w *HeadlessWindow) MoveMouse(x, y int) {
	if l := w.mouseListener(); l != nil {
		l.MouseMoved(input.MouseEvent{X: x, Y: y})
	}
}

func (w *HeadlessWindow) keyListener() input.KeyListener {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.keys
}

func (w *HeadlessWindow) mouseListener() input.MouseListener {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.mouse
}

// Calls lists the platform requests made so far, in order.
func (w *HeadlessWindow) Calls() []string {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return append([]string(nil), w.calls...)
}

func (w *HeadlessWindow) Title() string {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.title
}

func (w *HeadlessWindow) Size() (int, int) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.width, w.height
}

func (w *HeadlessWindow) Resizable() bool {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.resizable
}

func (w *HeadlessWindow) Visible() bool {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.visible
}

func (w *HeadlessWindow) Focused() bool {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.focused
}

func (w *HeadlessWindow) Destroyed() bool {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.destroyed
}

// Frames returns the number of presented frames and the last one.
func (w *HeadlessWindow) Frames() (int, *image.RGBA) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.frames, w.lastFrame
}
