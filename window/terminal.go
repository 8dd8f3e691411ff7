package window

import (
	"image"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/ushitora-anqou/notalone/input"
)

// Terminal draws windows into a terminal with tcell. Every cell shows two
// vertically stacked pixels using an upper half block, so a frame is
// scaled down until it fits.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal uses screen, or the controlling terminal when screen is nil.
func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) NewWindow(title string, width, height int) (NativeWindow, error) {
	screen := t.screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, err
		}
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.EnableMouse()
	screen.SetTitle(title)

	wind := &TerminalWindow{
		screen: screen,
		width:  width,
		height: height,
		start:  time.Now(),
	}
	wind.layout()
	return wind, nil
}

type TerminalWindow struct {
	screen tcell.Screen
	start  time.Time

	mtx           sync.Mutex
	width, height int
	visible       bool
	// scale is surface pixels per cell column; a row covers 2*scale pixels.
	scale          int
	offX, offY     int
	centered       bool
	buttons        tcell.ButtonMask
	keys           input.KeyListener
	mouse          input.MouseListener
	onClose        func()
	lastFrame      *image.RGBA
	releaseOnFrame []input.Key
}

const upperHalfBlock = '▀'

// layout fits the surface into the current terminal size.
func (wind *TerminalWindow) layout() {
	cols, rows := wind.screen.Size()
	cols, rows = max(cols, 1), max(rows, 1)
	wind.scale = max(1, ceilDiv(wind.width, cols), ceilDiv(wind.height, 2*rows))

	wind.offX, wind.offY = 0, 0
	if wind.centered {
		wind.offX = (cols - ceilDiv(wind.width, wind.scale)) / 2
		wind.offY = (rows - ceilDiv(wind.height, 2*wind.scale)) / 2
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// SetResizable does nothing; the terminal's size belongs to the user.
func (wind *TerminalWindow) SetResizable(bool) {}

func (wind *TerminalWindow) Center() {
	wind.mtx.Lock()
	defer wind.mtx.Unlock()
	wind.centered = true
	wind.layout()
}

func (wind *TerminalWindow) Show() {
	wind.mtx.Lock()
	defer wind.mtx.Unlock()
	wind.visible = true
	wind.screen.Clear()
	wind.screen.Show()
}

func (wind *TerminalWindow) SetContentSize(width, height int) {
	wind.mtx.Lock()
	defer wind.mtx.Unlock()
	wind.width, wind.height = width, height
	wind.layout()
}

func (wind *TerminalWindow) SetFocusable(bool) {}

// RequestFocus does nothing; the terminal emulator owns focus.
func (wind *TerminalWindow) RequestFocus() {}

func (wind *TerminalWindow) SetKeyListener(l input.KeyListener) {
	wind.mtx.Lock()
	wind.keys = l
	wind.mtx.Unlock()
}

func (wind *TerminalWindow) SetMouseListener(l input.MouseListener) {
	wind.mtx.Lock()
	wind.mouse = l
	wind.mtx.Unlock()
}

func (wind *TerminalWindow) SetCloseHandler(fn func()) {
	wind.mtx.Lock()
	wind.onClose = fn
	wind.mtx.Unlock()
}

func (wind *TerminalWindow) Present(frame *image.RGBA) error {
	wind.mtx.Lock()
	defer wind.mtx.Unlock()
	wind.lastFrame = frame
	wind.draw()
	return nil
}

func (wind *TerminalWindow) draw() {
	frame := wind.lastFrame
	if frame == nil || !wind.visible {
		return
	}
	b := frame.Bounds()
	s := wind.scale
	for cy := 0; cy*2*s < wind.height; cy++ {
		for cx := 0; cx*s < wind.width; cx++ {
			top := pixelColor(frame, b.Min.X+cx*s, b.Min.Y+cy*2*s)
			bottom := pixelColor(frame, b.Min.X+cx*s, b.Min.Y+cy*2*s+s)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			wind.screen.SetContent(wind.offX+cx, wind.offY+cy, upperHalfBlock, nil, style)
		}
	}
	wind.screen.Show()
}

func pixelColor(frame *image.RGBA, x, y int) tcell.Color {
	if !image.Pt(x, y).In(frame.Bounds()) {
		return tcell.ColorBlack
	}
	c := frame.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (wind *TerminalWindow) Ticks() int64 {
	return time.Since(wind.start).Microseconds()
}

func (wind *TerminalWindow) Delay(us int64) {
	if us > 0 {
		time.Sleep(time.Duration(us) * time.Microsecond)
	}
}

func (wind *TerminalWindow) Run(step func() error) error {
	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := wind.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		wind.releaseTyped()
	drain:
		for {
			select {
			case ev := <-events:
				wind.HandleEvent(ev)
			default:
				break drain
			}
		}
		if err := step(); err != nil {
			return err
		}
	}
}

// HandleEvent dispatches one terminal event to the window's listeners.
func (wind *TerminalWindow) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		wind.handleKey(ev.Key(), ev.Rune(), ev.Modifiers())
	case *tcell.EventMouse:
		x, y := ev.Position()
		wind.handleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		wind.mtx.Lock()
		wind.screen.Sync()
		wind.layout()
		wind.screen.Clear()
		wind.draw()
		wind.mtx.Unlock()
	}
}

// Terminals report key presses only. A key is released again before the
// next frame's events are handled.
func (wind *TerminalWindow) handleKey(k tcell.Key, r rune, mod tcell.ModMask) {
	if k == tcell.KeyCtrlC || k == tcell.KeyCtrlQ ||
		(k == tcell.KeyRune && r == 'q' && mod&tcell.ModCtrl != 0) {
		wind.mtx.Lock()
		fn := wind.onClose
		wind.mtx.Unlock()
		if fn != nil {
			fn()
		}
		return
	}

	key := terminalKey(k, r)
	wind.mtx.Lock()
	l := wind.keys
	if l != nil && key != input.KeyUnknown {
		wind.releaseOnFrame = append(wind.releaseOnFrame, key)
	}
	wind.mtx.Unlock()
	if l != nil && key != input.KeyUnknown {
		l.KeyPressed(input.KeyEvent{Key: key})
	}
}

func (wind *TerminalWindow) releaseTyped() {
	wind.mtx.Lock()
	l, keys := wind.keys, wind.releaseOnFrame
	wind.releaseOnFrame = nil
	wind.mtx.Unlock()
	for _, k := range keys {
		l.KeyReleased(input.KeyEvent{Key: k})
	}
}

func (wind *TerminalWindow) handleMouse(cx, cy int, buttons tcell.ButtonMask) {
	wind.mtx.Lock()
	l := wind.mouse
	x := (cx - wind.offX) * wind.scale
	y := (cy - wind.offY) * 2 * wind.scale
	prev := wind.buttons
	wind.buttons = buttons
	wind.mtx.Unlock()
	if l == nil {
		return
	}

	l.MouseMoved(input.MouseEvent{X: x, Y: y})
	for mask, b := range terminalButtons {
		switch {
		case buttons&mask != 0 && prev&mask == 0:
			l.MousePressed(input.MouseEvent{X: x, Y: y, Button: b})
		case buttons&mask == 0 && prev&mask != 0:
			l.MouseReleased(input.MouseEvent{X: x, Y: y, Button: b})
		}
	}
}

func (wind *TerminalWindow) Destroy() error {
	wind.screen.Fini()
	return nil
}

var terminalButtons = map[tcell.ButtonMask]input.MouseButton{
	tcell.Button1: input.MouseButtonLeft,
	tcell.Button2: input.MouseButtonRight,
	tcell.Button3: input.MouseButtonMiddle,
}

func terminalKey(k tcell.Key, r rune) input.Key {
	switch k {
	case tcell.KeyRune:
		return input.KeyFromRune(r)
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyEnter:
		return input.KeyEnter
	case tcell.KeyEscape:
		return input.KeyEscape
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.KeyBackspace
	case tcell.KeyTab:
		return input.KeyTab
	}
	return input.KeyUnknown
}
