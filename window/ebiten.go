//go:build ebiten

package window

import (
	"errors"
	"image"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ushitora-anqou/notalone/input"
)

func EbitenInitialize(tps int) error {
	ebiten.SetTPS(tps)
	ebiten.SetWindowClosingHandled(true)
	return nil
}

// Ebiten opens the single window ebiten supports. ebiten only puts the
// window on screen once Run starts the game loop.
type Ebiten struct{}

func (Ebiten) NewWindow(title string, width, height int) (NativeWindow, error) {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	return &EbitenWindow{
		width:  width,
		height: height,
		frame:  make([]byte, 4*width*height),
		start:  time.Now(),
	}, nil
}

type EbitenWindow struct {
	width, height int
	start         time.Time

	mtxFrame sync.Mutex
	frame    []byte

	keys       input.KeyListener
	mouse      input.MouseListener
	onClose    func()
	cursorX    int
	cursorY    int
	step       func() error
	destroyed  bool
	pressedBuf []ebiten.Key
}

func (wind *EbitenWindow) SetResizable(resizable bool) {
	mode := ebiten.WindowResizingModeDisabled
	if resizable {
		mode = ebiten.WindowResizingModeEnabled
	}
	ebiten.SetWindowResizingMode(mode)
}

func (wind *EbitenWindow) Center() {
	mw, mh := ebiten.Monitor().Size()
	ebiten.SetWindowPosition((mw-wind.width)/2, (mh-wind.height)/2)
}

func (wind *EbitenWindow) Show() {}

func (wind *EbitenWindow) SetContentSize(width, height int) {
	wind.mtxFrame.Lock()
	defer wind.mtxFrame.Unlock()
	wind.width, wind.height = width, height
	wind.frame = make([]byte, 4*width*height)
	ebiten.SetWindowSize(width, height)
}

func (wind *EbitenWindow) SetFocusable(bool) {}

// RequestFocus is ignored; ebiten has no way to raise its window.
func (wind *EbitenWindow) RequestFocus() {}

func (wind *EbitenWindow) SetKeyListener(l input.KeyListener)     { wind.keys = l }
func (wind *EbitenWindow) SetMouseListener(l input.MouseListener) { wind.mouse = l }
func (wind *EbitenWindow) SetCloseHandler(fn func())              { wind.onClose = fn }

func (wind *EbitenWindow) Present(frame *image.RGBA) error {
	wind.mtxFrame.Lock()
	defer wind.mtxFrame.Unlock()
	rowBytes := 4 * min(frame.Bounds().Dx(), wind.width)
	for row := 0; row < min(frame.Bounds().Dy(), wind.height); row++ {
		copy(wind.frame[row*4*wind.width:], frame.Pix[row*frame.Stride:row*frame.Stride+rowBytes])
	}
	return nil
}

func (wind *EbitenWindow) Ticks() int64 {
	return time.Since(wind.start).Microseconds()
}

// Delay does nothing: ebiten already calls Update at the configured TPS.
func (wind *EbitenWindow) Delay(int64) {}

func (wind *EbitenWindow) Run(step func() error) error {
	wind.step = step
	return ebiten.RunGame(wind)
}

func (wind *EbitenWindow) Destroy() error {
	wind.destroyed = true
	return nil
}

func (wind *EbitenWindow) Update() error {
	if wind.destroyed {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() && wind.onClose != nil {
		wind.onClose()
	}
	wind.dispatchInput()

	if err := wind.step(); err != nil {
		if errors.Is(err, ErrStop) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (wind *EbitenWindow) Draw(screen *ebiten.Image) {
	wind.mtxFrame.Lock()
	defer wind.mtxFrame.Unlock()
	screen.WritePixels(wind.frame)
}

func (wind *EbitenWindow) Layout(outsideWidth, outsideHeight int) (int, int) {
	wind.mtxFrame.Lock()
	defer wind.mtxFrame.Unlock()
	return wind.width, wind.height
}

func (wind *EbitenWindow) dispatchInput() {
	if wind.keys != nil {
		wind.pressedBuf = inpututil.AppendJustPressedKeys(wind.pressedBuf[:0])
		for _, k := range wind.pressedBuf {
			if key := ebitenKey(k); key != input.KeyUnknown {
				wind.keys.KeyPressed(input.KeyEvent{Key: key})
			}
		}
		wind.pressedBuf = inpututil.AppendJustReleasedKeys(wind.pressedBuf[:0])
		for _, k := range wind.pressedBuf {
			if key := ebitenKey(k); key != input.KeyUnknown {
				wind.keys.KeyReleased(input.KeyEvent{Key: key})
			}
		}
	}

	if wind.mouse == nil {
		return
	}
	x, y := ebiten.CursorPosition()
	if x != wind.cursorX || y != wind.cursorY {
		wind.cursorX, wind.cursorY = x, y
		wind.mouse.MouseMoved(input.MouseEvent{X: x, Y: y})
	}
	for eb, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(eb) {
			wind.mouse.MousePressed(input.MouseEvent{X: x, Y: y, Button: b})
		}
		if inpututil.IsMouseButtonJustReleased(eb) {
			wind.mouse.MouseReleased(input.MouseEvent{X: x, Y: y, Button: b})
		}
	}
}

var mouseButtons = map[ebiten.MouseButton]input.MouseButton{
	ebiten.MouseButtonLeft:   input.MouseButtonLeft,
	ebiten.MouseButtonMiddle: input.MouseButtonMiddle,
	ebiten.MouseButtonRight:  input.MouseButtonRight,
}

var ebitenKeys = map[ebiten.Key]input.Key{
	ebiten.KeyA: input.KeyA, ebiten.KeyB: input.KeyB, ebiten.KeyC: input.KeyC,
	ebiten.KeyD: input.KeyD, ebiten.KeyE: input.KeyE, ebiten.KeyF: input.KeyF,
	ebiten.KeyG: input.KeyG, ebiten.KeyH: input.KeyH, ebiten.KeyI: input.KeyI,
	ebiten.KeyJ: input.KeyJ, ebiten.KeyK: input.KeyK, ebiten.KeyL: input.KeyL,
	ebiten.KeyM: input.KeyM, ebiten.KeyN: input.KeyN, ebiten.KeyO: input.KeyO,
	ebiten.KeyP: input.KeyP, ebiten.KeyQ: input.KeyQ, ebiten.KeyR: input.KeyR,
	ebiten.KeyS: input.KeyS, ebiten.KeyT: input.KeyT, ebiten.KeyU: input.KeyU,
	ebiten.KeyV: input.KeyV, ebiten.KeyW: input.KeyW, ebiten.KeyX: input.KeyX,
	ebiten.KeyY: input.KeyY, ebiten.KeyZ: input.KeyZ,

	ebiten.KeyDigit0: input.Key0, ebiten.KeyDigit1: input.Key1,
	ebiten.KeyDigit2: input.Key2, ebiten.KeyDigit3: input.Key3,
	ebiten.KeyDigit4: input.Key4, ebiten.KeyDigit5: input.Key5,
	ebiten.KeyDigit6: input.Key6, ebiten.KeyDigit7: input.Key7,
	ebiten.KeyDigit8: input.Key8, ebiten.KeyDigit9: input.Key9,

	ebiten.KeyArrowUp:      input.KeyUp,
	ebiten.KeyArrowDown:    input.KeyDown,
	ebiten.KeyArrowLeft:    input.KeyLeft,
	ebiten.KeyArrowRight:   input.KeyRight,
	ebiten.KeyEnter:        input.KeyEnter,
	ebiten.KeySpace:        input.KeySpace,
	ebiten.KeyEscape:       input.KeyEscape,
	ebiten.KeyBackspace:    input.KeyBackspace,
	ebiten.KeyTab:          input.KeyTab,
	ebiten.KeyShiftLeft:    input.KeyShift,
	ebiten.KeyShiftRight:   input.KeyShift,
	ebiten.KeyControlLeft:  input.KeyControl,
	ebiten.KeyControlRight: input.KeyControl,
}

func ebitenKey(k ebiten.Key) input.Key {
	if key, ok := ebitenKeys[k]; ok {
		return key
	}
	return input.KeyUnknown
}
