//go:build sdl2

package window

import (
	"fmt"
	"image"

	"github.com/ushitora-anqou/notalone/input"
	"github.com/veandco/go-sdl2/sdl"
)

func SDLInitialize() error {
	return sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS)
}

func SDLQuit() {
	sdl.Quit()
}

// SDL opens windows through SDL2. SDLInitialize must have been called.
type SDL struct{}

func (SDL) NewWindow(title string, width, height int) (NativeWindow, error) {
	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(width),
		int32(height),
		sdl.WINDOW_HIDDEN,
	)
	if err != nil {
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, err
	}

	wind := &SDLWindow{window: window, renderer: renderer}
	if err := wind.resizeTexture(width, height); err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, err
	}
	return wind, nil
}

type SDLWindow struct {
	window        *sdl.Window
	renderer      *sdl.Renderer
	texture       *sdl.Texture
	width, height int
	focusable     bool

	keys    input.KeyListener
	mouse   input.MouseListener
	onClose func()
}

func (wind *SDLWindow) resizeTexture(width, height int) error {
	if wind.texture != nil && wind.width == width && wind.height == height {
		return nil
	}
	// ABGR8888 is R, G, B, A in memory on little-endian hosts, the same
	// layout as image.RGBA.
	texture, err := wind.renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(width),
		int32(height),
	)
	if err != nil {
		return err
	}
	if wind.texture != nil {
		wind.texture.Destroy()
	}
	wind.texture = texture
	wind.width, wind.height = width, height
	return nil
}

func (wind *SDLWindow) SetResizable(resizable bool) {
	wind.window.SetResizable(resizable)
}

func (wind *SDLWindow) Center() {
	wind.window.SetPosition(sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED)
}

func (wind *SDLWindow) Show() {
	wind.window.Show()
}

func (wind *SDLWindow) SetContentSize(width, height int) {
	wind.window.SetSize(int32(width), int32(height))
	if err := wind.resizeTexture(width, height); err != nil {
		panic(fmt.Sprintf("sdl: resize texture: %v", err))
	}
}

func (wind *SDLWindow) SetFocusable(focusable bool) {
	wind.focusable = focusable
}

func (wind *SDLWindow) RequestFocus() {
	if wind.focusable {
		wind.window.Raise()
	}
}

func (wind *SDLWindow) SetKeyListener(l input.KeyListener)     { wind.keys = l }
func (wind *SDLWindow) SetMouseListener(l input.MouseListener) { wind.mouse = l }
func (wind *SDLWindow) SetCloseHandler(fn func())              { wind.onClose = fn }

func (wind *SDLWindow) Present(frame *image.RGBA) error {
	pixels, pitch, err := wind.texture.Lock(nil)
	if err != nil {
		return err
	}
	b := frame.Bounds()
	rowBytes := 4 * min(b.Dx(), wind.width)
	for row := 0; row < min(b.Dy(), wind.height); row++ {
		src := frame.Pix[row*frame.Stride : row*frame.Stride+rowBytes]
		copy(pixels[row*pitch:], src)
	}
	wind.texture.Unlock()

	// Present the scene
	wind.renderer.Clear()
	wind.renderer.Copy(wind.texture, nil, nil)
	wind.renderer.Present()
	return nil
}

func (wind *SDLWindow) Ticks() int64 {
	return int64(sdl.GetTicks()) * 1000
}

func (wind *SDLWindow) Delay(us int64) {
	if us > 0 {
		sdl.Delay(uint32(us / 1000))
	}
}

func (wind *SDLWindow) Run(step func() error) error {
	for {
		wind.handleEvents()
		if err := step(); err != nil {
			return err
		}
	}
}

// handleEvents drains SDL's event queue. Closing the only window yields
// both a window close event and a quit event; the close handler sees both.
func (wind *SDLWindow) handleEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			wind.close()

		case *sdl.WindowEvent:
			if ev.Event == sdl.WINDOWEVENT_CLOSE {
				wind.close()
			}

		case *sdl.KeyboardEvent:
			if wind.keys == nil || ev.Repeat != 0 {
				continue
			}
			e := input.KeyEvent{Key: sdlKey(ev.Keysym.Sym)}
			switch ev.Type {
			case sdl.KEYDOWN:
				wind.keys.KeyPressed(e)
			case sdl.KEYUP:
				wind.keys.KeyReleased(e)
			}

		case *sdl.MouseButtonEvent:
			if wind.mouse == nil {
				continue
			}
			e := input.MouseEvent{X: int(ev.X), Y: int(ev.Y), Button: sdlButton(ev.Button)}
			switch ev.Type {
			case sdl.MOUSEBUTTONDOWN:
				wind.mouse.MousePressed(e)
			case sdl.MOUSEBUTTONUP:
				wind.mouse.MouseReleased(e)
			}

		case *sdl.MouseMotionEvent:
			if wind.mouse != nil {
				wind.mouse.MouseMoved(input.MouseEvent{X: int(ev.X), Y: int(ev.Y)})
			}
		}
	}
}

func (wind *SDLWindow) close() {
	if wind.onClose != nil {
		wind.onClose()
	}
}

func (wind *SDLWindow) Destroy() error {
	if wind.texture != nil {
		wind.texture.Destroy()
	}
	wind.renderer.Destroy()
	return wind.window.Destroy()
}

func sdlKey(sym sdl.Keycode) input.Key {
	switch {
	case sym >= sdl.K_a && sym <= sdl.K_z:
		return input.KeyA + input.Key(sym-sdl.K_a)
	case sym >= sdl.K_0 && sym <= sdl.K_9:
		return input.Key0 + input.Key(sym-sdl.K_0)
	}
	switch sym {
	case sdl.K_UP:
		return input.KeyUp
	case sdl.K_DOWN:
		return input.KeyDown
	case sdl.K_LEFT:
		return input.KeyLeft
	case sdl.K_RIGHT:
		return input.KeyRight
	case sdl.K_RETURN:
		return input.KeyEnter
	case sdl.K_SPACE:
		return input.KeySpace
	case sdl.K_ESCAPE:
		return input.KeyEscape
	case sdl.K_BACKSPACE:
		return input.KeyBackspace
	case sdl.K_TAB:
		return input.KeyTab
	case sdl.K_LSHIFT, sdl.K_RSHIFT:
		return input.KeyShift
	case sdl.K_LCTRL, sdl.K_RCTRL:
		return input.KeyControl
	}
	return input.KeyUnknown
}

func sdlButton(b uint8) input.MouseButton {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.MouseButtonLeft
	case sdl.BUTTON_MIDDLE:
		return input.MouseButtonMiddle
	case sdl.BUTTON_RIGHT:
		return input.MouseButtonRight
	}
	return input.MouseButtonNone
}
