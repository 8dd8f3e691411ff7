// Package input defines the keyboard and mouse events a window delivers and
// the listeners that receive them.
package input

type Key uint8

const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeySpace
	KeyEscape
	KeyBackspace
	KeyTab
	KeyShift
	KeyControl
	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown: "Unknown",
	KeyUp:      "Up", KeyDown: "Down", KeyLeft: "Left", KeyRight: "Right",
	KeyEnter: "Enter", KeySpace: "Space", KeyEscape: "Escape",
	KeyBackspace: "Backspace", KeyTab: "Tab", KeyShift: "Shift", KeyControl: "Control",
}

func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + k - KeyA))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + k - Key0))
	case k < keyCount:
		return keyNames[k]
	}
	return "Unknown"
}

// KeyFromRune maps letters (either case), digits and space to a Key.
func KeyFromRune(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	case r >= '0' && r <= '9':
		return Key0 + Key(r-'0')
	case r == ' ':
		return KeySpace
	}
	return KeyUnknown
}

type KeyEvent struct {
	Key Key
}

type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
)

// MouseEvent positions are in surface pixels.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
}

type KeyListener interface {
	KeyPressed(e KeyEvent)
	KeyReleased(e KeyEvent)
}

type MouseListener interface {
	MousePressed(e MouseEvent)
	MouseReleased(e MouseEvent)
	MouseMoved(e MouseEvent)
}
