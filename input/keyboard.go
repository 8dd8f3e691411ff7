package input

import "sync/atomic"

// Keyboard keeps the set of held keys. The window's event thread writes it,
// the update loop reads it.
type Keyboard struct {
	pressed atomic.Uint64
	typed   atomic.Uint64
}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

func (kb *Keyboard) KeyPressed(e KeyEvent) {
	if e.Key == KeyUnknown || e.Key >= keyCount {
		return
	}
	kb.pressed.Or(1 << e.Key)
	kb.typed.Or(1 << e.Key)
}

func (kb *Keyboard) KeyReleased(e KeyEvent) {
	if e.Key >= keyCount {
		return
	}
	kb.pressed.And(^(uint64(1) << e.Key))
}

// IsPressed reports whether k is held down.
func (kb *Keyboard) IsPressed(k Key) bool {
	return kb.pressed.Load()&(1<<k) != 0
}

// Typed reports whether k went down since the last call for k, even if it
// has been released since.
func (kb *Keyboard) Typed(k Key) bool {
	bit := uint64(1) << k
	return kb.typed.And(^bit)&bit != 0
}

// Release clears every held key, e.g. when the window loses focus.
func (kb *Keyboard) Release() {
	kb.pressed.Store(0)
	kb.typed.Store(0)
}
