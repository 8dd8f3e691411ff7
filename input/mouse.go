package input

import "sync"

// Mouse tracks the pointer over the drawing surface. One instance is shared
// by the window and whoever reads it.
type Mouse struct {
	mtx     sync.Mutex
	x, y    int
	buttons [4]bool
	clicks  []MouseEvent
}

func NewMouse() *Mouse {
	return &Mouse{}
}

func (m *Mouse) MousePressed(e MouseEvent) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.x, m.y = e.X, e.Y
	if int(e.Button) < len(m.buttons) {
		m.buttons[e.Button] = true
	}
}

func (m *Mouse) MouseReleased(e MouseEvent) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.x, m.y = e.X, e.Y
	if int(e.Button) < len(m.buttons) && m.buttons[e.Button] {
		m.buttons[e.Button] = false
		m.clicks = append(m.clicks, e)
	}
}

func (m *Mouse) MouseMoved(e MouseEvent) {
	m.mtx.Lock()
	m.x, m.y = e.X, e.Y
	m.mtx.Unlock()
}

func (m *Mouse) Position() (int, int) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.x, m.y
}

func (m *Mouse) IsPressed(b MouseButton) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return int(b) < len(m.buttons) && m.buttons[b]
}

// Clicks returns and clears the completed clicks since the last call.
func (m *Mouse) Clicks() []MouseEvent {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	clicks := m.clicks
	m.clicks = nil
	return clicks
}
