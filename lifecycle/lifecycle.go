// Package lifecycle holds the running state of the game.
package lifecycle

import (
	"sync"

	"github.com/ushitora-anqou/notalone/util"
)

// Stopper is the single operation a window may call into the game: stop it.
type Stopper interface {
	StopGame()
}

// StopperFunc adapts a function to a Stopper.
type StopperFunc func()

func (f StopperFunc) StopGame() {
	f()
}

// Game is the running flag shared by the window and the game loop.
type Game struct {
	running  *util.AtomicBool
	done     chan struct{}
	stopOnce sync.Once
	onStop   []func()
	mtx      sync.Mutex
}

func NewGame() *Game {
	return &Game{
		running: util.NewAtomicBool(true),
		done:    make(chan struct{}),
	}
}

func (g *Game) Running() bool {
	return g.running.Get()
}

// Done is closed once the game has been stopped.
func (g *Game) Done() <-chan struct{} {
	return g.done
}

// OnStop registers fn to run when the game stops. Hooks run in order on the
// goroutine that stops the game.
func (g *Game) OnStop(fn func()) {
	g.mtx.Lock()
	g.onStop = append(g.onStop, fn)
	g.mtx.Unlock()
}

// StopGame stops the game. Calls after the first do nothing.
func (g *Game) StopGame() {
	g.stopOnce.Do(func() {
		g.running.Set(false)
		close(g.done)
		util.Trace("lifecycle: game stopped")

		g.mtx.Lock()
		hooks := g.onStop
		g.mtx.Unlock()
		for _, fn := range hooks {
			fn()
		}
	})
}
