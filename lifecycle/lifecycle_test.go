package lifecycle

import (
	"sync"
	"testing"
)

func TestGameStopsOnce(t *testing.T) {
	g := NewGame()
	if !g.Running() {
		t.Fatalf("new game is not running")
	}

	hooks := 0
	g.OnStop(func() { hooks++ })

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.StopGame()
		}()
	}
	wg.Wait()

	if g.Running() {
		t.Fatalf("game still running after StopGame")
	}
	select {
	case <-g.Done():
	default:
		t.Fatalf("Done not closed")
	}
	if hooks != 1 {
		t.Fatalf("OnStop hooks: (got: %d) (expected: 1)", hooks)
	}
}

func TestStopperFunc(t *testing.T) {
	called := 0
	var s Stopper = StopperFunc(func() { called++ })
	s.StopGame()
	if called != 1 {
		t.Fatalf("StopperFunc: (got: %d) (expected: 1)", called)
	}
}
