package window

type clock interface {
	Ticks() int64
	Delay(us int64)
}

// TimeSynchronizer paces a render loop to a target frame rate.
type TimeSynchronizer struct {
	prevTicks, usPerFrame int64
	clock                 clock
}

func NewTimeSynchronizer(c clock, targetFPS float64) *TimeSynchronizer {
	return &TimeSynchronizer{
		prevTicks:  c.Ticks(),
		usPerFrame: int64(1000000.0 / targetFPS),
		clock:      c,
	}
}

// MaySleep sleeps out the rest of the current frame. A loop that has fallen
// more than a frame behind is resynchronized instead of sprinting to catch
// up.
func (ts *TimeSynchronizer) MaySleep() {
	cur := ts.clock.Ticks()
	if cur < ts.prevTicks {
		ts.prevTicks = cur
		return
	}
	diff := ts.usPerFrame - (cur - ts.prevTicks)
	if diff > 1000 { // Larger than 1ms
		ts.clock.Delay(diff)
	}
	if diff < -ts.usPerFrame {
		ts.prevTicks = cur
		return
	}
	ts.prevTicks += ts.usPerFrame
}
