package sound

import "github.com/ushitora-anqou/notalone/decode"

// HeadlessDevice plays into a software mixer whose clock only moves when
// Advance or Mix is called. It stands in for audio hardware in tests and in
// runs without sound.
type HeadlessDevice struct {
	mixer *mixer
}

func NewHeadlessDevice(sampleRate, channels int) *HeadlessDevice {
	return &HeadlessDevice{mixer: newMixer(sampleRate, channels)}
}

func (d *HeadlessDevice) Open(stream *decode.Stream) (Line, error) {
	return d.mixer.open(stream), nil
}

func (d *HeadlessDevice) Format() decode.Format {
	return d.mixer.format
}

// Advance plays the given number of frames and discards the output.
func (d *HeadlessDevice) Advance(frames int) {
	d.mixer.mix(make([]int16, frames*d.mixer.format.Channels))
}

// Mix plays len(dst)/channels frames into dst.
func (d *HeadlessDevice) Mix(dst []int16) {
	d.mixer.mix(dst)
}

// Active returns the number of lines currently playing.
func (d *HeadlessDevice) Active() int {
	return d.mixer.active()
}
