package sound

import (
	"fmt"

	"github.com/ushitora-anqou/notalone/asset"
	"github.com/ushitora-anqou/notalone/decode"
	"github.com/ushitora-anqou/notalone/failure"
	"github.com/ushitora-anqou/notalone/util"
)

// Config carries the collaborators a Clip loads through.
type Config struct {
	Resolver asset.Resolver
	Decoders *decode.Registry
	Device   Device
	Sink     failure.Sink
}

// LoadError is reported to the sink when a clip cannot be loaded.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load the sound: %s: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Clip is a single sound effect. It is driven by one owner; concurrent calls
// on the same Clip must be serialized by the caller.
type Clip struct {
	cfg   Config
	name  string
	line  Line
	state State
}

// NewClip returns an unloaded clip. Every playback call is a no-op until
// SetClip succeeds.
func NewClip(cfg Config) *Clip {
	return &Clip{cfg: cfg}
}

// LoadClip returns a clip loaded from the named resource.
func LoadClip(cfg Config, name string) *Clip {
	c := NewClip(cfg)
	c.SetClip(name)
	return c
}

func (c *Clip) sink() failure.Sink {
	if c.cfg.Sink == nil {
		return failure.LogSink{}
	}
	return c.cfg.Sink
}

// SetClip resolves, decodes and opens the named resource. On any failure the
// clip is left unloaded and the failure goes to the sink.
func (c *Clip) SetClip(name string) {
	c.release()
	c.name = name

	line, err := c.open(name)
	if err != nil {
		c.sink().Handle(&LoadError{Name: name, Err: err})
		return
	}
	c.line = line
	c.state = Loaded
	util.Trace("sound: loaded %s (%d frames)", name, line.FrameLength())
}

func (c *Clip) open(name string) (line Line, err error) {
	defer func() {
		if v := recover(); v != nil {
			if line != nil {
				line.Close()
			}
			line, err = nil, fmt.Errorf("panic: %v", v)
		}
	}()

	if c.cfg.Resolver == nil {
		return nil, ErrNoResolver
	}
	if c.cfg.Device == nil {
		return nil, ErrNoDevice
	}
	decoders := c.cfg.Decoders
	if decoders == nil {
		decoders = decode.NewRegistry()
	}

	res, err := c.cfg.Resolver.Resolve(name)
	if err != nil {
		return nil, err
	}
	stream, err := decoders.Decode(name, res)
	if err != nil {
		return nil, err
	}
	line, err = c.cfg.Device.Open(stream)
	if err != nil {
		return nil, fmt.Errorf("open line: %w", err)
	}
	return line, nil
}

// Play restarts the clip from its first frame.
func (c *Clip) Play() {
	if c.line == nil {
		return
	}
	c.Stop()
	c.line.SetFramePosition(0)
	c.line.Start()
	c.state = Playing
}

// Loop keeps the clip playing when called once per tick: a clip that has
// reached its end is rewound, and a rewound clip is started.
func (c *Clip) Loop() {
	if c.line == nil {
		return
	}
	if c.line.FrameLength() == c.line.FramePosition() {
		c.line.SetFramePosition(0)
	}
	if c.line.FramePosition() == 0 {
		c.line.Start()
		c.state = Playing
	}
}

// Stop halts playback and rewinds to the first frame.
func (c *Clip) Stop() {
	if c.line == nil {
		return
	}
	if c.line.IsRunning() {
		c.line.Stop()
	}
	c.line.SetFramePosition(0)
	c.state = Stopped
}

// Close stops playback and releases the line. The clip is unloaded
// afterwards. Closing an unloaded clip only reports ErrNotLoaded to the
// sink.
func (c *Clip) Close() {
	if c.line == nil {
		c.sink().Handle(fmt.Errorf("close sound %q: %w", c.name, ErrNotLoaded))
		return
	}
	c.release()
}

// release closes the current line, if any, without reporting a missing one.
func (c *Clip) release() {
	if c.line == nil {
		return
	}
	line := c.line
	c.line = nil
	c.state = Unloaded

	failure.Guard(c.sink(), func() {
		if line.IsRunning() {
			line.Stop()
		}
		if err := line.Close(); err != nil {
			c.sink().Handle(fmt.Errorf("close sound %s: %w", c.name, err))
		}
	})
}

func (c *Clip) Name() string {
	return c.name
}

func (c *Clip) Loaded() bool {
	return c.line != nil
}

func (c *Clip) State() State {
	if c.line == nil {
		return Unloaded
	}
	if c.state == Playing && !c.line.IsRunning() {
		return Stopped
	}
	return c.state
}

// FramePosition returns the playback position, or 0 when unloaded.
func (c *Clip) FramePosition() int {
	if c.line == nil {
		return 0
	}
	return c.line.FramePosition()
}

// FrameLength returns the clip length in frames, or 0 when unloaded.
func (c *Clip) FrameLength() int {
	if c.line == nil {
		return 0
	}
	return c.line.FrameLength()
}
