package sound

import "sort"

// Bank owns the clips of a game by resource name. Preload them during a
// loading phase; Get loads on demand otherwise.
type Bank struct {
	cfg   Config
	clips map[string]*Clip
}

func NewBank(cfg Config) *Bank {
	return &Bank{cfg: cfg, clips: make(map[string]*Clip)}
}

// Preload loads every named clip not loaded yet and returns how many of the
// names are usable afterwards.
func (b *Bank) Preload(names ...string) int {
	n := 0
	for _, name := range names {
		if b.Get(name).Loaded() {
			n++
		}
	}
	return n
}

// Get returns the clip for name, loading it on first use. A clip that failed
// to load is kept, so the failure is reported once and playback stays a
// no-op.
func (b *Bank) Get(name string) *Clip {
	if c, ok := b.clips[name]; ok {
		return c
	}
	c := LoadClip(b.cfg, name)
	b.clips[name] = c
	return c
}

// Names returns the names known to the bank in sorted order.
func (b *Bank) Names() []string {
	names := make([]string, 0, len(b.clips))
	for name := range b.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StopAll stops every clip.
func (b *Bank) StopAll() {
	for _, c := range b.clips {
		c.Stop()
	}
}

// Close closes every loaded clip and forgets all of them. Clips that failed
// to load were reported when loading.
func (b *Bank) Close() {
	for _, c := range b.clips {
		if c.Loaded() {
			c.Close()
		}
	}
	b.clips = make(map[string]*Clip)
}
