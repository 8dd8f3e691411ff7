package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ushitora-anqou/notalone/config"
	"github.com/ushitora-anqou/notalone/decode"
	"github.com/ushitora-anqou/notalone/input"
	"github.com/ushitora-anqou/notalone/lifecycle"
	"github.com/ushitora-anqou/notalone/sound"
	"github.com/ushitora-anqou/notalone/window"
)

var (
	backgroundColor = color.RGBA{0x10, 0x10, 0x20, 0xff}
	cursorColor     = color.RGBA{0xff, 0xcc, 0x33, 0xff}
	textColor       = color.RGBA{0xee, 0xee, 0xee, 0xff}
)

// advancer is a device whose playback is driven by the render loop.
type advancer interface {
	Advance(frames int)
	Format() decode.Format
}

// NotAlone is the demo game: it renders a frame per tick and plays the
// preloaded sounds on key presses and mouse clicks.
type NotAlone struct {
	cfg      *config.Config
	shell    *window.Shell
	bank     *sound.Bank
	device   sound.Device
	keyboard *input.Keyboard
	mouse    *input.Mouse
	game     *lifecycle.Game
	sync     *window.TimeSynchronizer
	face     font.Face
	sounds   []string
	looping  *sound.Clip
	frame    int
}

func NewNotAlone(platform window.Platform, sounds sound.Config, cfg *config.Config) (*NotAlone, error) {
	game := lifecycle.NewGame()
	keyboard := input.NewKeyboard()
	mouse := input.NewMouse()

	shell, err := window.New(platform, window.Config{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		Keys:   keyboard,
		Mouse:  mouse,
		Game:   game,
	})
	if err != nil {
		return nil, err
	}
	if err := shell.CreateCanvasBufferStrategy(cfg.Buffers); err != nil {
		shell.Close()
		return nil, err
	}
	shell.RequestWindowFocus()

	// Loading phase
	names := cfg.Sounds
	if len(names) == 0 {
		names = listSounds(cfg.SoundDir)
	}
	bank := sound.NewBank(sounds)
	loaded := bank.Preload(names...)
	log.Printf("%d of %d sounds loaded", loaded, len(names))

	a := &NotAlone{
		cfg:      cfg,
		shell:    shell,
		bank:     bank,
		device:   sounds.Device,
		keyboard: keyboard,
		mouse:    mouse,
		game:     game,
		sync:     window.NewTimeSynchronizer(shell, float64(cfg.FPS)),
		face:     basicfont.Face7x13,
		sounds:   names,
	}
	game.OnStop(a.bank.StopAll)
	return a, nil
}

// listSounds returns the regular files in dir. A missing directory means no
// sounds.
func listSounds(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("sounds: %v", err)
		return nil
	}
	names := []string{}
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func (a *NotAlone) Run() error {
	return a.shell.Run(a.step)
}

func (a *NotAlone) Close() error {
	a.bank.Close()
	return a.shell.Close()
}

func (a *NotAlone) step() error {
	if !a.game.Running() {
		return window.ErrStop
	}

	a.update()
	if err := a.render(); err != nil {
		return err
	}

	a.frame++
	if a.cfg.Frames > 0 && a.frame >= a.cfg.Frames {
		a.game.StopGame()
	}
	if adv, ok := a.device.(advancer); ok {
		adv.Advance(adv.Format().SampleRate / a.cfg.FPS)
	}
	a.sync.MaySleep()
	return nil
}

// sound returns the i-th preloaded clip or nil.
func (a *NotAlone) sound(i int) *sound.Clip {
	if i < 0 || i >= len(a.sounds) {
		return nil
	}
	return a.bank.Get(a.sounds[i])
}

func (a *NotAlone) play(i int) {
	if c := a.sound(i); c != nil {
		c.Play()
	}
}

func (a *NotAlone) update() {
	kb := a.keyboard
	if kb.Typed(input.KeyEscape) {
		a.game.StopGame()
		return
	}

	if kb.Typed(input.KeySpace) {
		a.play(0)
	}
	for k := input.Key1; k <= input.Key9; k++ {
		if kb.Typed(k) {
			a.play(int(k - input.Key1))
		}
	}
	if kb.Typed(input.KeyL) {
		if a.looping != nil {
			a.looping.Stop()
			a.looping = nil
		} else {
			a.looping = a.sound(0)
		}
	}
	if kb.Typed(input.KeyS) {
		a.bank.StopAll()
		a.looping = nil
	}
	if a.looping != nil {
		a.looping.Loop()
	}

	for _, click := range a.mouse.Clicks() {
		switch click.Button {
		case input.MouseButtonLeft:
			a.play(0)
		case input.MouseButtonRight:
			a.play(1)
		}
	}
}

func (a *NotAlone) render() error {
	bs := a.shell.CanvasBufferStrategy()
	dst := bs.DrawGraphics()

	draw.Draw(dst, dst.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	mx, my := a.mouse.Position()
	cursor := image.Rect(mx-8, my-8, mx+8, my+8).Intersect(dst.Bounds())
	draw.Draw(dst, cursor, image.NewUniform(cursorColor), image.Point{}, draw.Src)

	playing := 0
	for _, name := range a.bank.Names() {
		if a.bank.Get(name).State() == sound.Playing {
			playing++
		}
	}
	a.drawText(dst, 8, 16, fmt.Sprintf("%s  frame %d", a.cfg.Title, a.frame))
	a.drawText(dst, 8, 32, fmt.Sprintf("sounds %d  playing %d  loop %t", len(a.sounds), playing, a.looping != nil))

	return bs.Show()
}

func (a *NotAlone) drawText(dst draw.Image, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: a.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
