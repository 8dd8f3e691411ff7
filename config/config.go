// Package config collects the executable's options from the command line
// and the environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ushitora-anqou/notalone/constant"
)

var ErrUsage = errors.New("invalid usage")

var audioDevices = []string{"auto", "oto", "beep", "sdl", "ebiten", "none"}

type Config struct {
	Title         string
	Width, Height int
	Buffers       int
	FPS           int
	SoundDir      string
	// Audio names the playback device; "auto" lets the front end choose.
	Audio string
	// Window selects the platform of the default front end.
	Window string
	// Frames stops the game after that many frames when positive.
	Frames int
	// Sounds lists the clips to preload; empty means every file in SoundDir.
	Sounds []string

	Trace      bool
	CPUProfile string
}

// Parse reads args (without the program name) and the NOTALONE_*
// environment variables through getenv.
func Parse(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("notalone", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Title, "title", constant.WINDOW_TITLE, "window title")
	fs.IntVar(&cfg.Width, "width", constant.WINDOW_WIDTH, "surface width in pixels")
	fs.IntVar(&cfg.Height, "height", constant.WINDOW_HEIGHT, "surface height in pixels")
	fs.IntVar(&cfg.Buffers, "buffers", constant.NUM_BUFFERS, "number of frame buffers")
	fs.IntVar(&cfg.FPS, "fps", constant.TARGET_FPS, "target frames per second")
	fs.StringVar(&cfg.SoundDir, "sounds", constant.SOUND_DIR, "directory holding the sound clips")
	fs.StringVar(&cfg.Audio, "audio", "auto", "audio device: "+strings.Join(audioDevices, "|"))
	fs.StringVar(&cfg.Window, "window", "terminal", "window platform: terminal|headless")
	fs.IntVar(&cfg.Frames, "frames", 0, "stop after this many frames (0: run until closed)")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	cfg.Sounds = fs.Args()

	cfg.Trace = getenv("NOTALONE_TRACE") == "1"
	cfg.CPUProfile = getenv("NOTALONE_CPUPROFILE")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrUsage, cfg.Width, cfg.Height)
	}
	if cfg.Buffers < 1 {
		return fmt.Errorf("%w: %d buffers", ErrUsage, cfg.Buffers)
	}
	if cfg.FPS <= 0 {
		return fmt.Errorf("%w: %d fps", ErrUsage, cfg.FPS)
	}
	if cfg.Frames < 0 {
		return fmt.Errorf("%w: %d frames", ErrUsage, cfg.Frames)
	}
	if !contains(audioDevices, cfg.Audio) {
		return fmt.Errorf("%w: unknown audio device %q", ErrUsage, cfg.Audio)
	}
	if cfg.Window != "terminal" && cfg.Window != "headless" {
		return fmt.Errorf("%w: unknown window platform %q", ErrUsage, cfg.Window)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
