//go:build sdl2

package main

import (
	"fmt"
	"runtime"

	"github.com/ushitora-anqou/notalone/config"
	"github.com/ushitora-anqou/notalone/constant"
	"github.com/ushitora-anqou/notalone/sound"
	"github.com/ushitora-anqou/notalone/window"
)

const defaultAudio = "sdl"

func init() {
	// SDL's video calls must stay on the main thread.
	runtime.LockOSThread()
}

func newPlatform(cfg *config.Config) (window.Platform, func(), error) {
	// Initialize SDL
	if err := window.SDLInitialize(); err != nil {
		return nil, nil, err
	}
	return window.SDL{}, window.SDLQuit, nil
}

func frontendDevice(name string) (sound.Device, error) {
	if name != "sdl" {
		return nil, fmt.Errorf("%s: %w", name, sound.ErrNoDevice)
	}
	return sound.NewSDLDevice(constant.AUDIO_FREQ, constant.CHANNELS)
}
