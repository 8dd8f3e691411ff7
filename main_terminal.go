//go:build !sdl2 && !ebiten

package main

import (
	"fmt"

	"github.com/ushitora-anqou/notalone/config"
	"github.com/ushitora-anqou/notalone/sound"
	"github.com/ushitora-anqou/notalone/window"
)

const defaultAudio = "oto"

func newPlatform(cfg *config.Config) (window.Platform, func(), error) {
	if cfg.Window == "headless" {
		return window.NewHeadless(), func() {}, nil
	}
	return window.NewTerminal(nil), func() {}, nil
}

func frontendDevice(name string) (sound.Device, error) {
	return nil, fmt.Errorf("%s: %w", name, sound.ErrNoDevice)
}
