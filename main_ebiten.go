//go:build ebiten && !sdl2

package main

import (
	"fmt"

	"github.com/ushitora-anqou/notalone/config"
	"github.com/ushitora-anqou/notalone/constant"
	"github.com/ushitora-anqou/notalone/sound"
	"github.com/ushitora-anqou/notalone/window"
)

const defaultAudio = "ebiten"

func newPlatform(cfg *config.Config) (window.Platform, func(), error) {
	if err := window.EbitenInitialize(cfg.FPS); err != nil {
		return nil, nil, err
	}
	return window.Ebiten{}, func() {}, nil
}

func frontendDevice(name string) (sound.Device, error) {
	if name != "ebiten" {
		return nil, fmt.Errorf("%s: %w", name, sound.ErrNoDevice)
	}
	return sound.NewEbitenDevice(constant.AUDIO_FREQ), nil
}
