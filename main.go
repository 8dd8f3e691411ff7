package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/ushitora-anqou/notalone/asset"
	"github.com/ushitora-anqou/notalone/config"
	"github.com/ushitora-anqou/notalone/constant"
	"github.com/ushitora-anqou/notalone/decode"
	"github.com/ushitora-anqou/notalone/failure"
	"github.com/ushitora-anqou/notalone/sound"
	"github.com/ushitora-anqou/notalone/util"
)

// openDevice opens the configured audio device. A device that cannot be
// opened is not fatal: the game runs muted on a headless device.
func openDevice(name string) sound.Device {
	if name == "auto" {
		name = defaultAudio
	}

	var dev sound.Device
	var err error
	switch name {
	case "oto":
		dev, err = sound.NewOtoDevice(constant.AUDIO_FREQ, constant.CHANNELS)
	case "beep":
		dev, err = sound.NewBeepDevice(constant.AUDIO_FREQ)
	case "none":
		return sound.NewHeadlessDevice(constant.AUDIO_FREQ, constant.CHANNELS)
	default:
		dev, err = frontendDevice(name)
	}
	if err != nil {
		log.Printf("audio: %s: %v: sounds are muted", name, err)
		return sound.NewHeadlessDevice(constant.AUDIO_FREQ, constant.CHANNELS)
	}
	util.Trace("audio: using %s", name)
	return dev
}

func run() error {
	// Parse options and arguments
	cfg, err := config.Parse(os.Args[1:], os.Getenv)
	if err != nil {
		return fmt.Errorf("%v\nUsage: %s [OPTIONS] [SOUND...]", err, os.Args[0])
	}
	if cfg.Trace {
		util.EnableTrace()
	}
	if util.TraceEnabled() {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}
	if filename := cfg.CPUProfile; filename != "" {
		file, err := os.Create(filename)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := pprof.StartCPUProfile(file); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	platform, cleanup, err := newPlatform(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	device := openDevice(cfg.Audio)
	if closer, ok := device.(interface{ Close() }); ok {
		defer closer.Close()
	}

	game, err := NewNotAlone(platform, sound.Config{
		Resolver: asset.NewDir(cfg.SoundDir),
		Decoders: decode.NewRegistry(),
		Device:   device,
		Sink:     failure.LogSink{Prefix: "sound: "},
	}, cfg)
	if err != nil {
		return err
	}
	defer game.Close()

	return game.Run()
}

func main() {
	err := run()
	if err != nil {
		log.Fatal(err)
	}
}
