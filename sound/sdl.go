//go:build sdl2

package sound

// typedef unsigned char Uint8;
// void OnSoundPlayback(void *userdata, Uint8 *stream, int len);
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/mattn/go-pointer"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/ushitora-anqou/notalone/constant"
	"github.com/ushitora-anqou/notalone/decode"
)

// SDLDevice mixes every line in software on SDL's audio callback thread.
// sdl.Init with INIT_AUDIO must have been called.
type SDLDevice struct {
	mixer    *mixer
	id       sdl.AudioDeviceID
	userdata unsafe.Pointer
}

func NewSDLDevice(sampleRate, channels int) (*SDLDevice, error) {
	dev := &SDLDevice{mixer: newMixer(sampleRate, channels)}
	dev.userdata = pointer.Save(dev)

	id, err := sdl.OpenAudioDevice(
		"",
		false,
		&sdl.AudioSpec{
			Freq:     int32(sampleRate),
			Format:   sdl.AUDIO_S16LSB,
			Channels: uint8(channels),
			Samples:  constant.AUDIO_SAMPLES,
			Callback: sdl.AudioCallback(C.OnSoundPlayback),
			UserData: dev.userdata,
		},
		nil,
		0,
	)
	if err != nil {
		pointer.Unref(dev.userdata)
		return nil, fmt.Errorf("open SDL audio device: %w", err)
	}
	sdl.PauseAudioDevice(id, false)
	dev.id = id

	return dev, nil
}

func (dev *SDLDevice) Open(stream *decode.Stream) (Line, error) {
	return dev.mixer.open(stream), nil
}

func (dev *SDLDevice) Close() {
	sdl.CloseAudioDevice(dev.id)
	pointer.Unref(dev.userdata)
}

//export OnSoundPlayback
func OnSoundPlayback(userdata unsafe.Pointer, stream *C.Uint8, length C.int) {
	buf := unsafe.Slice((*int16)(unsafe.Pointer(stream)), int(length)/2)
	dev := pointer.Restore(userdata).(*SDLDevice)
	dev.mixer.mix(buf)
}
