// Package soundtest builds in-memory sound resources for tests.
package soundtest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// WAV encodes interleaved 16-bit samples as a canonical 44-byte-header
// RIFF/WAVE file.
func WAV(sampleRate, channels int, samples []int16) []byte {
	data := new(bytes.Buffer)
	for _, s := range samples {
		binary.Write(data, binary.LittleEndian, s)
	}
	return RawWAV(sampleRate, channels, 16, data.Bytes())
}

// WAV8 encodes unsigned 8-bit samples.
func WAV8(sampleRate, channels int, samples []uint8) []byte {
	return RawWAV(sampleRate, channels, 8, samples)
}

// RawWAV wraps already encoded PCM bytes in a WAV header.
func RawWAV(sampleRate, channels, bitsPerSample int, pcm []byte) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bits/8)
	blockAlign := numChannels * (bits / 8)
	dataSize := uint32(len(pcm))

	// RIFF header
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	// data chunk
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(pcm)

	return buf.Bytes()
}

// Sine returns frames of a sine tone, duplicated on every channel.
func Sine(sampleRate, channels, frames int, frequency float64) []int16 {
	out := make([]int16, frames*channels)
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(sampleRate)
		v := int16(math.Sin(2*math.Pi*frequency*t) * 16000)
		for ch := 0; ch < channels; ch++ {
			out[i*channels+ch] = v
		}
	}
	return out
}

// Ramp returns frames whose value on every channel is the frame index.
func Ramp(channels, frames int) []int16 {
	out := make([]int16, frames*channels)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			out[i*channels+ch] = int16(i)
		}
	}
	return out
}
