package decode

// Convert returns s resampled to sampleRate and remixed to channels, still
// in 16-bit little-endian PCM. Resampling is linear; channel remixing
// averages down to mono and duplicates up from mono. s itself is not
// modified and is returned as is when the formats already match.
func Convert(s *Stream, sampleRate, channels int) *Stream {
	src := s.Format
	if src.SampleRate == sampleRate && src.Channels == channels {
		return s
	}

	dst := Canonical(sampleRate, channels)
	inFrames := s.Frames()
	outFrames := int((int64(inFrames)*int64(sampleRate) + int64(src.SampleRate) - 1) / int64(src.SampleRate))
	out := make([]byte, outFrames*dst.FrameSize())

	step := float64(src.SampleRate) / float64(sampleRate)
	for j := 0; j < outFrames; j++ {
		pos := float64(j) * step
		i0 := int(pos)
		frac := pos - float64(i0)
		i1 := i0 + 1
		if i1 >= inFrames {
			i1 = inFrames - 1
		}
		if i0 >= inFrames {
			i0 = inFrames - 1
		}
		for ch := 0; ch < channels; ch++ {
			a := remix(s, i0, ch, channels)
			b := remix(s, i1, ch, channels)
			putSample(out, j*channels+ch, int16(a+(b-a)*frac))
		}
	}
	return &Stream{Format: dst, Data: out}
}

// remix reads output channel ch of a frame for a target channel count.
func remix(s *Stream, frame, ch, channels int) float64 {
	srcCh := s.Format.Channels
	switch {
	case srcCh == channels:
		return float64(s.Sample(frame, ch))
	case channels == 1:
		sum := 0
		for c := 0; c < srcCh; c++ {
			sum += int(s.Sample(frame, c))
		}
		return float64(sum) / float64(srcCh)
	default:
		return float64(s.Sample(frame, ch%srcCh))
	}
}
