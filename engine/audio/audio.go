package audio

import (
	"fmt"
	"io"
)

// Format describes interleaved little-endian PCM.
type Format struct {
	SampleRate int
	Channels   int
	// Bytes per sample per channel: 1 (unsigned 8-bit) or 2 (signed 16-bit).
	BitDepth int
}

func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", f.SampleRate)
	}
	if f.Channels != 1 && f.Channels != 2 {
		return fmt.Errorf("only mono and stereo are supported, got %d channels", f.Channels)
	}
	if f.BitDepth != 1 && f.BitDepth != 2 {
		return fmt.Errorf("only 8 and 16 bit samples are supported, got %d bytes", f.BitDepth)
	}
	return nil
}

// FrameSize is the number of bytes of one sample across all channels.
func (f Format) FrameSize() int {
	return f.Channels * f.BitDepth
}

func (f Format) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %d bit", f.SampleRate, f.Channels, f.BitDepth*8)
}

// Sound is a decoded clip already converted to the mixer's format.
type Sound struct {
	ID     uint32
	Name   string
	Format Format
	PCM    []byte
}

// Mixer plays sounds without blocking the caller. Play hands the clip to the
// backend and returns; completion is never reported back.
type Mixer interface {
	Open(format Format, bufferSamples int) error
	Load(name string, r io.Reader) (*Sound, error)
	Play(sound *Sound) error
	Free(sound *Sound)
	Close() error
}
