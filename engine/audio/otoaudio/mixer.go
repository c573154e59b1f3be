// Package otoaudio implements audio.Mixer on top of oto.
package otoaudio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/spaghettifunk/topdown/engine/audio"
	"github.com/spaghettifunk/topdown/engine/core"
)

var ErrNoFreeChannel = errors.New("no free mixing channel")

const (
	readyTimeout = 3 * time.Second
	pollInterval = 10 * time.Millisecond
)

type Mixer struct {
	ctx         *oto.Context
	format      audio.Format
	bufferBytes int
	maxChannels int32
	active      atomic.Int32
	closed      atomic.Bool
}

// New returns a mixer that plays at most maxChannels sounds at once.
func New(maxChannels int) *Mixer {
	if maxChannels < 1 {
		maxChannels = 1
	}
	return &Mixer{maxChannels: int32(maxChannels)}
}

func (m *Mixer) Open(format audio.Format, bufferSamples int) error {
	if err := format.Validate(); err != nil {
		return err
	}
	otoFormat := oto.FormatSignedInt16LE
	if format.BitDepth == 1 {
		otoFormat = oto.FormatUnsignedInt8
	}

	ctx, ready, err := oto.NewContext(format.SampleRate, format.Channels, otoFormat)
	if err != nil {
		return err
	}
	select {
	case <-ready:
	case <-time.After(readyTimeout):
		return fmt.Errorf("audio device not ready after %s", readyTimeout)
	}

	m.ctx = ctx
	m.format = format
	m.bufferBytes = bufferSamples * format.FrameSize()
	core.LogInfo("mixer open: %s, %d sample buffer, %d channels", format, bufferSamples, m.maxChannels)
	return nil
}

// Load decodes a WAV clip and converts it to the mixer format.
func (m *Mixer) Load(name string, r io.Reader) (*audio.Sound, error) {
	if m.ctx == nil {
		return nil, core.ErrNotInitialized
	}
	buf, err := audio.DecodeWAV(r)
	if err != nil {
		return nil, err
	}
	data, err := audio.Convert(buf, m.format)
	if err != nil {
		return nil, err
	}
	if src := audio.SourceFormat(buf); src != m.format || buf.SourceBitDepth > 16 {
		core.LogDebug("sound '%s' converted from %s (%d bit source) to %s", name, src, buf.SourceBitDepth, m.format)
	}
	return &audio.Sound{
		Name:   name,
		Format: m.format,
		PCM:    data,
	}, nil
}

// Play starts the clip on its own player and returns immediately.
func (m *Mixer) Play(sound *audio.Sound) error {
	if m.ctx == nil || m.closed.Load() {
		return core.ErrNotInitialized
	}
	if sound == nil || len(sound.PCM) == 0 {
		return fmt.Errorf("nothing to play")
	}
	if m.active.Add(1) > m.maxChannels {
		m.active.Add(-1)
		return ErrNoFreeChannel
	}

	go func() {
		defer m.active.Add(-1)
		player := m.ctx.NewPlayer(bytes.NewReader(sound.PCM))
		if m.bufferBytes > 0 {
			player.SetBufferSize(m.bufferBytes)
		}
		player.Play()
		m.wait(sound.Name, player)
	}()
	return nil
}

// playback is the part of oto.Player the wait loop needs.
type playback interface {
	IsPlaying() bool
	Err() error
	Close() error
}

// wait polls p until it finishes or the mixer is closed, then closes it.
func (m *Mixer) wait(name string, p playback) {
	for p.IsPlaying() && !m.closed.Load() {
		time.Sleep(pollInterval)
	}
	if err := p.Err(); err != nil {
		core.LogError("playback of '%s' failed: %s", name, err)
	}
	if err := p.Close(); err != nil {
		core.LogWarn("closing player for '%s': %s", name, err)
	}
}

func (m *Mixer) Free(sound *audio.Sound) {
	if sound == nil {
		return
	}
	sound.PCM = nil
}

// Close stops accepting new sounds and suspends the device. Clips still
// playing are closed by their goroutines on the next poll, not waited for.
func (m *Mixer) Close() error {
	if m.ctx == nil || m.closed.Swap(true) {
		return nil
	}
	if n := m.active.Load(); n > 0 {
		core.LogDebug("closing mixer with %d sounds still playing", n)
	}
	return m.ctx.Suspend()
}
