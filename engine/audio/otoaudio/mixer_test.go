package otoaudio

import (
	"bytes"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spaghettifunk/topdown/engine/audio"
	"github.com/spaghettifunk/topdown/engine/core"
)

type fakePlayer struct {
	playing atomic.Bool
	closed  atomic.Bool
	err     error
}

func (p *fakePlayer) IsPlaying() bool { return p.playing.Load() }
func (p *fakePlayer) Err() error      { return p.err }
func (p *fakePlayer) Close() error {
	p.closed.Store(true)
	return nil
}

func waitAsync(m *Mixer, p playback) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		m.wait("shoot", p)
		close(done)
	}()
	return done
}

func TestWaitStopsWhenMixerCloses(t *testing.T) {
	m := New(2)
	p := &fakePlayer{}
	p.playing.Store(true)

	done := waitAsync(m, p)
	select {
	case <-done:
		t.Fatal("wait returned while the clip was still playing")
	case <-time.After(5 * pollInterval):
	}

	m.closed.Store(true)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait kept polling after the mixer was closed")
	}
	if !p.closed.Load() {
		t.Error("player was not closed")
	}
}

func TestWaitReturnsWhenClipEnds(t *testing.T) {
	m := New(2)
	p := &fakePlayer{err: errors.New("underrun")}
	p.playing.Store(true)

	done := waitAsync(m, p)
	p.playing.Store(false)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait did not return after playback ended")
	}
	if !p.closed.Load() {
		t.Error("player was not closed")
	}
}

func TestMixerRequiresOpen(t *testing.T) {
	m := New(0)
	if m.maxChannels != 1 {
		t.Errorf("maxChannels = %d, want 1 for a non-positive limit", m.maxChannels)
	}
	if _, err := m.Load("shoot", bytes.NewReader(nil)); !errors.Is(err, core.ErrNotInitialized) {
		t.Errorf("Load before Open: err = %v, want ErrNotInitialized", err)
	}
	if err := m.Play(&audio.Sound{Name: "shoot", PCM: []byte{0, 0}}); !errors.Is(err, core.ErrNotInitialized) {
		t.Errorf("Play before Open: err = %v, want ErrNotInitialized", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close before Open: %v", err)
	}
}
