package engine

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/topdown/engine/assets"
	"github.com/spaghettifunk/topdown/engine/audio"
	"github.com/spaghettifunk/topdown/engine/core"
	"github.com/spaghettifunk/topdown/engine/renderer"
	"github.com/spaghettifunk/topdown/engine/systems"
)

type callLog struct {
	calls []string
}

func (l *callLog) add(s string) { l.calls = append(l.calls, s) }

type fakePlatform struct {
	log        *callLog
	startupErr error
	// script[i] is pushed on the i-th pump.
	script [][]core.Event
	pumps  int
	swaps  int
	now    float64
}

func (p *fakePlatform) Startup(name string, x, y, w, h int, vsync bool) error {
	p.log.add("platform.startup")
	return p.startupErr
}
func (p *fakePlatform) PumpMessages(events *core.EventQueue) {
	if p.pumps < len(p.script) {
		for _, e := range p.script[p.pumps] {
			events.Push(e)
		}
	}
	p.pumps++
}
func (p *fakePlatform) SwapBuffers() { p.swaps++ }
func (p *fakePlatform) AbsoluteTime() float64 {
	p.now += 0.001
	return p.now
}
func (p *fakePlatform) Shutdown() error {
	p.log.add("platform.shutdown")
	return nil
}

type fakeRenderer struct {
	log       *callLog
	initErr   error
	next      uint32
	live      int
	frames    int
	quads     int
	unbalance int
}

func (r *fakeRenderer) Initialize(w, h int) error {
	r.log.add("renderer.initialize")
	return r.initErr
}
func (r *fakeRenderer) Shutdown() { r.log.add("renderer.shutdown") }
func (r *fakeRenderer) CreateTexture(name string, pixels *image.RGBA) (*renderer.Texture, error) {
	r.next++
	r.live++
	return &renderer.Texture{Handle: r.next, Name: name, Width: pixels.Rect.Dx(), Height: pixels.Rect.Dy()}, nil
}
func (r *fakeRenderer) DestroyTexture(t *renderer.Texture) {
	r.log.add("texture.destroy")
	r.live--
}
func (r *fakeRenderer) BeginFrame(clear renderer.Color) { r.unbalance++ }
func (r *fakeRenderer) DrawQuad(q renderer.Quad)        { r.quads++ }
func (r *fakeRenderer) DrawPolygon(p renderer.Polygon)  {}
func (r *fakeRenderer) EndFrame() {
	r.unbalance--
	r.frames++
}

type fakeMixer struct {
	log     *callLog
	openErr error
	live    int
}

func (m *fakeMixer) Open(format audio.Format, bufferSamples int) error {
	m.log.add("mixer.open")
	return m.openErr
}
func (m *fakeMixer) Load(name string, r io.Reader) (*audio.Sound, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.live++
	return &audio.Sound{Name: name, PCM: data}, nil
}
func (m *fakeMixer) Play(sound *audio.Sound) error { return nil }
func (m *fakeMixer) Free(sound *audio.Sound)       { m.live-- }
func (m *fakeMixer) Close() error {
	m.log.add("mixer.close")
	return nil
}

type harness struct {
	log      *callLog
	platform *fakePlatform
	renderer *fakeRenderer
	mixer    *fakeMixer
	game     *Game
	updates  int
	received []core.Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "player.png"), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "shoot.wav"), []byte("pcm"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := &callLog{}
	h := &harness{
		log:      l,
		platform: &fakePlatform{log: l},
		renderer: &fakeRenderer{log: l},
		mixer:    &fakeMixer{log: l},
	}
	h.game = &Game{
		ApplicationConfig: &ApplicationConfig{
			Name:          "test",
			StartWidth:    640,
			StartHeight:   480,
			AudioFormat:   audio.Format{SampleRate: 22050, Channels: 1, BitDepth: 2},
			AudioRequired: true,
			AssetDir:      dir,
			Assets: []assets.Spec{
				{ID: assets.Player, Path: "player.png", Required: true},
				{ID: assets.Ground, Path: "ground.png"},
				{ID: assets.Shoot, Path: "shoot.wav"},
			},
		},
		FnInitialize: func(sm *systems.SystemManager) error {
			l.add("game.initialize")
			return nil
		},
		FnOnEvent: func(e core.Event) bool {
			h.received = append(h.received, e)
			return true
		},
		FnUpdate: func(dt float64) error {
			h.updates++
			return nil
		},
		FnRender: func(b renderer.Backend, dt float64) error {
			b.DrawQuad(renderer.Quad{})
			return nil
		},
		FnShutdown: func() error {
			l.add("game.shutdown")
			return nil
		},
	}
	return h
}

func (h *harness) engine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(h.game, Backends{Platform: h.platform, Renderer: h.renderer, Mixer: h.mixer})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func equalCalls(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestEngineQuitWithinOneIteration(t *testing.T) {
	h := newHarness(t)
	h.platform.script = [][]core.Event{{{Type: core.EventQuit}}}
	e := h.engine(t)

	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.platform.pumps != 1 || h.updates != 1 || h.renderer.frames != 1 || h.platform.swaps != 1 {
		t.Errorf("pumps=%d updates=%d frames=%d swaps=%d, want one full iteration",
			h.platform.pumps, h.updates, h.renderer.frames, h.platform.swaps)
	}
	if h.renderer.unbalance != 0 {
		t.Errorf("BeginFrame/EndFrame unbalanced by %d", h.renderer.unbalance)
	}

	h.log.calls = nil
	if err := e.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	want := []string{"game.shutdown", "texture.destroy", "mixer.close", "renderer.shutdown", "platform.shutdown"}
	if !equalCalls(h.log.calls, want) {
		t.Errorf("shutdown order = %v, want %v", h.log.calls, want)
	}
	if h.renderer.live != 0 || h.mixer.live != 0 {
		t.Errorf("leaked %d textures and %d sounds", h.renderer.live, h.mixer.live)
	}
	if e.Stage() != StageExited {
		t.Errorf("stage = %s, want exited", e.Stage())
	}

	h.log.calls = nil
	if err := e.Shutdown(); err != nil || len(h.log.calls) != 0 {
		t.Errorf("second Shutdown released again: %v, %v", h.log.calls, err)
	}
}

func TestEngineEscapeRequestsQuit(t *testing.T) {
	h := newHarness(t)
	h.platform.script = [][]core.Event{
		{{Type: core.EventKeyPressed, Key: core.KEY_W}},
		{{Type: core.EventKeyPressed, Key: core.KEY_ESCAPE}},
	}
	e := h.engine(t)
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if h.updates != 2 {
		t.Errorf("updates = %d, want 2", h.updates)
	}
	for _, ev := range h.received {
		if ev.Key == core.KEY_ESCAPE {
			t.Error("escape must be consumed by the engine")
		}
	}
	e.Shutdown()
}

func TestEngineFiltersRepeatsAndOrphanReleases(t *testing.T) {
	h := newHarness(t)
	h.platform.script = [][]core.Event{
		{
			{Type: core.EventKeyReleased, Key: core.KEY_S},
			{Type: core.EventKeyPressed, Key: core.KEY_W},
			{Type: core.EventKeyPressed, Key: core.KEY_W},
			{Type: core.EventMouseMoved, X: 10, Y: 20},
			{Type: core.EventMouseMoved, X: 10, Y: 20},
		},
		{{Type: core.EventKeyReleased, Key: core.KEY_W}, {Type: core.EventQuit}},
	}
	e := h.engine(t)
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	e.Shutdown()

	want := []core.EventType{core.EventKeyPressed, core.EventMouseMoved, core.EventMouseMoved, core.EventKeyReleased}
	if len(h.received) != len(want) {
		t.Fatalf("game received %v", h.received)
	}
	for i, ev := range h.received {
		if ev.Type != want[i] {
			t.Errorf("event %d = %s, want %s", i, ev.Type, want[i])
		}
	}
}

func TestEngineStopsOnContextCancel(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.game.FnUpdate = func(dt float64) error {
		h.updates++
		if h.updates == 3 {
			cancel()
		}
		return nil
	}
	e := h.engine(t)
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if h.updates != 3 || h.renderer.frames != 3 {
		t.Errorf("updates=%d frames=%d, want the cancelling frame to complete", h.updates, h.renderer.frames)
	}
	if e.IsRunning() {
		t.Error("run flag still set after Run returned")
	}
	e.Shutdown()
}

func TestEngineStopFromAnotherGoroutine(t *testing.T) {
	h := newHarness(t)
	var e *Engine
	h.game.FnUpdate = func(dt float64) error {
		h.updates++
		if h.updates == 2 {
			done := make(chan struct{})
			go func() {
				e.Stop()
				close(done)
			}()
			<-done
		}
		return nil
	}
	e = h.engine(t)
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if h.updates != 2 || h.platform.swaps != 2 {
		t.Errorf("updates=%d swaps=%d, want 2", h.updates, h.platform.swaps)
	}
	e.Shutdown()
}

func TestEngineFatalInitReleasesOnlyAcquired(t *testing.T) {
	h := newHarness(t)
	h.renderer.initErr = errors.New("no GL")
	e := h.engine(t)

	err := e.Initialize()
	if !errors.Is(err, core.ErrRendererStartup) {
		t.Fatalf("Initialize = %v, want ErrRendererStartup", err)
	}
	if err := e.Run(context.Background()); !errors.Is(err, core.ErrNotInitialized) {
		t.Errorf("Run after failed init = %v, want ErrNotInitialized", err)
	}

	h.log.calls = nil
	if err := e.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if !equalCalls(h.log.calls, []string{"platform.shutdown"}) {
		t.Errorf("cleanup = %v, want only the platform released", h.log.calls)
	}
	if e.Stage() != StageExited {
		t.Errorf("stage = %s", e.Stage())
	}
}

func TestEngineRequiredAssetIsFatal(t *testing.T) {
	h := newHarness(t)
	h.game.ApplicationConfig.Assets = append(h.game.ApplicationConfig.Assets,
		assets.Spec{ID: assets.Monster, Path: "missing.png", Required: true})
	e := h.engine(t)

	if err := e.Initialize(); !errors.Is(err, core.ErrRequiredAsset) {
		t.Fatalf("Initialize = %v, want ErrRequiredAsset", err)
	}
	h.log.calls = nil
	e.Shutdown()
	want := []string{"texture.destroy", "mixer.close", "renderer.shutdown", "platform.shutdown"}
	if !equalCalls(h.log.calls, want) {
		t.Errorf("cleanup = %v, want %v", h.log.calls, want)
	}
	if h.renderer.live != 0 || h.mixer.live != 0 {
		t.Errorf("leaked %d textures and %d sounds", h.renderer.live, h.mixer.live)
	}
}

func TestEngineOptionalAudio(t *testing.T) {
	h := newHarness(t)
	h.mixer.openErr = errors.New("no device")

	e := h.engine(t)
	if err := e.Initialize(); !errors.Is(err, core.ErrAudioStartup) {
		t.Fatalf("required audio: Initialize = %v, want ErrAudioStartup", err)
	}
	e.Shutdown()

	h = newHarness(t)
	h.mixer.openErr = errors.New("no device")
	h.game.ApplicationConfig.AudioRequired = false
	e = h.engine(t)
	if err := e.Initialize(); err != nil {
		t.Fatalf("optional audio: Initialize = %v", err)
	}
	if e.Systems().Mixer != nil {
		t.Error("mixer must be nil when audio is disabled")
	}
	if e.Systems().Assets.Sound(assets.Shoot) != nil {
		t.Error("sounds cannot load without a mixer")
	}
	h.log.calls = nil
	e.Shutdown()
	for _, c := range h.log.calls {
		if c == "mixer.close" {
			t.Error("a mixer that never opened must not be closed")
		}
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	h := newHarness(t)
	h.game.ApplicationConfig.StartWidth = 0
	if _, err := New(h.game, Backends{Platform: h.platform, Renderer: h.renderer}); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("New = %v, want ErrInvalidConfig", err)
	}
}
