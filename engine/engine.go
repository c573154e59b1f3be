package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spaghettifunk/topdown/engine/assets"
	"github.com/spaghettifunk/topdown/engine/audio"
	"github.com/spaghettifunk/topdown/engine/core"
	"github.com/spaghettifunk/topdown/engine/renderer"
	"github.com/spaghettifunk/topdown/engine/systems"
)

type Stage uint32

const (
	// Engine is in an uninitialized state
	StageUninitialized Stage = iota
	// Engine is acquiring its subsystems
	StageInitializing
	// Engine is looping
	StageRunning
	// Engine is releasing its subsystems
	StageShuttingDown
	// Everything acquired has been released
	StageExited
)

func (s Stage) String() string {
	switch s {
	case StageUninitialized:
		return "uninitialized"
	case StageInitializing:
		return "initializing"
	case StageRunning:
		return "running"
	case StageShuttingDown:
		return "shutting down"
	case StageExited:
		return "exited"
	}
	return fmt.Sprintf("stage(%d)", uint32(s))
}

// Platform is the window and OS input layer.
type Platform interface {
	Startup(applicationName string, x, y, width, height int, vsync bool) error
	PumpMessages(events *core.EventQueue)
	SwapBuffers()
	// AbsoluteTime returns seconds on a monotonic clock.
	AbsoluteTime() float64
	Shutdown() error
}

// Backends are the concrete subsystems the engine drives.
type Backends struct {
	Platform Platform
	Renderer renderer.Backend
	Mixer    audio.Mixer
}

type Engine struct {
	stage        atomic.Uint32
	isRunning    atomic.Bool
	gameInstance *Game
	config       *ApplicationConfig
	backends     Backends

	events  *core.EventQueue
	bus     *core.EventBus
	input   *core.InputState
	clock   *core.Clock
	metrics *core.Metrics
	ids     *core.Identifiers
	assets  *assets.Table
	watcher *assets.Watcher
	systems *systems.SystemManager

	session string
	log     *log.Logger

	platformUp  bool
	rendererUp  bool
	mixerOpen   bool
	gameStarted bool
	lastTime    float64
}

func New(g *Game, b Backends) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("%w: game without application config", core.ErrInvalidConfig)
	}
	if b.Platform == nil || b.Renderer == nil {
		return nil, fmt.Errorf("%w: platform and renderer backends are required", core.ErrInvalidConfig)
	}
	cfg := g.ApplicationConfig
	if cfg.StartWidth <= 0 || cfg.StartHeight <= 0 {
		return nil, fmt.Errorf("%w: window size %dx%d", core.ErrInvalidConfig, cfg.StartWidth, cfg.StartHeight)
	}

	queueSize := cfg.EventQueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	session := uuid.NewString()

	return &Engine{
		gameInstance: g,
		config:       cfg,
		backends:     b,
		events:       core.NewEventQueue(queueSize),
		bus:          core.NewEventBus(),
		input:        core.NewInputState(),
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		ids:          core.NewIdentifiers(),
		session:      session,
		log:          core.LogWith("session", session[:8]),
	}, nil
}

func (e *Engine) Stage() Stage {
	return Stage(e.stage.Load())
}

func (e *Engine) setStage(s Stage) {
	e.stage.Store(uint32(s))
	e.log.Debug("engine stage", "stage", s)
}

// Systems returns the subsystems handed to the game, nil before Initialize.
func (e *Engine) Systems() *systems.SystemManager {
	return e.systems
}

// Initialize acquires every subsystem in order. Any error is fatal; whatever
// was acquired before it is released by Shutdown.
func (e *Engine) Initialize() error {
	if e.Stage() != StageUninitialized {
		return fmt.Errorf("engine already initialized (stage %s)", e.Stage())
	}
	e.setStage(StageInitializing)
	cfg := e.config

	if err := e.backends.Platform.Startup(cfg.Name, cfg.StartPosX, cfg.StartPosY, cfg.StartWidth, cfg.StartHeight, cfg.VSync); err != nil {
		return fmt.Errorf("%w: %w", core.ErrPlatformStartup, err)
	}
	e.platformUp = true

	if err := e.backends.Renderer.Initialize(cfg.StartWidth, cfg.StartHeight); err != nil {
		return fmt.Errorf("%w: %w", core.ErrRendererStartup, err)
	}
	e.rendererUp = true
	e.log.Info("video ready", "width", cfg.StartWidth, "height", cfg.StartHeight)

	mixer := e.backends.Mixer
	if mixer != nil {
		if err := mixer.Open(cfg.AudioFormat, cfg.AudioBufferSamples); err != nil {
			if cfg.AudioRequired {
				return fmt.Errorf("%w: %w", core.ErrAudioStartup, err)
			}
			e.log.Warn("audio disabled", "err", err)
			mixer = nil
		} else {
			e.mixerOpen = true
			e.log.Info("audio ready", "format", cfg.AudioFormat.String())
		}
	} else if cfg.AudioRequired {
		return fmt.Errorf("%w: no mixer backend", core.ErrAudioStartup)
	}

	e.assets = assets.NewTable(cfg.AssetDir, e.backends.Renderer, mixer, e.ids)
	if _, err := e.assets.Load(cfg.Assets); err != nil {
		return err
	}

	if cfg.WatchAssets {
		w, err := assets.NewWatcher(cfg.AssetDir)
		if err != nil {
			e.log.Warn("asset watcher not started", "dir", cfg.AssetDir, "err", err)
		} else {
			e.watcher = w
		}
	}

	if _, err := e.bus.Register(core.EventQuit, e.onQuit); err != nil {
		return err
	}
	if _, err := e.bus.Register(core.EventKeyPressed, e.onKey); err != nil {
		return err
	}
	if e.gameInstance.FnOnEvent != nil {
		for _, t := range []core.EventType{
			core.EventKeyPressed, core.EventKeyReleased,
			core.EventButtonPressed, core.EventButtonReleased,
			core.EventMouseMoved, core.EventMouseWheel, core.EventResized,
		} {
			if _, err := e.bus.Register(t, e.gameInstance.FnOnEvent); err != nil {
				return err
			}
		}
	}

	e.systems = &systems.SystemManager{
		Assets:   e.assets,
		Renderer: e.backends.Renderer,
		Input:    e.input,
		Metrics:  e.metrics,
		Mixer:    mixer,
	}
	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e.systems); err != nil {
			return fmt.Errorf("game initialize: %w", err)
		}
	}
	e.gameStarted = true
	return nil
}

// Run loops until Stop is called, a quit event arrives or ctx is done. The
// run flag and ctx are only looked at between frames.
func (e *Engine) Run(ctx context.Context) error {
	if e.Stage() != StageInitializing || !e.gameStarted {
		return core.ErrNotInitialized
	}
	e.isRunning.Store(true)
	e.setStage(StageRunning)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var targetFrameSeconds float64
	if e.config.TargetFPS > 0 {
		targetFrameSeconds = 1.0 / float64(e.config.TargetFPS)
	}

	var runErr error
	for e.isRunning.Load() {
		if err := ctx.Err(); err != nil {
			e.log.Info("termination requested, leaving main loop", "cause", context.Cause(ctx))
			break
		}
		frameStartTime := e.backends.Platform.AbsoluteTime()

		e.backends.Platform.PumpMessages(e.events)
		e.events.Drain(e.dispatch)

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				runErr = fmt.Errorf("game update: %w", err)
				break
			}
		}

		e.backends.Renderer.BeginFrame(e.config.ClearColor)
		if e.gameInstance.FnRender != nil {
			if err := e.gameInstance.FnRender(e.backends.Renderer, delta); err != nil {
				e.backends.Renderer.EndFrame()
				runErr = fmt.Errorf("game render: %w", err)
				break
			}
		}
		e.backends.Renderer.EndFrame()
		e.backends.Platform.SwapBuffers()

		e.metrics.Update(delta)

		// Input state is copied last so the next frame sees this one as previous.
		e.input.Update()
		e.lastTime = currentTime

		if targetFrameSeconds > 0 {
			remaining := targetFrameSeconds - (e.backends.Platform.AbsoluteTime() - frameStartTime)
			if remaining > 0 {
				time.Sleep(time.Duration(remaining * float64(time.Second)))
			}
		}
	}
	e.isRunning.Store(false)
	e.clock.Stop()

	if runErr != nil {
		e.log.Error("main loop aborted", "err", runErr)
	}
	return runErr
}

// Stop clears the run flag. It is safe to call from any goroutine; the loop
// exits before starting its next frame.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

func (e *Engine) IsRunning() bool {
	return e.isRunning.Load()
}

// Shutdown releases, in reverse order, only what Initialize acquired. Calling
// it again after it completed does nothing.
func (e *Engine) Shutdown() error {
	switch e.Stage() {
	case StageExited, StageShuttingDown:
		return nil
	}
	e.isRunning.Store(false)
	e.setStage(StageShuttingDown)

	var errs []error
	if e.gameStarted && e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			errs = append(errs, fmt.Errorf("game shutdown: %w", err))
		}
	}
	if e.assets != nil {
		e.assets.Release()
	}
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("asset watcher: %w", err))
		}
		e.watcher = nil
	}
	if e.mixerOpen {
		if err := e.backends.Mixer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("audio: %w", err))
		}
		e.mixerOpen = false
	}
	if e.rendererUp {
		e.backends.Renderer.Shutdown()
		e.rendererUp = false
	}
	e.bus.Shutdown()
	if e.platformUp {
		if err := e.backends.Platform.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("platform: %w", err))
		}
		e.platformUp = false
	}

	if leaked := e.ids.Live(); leaked > 0 {
		e.log.Warn("handles still alive after shutdown", "count", leaked)
	}
	e.setStage(StageExited)
	e.log.Info("shutdown complete")
	return errors.Join(errs...)
}

func (e *Engine) dispatch(ev core.Event) {
	// Repeats and releases of keys never seen down change nothing.
	if !e.input.Process(ev) {
		return
	}
	switch ev.Type {
	case core.EventKeyPressed, core.EventKeyReleased:
		e.log.Debug("key", "event", ev.Type, "code", fmt.Sprintf("%#x", uint16(ev.Key)))
	case core.EventButtonPressed, core.EventButtonReleased:
		e.log.Debug("mouse", "event", ev.Type, "button", ev.Button, "x", ev.X, "y", ev.Y)
	}
	e.bus.Fire(ev)
}

func (e *Engine) onQuit(ev core.Event) bool {
	e.log.Info("quit requested, shutting down")
	e.Stop()
	return true
}

func (e *Engine) onKey(ev core.Event) bool {
	if ev.Key == core.KEY_ESCAPE {
		// Technically firing an event to itself, but there may be other listeners.
		e.events.Push(core.Event{Type: core.EventQuit})
		return true
	}
	return false
}
