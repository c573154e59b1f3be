package shooter

import (
	"github.com/spaghettifunk/topdown/config"
	"github.com/spaghettifunk/topdown/engine"
	"github.com/spaghettifunk/topdown/engine/core"
	"github.com/spaghettifunk/topdown/engine/renderer"
	"github.com/spaghettifunk/topdown/engine/systems"
)

// ApplicationConfig translates a validated configuration for the engine.
func ApplicationConfig(cfg config.Config) (*engine.ApplicationConfig, error) {
	specs, err := cfg.AssetSpecs()
	if err != nil {
		return nil, err
	}
	level, err := core.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return &engine.ApplicationConfig{
		StartPosX:          cfg.Window.X,
		StartPosY:          cfg.Window.Y,
		StartWidth:         cfg.Window.Width,
		StartHeight:        cfg.Window.Height,
		Name:               cfg.Window.Title,
		VSync:              cfg.Window.VSync,
		LogLevel:           level,
		TargetFPS:          cfg.Window.TargetFPS,
		ClearColor:         config.ColorOr(cfg.Scene.ClearColor, renderer.Black),
		AudioFormat:        cfg.AudioFormat(),
		AudioBufferSamples: cfg.Audio.BufferSamples,
		AudioRequired:      cfg.Audio.Required,
		AssetDir:           cfg.Assets.Dir,
		Assets:             specs,
		WatchAssets:        cfg.Assets.Watch,
	}, nil
}

// NewGame wires a Shooter into the engine hooks.
func NewGame(cfg config.Config) (*engine.Game, *Shooter, error) {
	app, err := ApplicationConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	s, err := New(cfg)
	if err != nil {
		return nil, nil, err
	}

	g := &engine.Game{
		ApplicationConfig: app,
		State:             s,
		FnInitialize: func(sm *systems.SystemManager) error {
			s.Attach(sm.Assets, sm, sm.Metrics.FPS)
			core.LogInfo("player ready at (%d, %d) in a %dx%d viewport",
				s.State.Player.X, s.State.Player.Y, s.State.Viewport.Width, s.State.Viewport.Height)
			return nil
		},
		FnOnEvent: s.HandleEvent,
		FnUpdate: func(deltaTime float64) error {
			s.Step()
			return nil
		},
		FnRender: func(backend renderer.Backend, deltaTime float64) error {
			s.Render(backend)
			return nil
		},
		FnShutdown: func() error {
			st := s.State.Stats
			core.LogInfo("session over after %d frames: %d shots, %d reloads", st.Frames, st.Shots, st.Reloads)
			return nil
		},
	}
	return g, s, nil
}
