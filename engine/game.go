package engine

import (
	"github.com/spaghettifunk/topdown/engine/core"
	"github.com/spaghettifunk/topdown/engine/renderer"
	"github.com/spaghettifunk/topdown/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnOnEvent         core.FnOnEvent
	FnUpdate          Update
	FnRender          Render
	FnShutdown        Shutdown
}

type Initialize func(sm *systems.SystemManager) error
type Update func(deltaTime float64) error
type Render func(backend renderer.Backend, deltaTime float64) error
type Shutdown func() error
