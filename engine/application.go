package engine

import (
	"github.com/spaghettifunk/topdown/engine/assets"
	"github.com/spaghettifunk/topdown/engine/audio"
	"github.com/spaghettifunk/topdown/engine/core"
	"github.com/spaghettifunk/topdown/engine/renderer"
)

type ApplicationConfig struct {
	// Window starting position x axis. Negative centres the window.
	StartPosX int
	// Window starting position y axis. Negative centres the window.
	StartPosY int
	// Window width, also the horizontal extent of the playfield.
	StartWidth int
	// Window height, also the vertical extent of the playfield.
	StartHeight int
	// The application name used in windowing.
	Name     string
	VSync    bool
	LogLevel core.LogLevel
	// Frames per second the loop sleeps down to. Zero disables the limiter.
	TargetFPS  int
	ClearColor renderer.Color

	AudioFormat        audio.Format
	AudioBufferSamples int
	// When false a failure to open the audio device only disables sound.
	AudioRequired bool

	AssetDir    string
	Assets      []assets.Spec
	WatchAssets bool

	EventQueueSize int
}
