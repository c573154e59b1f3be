// Package shooter is the top-down demo itself: a player marker moved with
// the keyboard, turned toward the mouse pointer, and a couple of sound
// effects on mouse clicks.
package shooter

import (
	"github.com/spaghettifunk/topdown/config"
	"github.com/spaghettifunk/topdown/engine/assets"
	"github.com/spaghettifunk/topdown/engine/renderer"
)

// Player position is in window pixels with y growing downward. Velocity is
// the net of the movement keys currently held, in pixels per frame.
type Player struct {
	X, Y   int32
	VX, VY int32
}

// Pointer is the last position reported by a mouse motion event.
type Pointer struct {
	X, Y int32
}

type Viewport struct {
	Width, Height int32
}

type Stats struct {
	Frames  uint64
	Shots   uint64
	Reloads uint64
}

// State is everything the loop mutates between two frames.
type State struct {
	Player   Player
	Pointer  Pointer
	Viewport Viewport
	// Degrees clockwise, 0 pointing up. Recomputed by every Step.
	Facing float64
	Stats  Stats
}

// SoundPlayer starts a loaded sound and reports whether it did.
type SoundPlayer interface {
	PlaySound(id assets.AssetID) bool
}

// Library resolves loaded assets; lookups of missing assets return nil.
type Library interface {
	Texture(id assets.AssetID) *renderer.Texture
	Font(id assets.AssetID) *assets.BitmapFont
}

type style struct {
	ground      renderer.Color
	player      renderer.Color
	playerSize  float32
	monsterX    float32
	monsterY    float32
	monsterSize float32
	arrowOffset float64
	arrowSize   float32
	crossSize   float32
	showHUD     bool
}

type Shooter struct {
	State State

	bindings config.Bindings
	style    style
	sounds   SoundPlayer
	library  Library
	fps      func() float64
}

// New returns a shooter with the player centred in the viewport. cfg must
// have passed Validate.
func New(cfg config.Config) (*Shooter, error) {
	bindings, err := cfg.Controls.Bindings()
	if err != nil {
		return nil, err
	}
	w, h := int32(cfg.Window.Width), int32(cfg.Window.Height)
	s := &Shooter{
		State: State{
			Player:   Player{X: w / 2, Y: h / 2},
			Pointer:  Pointer{X: w / 2, Y: h / 2},
			Viewport: Viewport{Width: w, Height: h},
		},
		bindings: bindings,
		style: style{
			ground:      config.ColorOr(cfg.Scene.GroundColor, renderer.White),
			player:      config.ColorOr(cfg.Scene.PlayerColor, renderer.Black),
			playerSize:  float32(cfg.Scene.PlayerSize),
			monsterX:    float32(cfg.Scene.MonsterX),
			monsterY:    float32(cfg.Scene.MonsterY),
			monsterSize: float32(cfg.Scene.MonsterSize),
			arrowOffset: cfg.Scene.ArrowOffset,
			arrowSize:   float32(cfg.Scene.ArrowSize),
			crossSize:   float32(cfg.Scene.CrossSize),
			showHUD:     cfg.Scene.ShowHUD,
		},
	}
	return s, nil
}

// Attach hands the shooter its asset lookups, sound output and frame rate
// source. Any of them may be nil.
func (s *Shooter) Attach(library Library, sounds SoundPlayer, fps func() float64) {
	s.library = library
	s.sounds = sounds
	s.fps = fps
}
