package shooter

import (
	"github.com/spaghettifunk/topdown/engine/assets"
	"github.com/spaghettifunk/topdown/engine/core"
)

// HandleEvent applies one input event and reports whether it was used.
//
// Movement keys add to the velocity on press and take the same amount back
// on release: up -1 and down +1 on y, left -1 and right +1 on x. A press and
// its release always cancel, so velocity only depends on the keys held.
func (s *Shooter) HandleEvent(e core.Event) bool {
	switch e.Type {
	case core.EventKeyPressed:
		return s.move(e.Key, 1)
	case core.EventKeyReleased:
		return s.move(e.Key, -1)
	case core.EventMouseMoved:
		s.State.Pointer = Pointer{X: e.X, Y: e.Y}
		return true
	case core.EventButtonPressed:
		return s.click(e.Button)
	}
	return false
}

func (s *Shooter) move(key core.KeyCode, sign int32) bool {
	p := &s.State.Player
	switch key {
	case s.bindings.Up:
		p.VY -= sign
	case s.bindings.Down:
		p.VY += sign
	case s.bindings.Left:
		p.VX -= sign
	case s.bindings.Right:
		p.VX += sign
	default:
		return false
	}
	core.LogDebug("velocity (%d, %d)", p.VX, p.VY)
	return true
}

func (s *Shooter) click(button core.Button) bool {
	switch button {
	case s.bindings.Shoot:
		s.State.Stats.Shots++
		s.play(assets.Shoot)
	case s.bindings.Reload:
		s.State.Stats.Reloads++
		s.play(assets.Reload)
	default:
		return false
	}
	return true
}

func (s *Shooter) play(id assets.AssetID) {
	if s.sounds != nil {
		s.sounds.PlaySound(id)
	}
}
