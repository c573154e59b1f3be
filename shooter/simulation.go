package shooter

import (
	"github.com/spaghettifunk/topdown/engine/math"
)

// Step advances one frame: move by the velocity, keep the player inside the
// viewport and turn it toward the pointer. Speed is per frame, not per
// second.
func (s *Shooter) Step() {
	st := &s.State
	st.Player.X = math.Clamp(st.Player.X+st.Player.VX, 0, st.Viewport.Width)
	st.Player.Y = math.Clamp(st.Player.Y+st.Player.VY, 0, st.Viewport.Height)
	st.Facing = math.FacingAngle(st.playerPos(), st.pointerPos())
	st.Stats.Frames++
}

func (st *State) playerPos() math.Vec2 {
	return math.NewVec2(float64(st.Player.X), float64(st.Player.Y))
}

func (st *State) pointerPos() math.Vec2 {
	return math.NewVec2(float64(st.Pointer.X), float64(st.Pointer.Y))
}
