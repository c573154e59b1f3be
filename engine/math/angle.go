package math

import m "math"

const (
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float64 = m.Pi / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float64 = 180.0 / m.Pi

	// FacingOffset rotates atan2's "east is zero" into the sprite's "up is zero".
	FacingOffset float64 = 90.0
)

func DegToRad(degrees float64) float64 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

func RadToDeg(radians float64) float64 {
	return radians * K_RAD2DEG_MULTIPLIER
}

// Vec2 is a point or direction in screen space (y grows downward).
type Vec2 struct {
	X float64
	Y float64
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// FacingAngle returns the on-screen rotation in degrees that turns a sprite
// drawn pointing up at from so that it points at to. Pointing straight up
// yields 0 and straight right yields 90; angles grow clockwise.
func FacingAngle(from, to Vec2) float64 {
	return RadToDeg(m.Atan2(to.Y-from.Y, to.X-from.X)) + FacingOffset
}

// FacingDirection is the unit vector a sprite rotated by angle degrees points along.
func FacingDirection(angle float64) Vec2 {
	r := DegToRad(angle)
	return Vec2{X: m.Sin(r), Y: -m.Cos(r)}
}
