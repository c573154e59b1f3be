package shooter

import (
	"fmt"

	"github.com/spaghettifunk/topdown/engine/assets"
	"github.com/spaghettifunk/topdown/engine/math"
	"github.com/spaghettifunk/topdown/engine/renderer"
)

// Larger depths are drawn on top.
const (
	depthGround  float32 = -0.9
	depthMonster float32 = -0.2
	depthPlayer  float32 = 0
	depthArrow   float32 = 0.1
	depthCross   float32 = 0.5
	depthHUD     float32 = 0.9
)

var (
	monsterColor = renderer.RGBA(0.8, 0.1, 0.1, 1)
	arrowColor   = renderer.RGBA(1, 0.8, 0, 1)
	crossColor   = renderer.RGBA(0.1, 0.1, 0.1, 1)
	hudColor     = renderer.RGBA(0.1, 0.1, 0.1, 1)
)

// Render issues one draw call per visible thing. The frame itself is begun
// and ended by the caller.
func (s *Shooter) Render(b renderer.Backend) {
	s.drawGround(b)
	s.drawMonster(b)
	s.drawPlayer(b)
	s.drawArrow(b)
	s.drawCross(b)
	s.drawHUD(b)
}

func (s *Shooter) texture(id assets.AssetID) *renderer.Texture {
	if s.library == nil {
		return nil
	}
	return s.library.Texture(id)
}

func (s *Shooter) drawGround(b renderer.Backend) {
	w, h := float32(s.State.Viewport.Width), float32(s.State.Viewport.Height)
	q := renderer.Quad{
		X:      w / 2,
		Y:      h / 2,
		Width:  w,
		Height: h,
		Depth:  depthGround,
		Color:  s.style.ground,
	}
	if tex := s.texture(assets.Ground); tex != nil {
		q.Texture = tex
		q.Color = renderer.White
	}
	b.DrawQuad(q)
}

func (s *Shooter) drawMonster(b renderer.Backend) {
	q := renderer.Quad{
		X:      s.style.monsterX,
		Y:      s.style.monsterY,
		Width:  s.style.monsterSize,
		Height: s.style.monsterSize,
		Depth:  depthMonster,
		Color:  monsterColor,
	}
	if tex := s.texture(assets.Monster); tex != nil {
		q.Texture = tex
		q.Width, q.Height = float32(tex.Width), float32(tex.Height)
		q.Color = renderer.White
	}
	b.DrawQuad(q)
}

func (s *Shooter) drawPlayer(b renderer.Backend) {
	x, y := float32(s.State.Player.X), float32(s.State.Player.Y)
	angle := float32(s.State.Facing)

	if tex := s.texture(assets.Player); tex != nil {
		b.DrawQuad(renderer.Quad{
			X:       x,
			Y:       y,
			Width:   float32(tex.Width),
			Height:  float32(tex.Height),
			Angle:   angle,
			Depth:   depthPlayer,
			Texture: tex,
			Color:   renderer.White,
		})
		return
	}

	// Without a sprite the player is a triangle pointing up before rotation.
	half := s.style.playerSize / 2
	tip := s.style.player
	tail := renderer.RGBA(tip.R*0.5, tip.G*0.5, tip.B*0.5, tip.A)
	b.DrawPolygon(renderer.Polygon{
		X:     x,
		Y:     y,
		Angle: angle,
		Depth: depthPlayer,
		Vertices: []renderer.Vertex{
			{X: 0, Y: -half, Color: tip},
			{X: half, Y: half, Color: tail},
			{X: -half, Y: half, Color: tail},
		},
	})
}

// ArrowPosition is where the direction indicator is drawn: ArrowOffset pixels
// from the player along the facing direction.
func (s *Shooter) ArrowPosition() math.Vec2 {
	dir := math.FacingDirection(s.State.Facing)
	return s.State.playerPos().Add(dir.Scale(s.style.arrowOffset))
}

func (s *Shooter) drawArrow(b renderer.Backend) {
	pos := s.ArrowPosition()
	x, y := float32(pos.X), float32(pos.Y)
	angle := float32(s.State.Facing)

	if tex := s.texture(assets.Arrow); tex != nil {
		b.DrawQuad(renderer.Quad{
			X:       x,
			Y:       y,
			Width:   float32(tex.Width),
			Height:  float32(tex.Height),
			Angle:   angle,
			Depth:   depthArrow,
			Texture: tex,
			Color:   renderer.White,
		})
		return
	}

	half := s.style.arrowSize / 2
	b.DrawPolygon(renderer.Polygon{
		X:     x,
		Y:     y,
		Angle: angle,
		Depth: depthArrow,
		Vertices: []renderer.Vertex{
			{X: 0, Y: -half, Color: arrowColor},
			{X: half / 2, Y: half, Color: arrowColor},
			{X: -half / 2, Y: half, Color: arrowColor},
		},
	})
}

func (s *Shooter) drawCross(b renderer.Backend) {
	x, y := float32(s.State.Pointer.X), float32(s.State.Pointer.Y)
	if tex := s.texture(assets.Cross); tex != nil {
		b.DrawQuad(renderer.Quad{
			X:       x,
			Y:       y,
			Width:   float32(tex.Width),
			Height:  float32(tex.Height),
			Depth:   depthCross,
			Texture: tex,
			Color:   renderer.White,
		})
		return
	}

	size := s.style.crossSize
	b.DrawQuad(renderer.Quad{X: x, Y: y, Width: size, Height: 2, Depth: depthCross, Color: crossColor})
	b.DrawQuad(renderer.Quad{X: x, Y: y, Width: 2, Height: size, Depth: depthCross, Color: crossColor})
}

// HUDText is the status line shown when a font is loaded.
func (s *Shooter) HUDText() string {
	var fps float64
	if s.fps != nil {
		fps = s.fps()
	}
	return fmt.Sprintf("FPS %.0f  shots %d  reloads %d", fps, s.State.Stats.Shots, s.State.Stats.Reloads)
}

func (s *Shooter) drawHUD(b renderer.Backend) {
	if !s.style.showHUD || s.library == nil {
		return
	}
	font := s.library.Font(assets.Font)
	if font == nil {
		return
	}
	for _, q := range font.Quads(s.HUDText(), 8, 8, depthHUD, hudColor) {
		b.DrawQuad(q)
	}
}
