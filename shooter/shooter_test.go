package shooter

import (
	"image"
	gomath "math"
	"math/rand"
	"testing"

	"github.com/spaghettifunk/topdown/config"
	"github.com/spaghettifunk/topdown/engine/assets"
	"github.com/spaghettifunk/topdown/engine/core"
	"github.com/spaghettifunk/topdown/engine/renderer"
)

type fakeLibrary struct {
	textures map[assets.AssetID]*renderer.Texture
	font     *assets.BitmapFont
}

func (l *fakeLibrary) Texture(id assets.AssetID) *renderer.Texture { return l.textures[id] }
func (l *fakeLibrary) Font(id assets.AssetID) *assets.BitmapFont {
	if id == assets.Font {
		return l.font
	}
	return nil
}

type fakeSounds struct {
	played []assets.AssetID
}

func (f *fakeSounds) PlaySound(id assets.AssetID) bool {
	f.played = append(f.played, id)
	return true
}

type recorder struct {
	quads    []renderer.Quad
	polygons []renderer.Polygon
}

func (r *recorder) Initialize(w, h int) error { return nil }
func (r *recorder) Shutdown()                 {}
func (r *recorder) CreateTexture(name string, pixels *image.RGBA) (*renderer.Texture, error) {
	return &renderer.Texture{Name: name}, nil
}
func (r *recorder) DestroyTexture(t *renderer.Texture) {}
func (r *recorder) BeginFrame(clear renderer.Color)    {}
func (r *recorder) DrawQuad(q renderer.Quad)           { r.quads = append(r.quads, q) }
func (r *recorder) DrawPolygon(p renderer.Polygon)     { r.polygons = append(r.polygons, p) }
func (r *recorder) EndFrame()                          {}

func newShooter(t *testing.T) *Shooter {
	t.Helper()
	s, err := New(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func press(k core.KeyCode) core.Event   { return core.Event{Type: core.EventKeyPressed, Key: k} }
func release(k core.KeyCode) core.Event { return core.Event{Type: core.EventKeyReleased, Key: k} }

func TestPlayerStartsCentred(t *testing.T) {
	s := newShooter(t)
	if s.State.Player != (Player{X: 320, Y: 240}) {
		t.Errorf("player = %+v, want centred at (320, 240)", s.State.Player)
	}
}

func TestPressReleasePairsCancel(t *testing.T) {
	keys := []core.KeyCode{core.KEY_W, core.KEY_S, core.KEY_A, core.KEY_D}
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		s := newShooter(t)
		// Press a random subset in random order, then release it in another order.
		held := rng.Perm(len(keys))[:1+rng.Intn(len(keys))]
		for _, i := range held {
			s.HandleEvent(press(keys[i]))
		}
		rng.Shuffle(len(held), func(a, b int) { held[a], held[b] = held[b], held[a] })
		for _, i := range held {
			s.HandleEvent(release(keys[i]))
		}
		if s.State.Player.VX != 0 || s.State.Player.VY != 0 {
			t.Fatalf("round %d: velocity (%d, %d) after releasing every key", round, s.State.Player.VX, s.State.Player.VY)
		}
	}
}

func TestOppositeKeysLeaveNoResidualMotion(t *testing.T) {
	s := newShooter(t)
	s.HandleEvent(press(core.KEY_A))
	s.HandleEvent(press(core.KEY_D))
	if s.State.Player.VX != 0 {
		t.Errorf("VX with left and right held = %d, want 0", s.State.Player.VX)
	}
	s.HandleEvent(release(core.KEY_A))
	if s.State.Player.VX != 1 {
		t.Errorf("VX with right held = %d, want 1", s.State.Player.VX)
	}
	s.HandleEvent(release(core.KEY_D))
	if s.State.Player.VX != 0 {
		t.Errorf("VX after releasing both = %d, want 0", s.State.Player.VX)
	}
}

func TestUpRightMovesDiagonally(t *testing.T) {
	s := newShooter(t)
	s.HandleEvent(press(core.KEY_W))
	s.HandleEvent(press(core.KEY_D))
	if s.State.Player.VX != 1 || s.State.Player.VY != -1 {
		t.Fatalf("velocity = (%d, %d), want (1, -1)", s.State.Player.VX, s.State.Player.VY)
	}

	s.Step()
	if s.State.Player.X != 321 || s.State.Player.Y != 239 {
		t.Errorf("position = (%d, %d), want (321, 239)", s.State.Player.X, s.State.Player.Y)
	}

	// Against the top-right corner the move is clamped on both axes.
	s.State.Player.X, s.State.Player.Y = 640, 0
	s.Step()
	if s.State.Player.X != 640 || s.State.Player.Y != 0 {
		t.Errorf("clamped position = (%d, %d), want (640, 0)", s.State.Player.X, s.State.Player.Y)
	}
}

func TestStepKeepsPlayerInViewport(t *testing.T) {
	s := newShooter(t)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		s.State.Player.VX = int32(rng.Intn(4001) - 2000)
		s.State.Player.VY = int32(rng.Intn(4001) - 2000)
		s.Step()
		p := s.State.Player
		if p.X < 0 || p.X > 640 || p.Y < 0 || p.Y > 480 {
			t.Fatalf("step %d: player escaped to (%d, %d)", i, p.X, p.Y)
		}
	}
}

func TestFacingFollowsPointer(t *testing.T) {
	tests := []struct {
		name   string
		px, py int32
		want   float64
	}{
		{"above", 320, 100, 0},
		{"right", 600, 240, 90},
		{"below", 320, 400, 180},
		{"left", 10, 240, 270},
		{"up-right", 420, 140, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newShooter(t)
			s.HandleEvent(core.Event{Type: core.EventMouseMoved, X: tt.px, Y: tt.py})
			s.Step()
			if gomath.Abs(s.State.Facing-tt.want) > 1e-9 {
				t.Errorf("facing = %v, want %v", s.State.Facing, tt.want)
			}
		})
	}
}

func TestButtonsPlaySounds(t *testing.T) {
	s := newShooter(t)
	sounds := &fakeSounds{}
	s.Attach(nil, sounds, nil)

	s.HandleEvent(core.Event{Type: core.EventButtonPressed, Button: core.BUTTON_LEFT})
	s.HandleEvent(core.Event{Type: core.EventButtonReleased, Button: core.BUTTON_LEFT})
	s.HandleEvent(core.Event{Type: core.EventButtonPressed, Button: core.BUTTON_RIGHT})
	s.HandleEvent(core.Event{Type: core.EventButtonPressed, Button: core.BUTTON_MIDDLE})

	want := []assets.AssetID{assets.Shoot, assets.Reload}
	if len(sounds.played) != len(want) || sounds.played[0] != want[0] || sounds.played[1] != want[1] {
		t.Errorf("played %v, want %v", sounds.played, want)
	}
	if s.State.Stats.Shots != 1 || s.State.Stats.Reloads != 1 {
		t.Errorf("stats = %+v", s.State.Stats)
	}
}

func TestButtonsWithoutAudio(t *testing.T) {
	s := newShooter(t)
	if !s.HandleEvent(core.Event{Type: core.EventButtonPressed, Button: core.BUTTON_LEFT}) {
		t.Error("shoot must be handled even without a sound player")
	}
	if s.State.Stats.Shots != 1 {
		t.Errorf("shots = %d", s.State.Stats.Shots)
	}
}

func TestUnboundKeysAreNotHandled(t *testing.T) {
	s := newShooter(t)
	if s.HandleEvent(press(core.KEY_Q)) {
		t.Error("unbound key reported as handled")
	}
	if s.State.Player.VX != 0 || s.State.Player.VY != 0 {
		t.Error("unbound key changed velocity")
	}
}
