package renderer

type Color struct {
	R, G, B, A float32
}

func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

// Texture is a backend-owned image. Handle is whatever the backend uses to
// bind it; ID is the engine-wide handle tracked for leaks.
type Texture struct {
	ID     uint32
	Handle uint32
	Name   string
	Width  int
	Height int
}

// Rect is a texture sub-rectangle in normalized coordinates. The zero value
// selects the whole texture.
type Rect struct {
	U0, V0, U1, V1 float32
}

func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Full returns r, or the whole texture when r is the zero value.
func (r Rect) Full() Rect {
	if r.IsZero() {
		return Rect{0, 0, 1, 1}
	}
	return r
}

// Quad is a rectangle centred on (X, Y) in window pixels, rotated Angle
// degrees clockwise. Depth is in [-1, 1]; larger values are drawn on top.
// A nil Texture draws a flat Color.
type Quad struct {
	X, Y          float32
	Width, Height float32
	Angle         float32
	Depth         float32
	Texture       *Texture
	Source        Rect
	Color         Color
}

type Vertex struct {
	X, Y  float32
	Color Color
}

// Polygon is a convex vertex-colored fan. Vertices are relative to (X, Y)
// and are rotated Angle degrees clockwise around it.
type Polygon struct {
	X, Y     float32
	Angle    float32
	Depth    float32
	Vertices []Vertex
}
