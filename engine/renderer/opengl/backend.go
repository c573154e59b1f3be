// Package opengl draws through the OpenGL 2.1 fixed-function pipeline:
// one glBegin/glEnd pair per entity, no batching and no culling.
package opengl

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/spaghettifunk/topdown/engine/core"
	"github.com/spaghettifunk/topdown/engine/renderer"
)

type Backend struct {
	width       int
	height      int
	initialized bool
	textures    map[uint32]*renderer.Texture
}

func New() *Backend {
	return &Backend{textures: make(map[uint32]*renderer.Texture)}
}

// Initialize loads the GL entry points for the current context and sets up a
// pixel-space orthographic projection with y growing downward.
func (b *Backend) Initialize(width, height int) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	core.LogInfo("OpenGL %s, renderer %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	b.width = width
	b.height = height

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, float64(width), float64(height), 0, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.ClearDepth(1)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	// Fully transparent texels must not write depth.
	gl.Enable(gl.ALPHA_TEST)
	gl.AlphaFunc(gl.GREATER, 0.01)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl setup: error 0x%x", code)
	}
	b.initialized = true
	return nil
}

func (b *Backend) Shutdown() {
	if !b.initialized {
		return
	}
	for _, t := range b.textures {
		core.LogWarn("texture '%s' still alive at renderer shutdown, deleting", t.Name)
		b.DestroyTexture(t)
	}
	b.initialized = false
}

func (b *Backend) CreateTexture(name string, pixels *image.RGBA) (*renderer.Texture, error) {
	if !b.initialized {
		return nil, core.ErrNotInitialized
	}
	size := pixels.Rect.Size()
	if size.X == 0 || size.Y == 0 {
		return nil, fmt.Errorf("texture '%s' has no pixels", name)
	}
	if pixels.Stride != 4*size.X {
		return nil, fmt.Errorf("texture '%s': stride %d does not match width %d", name, pixels.Stride, size.X)
	}

	var handle uint32
	gl.GenTextures(1, &handle)
	gl.BindTexture(gl.TEXTURE_2D, handle)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &handle)
		return nil, fmt.Errorf("texture '%s': gl error 0x%x", name, code)
	}

	t := &renderer.Texture{
		Handle: handle,
		Name:   name,
		Width:  size.X,
		Height: size.Y,
	}
	b.textures[handle] = t
	return t, nil
}

func (b *Backend) DestroyTexture(texture *renderer.Texture) {
	if texture == nil || texture.Handle == 0 {
		return
	}
	handle := texture.Handle
	gl.DeleteTextures(1, &handle)
	delete(b.textures, handle)
	texture.Handle = 0
}

func (b *Backend) BeginFrame(clear renderer.Color) {
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.LoadIdentity()
}

func (b *Backend) DrawQuad(q renderer.Quad) {
	gl.PushMatrix()
	gl.Translatef(q.X, q.Y, q.Depth)
	if q.Angle != 0 {
		// With y pointing down a positive z rotation turns clockwise on screen.
		gl.Rotatef(q.Angle, 0, 0, 1)
	}

	hw, hh := q.Width/2, q.Height/2
	c := q.Color
	if q.Texture != nil && q.Texture.Handle != 0 {
		if c == (renderer.Color{}) {
			c = renderer.White
		}
		src := q.Source.Full()
		gl.Enable(gl.TEXTURE_2D)
		gl.BindTexture(gl.TEXTURE_2D, q.Texture.Handle)
		gl.Color4f(c.R, c.G, c.B, c.A)
		gl.Begin(gl.QUADS)
		gl.TexCoord2f(src.U0, src.V0)
		gl.Vertex3f(-hw, -hh, 0)
		gl.TexCoord2f(src.U1, src.V0)
		gl.Vertex3f(hw, -hh, 0)
		gl.TexCoord2f(src.U1, src.V1)
		gl.Vertex3f(hw, hh, 0)
		gl.TexCoord2f(src.U0, src.V1)
		gl.Vertex3f(-hw, hh, 0)
		gl.End()
		gl.BindTexture(gl.TEXTURE_2D, 0)
		gl.Disable(gl.TEXTURE_2D)
	} else {
		gl.Color4f(c.R, c.G, c.B, c.A)
		gl.Begin(gl.QUADS)
		gl.Vertex3f(-hw, -hh, 0)
		gl.Vertex3f(hw, -hh, 0)
		gl.Vertex3f(hw, hh, 0)
		gl.Vertex3f(-hw, hh, 0)
		gl.End()
	}
	gl.PopMatrix()
}

func (b *Backend) DrawPolygon(p renderer.Polygon) {
	if len(p.Vertices) < 3 {
		return
	}
	gl.PushMatrix()
	gl.Translatef(p.X, p.Y, p.Depth)
	if p.Angle != 0 {
		gl.Rotatef(p.Angle, 0, 0, 1)
	}
	gl.Begin(gl.TRIANGLE_FAN)
	for _, v := range p.Vertices {
		gl.Color4f(v.Color.R, v.Color.G, v.Color.B, v.Color.A)
		gl.Vertex3f(v.X, v.Y, 0)
	}
	gl.End()
	gl.PopMatrix()
}

func (b *Backend) EndFrame() {
	gl.Flush()
}
