package renderer

import "image"

// Backend is the immediate-mode drawing contract the engine renders through.
// Every call happens on the thread that owns the graphics context.
type Backend interface {
	Initialize(width, height int) error
	Shutdown()
	CreateTexture(name string, pixels *image.RGBA) (*Texture, error)
	DestroyTexture(texture *Texture)
	// Clears color and depth buffers for a new frame.
	BeginFrame(clear Color)
	DrawQuad(q Quad)
	DrawPolygon(p Polygon)
	// Flushes the frame; presenting it is up to the platform swap.
	EndFrame()
}
