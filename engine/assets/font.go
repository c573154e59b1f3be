package assets

import (
	"fmt"
	"image"

	"github.com/fzipp/bmfont"
	"github.com/spaghettifunk/topdown/engine/renderer"
)

type Glyph struct {
	X, Y          int
	Width, Height int
	XOffset       int
	YOffset       int
	XAdvance      int
	Page          int
}

type kerningPair struct {
	first, second rune
}

// BitmapFont is an AngelCode font with its page sheets uploaded as textures.
type BitmapFont struct {
	Face       string
	Size       int
	LineHeight int
	Baseline   int
	AtlasW     int
	AtlasH     int
	Glyphs     map[rune]Glyph
	Pages      map[int]*renderer.Texture

	kernings map[kerningPair]int
	// decoded page sheets, dropped once uploaded
	sheets map[int]image.Image
}

// decodeFont parses a .fnt file together with its page sheets, which are
// resolved relative to the descriptor.
func decodeFont(path string) (*BitmapFont, error) {
	font, err := bmfont.Load(path)
	if err != nil {
		return nil, err
	}
	d := font.Descriptor

	out := &BitmapFont{
		Face:       d.Info.Face,
		Size:       int(d.Info.Size),
		LineHeight: int(d.Common.LineHeight),
		Baseline:   int(d.Common.Base),
		AtlasW:     int(d.Common.ScaleW),
		AtlasH:     int(d.Common.ScaleH),
		Glyphs:     make(map[rune]Glyph, len(d.Chars)),
		Pages:      make(map[int]*renderer.Texture, len(d.Pages)),
		kernings:   make(map[kerningPair]int, len(d.Kerning)),
		sheets:     font.PageSheets,
	}
	if out.AtlasW <= 0 || out.AtlasH <= 0 {
		return nil, fmt.Errorf("font %s: invalid atlas size %dx%d", path, out.AtlasW, out.AtlasH)
	}

	for _, g := range d.Chars {
		out.Glyphs[rune(g.ID)] = Glyph{
			X:        int(g.X),
			Y:        int(g.Y),
			Width:    int(g.Width),
			Height:   int(g.Height),
			XOffset:  int(g.XOffset),
			YOffset:  int(g.YOffset),
			XAdvance: int(g.XAdvance),
			Page:     int(g.Page),
		}
	}
	for p, k := range d.Kerning {
		out.kernings[kerningPair{rune(p.First), rune(p.Second)}] = int(k.Amount)
	}
	return out, nil
}

func (f *BitmapFont) Kerning(first, second rune) int {
	return f.kernings[kerningPair{first, second}]
}

// Measure returns the advance width of the widest line and the total height.
func (f *BitmapFont) Measure(text string) (int, int) {
	width, lineWidth, lines := 0, 0, 1
	var prev rune
	for _, r := range text {
		if r == '\n' {
			lines++
			lineWidth = 0
			prev = 0
			continue
		}
		lineWidth += f.Kerning(prev, r) + f.glyph(r).XAdvance
		if lineWidth > width {
			width = lineWidth
		}
		prev = r
	}
	return width, lines * f.LineHeight
}

// Quads lays the text out with its top-left corner at (x, y). Glyphs without
// pixels only advance the pen.
func (f *BitmapFont) Quads(text string, x, y, depth float32, color renderer.Color) []renderer.Quad {
	quads := make([]renderer.Quad, 0, len(text))
	penX, penY := x, y
	var prev rune
	for _, r := range text {
		if r == '\n' {
			penX = x
			penY += float32(f.LineHeight)
			prev = 0
			continue
		}
		penX += float32(f.Kerning(prev, r))
		g := f.glyph(r)
		if g.Width > 0 && g.Height > 0 {
			w, h := float32(g.Width), float32(g.Height)
			quads = append(quads, renderer.Quad{
				X:       penX + float32(g.XOffset) + w/2,
				Y:       penY + float32(g.YOffset) + h/2,
				Width:   w,
				Height:  h,
				Depth:   depth,
				Texture: f.Pages[g.Page],
				Color:   color,
				Source: renderer.Rect{
					U0: float32(g.X) / float32(f.AtlasW),
					V0: float32(g.Y) / float32(f.AtlasH),
					U1: float32(g.X+g.Width) / float32(f.AtlasW),
					V1: float32(g.Y+g.Height) / float32(f.AtlasH),
				},
			})
		}
		penX += float32(g.XAdvance)
		prev = r
	}
	return quads
}

func (f *BitmapFont) glyph(r rune) Glyph {
	if g, ok := f.Glyphs[r]; ok {
		return g
	}
	if g, ok := f.Glyphs['?']; ok {
		return g
	}
	return Glyph{XAdvance: f.Size / 2}
}
