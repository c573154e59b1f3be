package assets

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spaghettifunk/topdown/engine/audio"
	"github.com/spaghettifunk/topdown/engine/core"
	"github.com/spaghettifunk/topdown/engine/renderer"
)

// Table owns every texture, sound and font the game uses. It is filled once
// by Load and emptied once by Release; nothing is reloaded or evicted in
// between.
type Table struct {
	dir      string
	renderer renderer.Backend
	mixer    audio.Mixer
	ids      *core.Identifiers
	session  string

	textures map[AssetID]*renderer.Texture
	sounds   map[AssetID]*audio.Sound
	fonts    map[AssetID]*BitmapFont
	released bool
}

// NewTable creates an empty table rooted at dir. mixer may be nil, in which
// case every sound fails to load.
func NewTable(dir string, backend renderer.Backend, mixer audio.Mixer, ids *core.Identifiers) *Table {
	if ids == nil {
		ids = core.NewIdentifiers()
	}
	return &Table{
		dir:      dir,
		renderer: backend,
		mixer:    mixer,
		ids:      ids,
		session:  uuid.NewString()[:8],
		textures: make(map[AssetID]*renderer.Texture),
		sounds:   make(map[AssetID]*audio.Sound),
		fonts:    make(map[AssetID]*BitmapFont),
	}
}

func (t *Table) Dir() string {
	return t.dir
}

// Load loads every spec in order and reports each outcome. Optional failures
// are logged and leave the slot empty. The first failure of a required asset
// is returned wrapped in core.ErrRequiredAsset once every spec was attempted.
func (t *Table) Load(specs []Spec) ([]LoadResult, error) {
	results := make([]LoadResult, 0, len(specs))
	var requiredErr error

	for _, spec := range specs {
		res := LoadResult{
			ID:       spec.ID,
			Kind:     spec.Kind,
			Path:     t.resolve(spec.Path),
			Required: spec.Required,
		}
		if res.Kind == ResourceTypeNone {
			res.Kind = DetermineAssetType(spec.Path)
		}
		res.Err = t.loadOne(spec.ID, res.Kind, res.Path)

		switch {
		case res.Err == nil:
		case spec.Required:
			core.LogError("cannot load required %s '%s' from %s: %s", res.Kind, spec.ID, res.Path, res.Err)
			if requiredErr == nil {
				requiredErr = fmt.Errorf("%w: %s: %w", core.ErrRequiredAsset, spec.ID, res.Err)
			}
		default:
			core.LogWarn("cannot load %s '%s' from %s, continuing without it: %s", res.Kind, spec.ID, res.Path, res.Err)
		}
		results = append(results, res)
	}
	return results, requiredErr
}

func (t *Table) resolve(path string) string {
	if filepath.IsAbs(path) || t.dir == "" {
		return path
	}
	return filepath.Join(t.dir, path)
}

func (t *Table) loadOne(id AssetID, kind ResourceType, path string) error {
	if t.released {
		return errors.New("asset table already released")
	}
	if t.has(id) {
		return fmt.Errorf("asset '%s' loaded twice", id)
	}
	switch kind {
	case ResourceTypeImage:
		tex, err := t.loadTexture(string(id), path)
		if err != nil {
			return err
		}
		t.textures[id] = tex
		core.LogInfo("loaded image '%s': %dx%d", id, tex.Width, tex.Height)
	case ResourceTypeSound:
		snd, err := t.loadSound(id, path)
		if err != nil {
			return err
		}
		t.sounds[id] = snd
		core.LogInfo("loaded sound '%s': %s, %d bytes", id, snd.Format, len(snd.PCM))
	case ResourceTypeFont:
		font, err := t.loadFont(id, path)
		if err != nil {
			return err
		}
		t.fonts[id] = font
		core.LogInfo("loaded font '%s': %s %dpx, %d glyphs", id, font.Face, font.Size, len(font.Glyphs))
	default:
		return fmt.Errorf("%w: %s", core.ErrUnknownAssetType, path)
	}
	return nil
}

func (t *Table) has(id AssetID) bool {
	_, tex := t.textures[id]
	_, snd := t.sounds[id]
	_, fnt := t.fonts[id]
	return tex || snd || fnt
}

func (t *Table) loadTexture(name, path string) (*renderer.Texture, error) {
	if t.renderer == nil {
		return nil, core.ErrNotInitialized
	}
	pixels, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return t.uploadTexture(name, pixels)
}

func (t *Table) uploadTexture(name string, pixels *image.RGBA) (*renderer.Texture, error) {
	if t.renderer == nil {
		return nil, core.ErrNotInitialized
	}
	tex, err := t.renderer.CreateTexture(fmt.Sprintf("%s-%s", name, t.session), pixels)
	if err != nil {
		return nil, err
	}
	tex.ID = t.ids.Acquire(tex)
	return tex, nil
}

func (t *Table) loadSound(id AssetID, path string) (*audio.Sound, error) {
	if t.mixer == nil {
		return nil, core.ErrNotInitialized
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	snd, err := t.mixer.Load(string(id), f)
	if err != nil {
		return nil, err
	}
	snd.ID = t.ids.Acquire(snd)
	return snd, nil
}

func (t *Table) loadFont(id AssetID, path string) (*BitmapFont, error) {
	font, err := decodeFont(path)
	if err != nil {
		return nil, err
	}
	for page, sheet := range font.sheets {
		tex, err := t.uploadTexture(fmt.Sprintf("%s-page%d", id, page), toRGBA(sheet))
		if err != nil {
			t.destroyPages(font)
			return nil, fmt.Errorf("font page %d: %w", page, err)
		}
		font.Pages[page] = tex
	}
	font.sheets = nil
	return font, nil
}

func (t *Table) Texture(id AssetID) *renderer.Texture {
	return t.textures[id]
}

func (t *Table) Sound(id AssetID) *audio.Sound {
	return t.sounds[id]
}

func (t *Table) Font(id AssetID) *BitmapFont {
	return t.fonts[id]
}

// Release destroys every texture and frees every sound. Calls after the first
// do nothing.
func (t *Table) Release() {
	if t.released {
		return
	}
	t.released = true

	for id, tex := range t.textures {
		t.destroyTexture(tex)
		delete(t.textures, id)
	}
	for id, font := range t.fonts {
		t.destroyPages(font)
		delete(t.fonts, id)
	}
	for id, snd := range t.sounds {
		if t.mixer != nil {
			t.mixer.Free(snd)
		}
		t.release(snd.ID)
		delete(t.sounds, id)
	}
}

func (t *Table) destroyPages(font *BitmapFont) {
	for page, tex := range font.Pages {
		t.destroyTexture(tex)
		delete(font.Pages, page)
	}
}

func (t *Table) destroyTexture(tex *renderer.Texture) {
	if tex == nil {
		return
	}
	t.renderer.DestroyTexture(tex)
	t.release(tex.ID)
}

func (t *Table) release(id uint32) {
	if err := t.ids.Release(id); err != nil {
		core.LogWarn("asset table: %s", err)
	}
}
