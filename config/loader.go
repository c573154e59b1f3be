package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/topdown/engine/assets"
	"github.com/spaghettifunk/topdown/engine/audio"
	"github.com/spaghettifunk/topdown/engine/core"
	"github.com/spaghettifunk/topdown/engine/renderer"
	"gopkg.in/yaml.v3"
)

// Load reads the configuration at path on top of Default. An empty path
// returns the defaults. The format follows the extension: .toml, .yaml or
// .yml. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := decode(path, data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		// Arrays of tables extend an existing slice, so asset lists present in
		// the file must replace the defaults rather than add to them.
		var raw map[string]interface{}
		if err := toml.Unmarshal(data, &raw); err != nil {
			return err
		}
		if section, ok := raw["assets"].(map[string]interface{}); ok {
			if _, ok := section["images"]; ok {
				cfg.Assets.Images = nil
			}
			if _, ok := section["sounds"]; ok {
				cfg.Assets.Sounds = nil
			}
		}
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
	return fmt.Errorf("%w: unsupported config format %q", core.ErrInvalidConfig, filepath.Ext(path))
}

// Validate reports the first problem that would make startup fail later.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", core.ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.TargetFPS < 0 {
		return fmt.Errorf("%w: negative target_fps", core.ErrInvalidConfig)
	}
	if _, err := core.ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", core.ErrInvalidConfig, err)
	}
	if err := c.AudioFormat().Validate(); err != nil {
		return fmt.Errorf("%w: audio: %w", core.ErrInvalidConfig, err)
	}
	if c.Audio.BitDepth != 8 && c.Audio.BitDepth != 16 {
		return fmt.Errorf("%w: audio bit_depth must be 8 or 16, got %d", core.ErrInvalidConfig, c.Audio.BitDepth)
	}
	if c.Audio.BufferSamples <= 0 || c.Audio.MaxChannels <= 0 {
		return fmt.Errorf("%w: audio buffer_samples and max_channels must be positive", core.ErrInvalidConfig)
	}
	if _, err := c.AssetSpecs(); err != nil {
		return err
	}
	if _, err := c.Controls.Bindings(); err != nil {
		return err
	}
	for name, s := range map[string]string{
		"clear_color":  c.Scene.ClearColor,
		"ground_color": c.Scene.GroundColor,
		"player_color": c.Scene.PlayerColor,
	} {
		if _, err := ParseColor(s); err != nil {
			return fmt.Errorf("%w: scene %s: %w", core.ErrInvalidConfig, name, err)
		}
	}
	if c.Scene.PlayerSize <= 0 {
		return fmt.Errorf("%w: scene player_size must be positive", core.ErrInvalidConfig)
	}
	return nil
}

// AudioFormat converts the audio section to the mixer format.
func (c Config) AudioFormat() audio.Format {
	return audio.Format{
		SampleRate: c.Audio.SampleRate,
		Channels:   c.Audio.Channels,
		BitDepth:   c.Audio.BitDepth / 8,
	}
}

// AssetSpecs lists images, sounds and the optional font in load order. Ids
// must be unique and every path must have a known asset type matching the
// section it is listed in.
func (c Config) AssetSpecs() ([]assets.Spec, error) {
	specs := make([]assets.Spec, 0, len(c.Assets.Images)+len(c.Assets.Sounds)+1)
	seen := make(map[string]bool)

	add := func(e AssetEntry, want assets.ResourceType) error {
		if e.ID == "" || e.Path == "" {
			return fmt.Errorf("%w: asset entry needs both id and path (id %q, path %q)", core.ErrInvalidConfig, e.ID, e.Path)
		}
		if seen[e.ID] {
			return fmt.Errorf("%w: duplicate asset id %q", core.ErrInvalidConfig, e.ID)
		}
		seen[e.ID] = true
		kind := assets.DetermineAssetType(e.Path)
		if kind != want {
			return fmt.Errorf("%w: asset %q: %s is not a %s", core.ErrInvalidConfig, e.ID, e.Path, want)
		}
		specs = append(specs, assets.Spec{ID: assets.AssetID(e.ID), Kind: kind, Path: e.Path, Required: e.Required})
		return nil
	}

	for _, e := range c.Assets.Images {
		if err := add(e, assets.ResourceTypeImage); err != nil {
			return nil, err
		}
	}
	for _, e := range c.Assets.Sounds {
		if err := add(e, assets.ResourceTypeSound); err != nil {
			return nil, err
		}
	}
	if c.Assets.Font != "" {
		if err := add(AssetEntry{ID: string(assets.Font), Path: c.Assets.Font}, assets.ResourceTypeFont); err != nil {
			return nil, err
		}
	}
	return specs, nil
}

// Bindings are the resolved controls.
type Bindings struct {
	Up, Down, Left, Right core.KeyCode
	Shoot, Reload         core.Button
}

func (c ControlsConfig) Bindings() (Bindings, error) {
	var b Bindings
	keys := []struct {
		name string
		dst  *core.KeyCode
	}{
		{c.Up, &b.Up}, {c.Down, &b.Down}, {c.Left, &b.Left}, {c.Right, &b.Right},
	}
	used := make(map[core.KeyCode]bool)
	for _, k := range keys {
		code, err := core.ParseKeyName(k.name)
		if err != nil {
			return b, fmt.Errorf("%w: controls: %w", core.ErrInvalidConfig, err)
		}
		if code == core.KEY_ESCAPE {
			return b, fmt.Errorf("%w: controls: escape is reserved for quit", core.ErrInvalidConfig)
		}
		if used[code] {
			return b, fmt.Errorf("%w: controls: key %q bound twice", core.ErrInvalidConfig, k.name)
		}
		used[code] = true
		*k.dst = code
	}

	var err error
	if b.Shoot, err = parseButton(c.Shoot); err != nil {
		return b, err
	}
	if b.Reload, err = parseButton(c.Reload); err != nil {
		return b, err
	}
	if b.Shoot == b.Reload {
		return b, fmt.Errorf("%w: controls: button %q bound to both shoot and reload", core.ErrInvalidConfig, c.Reload)
	}
	return b, nil
}

func parseButton(name string) (core.Button, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left":
		return core.BUTTON_LEFT, nil
	case "right":
		return core.BUTTON_RIGHT, nil
	case "middle":
		return core.BUTTON_MIDDLE, nil
	}
	return core.BUTTON_MAX_BUTTONS, fmt.Errorf("%w: controls: unknown mouse button %q", core.ErrInvalidConfig, name)
}

// ParseColor accepts #rrggbb and #rrggbbaa.
func ParseColor(s string) (renderer.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b, a uint8 = 0, 0, 0, 0xff
	switch len(hex) {
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return renderer.Color{}, fmt.Errorf("bad colour %q", s)
		}
	case 8:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return renderer.Color{}, fmt.Errorf("bad colour %q", s)
		}
	default:
		return renderer.Color{}, fmt.Errorf("bad colour %q", s)
	}
	return renderer.RGBA(float32(r)/255, float32(g)/255, float32(b)/255, float32(a)/255), nil
}

// ColorOr is ParseColor with a fallback for values that do not parse.
func ColorOr(s string, fallback renderer.Color) renderer.Color {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
