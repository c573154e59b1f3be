// Package config holds the tunables of the demo: window, audio, asset
// paths, key bindings and scene layout. Every field has a default matching
// the historical hardcoded values, so a config file only needs overrides.
package config

// Config is the root of the configuration file.
type Config struct {
	Window   WindowConfig   `yaml:"window" toml:"window"`
	Log      LogConfig      `yaml:"log" toml:"log"`
	Audio    AudioConfig    `yaml:"audio" toml:"audio"`
	Assets   AssetsConfig   `yaml:"assets" toml:"assets"`
	Controls ControlsConfig `yaml:"controls" toml:"controls"`
	Scene    SceneConfig    `yaml:"scene" toml:"scene"`
}

// WindowConfig defines the window and the playfield, which share a size.
type WindowConfig struct {
	Title  string `yaml:"title" toml:"title"`
	X      int    `yaml:"x" toml:"x"`
	Y      int    `yaml:"y" toml:"y"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	VSync  bool   `yaml:"vsync" toml:"vsync"`
	// Zero disables the frame limiter.
	TargetFPS int `yaml:"target_fps" toml:"target_fps"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// AudioConfig defines the mixer output format.
type AudioConfig struct {
	SampleRate    int  `yaml:"sample_rate" toml:"sample_rate"`
	Channels      int  `yaml:"channels" toml:"channels"`
	BitDepth      int  `yaml:"bit_depth" toml:"bit_depth"`
	BufferSamples int  `yaml:"buffer_samples" toml:"buffer_samples"`
	MaxChannels   int  `yaml:"max_channels" toml:"max_channels"`
	Required      bool `yaml:"required" toml:"required"`
}

// AssetEntry binds a symbolic asset id to a file under AssetsConfig.Dir.
type AssetEntry struct {
	ID       string `yaml:"id" toml:"id"`
	Path     string `yaml:"path" toml:"path"`
	Required bool   `yaml:"required" toml:"required"`
}

type AssetsConfig struct {
	Dir    string       `yaml:"dir" toml:"dir"`
	Watch  bool         `yaml:"watch" toml:"watch"`
	Images []AssetEntry `yaml:"images" toml:"images"`
	Sounds []AssetEntry `yaml:"sounds" toml:"sounds"`
	// Optional AngelCode .fnt file for the HUD.
	Font string `yaml:"font" toml:"font"`
}

// ControlsConfig holds key names as accepted by core.ParseKeyName and mouse
// button names (left, right, middle).
type ControlsConfig struct {
	Up     string `yaml:"up" toml:"up"`
	Down   string `yaml:"down" toml:"down"`
	Left   string `yaml:"left" toml:"left"`
	Right  string `yaml:"right" toml:"right"`
	Shoot  string `yaml:"shoot" toml:"shoot"`
	Reload string `yaml:"reload" toml:"reload"`
}

// SceneConfig places and colours the things drawn each frame. Colours are
// #rrggbb or #rrggbbaa.
type SceneConfig struct {
	ClearColor  string  `yaml:"clear_color" toml:"clear_color"`
	GroundColor string  `yaml:"ground_color" toml:"ground_color"`
	PlayerColor string  `yaml:"player_color" toml:"player_color"`
	PlayerSize  float64 `yaml:"player_size" toml:"player_size"`
	MonsterX    float64 `yaml:"monster_x" toml:"monster_x"`
	MonsterY    float64 `yaml:"monster_y" toml:"monster_y"`
	MonsterSize float64 `yaml:"monster_size" toml:"monster_size"`
	ArrowOffset float64 `yaml:"arrow_offset" toml:"arrow_offset"`
	ArrowSize   float64 `yaml:"arrow_size" toml:"arrow_size"`
	CrossSize   float64 `yaml:"cross_size" toml:"cross_size"`
	ShowHUD     bool    `yaml:"show_hud" toml:"show_hud"`
}
