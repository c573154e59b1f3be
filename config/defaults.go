package config

import (
	_ "embed"
)

//go:embed defaults/topdown.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the built-in configuration: a 640x480 window, 22050 Hz mono
// 16-bit audio with a 4096 sample buffer, WASD movement and the data/ assets.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "topdown",
			X:      -1,
			Y:      -1,
			Width:  640,
			Height: 480,
			VSync:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Audio: AudioConfig{
			SampleRate:    22050,
			Channels:      1,
			BitDepth:      16,
			BufferSamples: 4096,
			MaxChannels:   8,
			Required:      true,
		},
		Assets: AssetsConfig{
			Dir: "data",
			Images: []AssetEntry{
				{ID: "ground", Path: "ground.png"},
				{ID: "cross", Path: "cross.png"},
				{ID: "arrow", Path: "arrow.png"},
				{ID: "player", Path: "player.png", Required: true},
				{ID: "monster", Path: "monster.png"},
			},
			Sounds: []AssetEntry{
				{ID: "shoot", Path: "shoot.wav"},
				{ID: "reload", Path: "reload.wav"},
			},
		},
		Controls: ControlsConfig{
			Up:     "W",
			Down:   "S",
			Left:   "A",
			Right:  "D",
			Shoot:  "left",
			Reload: "middle",
		},
		Scene: SceneConfig{
			ClearColor:  "#000000",
			GroundColor: "#ffffff",
			PlayerColor: "#3366cc",
			PlayerSize:  32,
			MonsterX:    100,
			MonsterY:    100,
			MonsterSize: 48,
			ArrowOffset: 40,
			ArrowSize:   16,
			CrossSize:   16,
			ShowHUD:     true,
		},
	}
}
