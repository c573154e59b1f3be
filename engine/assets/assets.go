package assets

import (
	"path/filepath"
	"strings"
)

// AssetID is the symbolic name an asset is looked up by.
type AssetID string

const (
	Ground  AssetID = "ground"
	Cross   AssetID = "cross"
	Arrow   AssetID = "arrow"
	Player  AssetID = "player"
	Monster AssetID = "monster"
	Shoot   AssetID = "shoot"
	Reload  AssetID = "reload"
	Font    AssetID = "font"
)

type ResourceType int

const (
	ResourceTypeNone ResourceType = iota
	ResourceTypeImage
	ResourceTypeSound
	ResourceTypeFont
)

func (r ResourceType) String() string {
	switch r {
	case ResourceTypeImage:
		return "image"
	case ResourceTypeSound:
		return "sound"
	case ResourceTypeFont:
		return "font"
	default:
		return "none"
	}
}

// ParseResourceType maps the kind names used in configuration files.
func ParseResourceType(s string) ResourceType {
	switch strings.ToLower(s) {
	case "image":
		return ResourceTypeImage
	case "sound":
		return ResourceTypeSound
	case "font":
		return ResourceTypeFont
	default:
		return ResourceTypeNone
	}
}

func DetermineAssetType(path string) ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".bmp":
		return ResourceTypeImage
	case ".wav":
		return ResourceTypeSound
	case ".fnt":
		return ResourceTypeFont
	default:
		return ResourceTypeNone
	}
}

// Spec names one file to load. Path is relative to the table directory
// unless absolute. A zero Kind is derived from the extension.
type Spec struct {
	ID       AssetID
	Kind     ResourceType
	Path     string
	Required bool
}

type LoadResult struct {
	ID       AssetID
	Kind     ResourceType
	Path     string
	Required bool
	Err      error
}

func (r LoadResult) Loaded() bool {
	return r.Err == nil
}
