package core

import (
	"errors"
)

var (
	ErrPlatformStartup  = errors.New("platform startup failed")
	ErrRendererStartup  = errors.New("renderer startup failed")
	ErrAudioStartup     = errors.New("audio startup failed")
	ErrRequiredAsset    = errors.New("required asset could not be loaded")
	ErrUnknownAssetType = errors.New("unknown asset type")
	ErrNotInitialized   = errors.New("subsystem not initialized")
	ErrUnsupportedWAV   = errors.New("unsupported wav data")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrUnknown          = errors.New("unknown")
)
