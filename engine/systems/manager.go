package systems

import (
	"github.com/spaghettifunk/topdown/engine/assets"
	"github.com/spaghettifunk/topdown/engine/audio"
	"github.com/spaghettifunk/topdown/engine/core"
	"github.com/spaghettifunk/topdown/engine/renderer"
)

// SystemManager is the set of subsystems a game can reach once the engine
// has initialized them.
type SystemManager struct {
	Assets   *assets.Table
	Renderer renderer.Backend
	Input    *core.InputState
	Metrics  *core.Metrics

	// nil when the audio device could not be opened and audio is optional.
	Mixer audio.Mixer
}

// PlaySound starts the sound registered under id without waiting for it.
// It returns false when the sound is not loaded or could not be started;
// the failure is logged.
func (sm *SystemManager) PlaySound(id assets.AssetID) bool {
	if sm.Mixer == nil || sm.Assets == nil {
		return false
	}
	snd := sm.Assets.Sound(id)
	if snd == nil {
		return false
	}
	if err := sm.Mixer.Play(snd); err != nil {
		core.LogError("cannot play %s sound: %s", id, err)
		return false
	}
	return true
}
