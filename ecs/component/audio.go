package component

import "github.com/milk9111/puff/common"

const (
	MaxVolume  = 2.0
	VolumeStep = 0.1
)

// AudioSettings is the in-memory volume state edited by the audio menu.
type AudioSettings struct {
	BGMVolume float64
	SFXVolume float64
	Muted     bool
}

func NewAudioSettings() *AudioSettings {
	return &AudioSettings{BGMVolume: 1, SFXVolume: 1}
}

// StepBGM moves the BGM volume by n steps, clamped to [0, MaxVolume].
func (a *AudioSettings) StepBGM(n int) {
	a.BGMVolume = stepVolume(a.BGMVolume, n)
}

func (a *AudioSettings) StepSFX(n int) {
	a.SFXVolume = stepVolume(a.SFXVolume, n)
}

// TargetBGM is the volume the crossfader ramps toward.
func (a *AudioSettings) TargetBGM() float64 {
	if a.Muted {
		return 0
	}
	return a.BGMVolume
}

func stepVolume(v float64, n int) float64 {
	return common.Clamp(common.RoundTo(v+float64(n)*VolumeStep, VolumeStep), 0, MaxVolume)
}

// SoundEvent asks the audio backend to play sfx/<Name>.wav.
type SoundEvent struct {
	Name string
}
