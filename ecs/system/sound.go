package system

import (
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
)

// SFXPlayer plays one-shot effects.
type SFXPlayer interface {
	PlaySFX(name string, volume float64)
}

// SoundSystem hands queued sound events to the audio backend. Without a
// backend the events are dropped.
type SoundSystem struct {
	queue    *ecs.EventQueue[component.SoundEvent]
	player   SFXPlayer
	settings *component.AudioSettings
}

func NewSoundSystem(queue *ecs.EventQueue[component.SoundEvent], player SFXPlayer, settings *component.AudioSettings) *SoundSystem {
	return &SoundSystem{queue: queue, player: player, settings: settings}
}

func (ss *SoundSystem) Update(w *ecs.World) {
	if ss == nil {
		return
	}
	events := ss.queue.Drain()
	if ss.player == nil || ss.settings == nil || ss.settings.Muted {
		return
	}
	for _, ev := range events {
		ss.player.PlaySFX(ev.Name, ss.settings.SFXVolume)
	}
}
