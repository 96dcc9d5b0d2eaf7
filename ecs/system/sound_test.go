package system

import (
	"testing"

	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
)

type played struct {
	name   string
	volume float64
}

type fakeSFX struct {
	played []played
}

func (f *fakeSFX) PlaySFX(name string, volume float64) {
	f.played = append(f.played, played{name, volume})
}

func TestSoundSystem(t *testing.T) {
	cases := []struct {
		name  string
		muted bool
		want  int
	}{
		{name: "plays queued effects", want: 2},
		{name: "muted drops effects", muted: true, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			queue := ecs.NewEventQueue[component.SoundEvent]()
			settings := component.NewAudioSettings()
			settings.StepSFX(-5)
			settings.Muted = tc.muted
			player := &fakeSFX{}
			ss := NewSoundSystem(queue, player, settings)

			queue.Push(component.SoundEvent{Name: "jump"})
			queue.Push(component.SoundEvent{Name: "dash"})
			ss.Update(w)

			if len(player.played) != tc.want {
				t.Fatalf("played %d effects, want %d", len(player.played), tc.want)
			}
			for _, p := range player.played {
				if p.volume != settings.SFXVolume {
					t.Fatalf("%s played at %v, want %v", p.name, p.volume, settings.SFXVolume)
				}
			}
			ss.Update(w)
			if len(player.played) != tc.want {
				t.Fatalf("queue was not drained: %d effects after second update", len(player.played))
			}
		})
	}
}
