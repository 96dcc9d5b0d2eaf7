package entity

import (
	"fmt"

	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/prefabs"
)

func NewCamera(w *ecs.World, spec *prefabs.CameraSpec) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	smooth, hold, dist := 0.15, 0.3, 360.0
	if spec != nil {
		if spec.Smoothness > 0 {
			smooth = spec.Smoothness
		}
		if spec.PeekHold > 0 {
			hold = spec.PeekHold
		}
		if spec.PeekDistance > 0 {
			dist = spec.PeekDistance
		}
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		Smoothness:   smooth,
		PeekHold:     hold,
		PeekDistance: dist,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}

func NewMusicPlayer(w *ecs.World) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.MusicPlayerComponent.Kind(), &component.MusicPlayer{}); err != nil {
		return 0, fmt.Errorf("music player: %w", err)
	}
	return e, nil
}
