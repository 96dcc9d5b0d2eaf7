package system

import (
	"log"

	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/state"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const defaultFadeRate = 2.0

// FadeOverlaySystem animates the transition overlay. The overlay entity
// is spawned when a fade in starts and destroyed when the fade out ends,
// at which point the transition returns to idle.
type FadeOverlaySystem struct {
	states *state.Machines
	// rate is alpha per second.
	rate float64
	goal float64
}

func NewFadeOverlaySystem(states *state.Machines, rate float64) *FadeOverlaySystem {
	if rate <= 0 {
		rate = defaultFadeRate
	}
	return &FadeOverlaySystem{states: states, rate: rate}
}

func (fs *FadeOverlaySystem) SetRate(rate float64) {
	if rate > 0 {
		fs.rate = rate
	}
}

func (fs *FadeOverlaySystem) Update(w *ecs.World) {
	if fs == nil || w == nil {
		return
	}
	dt := w.Delta()

	switch fs.states.Fade.Get() {
	case state.FadeIn:
		overlay := fs.ensureOverlay(w)
		if overlay == nil {
			return
		}
		if fs.advance(overlay, 1, dt) {
			fs.states.Fade.Set(state.FadeInFinished)
		}
	case state.FadeInFinished:
		if overlay := fs.ensureOverlay(w); overlay != nil {
			overlay.Alpha = 1
		}
	case state.FadeOut:
		overlay := fs.ensureOverlay(w)
		if overlay == nil {
			return
		}
		if fs.advance(overlay, 0, dt) {
			removeOverlay(w)
			fs.states.Fade.Set(state.FadeNone)
			if !fs.states.Transition.Is(state.TransitionIdle) {
				fs.states.Transition.Set(state.TransitionIdle)
			}
		}
	default:
		removeOverlay(w)
	}
}

// advance moves the overlay toward goal and reports whether it arrived.
func (fs *FadeOverlaySystem) advance(overlay *component.FadeOverlay, goal, dt float64) bool {
	if overlay.Tween == nil || fs.goal != goal {
		dist := goal - overlay.Alpha
		if dist < 0 {
			dist = -dist
		}
		fs.goal = goal
		overlay.Tween = gween.New(float32(overlay.Alpha), float32(goal), float32(dist/fs.rate), ease.Linear)
	}
	alpha, done := overlay.Tween.Update(float32(dt))
	overlay.Alpha = float64(alpha)
	if done {
		overlay.Alpha = goal
		overlay.Tween = nil
	}
	return done
}

func (fs *FadeOverlaySystem) ensureOverlay(w *ecs.World) *component.FadeOverlay {
	if e, ok := ecs.First(w, component.FadeOverlayComponent.Kind()); ok {
		overlay, _ := ecs.Get(w, e, component.FadeOverlayComponent.Kind())
		return overlay
	}
	e := ecs.CreateEntity(w)
	overlay := &component.FadeOverlay{}
	if err := ecs.Add(w, e, component.FadeOverlayComponent.Kind(), overlay); err != nil {
		log.Printf("fade: add overlay: %v", err)
		return nil
	}
	fs.goal = -1
	return overlay
}

func removeOverlay(w *ecs.World) {
	if e, ok := ecs.First(w, component.FadeOverlayComponent.Kind()); ok {
		ecs.DestroyEntity(w, e)
	}
}
