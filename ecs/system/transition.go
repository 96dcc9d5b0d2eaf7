package system

import (
	"log"

	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/ecs/entity"
	"github.com/milk9111/puff/state"
)

type transitionRequest struct {
	level string
	// position is where the character lands; nil keeps it where it is.
	position *common.Vec2
}

// TransitionController sequences a level change. A request starts the
// fade in; once the screen is black the level is swapped, then the
// character is placed and the fade out begins:
//
//	Idle -> Started (FadeIn) -> FadeInFinished: despawn + instantiate
//	     -> Finished: place, snap camera, reset controller, FadeOut
//	     -> Idle once the overlay is gone.
type TransitionController struct {
	world   *ecs.World
	states  *state.Machines
	levels  *entity.LevelInstantiator
	pending *transitionRequest
}

func NewTransitionController(w *ecs.World, states *state.Machines, levels *entity.LevelInstantiator) *TransitionController {
	tc := &TransitionController{world: w, states: states, levels: levels}
	states.Fade.OnEnter(state.FadeInFinished, tc.swap)
	states.Transition.OnEnter(state.TransitionFinished, tc.arrive)
	return tc
}

// Busy reports whether a transition is queued or running.
func (tc *TransitionController) Busy() bool {
	return tc.pending != nil || !tc.states.Transition.Is(state.TransitionIdle)
}

// Destination returns the level of the running transition.
func (tc *TransitionController) Destination() (string, bool) {
	if tc.pending == nil {
		return "", false
	}
	return tc.pending.level, true
}

// Request starts a transition to level. Requests made while another one
// runs are ignored.
func (tc *TransitionController) Request(level string, position *common.Vec2) bool {
	if tc.Busy() {
		return false
	}
	desc, ok := tc.levels.Registry.Get(level)
	if !ok {
		log.Printf("transition: unknown level %q", level)
		return false
	}

	req := &transitionRequest{level: level}
	if position != nil {
		p := *position
		req.position = &p
	}
	tc.pending = req
	tc.states.Transition.Set(state.TransitionStarted)
	tc.states.Fade.Set(state.FadeIn)

	if mp := musicPlayer(tc.world); mp != nil {
		mp.Desired = desc.Track(currentProgression(tc.world))
		mp.Hold = true
	}
	return true
}

// RequestThroughSensor starts a transition for a sensor touch. The arrival
// point is the safe position of the destination's sensor with the same
// index, then the sensor's own safe position, then unchanged.
func (tc *TransitionController) RequestThroughSensor(ts *component.TransitionSensor) bool {
	if ts == nil {
		return false
	}
	var pos *common.Vec2
	if desc, ok := tc.levels.Registry.Get(ts.DestinationLevel); ok {
		if s, ok := desc.SensorByIndex(currentProgression(tc.world), ts.Index); ok && s.Safe != nil {
			pos = s.Safe
		}
	}
	if pos == nil && ts.SafePosition != nil {
		pos = ts.SafePosition
	}
	if pos == nil {
		log.Printf("transition: no safe position for sensor %d to %s", ts.Index, ts.DestinationLevel)
	}
	return tc.Request(ts.DestinationLevel, pos)
}

// Cancel drops a pending transition without running its hooks. Used when
// the run is torn down.
func (tc *TransitionController) Cancel() {
	tc.pending = nil
	tc.states.Transition.Force(state.TransitionIdle)
	tc.states.Fade.Force(state.FadeNone)
}

func (tc *TransitionController) swap() {
	req := tc.pending
	if req == nil {
		return
	}
	w := tc.world
	tc.levels.Despawn(w)

	var broken map[string]bool
	if e, ok := entity.FindCharacter(w); ok {
		if ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok {
			broken = ch.BrokenWalls
		}
	}
	if _, err := tc.levels.Instantiate(w, req.level, currentProgression(w), broken); err != nil {
		log.Printf("transition: %v", err)
	}
	if _, inst, ok := entity.CurrentLevel(w); ok {
		if mp := musicPlayer(w); mp != nil {
			mp.Desired = inst.BGM
		}
	}
	tc.states.Transition.Set(state.TransitionFinished)
}

func (tc *TransitionController) arrive() {
	req := tc.pending
	tc.pending = nil
	w := tc.world

	if e, ok := entity.FindCharacter(w); ok {
		if req != nil && req.position != nil {
			PlaceEntity(w, e, *req.position)
		}
		ResetCharacterController(w, e)
	}
	SnapCamera(w)
	if mp := musicPlayer(w); mp != nil {
		mp.Hold = false
	}
	tc.states.Fade.Set(state.FadeOut)
}

func currentProgression(w *ecs.World) common.Progression {
	e, ok := entity.FindCharacter(w)
	if !ok {
		return common.ProgressionNone
	}
	ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
	if !ok {
		return common.ProgressionNone
	}
	return ch.Progression
}

func musicPlayer(w *ecs.World) *component.MusicPlayer {
	e, ok := ecs.First(w, component.MusicPlayerComponent.Kind())
	if !ok {
		return nil
	}
	mp, _ := ecs.Get(w, e, component.MusicPlayerComponent.Kind())
	return mp
}
