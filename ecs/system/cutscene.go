package system

import (
	"log"

	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/input"
	"github.com/milk9111/puff/levels"
	"github.com/milk9111/puff/prefabs"
	"github.com/milk9111/puff/state"
)

// CutsceneSystem shows numbered stills while AppState is Cutscene. The
// advance key steps frames; after the last one the game resumes at the
// cutscene's level or the credits are shown.
type CutsceneSystem struct {
	states  *state.Machines
	router  *InputRouterSystem
	spec    *prefabs.CutscenesSpec
	session *Session
}

func NewCutsceneSystem(states *state.Machines, router *InputRouterSystem, spec *prefabs.CutscenesSpec, session *Session) *CutsceneSystem {
	return &CutsceneSystem{states: states, router: router, spec: spec, session: session}
}

func (cs *CutsceneSystem) SetSpec(spec *prefabs.CutscenesSpec) {
	if spec != nil {
		cs.spec = spec
	}
}

// Play starts cutscene id. Unknown cutscenes are skipped.
func (cs *CutsceneSystem) Play(w *ecs.World, id string) bool {
	scene, ok := cs.lookup(id)
	if !ok {
		log.Printf("cutscene: unknown cutscene %q", id)
		return false
	}
	stopCutscene(w)
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CutscenePlayerComponent.Kind(), &component.CutscenePlayer{ID: id, Frames: scene.Frames}); err != nil {
		log.Printf("cutscene: %v", err)
		return false
	}
	cs.states.App.Set(state.AppCutscene)
	return true
}

func (cs *CutsceneSystem) Update(w *ecs.World) {
	if cs == nil || w == nil || !cs.states.App.Is(state.AppCutscene) {
		return
	}
	e, ok := ecs.First(w, component.CutscenePlayerComponent.Kind())
	if !ok {
		cs.states.App.Set(state.AppMainMenu)
		return
	}
	player, _ := ecs.Get(w, e, component.CutscenePlayerComponent.Kind())
	s := cs.router.Snapshot()
	if !s.Pressed(input.KeyAdvance) && !s.Pressed(input.KeyJump) {
		return
	}
	player.Frame++
	if player.Frame < player.Frames {
		return
	}
	ecs.DestroyEntity(w, e)
	cs.finish(player.ID)
}

func (cs *CutsceneSystem) finish(id string) {
	scene, _ := cs.lookup(id)
	switch {
	case scene.Credits:
		cs.session.End()
		cs.states.App.Set(state.AppCreditsMenu)
	case scene.Level != "":
		cs.session.Queue(levels.ScriptedTransition{Level: scene.Level, Position: common.V(scene.X, scene.Y)})
		cs.states.App.Set(state.AppInGame)
	default:
		cs.states.App.Set(state.AppInGame)
	}
}

func (cs *CutsceneSystem) lookup(id string) (prefabs.CutsceneSpec, bool) {
	if cs.spec == nil {
		return prefabs.CutsceneSpec{}, false
	}
	scene, ok := cs.spec.Cutscenes[id]
	return scene, ok
}

func stopCutscene(w *ecs.World) {
	if e, ok := ecs.First(w, component.CutscenePlayerComponent.Kind()); ok {
		ecs.DestroyEntity(w, e)
	}
}
