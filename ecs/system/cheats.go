package system

import (
	"fmt"
	"log"

	"github.com/milk9111/puff/assets"
	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/ecs/entity"
	"github.com/milk9111/puff/input"
	"github.com/milk9111/puff/levels"
	"github.com/milk9111/puff/prefabs"
	"github.com/milk9111/puff/state"
)

var cheatLetters = map[input.Key]string{
	input.KeyH: "h",
	input.KeyF: "f",
	input.KeyS: "s",
}

// CheatSystem handles the developer shortcuts that ship with the game:
// A+R+T swaps in the programmer art, and a cheat letter held with a digit
// jumps straight to that level with the abilities it expects.
type CheatSystem struct {
	states      *state.Machines
	router      *InputRouterSystem
	transitions *TransitionController
	library     *assets.Library
	spec        *prefabs.CheatsSpec
}

func NewCheatSystem(states *state.Machines, router *InputRouterSystem, transitions *TransitionController, library *assets.Library, spec *prefabs.CheatsSpec) *CheatSystem {
	return &CheatSystem{states: states, router: router, transitions: transitions, library: library, spec: spec}
}

func (cs *CheatSystem) SetSpec(spec *prefabs.CheatsSpec) {
	if spec != nil {
		cs.spec = spec
	}
}

func (cs *CheatSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	s := cs.router.Snapshot()

	if cs.library != nil && chord(s, input.KeyA, input.KeyR, input.KeyT) {
		on := cs.library.ToggleOverride()
		log.Printf("cheats: programmer art %v", on)
	}

	if !cs.states.App.Is(state.AppInGame) || cs.spec == nil {
		return
	}
	digit, ok := s.Digit()
	if !ok {
		return
	}
	for key, letter := range cheatLetters {
		if !s.Down(key) {
			continue
		}
		cheat, ok := cs.spec.Levels[letter]
		if !ok {
			continue
		}
		cs.jump(w, fmt.Sprintf("%s_%d", cheat.Prefix, digit), cheat)
		return
	}
}

// chord reports whether all keys are held and one of them went down this
// frame.
func chord(s input.Snapshot, keys ...input.Key) bool {
	pressed := false
	for _, k := range keys {
		if !s.Down(k) {
			return false
		}
		pressed = pressed || s.Pressed(k)
	}
	return pressed
}

func (cs *CheatSystem) jump(w *ecs.World, level string, cheat prefabs.CheatSpec) {
	desc, ok := cs.transitions.levels.Registry.Get(level)
	if !ok {
		log.Printf("cheats: no level %s", level)
		return
	}
	e, ok := entity.FindCharacter(w)
	if !ok {
		return
	}
	if cs.transitions.Busy() {
		return
	}
	if ab, ok := ecs.Get(w, e, component.AbilitiesComponent.Kind()); ok {
		*ab = component.Abilities{}
		for _, name := range cheat.Abilities {
			a, err := levels.ParseAbility(name)
			if err != nil {
				log.Printf("cheats: %v", err)
				continue
			}
			grantAbility(ab, a)
		}
	}
	if ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok && cheat.Progression != "" {
		p, err := common.ParseProgression(cheat.Progression)
		if err != nil {
			log.Printf("cheats: %v", err)
		} else {
			ch.Progression = p
		}
	}
	spawn := desc.Spawn
	log.Printf("cheats: jumping to %s", level)
	cs.transitions.Request(level, &spawn)
}
