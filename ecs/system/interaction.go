package system

import (
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/state"
)

// InteractionSystem acts on the interact key while the character overlaps
// a door, an NPC or a lever. The most recently touched one wins.
type InteractionSystem struct {
	states        *state.Machines
	transitions   *TransitionController
	conversations *ConversationSystem
	sounds        *ecs.EventQueue[component.SoundEvent]
}

func NewInteractionSystem(states *state.Machines, transitions *TransitionController, conversations *ConversationSystem, sounds *ecs.EventQueue[component.SoundEvent]) *InteractionSystem {
	return &InteractionSystem{states: states, transitions: transitions, conversations: conversations, sounds: sounds}
}

func (is *InteractionSystem) Update(w *ecs.World) {
	if is == nil || w == nil || !is.states.Interaction.Is(state.InteractionReady) {
		return
	}
	ecs.ForEach2(w, component.InputComponent.Kind(), component.InteractionTargetComponent.Kind(), func(e ecs.Entity, in *component.Input, target *component.InteractionTarget) {
		if !in.Interact.Pressed {
			return
		}
		for i := len(target.Entities) - 1; i >= 0; i-- {
			if is.interact(w, ecs.Entity(target.Entities[i])) {
				return
			}
		}
	})
}

func (is *InteractionSystem) interact(w *ecs.World, other ecs.Entity) bool {
	if !ecs.IsAlive(w, other) {
		return false
	}
	if door, ok := ecs.Get(w, other, component.DoorComponent.Kind()); ok {
		pos := door.SafePosition
		if is.transitions.Request(door.DestinationLevel, &pos) {
			is.sounds.Push(component.SoundEvent{Name: "door"})
		}
		return true
	}
	if ecs.Has(w, other, component.NPCComponent.Kind()) {
		return is.conversations.Start(w, other)
	}
	if ecs.Has(w, other, component.TimeTrialComponent.Kind()) {
		if StartTimeTrial(w, other) {
			is.sounds.Push(component.SoundEvent{Name: "lever"})
		}
		return true
	}
	return false
}
