package system

import (
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/state"
)

const interactables = component.KindDoor | component.KindNPC | component.KindLever

// SensorSystem reacts to the character touching non-terrain volumes:
// transition sensors, jump pads, gravity inverters and the interactables
// the interact key works on.
type SensorSystem struct {
	contacts    *ecs.EventQueue[component.Contact]
	states      *state.Machines
	transitions *TransitionController
	sounds      *ecs.EventQueue[component.SoundEvent]
}

func NewSensorSystem(contacts *ecs.EventQueue[component.Contact], states *state.Machines, transitions *TransitionController, sounds *ecs.EventQueue[component.SoundEvent]) *SensorSystem {
	return &SensorSystem{contacts: contacts, states: states, transitions: transitions, sounds: sounds}
}

func (ss *SensorSystem) Update(w *ecs.World) {
	if ss == nil || w == nil {
		return
	}
	for _, c := range ss.contacts.Items() {
		char := ecs.Entity(c.Character)
		other := ecs.Entity(c.Other)

		if c.Kind.Has(component.KindGravityInverter) {
			ss.gravityContact(w, char, c.Phase)
		}
		if c.Kind&interactables != 0 {
			trackInteractable(w, char, c.Other, !c.Phase.Ended())
		}
		if c.Phase.Ended() {
			continue
		}
		if c.Kind.Has(component.KindJumpPad) && !ss.transitions.Busy() {
			ss.bounce(w, char)
		}
		if c.Kind.Has(component.KindTransitionSensor) {
			if ts, ok := ecs.Get(w, other, component.TransitionSensorComponent.Kind()); ok {
				ss.transitions.RequestThroughSensor(ts)
			}
		}
	}

	ready := state.InteractionNotReady
	ecs.ForEach(w, component.InteractionTargetComponent.Kind(), func(_ ecs.Entity, t *component.InteractionTarget) {
		if len(t.Entities) > 0 {
			ready = state.InteractionReady
		}
	})
	if !ss.states.Interaction.Is(ready) {
		ss.states.Interaction.Set(ready)
	}
}

// gravityContact flips the character while it overlaps at least one
// inverter volume.
func (ss *SensorSystem) gravityContact(w *ecs.World, char ecs.Entity, phase component.ContactPhase) {
	ch, ok := ecs.Get(w, char, component.CharacterComponent.Kind())
	if !ok {
		return
	}
	if phase == component.ContactStarted {
		ch.InverterContacts++
		if ch.InverterContacts == 1 {
			InvertGravity(w, char)
		}
		return
	}
	if ch.InverterContacts > 0 {
		ch.InverterContacts--
	}
	if ch.InverterContacts == 0 {
		RestoreGravity(w, char)
	}
}

// bounce launches the character at twice its jump impulse. The jump
// chain is spent but a double jump stays available.
func (ss *SensorSystem) bounce(w *ecs.World, char ecs.Entity) {
	j, ok := ecs.Get(w, char, component.JumperComponent.Kind())
	if !ok {
		return
	}
	vel, ok := ecs.Get(w, char, component.VelocityComponent.Kind())
	if !ok {
		return
	}
	vel.Y = 2 * j.JumpImpulse
	j.IsJumping = true
	j.IsNextJumpDoubleJump = true
	j.LeftGround = false
	ss.sounds.Push(component.SoundEvent{Name: "jump_pad"})
}

func trackInteractable(w *ecs.World, char ecs.Entity, other uint64, touching bool) {
	t, ok := ecs.Get(w, char, component.InteractionTargetComponent.Kind())
	if !ok {
		return
	}
	kept := t.Entities[:0]
	for _, e := range t.Entities {
		if e != other {
			kept = append(kept, e)
		}
	}
	t.Entities = kept
	if touching {
		t.Entities = append(t.Entities, other)
	}
}
