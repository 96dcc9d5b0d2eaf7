package system

import (
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/input"
	"github.com/milk9111/puff/state"
)

// InputRouterSystem copies the frame's key snapshot into the character's
// Input. Nothing reaches the character outside of play, during a fade or
// while a conversation is open. Action keys still held when that ends stay
// silent until released.
type InputRouterSystem struct {
	states     *state.Machines
	snapshot   input.Snapshot
	suppressed [input.KeyCount]bool
	lastDir    int
}

// suppressible keys trigger actions on their edges.
var suppressible = []input.Key{input.KeyJump, input.KeyDash, input.KeyInteract}

func NewInputRouterSystem(states *state.Machines) *InputRouterSystem {
	return &InputRouterSystem{states: states}
}

// SetSnapshot stores the keys sampled for this frame.
func (ir *InputRouterSystem) SetSnapshot(s input.Snapshot) {
	ir.snapshot = s
}

// Snapshot returns the raw, ungated keys. Menus, cheats and dialog read it.
func (ir *InputRouterSystem) Snapshot() input.Snapshot {
	return ir.snapshot
}

// Gated reports whether the character ignores input this frame.
func (ir *InputRouterSystem) Gated() bool {
	return !ir.states.App.Is(state.AppInGame) ||
		!ir.states.Fade.Is(state.FadeNone) ||
		ir.states.Conversation.Is(state.ConversationStarted)
}

func (ir *InputRouterSystem) Update(w *ecs.World) {
	if ir == nil || w == nil {
		return
	}
	raw := ir.snapshot
	gated := ir.Gated()

	var routed component.Input
	if !gated {
		routed = ir.route(raw)
	}
	for _, k := range suppressible {
		if !raw.Down(k) {
			ir.suppressed[k] = false
		} else if gated {
			ir.suppressed[k] = true
		}
	}
	if gated {
		ir.lastDir = 0
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		*in = routed
	})
}

func (ir *InputRouterSystem) route(s input.Snapshot) component.Input {
	in := component.Input{
		Left:     ir.button(s, input.KeyLeft),
		Right:    ir.button(s, input.KeyRight),
		Up:       ir.button(s, input.KeyUp),
		Down:     ir.button(s, input.KeyDown),
		Jump:     ir.button(s, input.KeyJump),
		Dash:     ir.button(s, input.KeyDash),
		Interact: ir.button(s, input.KeyInteract),
	}

	// The most recently pressed direction wins while both are held.
	if in.Left.Pressed {
		ir.lastDir = -1
	}
	if in.Right.Pressed {
		ir.lastDir = 1
	}
	switch {
	case in.Left.Held && in.Right.Held:
		if ir.lastDir == 0 {
			ir.lastDir = 1
		}
		in.Horizontal = ir.lastDir
	case in.Left.Held:
		in.Horizontal = -1
	case in.Right.Held:
		in.Horizontal = 1
	}
	return in
}

func (ir *InputRouterSystem) button(s input.Snapshot, k input.Key) component.Button {
	if ir.suppressed[k] {
		return component.Button{}
	}
	return component.Button{Held: s.Down(k), Pressed: s.Pressed(k), Released: s.Released(k)}
}
