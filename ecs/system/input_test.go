package system

import (
	"testing"

	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/input"
	"github.com/milk9111/puff/state"
)

type routerRig struct {
	w       *ecs.World
	states  *state.Machines
	router  *InputRouterSystem
	tracker input.Tracker
	in      *component.Input
}

func newRouterRig(t *testing.T) *routerRig {
	t.Helper()
	w := ecs.NewWorld()
	p := newTestCharacter(t, w, component.Abilities{})
	states := state.NewMachines(state.AppInGame)
	return &routerRig{w: w, states: states, router: NewInputRouterSystem(states), in: p.input}
}

func (r *routerRig) frame(held ...input.Key) component.Input {
	r.states.Apply()
	r.router.SetSnapshot(r.tracker.Next(held...))
	r.router.Update(r.w)
	return *r.in
}

func TestRouterHorizontalLastPressedWins(t *testing.T) {
	r := newRouterRig(t)

	cases := []struct {
		name string
		held []input.Key
		want int
	}{
		{name: "left", held: []input.Key{input.KeyLeft}, want: -1},
		{name: "right added wins", held: []input.Key{input.KeyLeft, input.KeyRight}, want: 1},
		{name: "left released", held: []input.Key{input.KeyRight}, want: 1},
		{name: "left pressed again wins", held: []input.Key{input.KeyRight, input.KeyLeft}, want: -1},
		{name: "nothing", held: nil, want: 0},
	}

	for _, tc := range cases {
		if got := r.frame(tc.held...).Horizontal; got != tc.want {
			t.Fatalf("%s: Horizontal = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestRouterGatedOutsideGame(t *testing.T) {
	cases := []struct {
		name string
		set  func(*state.Machines)
	}{
		{name: "main menu", set: func(s *state.Machines) { s.App.Set(state.AppMainMenu) }},
		{name: "fade", set: func(s *state.Machines) { s.Fade.Set(state.FadeIn) }},
		{name: "conversation", set: func(s *state.Machines) { s.Conversation.Set(state.ConversationStarted) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouterRig(t)
			tc.set(r.states)
			got := r.frame(input.KeyRight, input.KeyJump)
			if got != (component.Input{}) {
				t.Fatalf("gated input leaked: %+v", got)
			}
		})
	}
}

func TestRouterSuppressesActionKeysHeldThroughGate(t *testing.T) {
	r := newRouterRig(t)
	r.states.Conversation.Set(state.ConversationStarted)
	r.frame(input.KeyJump, input.KeyRight)

	r.states.Conversation.Set(state.ConversationFinished)
	got := r.frame(input.KeyJump, input.KeyRight)
	if got.Jump != (component.Button{}) {
		t.Fatalf("jump leaked after gate: %+v", got.Jump)
	}
	if got.Horizontal != 1 {
		t.Fatalf("direction keys should resume, Horizontal = %d", got.Horizontal)
	}

	// The release of a suppressed key is swallowed too.
	got = r.frame(input.KeyRight)
	if got.Jump.Released {
		t.Fatalf("suppressed release reported")
	}

	got = r.frame(input.KeyRight, input.KeyJump)
	if !got.Jump.Pressed || !got.Jump.Held {
		t.Fatalf("fresh press not routed: %+v", got.Jump)
	}
}

func TestRouterKeepsRawSnapshot(t *testing.T) {
	r := newRouterRig(t)
	r.states.App.Set(state.AppMainMenu)
	r.frame(input.KeyEscape)
	if !r.router.Snapshot().Pressed(input.KeyEscape) {
		t.Fatalf("raw snapshot lost escape")
	}
	if !r.router.Gated() {
		t.Fatalf("expected gated in main menu")
	}
}
