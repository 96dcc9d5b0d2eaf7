package system

import (
	"testing"

	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/ecs/entity"
	"github.com/milk9111/puff/levels"
	"github.com/milk9111/puff/prefabs"
	"github.com/milk9111/puff/state"
)

func testRegistry() *levels.Registry {
	safeA := common.V(900, 40)
	safeB := common.V(50, 60)
	return levels.NewRegistry(
		&levels.Descriptor{
			ID:    "room_1",
			BGM:   "track_1",
			Spawn: common.V(100, 40),
			Floors: []levels.Floor{
				{Rect: common.Rect{X: 500, Y: -32, W: 1000, H: 64}},
			},
			Sensors: []levels.Sensor{
				{Rect: common.Rect{X: 990, Y: 100, W: 20, H: 200}, Index: 0, To: "room_2", Safe: &safeA},
			},
		},
		&levels.Descriptor{
			ID:    "room_2",
			BGM:   "track_2",
			Spawn: common.V(100, 40),
			Floors: []levels.Floor{
				{Rect: common.Rect{X: 500, Y: -32, W: 1000, H: 64}},
			},
			Sensors: []levels.Sensor{
				{Rect: common.Rect{X: 10, Y: 100, W: 20, H: 200}, Index: 0, To: "room_1", Safe: &safeB},
			},
			Modifiers: []levels.Modifier{
				{Kind: levels.ModifierBreakableWall, Index: 2, Rect: common.Rect{X: 600, Y: 100, W: 40, H: 200}},
			},
		},
	)
}

type lifecycleRig struct {
	w      *ecs.World
	states *state.Machines
	li     *entity.LevelInstantiator
	tc     *TransitionController
	fade   *FadeOverlaySystem
	char   ecs.Entity
}

func newLifecycleRig(t *testing.T) *lifecycleRig {
	t.Helper()
	w := ecs.NewWorld()
	states := state.NewMachines(state.AppInGame)
	li := entity.NewLevelInstantiator(testRegistry())
	if _, err := entity.NewCamera(w, &prefabs.CameraSpec{}); err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	if _, err := entity.NewMusicPlayer(w); err != nil {
		t.Fatalf("NewMusicPlayer: %v", err)
	}
	char, err := entity.NewCharacter(w, testPuffSpec(), common.V(980, 40), component.Abilities{})
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}
	if _, err := li.Instantiate(w, "room_1", common.ProgressionNone, nil); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	return &lifecycleRig{
		w:      w,
		states: states,
		li:     li,
		tc:     NewTransitionController(w, states, li),
		fade:   NewFadeOverlaySystem(states, 2.0),
		char:   char,
	}
}

// tick is one fixed step: apply queued states, then run the fade.
func (r *lifecycleRig) tick() {
	r.states.Apply()
	r.w.SetDelta(frame)
	r.fade.Update(r.w)
}

func (r *lifecycleRig) level(t *testing.T) string {
	t.Helper()
	_, inst, ok := entity.CurrentLevel(r.w)
	if !ok {
		return ""
	}
	return inst.ID
}

func TestTransitionSequence(t *testing.T) {
	r := newLifecycleRig(t)

	if !r.tc.RequestThroughSensor(&component.TransitionSensor{Index: 0, DestinationLevel: "room_2"}) {
		t.Fatalf("request rejected")
	}
	if r.tc.Request("room_1", nil) {
		t.Fatalf("second request accepted while busy")
	}

	r.tick()
	if !r.states.Transition.Is(state.TransitionStarted) || !r.states.Fade.Is(state.FadeIn) {
		t.Fatalf("after request: %v / %v", r.states.Transition.Get(), r.states.Fade.Get())
	}

	// Fade in: the old level stays until the screen is black.
	var fadeInTicks int
	for !r.states.Fade.Is(state.FadeInFinished) {
		if r.level(t) != "room_1" {
			t.Fatalf("level swapped during fade in")
		}
		if fadeInTicks > 120 {
			t.Fatalf("fade in never finished")
		}
		r.tick()
		fadeInTicks++
	}
	if fadeInTicks < 29 || fadeInTicks > 32 {
		t.Fatalf("fade in took %d ticks, want about 30", fadeInTicks)
	}
	if r.level(t) != "room_2" {
		t.Fatalf("level = %q after fade in, want room_2", r.level(t))
	}
	if !r.states.Transition.Is(state.TransitionStarted) {
		t.Fatalf("transition = %v, want started until the next tick", r.states.Transition.Get())
	}

	r.tick()
	if !r.states.Transition.Is(state.TransitionFinished) {
		t.Fatalf("transition = %v, want finished", r.states.Transition.Get())
	}
	pos, _ := ecs.Get(r.w, r.char, component.TransformComponent.Kind())
	if pos.X != 50 || pos.Y != 60 {
		t.Fatalf("character at (%v, %v), want (50, 60)", pos.X, pos.Y)
	}
	cam, _ := ecs.Get(r.w, mustFirst(t, r.w, component.CameraComponent.Kind()), component.CameraComponent.Kind())
	if cam.X != 50 || cam.Y != 60 {
		t.Fatalf("camera at (%v, %v), want snapped to (50, 60)", cam.X, cam.Y)
	}

	r.tick()
	if !r.states.Fade.Is(state.FadeOut) {
		t.Fatalf("fade = %v, want fade out", r.states.Fade.Get())
	}
	for i := 0; !r.states.Fade.Is(state.FadeNone); i++ {
		if !r.states.Transition.Is(state.TransitionFinished) {
			t.Fatalf("transition left finished before the fade ended")
		}
		if i > 120 {
			t.Fatalf("fade out never finished")
		}
		r.tick()
	}
	if !r.states.Transition.Is(state.TransitionIdle) {
		t.Fatalf("transition = %v, want idle with the fade", r.states.Transition.Get())
	}
	if _, ok := ecs.First(r.w, component.FadeOverlayComponent.Kind()); ok {
		t.Fatalf("overlay still alive")
	}
	if r.tc.Busy() {
		t.Fatalf("controller still busy")
	}
}

func TestTransitionSafePositionFallbacks(t *testing.T) {
	trigger := common.V(7, 8)
	cases := []struct {
		name   string
		sensor component.TransitionSensor
		want   common.Vec2
	}{
		{
			name:   "destination sensor wins",
			sensor: component.TransitionSensor{Index: 0, DestinationLevel: "room_2", SafePosition: &trigger},
			want:   common.V(50, 60),
		},
		{
			name:   "trigger safe position",
			sensor: component.TransitionSensor{Index: 5, DestinationLevel: "room_2", SafePosition: &trigger},
			want:   trigger,
		},
		{
			name:   "unchanged position",
			sensor: component.TransitionSensor{Index: 5, DestinationLevel: "room_2"},
			want:   common.V(980, 40),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newLifecycleRig(t)
			sensor := tc.sensor
			if !r.tc.RequestThroughSensor(&sensor) {
				t.Fatalf("request rejected")
			}
			for i := 0; i < 200 && !r.states.Transition.Is(state.TransitionFinished); i++ {
				r.tick()
			}
			pos, _ := ecs.Get(r.w, r.char, component.TransformComponent.Kind())
			if pos.X != tc.want.X || pos.Y != tc.want.Y {
				t.Fatalf("character at (%v, %v), want %v", pos.X, pos.Y, tc.want)
			}
		})
	}
}

func TestTransitionUnknownLevelIgnored(t *testing.T) {
	r := newLifecycleRig(t)
	if r.tc.Request("nowhere", nil) {
		t.Fatalf("request to unknown level accepted")
	}
	r.tick()
	if !r.states.Transition.Is(state.TransitionIdle) {
		t.Fatalf("transition = %v", r.states.Transition.Get())
	}
}

func TestTransitionResetsController(t *testing.T) {
	r := newLifecycleRig(t)
	p, _ := lookupCharacter(r.w, r.char)
	p.jumper.IsJumping = true
	p.movable.HuggingLeftWall = true
	p.movable.IsStunlocked = true
	p.dasher.TimeSinceDash = 0

	r.tc.Request("room_2", nil)
	for i := 0; i < 200 && !r.states.Transition.Is(state.TransitionFinished); i++ {
		r.tick()
	}
	if p.jumper.IsJumping || p.movable.HuggingLeftWall || p.movable.IsStunlocked || !p.jumper.JumpAvailable {
		t.Fatalf("controller not reset: %+v %+v", *p.jumper, *p.movable)
	}
	if p.dasher.TimeSinceDash < p.dasher.DashCooldown {
		t.Fatalf("after transition: timeSinceDash=%v cooldown=%v", p.dasher.TimeSinceDash, p.dasher.DashCooldown)
	}
}

func TestBrokenWallsStayBroken(t *testing.T) {
	r := newLifecycleRig(t)
	r.tc.Request("room_2", nil)
	for i := 0; i < 200 && !r.states.Transition.Is(state.TransitionFinished); i++ {
		r.tick()
	}
	if n := ecs.Count(r.w, component.BreakableWallComponent.Kind()); n != 1 {
		t.Fatalf("breakable walls = %d, want 1", n)
	}
	if got := BreakWalls(r.w, 2); got != 1 {
		t.Fatalf("BreakWalls = %d, want 1", got)
	}

	r.li.Despawn(r.w)
	ch, _ := ecs.Get(r.w, r.char, component.CharacterComponent.Kind())
	if _, err := r.li.Instantiate(r.w, "room_2", ch.Progression, ch.BrokenWalls); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if n := ecs.Count(r.w, component.BreakableWallComponent.Kind()); n != 0 {
		t.Fatalf("broken wall respawned")
	}
}

func mustFirst[T any](t *testing.T, w *ecs.World, kind component.ComponentKind[T]) ecs.Entity {
	t.Helper()
	e, ok := ecs.First(w, kind)
	if !ok {
		t.Fatalf("no entity with %v", kind)
	}
	return e
}
