package entity

import (
	"testing"
	"testing/fstest"

	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/levels"
	"github.com/milk9111/puff/prefabs"
)

const roomA = `
id: a
bgm: hell
floors:
  - {x: 0, y: -10, w: 200, h: 20, asset: ground}
  - {x: 0, y: 100, w: 20, h: 20, when: {from: met_milk}}
sensors:
  - {index: 3, x: 90, y: 20, w: 10, h: 40, to: b, safe: {x: 10, y: 20}}
doors:
  - {index: 0, x: -50, y: 20, w: 20, h: 40, to: b, safe: {x: 1, y: 2}}
npcs:
  - {name: milk, x: 0, y: 20, w: 20, h: 40}
modifiers:
  - {kind: breakable_wall, index: 1, x: 50, y: 20, w: 10, h: 40, asset: crate}
  - {kind: jump_pad, x: 20, y: 0, w: 10, h: 5}
  - {kind: gravity_inverter, x: 30, y: 50, w: 10, h: 10}
  - kind: time_trial
    x: 40
    y: 10
    w: 5
    h: 10
    seconds: 3
    floors:
      - {x: 70, y: 0, w: 10, h: 10}
decorations:
  - {asset: lamp, x: 1, y: 2, z: -1}
`

func testInstantiator(t *testing.T) *LevelInstantiator {
	t.Helper()
	r, err := levels.Load(fstest.MapFS{"a.yaml": {Data: []byte(roomA)}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return NewLevelInstantiator(r)
}

func TestInstantiateAndDespawn(t *testing.T) {
	li := testInstantiator(t)
	cases := []struct {
		name      string
		p         common.Progression
		broken    map[string]bool
		floors    int
		modifiers int
	}{
		{"fresh", common.ProgressionNone, nil, 2, 4},
		{"progressed", common.ProgressionMetMilk, nil, 3, 4},
		{"wall_broken", common.ProgressionNone, map[string]bool{BrokenWallKey("a", 1): true}, 1, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			if _, err := li.Instantiate(w, "a", c.p, c.broken); err != nil {
				t.Fatalf("instantiate: %v", err)
			}
			_, inst, ok := CurrentLevel(w)
			if !ok {
				t.Fatal("expected a level instance")
			}
			if inst.BGM != "hell" || len(inst.Sensors) != 1 || len(inst.Doors) != 1 || len(inst.NPCs) != 1 || len(inst.Decorations) != 1 {
				t.Fatalf("unexpected instance %+v", inst)
			}
			if len(inst.Modifiers) != c.modifiers {
				t.Fatalf("expected %d modifiers, got %d", c.modifiers, len(inst.Modifiers))
			}
			if got := ecs.Count(w, component.FloorColliderComponent.Kind()); got != c.floors {
				t.Fatalf("expected %d floor colliders, got %d", c.floors, got)
			}

			if _, err := li.Instantiate(w, "a", c.p, c.broken); err == nil {
				t.Fatal("second instantiate without despawn must fail")
			}

			if !li.Despawn(w) {
				t.Fatal("expected despawn to report work")
			}
			if n := len(ecs.Entities(w)); n != 0 {
				t.Fatalf("expected empty world, got %d entities", n)
			}
		})
	}
}

func TestInstantiateUnknownLevel(t *testing.T) {
	li := testInstantiator(t)
	w := ecs.NewWorld()
	if _, err := li.Instantiate(w, "nope", common.ProgressionNone, nil); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestCharacterTuning(t *testing.T) {
	spec := &prefabs.PuffSpec{Radius: 15, Mass: 1, GravityScale: 1.5, Speed: 500, JumpImpulse: 800, DashCooldown: 0.5, StunDuration: 0.2}
	w := ecs.NewWorld()
	e, err := NewCharacter(w, spec, common.V(1, 2), component.Abilities{Dash: true})
	if err != nil {
		t.Fatalf("new character: %v", err)
	}
	if got, ok := FindCharacter(w); !ok || got != e {
		t.Fatalf("FindCharacter: got %v ok=%v", got, ok)
	}
	d, _ := ecs.Get(w, e, component.DasherComponent.Kind())
	if d.TimeSinceDash < d.DashCooldown {
		t.Fatalf("fresh character must be able to dash, timeSinceDash=%v", d.TimeSinceDash)
	}

	ch, _ := ecs.Get(w, e, component.CharacterComponent.Kind())
	ch.IsUpsideDown = true
	spec.JumpImpulse = 900
	if !ApplyPuffSpec(w, e, spec) {
		t.Fatal("apply failed")
	}
	j, _ := ecs.Get(w, e, component.JumperComponent.Kind())
	g, _ := ecs.Get(w, e, component.GravityScaleComponent.Kind())
	if j.JumpImpulse != -900 || g.Scale != -1.5 {
		t.Fatalf("expected inverted tunables, got impulse=%v scale=%v", j.JumpImpulse, g.Scale)
	}
}

func TestInstantiateRollsBackOnFailure(t *testing.T) {
	broken := &levels.Descriptor{
		ID:     "broken",
		Floors: []levels.Floor{{Rect: common.Rect{W: 100, H: 20}}, {Rect: common.Rect{Y: 50, W: 20, H: 20}}},
		Modifiers: []levels.Modifier{
			{Kind: levels.ModifierJumpPad, Rect: common.Rect{W: 10, H: 5}},
			{Kind: "conveyor", Rect: common.Rect{W: 10, H: 5}},
		},
		Decorations: []levels.Decoration{{Asset: "lamp"}},
	}
	fine := &levels.Descriptor{
		ID:     "fine",
		Floors: []levels.Floor{{Rect: common.Rect{W: 100, H: 20}}},
	}
	li := NewLevelInstantiator(levels.NewRegistry(broken, fine))
	w := ecs.NewWorld()

	if _, err := li.Instantiate(w, "broken", common.ProgressionNone, nil); err == nil {
		t.Fatal("expected error for unknown modifier kind")
	}
	if n := len(ecs.Entities(w)); n != 0 {
		t.Fatalf("%d entities left after a failed instantiate", n)
	}
	if _, _, ok := CurrentLevel(w); ok {
		t.Fatal("failed instantiate left an instance")
	}

	if _, err := li.Instantiate(w, "fine", common.ProgressionNone, nil); err != nil {
		t.Fatalf("Instantiate after rollback: %v", err)
	}
	if n := ecs.Count(w, component.LevelMemberComponent.Kind()); n != 1 {
		t.Fatalf("level members = %d, want 1", n)
	}
}
