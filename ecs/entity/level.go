package entity

import (
	"fmt"
	"strconv"

	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/levels"
)

// LevelInstantiator spawns rooms from the registry and tears them down.
// At most one instance exists at a time.
type LevelInstantiator struct {
	Registry *levels.Registry
}

func NewLevelInstantiator(registry *levels.Registry) *LevelInstantiator {
	return &LevelInstantiator{Registry: registry}
}

// CurrentLevel returns the live instance.
func CurrentLevel(w *ecs.World) (ecs.Entity, *component.LevelInstance, bool) {
	e, ok := ecs.First(w, component.LevelInstanceComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	inst, _ := ecs.Get(w, e, component.LevelInstanceComponent.Kind())
	return e, inst, true
}

// BrokenWallKey is the key under which a broken wall is remembered.
func BrokenWallKey(level string, index int) string {
	return level + "#" + strconv.Itoa(index)
}

// Despawn destroys the current instance and every entity it owns. It
// reports whether anything was despawned.
func (li *LevelInstantiator) Despawn(w *ecs.World) bool {
	var owned []ecs.Entity
	ecs.ForEach(w, component.LevelMemberComponent.Kind(), func(e ecs.Entity, _ *component.LevelMember) {
		owned = append(owned, e)
	})
	for _, e := range owned {
		ecs.DestroyEntity(w, e)
	}
	inst, _, ok := CurrentLevel(w)
	if ok {
		ecs.DestroyEntity(w, inst)
	}
	return ok || len(owned) > 0
}

// Instantiate spawns level id at progression p. broken lists walls already
// broken this run. The previous instance must have been despawned. On
// failure everything spawned so far is despawned again.
func (li *LevelInstantiator) Instantiate(w *ecs.World, id string, p common.Progression, broken map[string]bool) (ecs.Entity, error) {
	if _, _, ok := CurrentLevel(w); ok {
		return 0, fmt.Errorf("level %s: previous instance still alive", id)
	}
	desc, err := li.Registry.Lookup(id)
	if err != nil {
		return 0, err
	}
	inst, err := spawnLayout(w, id, desc.Layout(p), broken)
	if err != nil {
		li.Despawn(w)
		return 0, fmt.Errorf("level %s: %w", id, err)
	}
	inst.Progression = p

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LevelInstanceComponent.Kind(), inst); err != nil {
		li.Despawn(w)
		return 0, fmt.Errorf("level %s: add instance: %w", id, err)
	}
	return e, nil
}

func spawnLayout(w *ecs.World, id string, layout levels.Layout, broken map[string]bool) (*component.LevelInstance, error) {
	inst := &component.LevelInstance{ID: id, BGM: layout.BGM}
	for _, f := range layout.Floors {
		e, err := SpawnFloor(w, id, f.Rect, f.Asset)
		if err != nil {
			return nil, err
		}
		inst.Floors = append(inst.Floors, uint64(e))
	}
	for _, s := range layout.Sensors {
		e, err := spawnTransitionSensor(w, id, s)
		if err != nil {
			return nil, err
		}
		inst.Sensors = append(inst.Sensors, uint64(e))
	}
	for _, d := range layout.Doors {
		e, err := spawnDoor(w, id, d)
		if err != nil {
			return nil, err
		}
		inst.Doors = append(inst.Doors, uint64(e))
	}
	for _, n := range layout.NPCs {
		e, err := spawnNPC(w, id, n)
		if err != nil {
			return nil, err
		}
		inst.NPCs = append(inst.NPCs, uint64(e))
	}
	for _, m := range layout.Modifiers {
		if m.Kind == levels.ModifierBreakableWall && broken[BrokenWallKey(id, m.Index)] {
			continue
		}
		e, err := spawnModifier(w, id, m)
		if err != nil {
			return nil, err
		}
		inst.Modifiers = append(inst.Modifiers, uint64(e))
	}
	for _, d := range layout.Decorations {
		e, err := spawnDecoration(w, id, d)
		if err != nil {
			return nil, err
		}
		inst.Decorations = append(inst.Decorations, uint64(e))
	}
	return inst, nil
}

// SpawnFloor creates a static terrain box owned by level.
func SpawnFloor(w *ecs.World, level string, r common.Rect, asset string) (ecs.Entity, error) {
	e, err := spawnVolume(w, level, r, false)
	if err != nil {
		return 0, fmt.Errorf("floor: %w", err)
	}
	if err := ecs.Add(w, e, component.FloorColliderComponent.Kind(), &component.FloorCollider{Asset: asset}); err != nil {
		return 0, fmt.Errorf("floor: add floor collider: %w", err)
	}
	if asset != "" {
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
			Path:      component.TilePath(asset),
			Width:     r.W,
			Height:    r.H,
			NineSlice: true,
		}); err != nil {
			return 0, fmt.Errorf("floor: add sprite: %w", err)
		}
	}
	return e, nil
}

func spawnVolume(w *ecs.World, level string, r common.Rect, sensor bool) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: r.X, Y: r.Y}); err != nil {
		return 0, fmt.Errorf("add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.ColliderBox,
		Width:  r.W,
		Height: r.H,
		Static: true,
		Sensor: sensor,
	}); err != nil {
		return 0, fmt.Errorf("add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.LevelMemberComponent.Kind(), &component.LevelMember{Level: level}); err != nil {
		return 0, fmt.Errorf("add level member: %w", err)
	}
	return e, nil
}

func spawnTransitionSensor(w *ecs.World, level string, s levels.Sensor) (ecs.Entity, error) {
	e, err := spawnVolume(w, level, s.Rect, true)
	if err != nil {
		return 0, fmt.Errorf("sensor %d: %w", s.Index, err)
	}
	var safe *common.Vec2
	if s.Safe != nil {
		p := *s.Safe
		safe = &p
	}
	if err := ecs.Add(w, e, component.TransitionSensorComponent.Kind(), &component.TransitionSensor{
		Index:            s.Index,
		DestinationLevel: s.To,
		SafePosition:     safe,
	}); err != nil {
		return 0, fmt.Errorf("sensor %d: add transition sensor: %w", s.Index, err)
	}
	return e, nil
}

func spawnDoor(w *ecs.World, level string, d levels.Door) (ecs.Entity, error) {
	e, err := spawnVolume(w, level, d.Rect, true)
	if err != nil {
		return 0, fmt.Errorf("door %d: %w", d.Index, err)
	}
	if err := ecs.Add(w, e, component.DoorComponent.Kind(), &component.Door{
		Index:            d.Index,
		DestinationLevel: d.To,
		SafePosition:     d.Safe,
	}); err != nil {
		return 0, fmt.Errorf("door %d: add door: %w", d.Index, err)
	}
	if d.Asset != "" {
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
			Path:   component.TilePath(d.Asset),
			Width:  d.W,
			Height: d.H,
		}); err != nil {
			return 0, fmt.Errorf("door %d: add sprite: %w", d.Index, err)
		}
	}
	return e, nil
}

func spawnNPC(w *ecs.World, level string, n levels.NPC) (ecs.Entity, error) {
	e, err := spawnVolume(w, level, n.Rect, true)
	if err != nil {
		return 0, fmt.Errorf("npc %s: %w", n.Name, err)
	}
	emotion := n.Emotion
	if emotion == "" {
		emotion = "neutral"
	}
	if err := ecs.Add(w, e, component.NPCComponent.Kind(), &component.NPC{Spec: n, Emotion: emotion}); err != nil {
		return 0, fmt.Errorf("npc %s: add npc: %w", n.Name, err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Path:   component.NPCPath(n.Name, emotion),
		Width:  n.W,
		Height: n.H,
	}); err != nil {
		return 0, fmt.Errorf("npc %s: add sprite: %w", n.Name, err)
	}
	return e, nil
}

func spawnModifier(w *ecs.World, level string, m levels.Modifier) (ecs.Entity, error) {
	switch m.Kind {
	case levels.ModifierBreakableWall:
		e, err := SpawnFloor(w, level, m.Rect, m.Asset)
		if err != nil {
			return 0, fmt.Errorf("breakable wall %d: %w", m.Index, err)
		}
		if err := ecs.Add(w, e, component.BreakableWallComponent.Kind(), &component.BreakableWall{Index: m.Index}); err != nil {
			return 0, fmt.Errorf("breakable wall %d: %w", m.Index, err)
		}
		return e, nil
	case levels.ModifierJumpPad:
		e, err := spawnVolume(w, level, m.Rect, true)
		if err != nil {
			return 0, fmt.Errorf("jump pad: %w", err)
		}
		if err := ecs.Add(w, e, component.JumpPadComponent.Kind(), &component.JumpPad{}); err != nil {
			return 0, fmt.Errorf("jump pad: %w", err)
		}
		return e, nil
	case levels.ModifierGravityInverter:
		e, err := spawnVolume(w, level, m.Rect, true)
		if err != nil {
			return 0, fmt.Errorf("gravity inverter: %w", err)
		}
		if err := ecs.Add(w, e, component.GravityInverterComponent.Kind(), &component.GravityInverter{}); err != nil {
			return 0, fmt.Errorf("gravity inverter: %w", err)
		}
		return e, nil
	case levels.ModifierTimeTrial:
		e, err := spawnVolume(w, level, m.Rect, true)
		if err != nil {
			return 0, fmt.Errorf("time trial: %w", err)
		}
		if err := ecs.Add(w, e, component.TimeTrialComponent.Kind(), &component.TimeTrial{
			Seconds: m.Seconds,
			Floors:  append([]common.Rect(nil), m.Floors...),
			Asset:   m.Asset,
		}); err != nil {
			return 0, fmt.Errorf("time trial: %w", err)
		}
		return e, nil
	default:
		return 0, fmt.Errorf("modifier: unknown kind %q", m.Kind)
	}
}

func spawnDecoration(w *ecs.World, level string, d levels.Decoration) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: d.X, Y: d.Y, Z: d.Z}); err != nil {
		return 0, fmt.Errorf("decoration %s: add transform: %w", d.Asset, err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Path: "decorations/" + d.Asset + ".png"}); err != nil {
		return 0, fmt.Errorf("decoration %s: add sprite: %w", d.Asset, err)
	}
	if err := ecs.Add(w, e, component.LevelMemberComponent.Kind(), &component.LevelMember{Level: level}); err != nil {
		return 0, fmt.Errorf("decoration %s: add level member: %w", d.Asset, err)
	}
	return e, nil
}
