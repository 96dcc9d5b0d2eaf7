package system

import (
	"math"

	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
)

// ClassifyContact labels the side of box the character at c is touching.
// LeftWall means the wall is on the character's left. Exact diagonals are
// walls. When the character is upside down floor and ceiling swap.
func ClassifyContact(c common.Vec2, box common.Rect, upsideDown bool) component.Side {
	lo, hi := box.Min(), box.Max()
	closest := common.V(common.Clamp(c.X, lo.X, hi.X), common.Clamp(c.Y, lo.Y, hi.Y))
	off := c.Sub(closest)
	if off.X == 0 && off.Y == 0 {
		// Center inside the box: use the direction from the box center,
		// normalized by its extents.
		half := box.HalfExtents()
		if half.X > 0 && half.Y > 0 {
			off = common.V((c.X-box.X)/half.X, (c.Y-box.Y)/half.Y)
		}
	}

	if math.Abs(off.X) >= math.Abs(off.Y) {
		if off.X > 0 {
			return component.SideLeftWall
		}
		return component.SideRightWall
	}
	floor := off.Y > 0
	if upsideDown {
		floor = !floor
	}
	if floor {
		return component.SideFloor
	}
	return component.SideCeiling
}

type classified struct {
	side component.Side
	kind component.ContactKind
}

// ContactClassifierSystem turns raw physics contacts into Contacts and
// keeps FloorCollider.Touching current. Stopped and Removed contacts carry
// the side and kind recorded when they started.
type ContactClassifierSystem struct {
	in     *ecs.EventQueue[component.ContactEvent]
	out    *ecs.EventQueue[component.Contact]
	active map[contactKey]classified
}

func NewContactClassifierSystem(in *ecs.EventQueue[component.ContactEvent], out *ecs.EventQueue[component.Contact]) *ContactClassifierSystem {
	return &ContactClassifierSystem{
		in:     in,
		out:    out,
		active: make(map[contactKey]classified),
	}
}

func (cs *ContactClassifierSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	cs.out.Clear()

	for _, ev := range cs.in.Drain() {
		key := contactKey{character: ecs.Entity(ev.Character), other: ecs.Entity(ev.Other)}
		if ev.Phase == component.ContactStarted {
			c := classified{kind: contactKind(w, key.other)}
			if c.kind.Has(component.KindTerrain) {
				c.side = cs.classifyTerrain(w, key, ev.CharacterPos)
			}
			cs.active[key] = c
			cs.out.Push(component.Contact{ContactEvent: ev, Kind: c.kind, Side: c.side})
			continue
		}

		c, ok := cs.active[key]
		if !ok {
			continue
		}
		delete(cs.active, key)
		if fc, ok := ecs.Get(w, key.other, component.FloorColliderComponent.Kind()); ok && fc.Character == ev.Character {
			fc.Touching = component.SideNone
			fc.Character = 0
		}
		cs.out.Push(component.Contact{ContactEvent: ev, Kind: c.kind, Side: c.side})
	}
}

// Reset forgets every tracked contact.
func (cs *ContactClassifierSystem) Reset() {
	cs.active = make(map[contactKey]classified)
	cs.out.Clear()
}

func (cs *ContactClassifierSystem) classifyTerrain(w *ecs.World, key contactKey, pos common.Vec2) component.Side {
	t, ok := ecs.Get(w, key.other, component.TransformComponent.Kind())
	if !ok {
		return component.SideNone
	}
	body, ok := ecs.Get(w, key.other, component.PhysicsBodyComponent.Kind())
	if !ok {
		return component.SideNone
	}
	upsideDown := false
	if ch, ok := ecs.Get(w, key.character, component.CharacterComponent.Kind()); ok {
		upsideDown = ch.IsUpsideDown
	}
	side := ClassifyContact(pos, common.Rect{X: t.X, Y: t.Y, W: body.Width, H: body.Height}, upsideDown)
	if fc, ok := ecs.Get(w, key.other, component.FloorColliderComponent.Kind()); ok {
		fc.Touching = side
		fc.Character = uint64(key.character)
	}
	return side
}

func contactKind(w *ecs.World, e ecs.Entity) component.ContactKind {
	var k component.ContactKind
	if ecs.Has(w, e, component.FloorColliderComponent.Kind()) {
		k |= component.KindTerrain
	}
	if ecs.Has(w, e, component.TransitionSensorComponent.Kind()) {
		k |= component.KindTransitionSensor
	}
	if ecs.Has(w, e, component.DoorComponent.Kind()) {
		k |= component.KindDoor
	}
	if ecs.Has(w, e, component.JumpPadComponent.Kind()) {
		k |= component.KindJumpPad
	}
	if ecs.Has(w, e, component.GravityInverterComponent.Kind()) {
		k |= component.KindGravityInverter
	}
	if ecs.Has(w, e, component.NPCComponent.Kind()) {
		k |= component.KindNPC
	}
	if ecs.Has(w, e, component.TimeTrialComponent.Kind()) {
		k |= component.KindLever
	}
	return k
}
