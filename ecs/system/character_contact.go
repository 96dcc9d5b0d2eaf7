package system

import (
	"math"

	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
)

// CharacterContactSystem reacts to classified terrain contacts: landing,
// bumping a ceiling, and grabbing or leaving walls. It also runs the
// coyote timer that ends a walk off a ledge.
type CharacterContactSystem struct {
	contacts *ecs.EventQueue[component.Contact]
}

func NewCharacterContactSystem(contacts *ecs.EventQueue[component.Contact]) *CharacterContactSystem {
	return &CharacterContactSystem{contacts: contacts}
}

func (cs *CharacterContactSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	for _, c := range cs.contacts.Items() {
		if !c.Kind.Has(component.KindTerrain) {
			continue
		}
		p, ok := lookupCharacter(w, ecs.Entity(c.Character))
		if !ok {
			continue
		}
		if c.Phase == component.ContactStarted {
			terrainStarted(p, c.Side)
		} else {
			terrainEnded(w, p, c.Side)
		}
	}

	dt := w.Delta()
	ecs.ForEach(w, component.JumperComponent.Kind(), func(e ecs.Entity, j *component.Jumper) {
		if !j.LeftGround {
			return
		}
		j.TimeSinceLeftGround += dt
		if j.TimeSinceLeftGround > j.CoyoteBufferSeconds {
			j.LeftGround = false
			j.TimeSinceLeftGround = 0
			j.IsJumping = true
			j.IsNextJumpDoubleJump = true
		}
	})
}

func terrainStarted(p characterParts, side component.Side) {
	j, m := p.jumper, p.movable
	switch side {
	case component.SideFloor:
		p.vel.Y = 0
		j.IsJumping = false
		j.IsNextJumpDoubleJump = false
		j.LeftGround = false
		j.TimeSinceLeftGround = 0
		p.character.TouchingGround = true
	case component.SideCeiling:
		p.vel.Y = 0
	case component.SideLeftWall, component.SideRightWall:
		m.HuggingLeftWall = side == component.SideLeftWall
		m.HuggingRightWall = side == component.SideRightWall
		if p.abilities.WallJump {
			j.IsJumping = false
			j.IsNextJumpDoubleJump = false
		}
	}
}

func terrainEnded(w *ecs.World, p characterParts, side component.Side) {
	j, m := p.jumper, p.movable
	switch side {
	case component.SideFloor:
		if stillTouching(w, p.e, component.SideFloor) {
			return
		}
		p.character.TouchingGround = false
		j.LeftGround = true
		j.TimeSinceLeftGround = 0
	case component.SideLeftWall:
		if !m.HuggingLeftWall || stillTouching(w, p.e, side) {
			return
		}
		m.HuggingLeftWall = false
		if p.abilities.WallJump {
			j.IsNextJumpDoubleJump = true
		}
	case component.SideRightWall:
		if !m.HuggingRightWall || stillTouching(w, p.e, side) {
			return
		}
		m.HuggingRightWall = false
		if p.abilities.WallJump {
			j.IsNextJumpDoubleJump = true
		}
	}
}

// stillTouching reports whether any terrain still records a contact with
// e on side.
func stillTouching(w *ecs.World, e ecs.Entity, side component.Side) bool {
	found := false
	ecs.ForEach(w, component.FloorColliderComponent.Kind(), func(_ ecs.Entity, fc *component.FloorCollider) {
		if fc.Character == uint64(e) && fc.Touching == side {
			found = true
		}
	})
	return found
}

// InvertGravity flips the character upside down. Gravity scale and jump
// impulse change sign together.
func InvertGravity(w *ecs.World, e ecs.Entity) bool {
	return setGravityDirection(w, e, true)
}

// RestoreGravity puts the character back on its feet.
func RestoreGravity(w *ecs.World, e ecs.Entity) bool {
	return setGravityDirection(w, e, false)
}

func setGravityDirection(w *ecs.World, e ecs.Entity, upsideDown bool) bool {
	ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
	if !ok || ch.IsUpsideDown == upsideDown {
		return false
	}
	sign := 1.0
	if upsideDown {
		sign = -1
	}
	ch.IsUpsideDown = upsideDown
	if g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
		g.Scale = sign * math.Abs(g.Scale)
	}
	if j, ok := ecs.Get(w, e, component.JumperComponent.Kind()); ok {
		j.JumpImpulse = sign * math.Abs(j.JumpImpulse)
	}
	return true
}
