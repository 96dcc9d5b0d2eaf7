package system

import (
	"math"

	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
)

const dashEpsilon = 1e-6

// characterParts gathers the components the controller reads and writes.
type characterParts struct {
	e         ecs.Entity
	character *component.Character
	input     *component.Input
	vel       *component.Velocity
	jumper    *component.Jumper
	dasher    *component.Dasher
	movable   *component.Movable
	abilities *component.Abilities
}

func lookupCharacter(w *ecs.World, e ecs.Entity) (characterParts, bool) {
	p := characterParts{e: e}
	var ok bool
	if p.character, ok = ecs.Get(w, e, component.CharacterComponent.Kind()); !ok {
		return p, false
	}
	if p.input, ok = ecs.Get(w, e, component.InputComponent.Kind()); !ok {
		return p, false
	}
	if p.vel, ok = ecs.Get(w, e, component.VelocityComponent.Kind()); !ok {
		return p, false
	}
	if p.jumper, ok = ecs.Get(w, e, component.JumperComponent.Kind()); !ok {
		return p, false
	}
	if p.dasher, ok = ecs.Get(w, e, component.DasherComponent.Kind()); !ok {
		return p, false
	}
	if p.movable, ok = ecs.Get(w, e, component.MovableComponent.Kind()); !ok {
		return p, false
	}
	if p.abilities, ok = ecs.Get(w, e, component.AbilitiesComponent.Kind()); !ok {
		return p, false
	}
	return p, true
}

// down is the sign of "falling" on the y axis for the current gravity.
func (p characterParts) down() float64 {
	if p.character.IsUpsideDown {
		return 1
	}
	return -1
}

// CharacterControllerSystem turns routed input into velocity. It runs once
// per rendered frame before physics.
type CharacterControllerSystem struct {
	sounds *ecs.EventQueue[component.SoundEvent]
}

func NewCharacterControllerSystem(sounds *ecs.EventQueue[component.SoundEvent]) *CharacterControllerSystem {
	return &CharacterControllerSystem{sounds: sounds}
}

func (cs *CharacterControllerSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	dt := w.Delta()
	ecs.ForEach(w, component.CharacterComponent.Kind(), func(e ecs.Entity, _ *component.Character) {
		p, ok := lookupCharacter(w, e)
		if !ok {
			return
		}
		cs.step(p, dt)
	})
}

func (cs *CharacterControllerSystem) step(p characterParts, dt float64) {
	in, vel, j, d, m, ab := p.input, p.vel, p.jumper, p.dasher, p.movable, p.abilities
	down := p.down()

	if !m.IsStunlocked {
		if in.Left.Released || in.Right.Released {
			vel.X = 0
		}
		switch in.Horizontal {
		case -1:
			p.character.FacingRight = false
			if m.HuggingLeftWall {
				vel.X = 0
			} else {
				vel.X = math.Min(vel.X, -m.Speed)
			}
		case 1:
			p.character.FacingRight = true
			if m.HuggingRightWall {
				vel.X = 0
			} else {
				vel.X = math.Max(vel.X, m.Speed)
			}
		}
	}

	// Releasing jump re-arms it and cuts a rising jump short.
	if in.Jump.Released {
		j.JumpAvailable = true
		if rise := -vel.Y * down; rise > 0 && rise < math.Abs(j.JumpImpulse) {
			vel.Y = 0
		}
	}

	canChain := !j.IsJumping || (j.IsNextJumpDoubleJump && ab.DoubleJump)
	if !m.IsStunlocked && in.Jump.Held && j.JumpAvailable && canChain {
		vel.Y = j.JumpImpulse
		j.IsJumping = true
		j.JumpAvailable = false
		j.IsNextJumpDoubleJump = false

		if m.HuggingWall() && ab.WallJump {
			away := -1.0
			if m.HuggingLeftWall {
				away = 1
			}
			vel.X = away * m.Speed
			p.character.FacingRight = away > 0
			m.IsStunlocked = true
			m.TimeSinceStun = 0
		}
		cs.sounds.Push(component.SoundEvent{Name: "jump"})
	}

	if !m.IsStunlocked && ab.Dash && in.Dash.Pressed && d.TimeSinceDash >= d.DashCooldown-dashEpsilon {
		dir := -1.0
		if p.character.FacingRight {
			dir = 1
		}
		vel.X = math.Max(-d.MaxDash, math.Min(d.MaxDash, dir*d.DashImpulse+vel.X))
		if vel.Y*down > 0 {
			vel.Y = 0
		}
		d.TimeSinceDash = 0
		cs.sounds.Push(component.SoundEvent{Name: "dash"})
	}

	// Any fall along a wall becomes the wall slide speed.
	if m.HuggingWall() && ab.WallJump && vel.Y*down > 0 {
		vel.Y = down * m.MaxWallSlide
	}
	if vel.Y*down > m.MaxFall {
		vel.Y = down * m.MaxFall
	}

	if ab.Dash && d.TimeSinceDash <= d.DashCooldown {
		d.TimeSinceDash += dt
	}
	if m.IsStunlocked {
		m.TimeSinceStun += dt
		if m.TimeSinceStun > m.StunDuration {
			m.IsStunlocked = false
			m.TimeSinceStun = 0
		}
	}

	assertf(!(m.HuggingLeftWall && m.HuggingRightWall), "character %v hugs both walls", p.e)
}

// ResetCharacterController clears movement state after a level change.
// Abilities and progression are kept.
func ResetCharacterController(w *ecs.World, e ecs.Entity) bool {
	j, ok := ecs.Get(w, e, component.JumperComponent.Kind())
	if !ok {
		return false
	}
	j.IsJumping = false
	j.IsNextJumpDoubleJump = false
	j.JumpAvailable = true
	j.LeftGround = false
	j.TimeSinceLeftGround = 0
	if m, ok := ecs.Get(w, e, component.MovableComponent.Kind()); ok {
		m.HuggingLeftWall = false
		m.HuggingRightWall = false
		m.IsStunlocked = false
		m.TimeSinceStun = 0
	}
	if d, ok := ecs.Get(w, e, component.DasherComponent.Kind()); ok {
		d.TimeSinceDash = d.DashCooldown + dashEpsilon
	}
	return true
}
