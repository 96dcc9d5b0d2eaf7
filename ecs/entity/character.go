package entity

import (
	"fmt"
	"math"

	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/prefabs"
)

// NewCharacter spawns the Puff at pos with the given abilities.
func NewCharacter(w *ecs.World, spec *prefabs.PuffSpec, pos common.Vec2, abilities component.Abilities) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("character: nil spec")
	}
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{
		FacingRight: true,
		BrokenWalls: make(map[string]bool),
	}); err != nil {
		return 0, fmt.Errorf("character: add character: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, Z: 10}); err != nil {
		return 0, fmt.Errorf("character: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("character: add velocity: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.ColliderCircle,
		Radius: spec.Radius,
		Mass:   spec.Mass,
	}); err != nil {
		return 0, fmt.Errorf("character: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: spec.GravityScale}); err != nil {
		return 0, fmt.Errorf("character: add gravity scale: %w", err)
	}
	if err := ecs.Add(w, e, component.JumperComponent.Kind(), &component.Jumper{
		JumpImpulse:         spec.JumpImpulse,
		JumpAvailable:       true,
		CoyoteBufferSeconds: spec.CoyoteSeconds,
	}); err != nil {
		return 0, fmt.Errorf("character: add jumper: %w", err)
	}
	if err := ecs.Add(w, e, component.DasherComponent.Kind(), &component.Dasher{
		DashImpulse:   spec.DashImpulse,
		DashCooldown:  spec.DashCooldown,
		TimeSinceDash: spec.DashCooldown + dashEpsilon,
		MaxDash:       spec.MaxDash,
	}); err != nil {
		return 0, fmt.Errorf("character: add dasher: %w", err)
	}
	if err := ecs.Add(w, e, component.MovableComponent.Kind(), &component.Movable{
		Speed:        spec.Speed,
		MaxFall:      spec.MaxFall,
		MaxWallSlide: spec.MaxWallSlide,
		StunDuration: spec.StunDuration,
	}); err != nil {
		return 0, fmt.Errorf("character: add movable: %w", err)
	}
	ab := abilities
	if err := ecs.Add(w, e, component.AbilitiesComponent.Kind(), &ab); err != nil {
		return 0, fmt.Errorf("character: add abilities: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("character: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.InteractionTargetComponent.Kind(), &component.InteractionTarget{}); err != nil {
		return 0, fmt.Errorf("character: add interaction target: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Path:   spec.Sprite,
		Width:  spec.Radius * 2,
		Height: spec.Radius * 2,
	}); err != nil {
		return 0, fmt.Errorf("character: add sprite: %w", err)
	}
	return e, nil
}

const dashEpsilon = 1e-6

// ApplyPuffSpec pushes reloaded tunables into a live character. Signs that
// follow gravity are kept.
func ApplyPuffSpec(w *ecs.World, e ecs.Entity, spec *prefabs.PuffSpec) bool {
	ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
	if !ok || spec == nil {
		return false
	}
	sign := 1.0
	if ch.IsUpsideDown {
		sign = -1
	}
	if j, ok := ecs.Get(w, e, component.JumperComponent.Kind()); ok {
		j.JumpImpulse = sign * math.Abs(spec.JumpImpulse)
		j.CoyoteBufferSeconds = spec.CoyoteSeconds
	}
	if g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
		g.Scale = sign * math.Abs(spec.GravityScale)
	}
	if d, ok := ecs.Get(w, e, component.DasherComponent.Kind()); ok {
		d.DashImpulse = spec.DashImpulse
		d.DashCooldown = spec.DashCooldown
		d.MaxDash = spec.MaxDash
	}
	if m, ok := ecs.Get(w, e, component.MovableComponent.Kind()); ok {
		m.Speed = spec.Speed
		m.MaxFall = spec.MaxFall
		m.MaxWallSlide = spec.MaxWallSlide
		m.StunDuration = spec.StunDuration
	}
	return true
}

// FindCharacter returns the unique character, if spawned.
func FindCharacter(w *ecs.World) (ecs.Entity, bool) {
	return ecs.First(w, component.CharacterComponent.Kind())
}
