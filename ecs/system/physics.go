package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeSolid
	collisionTypeSensor
)

// PhysicsSystem owns the Chipmunk2D space. It mirrors every entity with a
// PhysicsBody and Transform into the space, steps it, and turns the
// character's begin/separate callbacks into contact events.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	world         *ecs.World

	entities   map[ecs.Entity]*bodyInfo
	owners     map[*cp.Shape]ecs.Entity
	characters map[*cp.Shape]ecs.Entity
	active     map[contactKey]struct{}

	events *ecs.EventQueue[component.ContactEvent]
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

type contactKey struct {
	character ecs.Entity
	other     ecs.Entity
}

func NewPhysicsSystem(events *ecs.EventQueue[component.ContactEvent]) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return &PhysicsSystem{
		space:      space,
		entities:   make(map[ecs.Entity]*bodyInfo),
		owners:     make(map[*cp.Shape]ecs.Entity),
		characters: make(map[*cp.Shape]ecs.Entity),
		active:     make(map[contactKey]struct{}),
		events:     events,
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.world = w
	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.pushVelocities(w)

	if dt := w.Delta(); dt > 0 {
		ps.space.Step(dt)
	}

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}
	handler := ps.space.NewWildcardCollisionHandler(collisionTypeCharacter)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		sys.onContact(arb, component.ContactStarted)
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return
		}
		sys.onContact(arb, component.ContactStopped)
	}
	ps.handlersReady = true
}

func (ps *PhysicsSystem) onContact(arb *cp.Arbiter, phase component.ContactPhase) {
	a, b := arb.Shapes()
	character, isChar := ps.characters[a]
	otherShape := b
	if !isChar {
		character, isChar = ps.characters[b]
		otherShape = a
	}
	if !isChar {
		return
	}
	other, ok := ps.owners[otherShape]
	if !ok || other == character {
		return
	}

	key := contactKey{character: character, other: other}
	switch phase {
	case component.ContactStarted:
		if _, dup := ps.active[key]; dup {
			return
		}
		ps.active[key] = struct{}{}
	default:
		if _, live := ps.active[key]; !live {
			return
		}
		delete(ps.active, key)
		if !ecs.IsAlive(ps.world, other) {
			phase = component.ContactRemoved
		}
	}
	ps.emit(phase, character, other)
}

func (ps *PhysicsSystem) emit(phase component.ContactPhase, character, other ecs.Entity) {
	if !ecs.IsAlive(ps.world, character) {
		return
	}
	var pos common.Vec2
	if info := ps.entities[character]; info != nil && info.body != nil {
		p := info.body.Position()
		pos = common.V(p.X, p.Y)
	}
	ps.events.Push(component.ContactEvent{
		Phase:        phase,
		Character:    uint64(character),
		Other:        uint64(other),
		CharacterPos: pos,
	})
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		isCharacter := ecs.Has(w, e, component.CharacterComponent.Kind())
		info := ps.createBodyInfo(e, transform, bodyComp, isCharacter)
		if info == nil {
			return
		}
		ps.entities[e] = info
		ps.owners[info.shape] = e
		if isCharacter {
			ps.characters[info.shape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
	})
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody, isCharacter bool) *bodyInfo {
	width, height, radius := bodyComp.Width, bodyComp.Height, bodyComp.Radius
	if bodyComp.Kind == component.ColliderCircle && radius <= 0 {
		radius = 15
	}
	if bodyComp.Kind == component.ColliderBox && (width <= 0 || height <= 0) {
		return nil
	}

	collisionType := collisionTypeSolid
	switch {
	case isCharacter:
		collisionType = collisionTypeCharacter
	case bodyComp.Sensor:
		collisionType = collisionTypeSensor
	}

	if bodyComp.Static {
		var shape *cp.Shape
		if bodyComp.Kind == component.ColliderCircle {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: transform.X, Y: transform.Y})
		} else {
			bb := cp.BB{
				L: transform.X - width/2,
				B: transform.Y - height/2,
				R: transform.X + width/2,
				T: transform.Y + height/2,
			}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionType)
		shape.SetSensor(bodyComp.Sensor)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	// The character never rotates.
	moment := cp.INFINITY
	if !isCharacter {
		if bodyComp.Kind == component.ColliderCircle {
			moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(mass, width, height)
		}
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		scale := 1.0
		if gs, ok := ecs.Get(ps.world, e, component.GravityScaleComponent.Kind()); ok {
			scale = gs.Scale
		}
		cp.BodyUpdateVelocity(body, gravity.Mult(scale), damping, dt)
	})

	var shape *cp.Shape
	if bodyComp.Kind == component.ColliderCircle {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionType)
	shape.SetSensor(bodyComp.Sensor)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

func (ps *PhysicsSystem) pushVelocities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, vel *component.Velocity) {
		if bodyComp.Static || bodyComp.Body == nil {
			return
		}
		bodyComp.Body.SetVelocity(vel.X, vel.Y)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Static || bodyComp.Body == nil {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			v := bodyComp.Body.Velocity()
			vel.X = v.X
			vel.Y = v.Y
		}
	})
}

// cleanupEntities removes shapes of destroyed entities. Removing a shape
// mid-contact fires the separate callback, which reports ContactRemoved;
// contacts the callback missed are reported here.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		for key := range ps.active {
			if key.other != e && key.character != e {
				continue
			}
			delete(ps.active, key)
			if key.other == e {
				ps.emit(component.ContactRemoved, key.character, key.other)
			}
		}
		delete(ps.owners, info.shape)
		delete(ps.characters, info.shape)
		delete(ps.entities, e)
	}
}

// PlaceEntity moves e to pos and stops it. The physics body follows when
// the entity has one.
func PlaceEntity(w *ecs.World, e ecs.Entity, pos common.Vec2) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X = pos.X
		t.Y = pos.Y
	}
	if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		v.X = 0
		v.Y = 0
	}
	if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && b.Body != nil && !b.Static {
		b.Body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
		b.Body.SetVelocity(0, 0)
	}
}
