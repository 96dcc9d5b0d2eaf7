package ecs

import (
	"fmt"

	"github.com/milk9111/puff/ecs/component"
)

var (
	ErrEntityNotAlive       = component.ErrEntityNotAlive
	ErrNilComponent         = component.ErrNilComponent
	ErrInvalidComponentKind = component.ErrInvalidComponentKind
)

// World owns entities and their component stores. Delta is the time step
// of the schedule currently running.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]anyStore
	delta    float64
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]anyStore)}
}

func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

func (w *World) SetDelta(dt float64) {
	w.delta = dt
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and retires its handle.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) (*sparseSet[T], error) {
	if !kind.Valid() {
		return nil, ErrInvalidComponentKind
	}
	raw, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil, nil
		}
		s := newSparseSet[T]()
		w.stores[kind.ID()] = s
		return s, nil
	}
	s, ok := raw.(*sparseSet[T])
	if !ok {
		return nil, fmt.Errorf("%w: id %d registered with another type", ErrInvalidComponentKind, kind.ID())
	}
	return s, nil
}

// Add attaches value to e, replacing any previous value of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return ErrEntityNotAlive
	}
	if value == nil {
		return ErrNilComponent
	}
	s, err := storeFor(w, kind, true)
	if err != nil {
		return err
	}
	s.set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	s, err := storeFor(w, kind, false)
	if err != nil || s == nil {
		return nil, false
	}
	return s.get(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	s, err := storeFor(w, kind, false)
	if err != nil || s == nil {
		return false
	}
	return s.remove(e)
}

// First returns any live entity carrying kind. It is meant for singletons.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s, err := storeFor(w, kind, false)
	if err != nil || s == nil {
		return 0, false
	}
	for _, e := range s.dense {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// Count reports how many entities carry kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	if w == nil {
		return 0
	}
	s, err := storeFor(w, kind, false)
	if err != nil || s == nil {
		return 0
	}
	return s.len()
}
