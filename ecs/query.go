package ecs

import "github.com/milk9111/puff/ecs/component"

// ForEach visits every entity carrying kind. The callback may destroy
// entities or add and remove components; entities removed mid-iteration
// are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s, err := storeFor(w, kind, false)
	if err != nil || s == nil {
		return
	}
	for _, e := range s.snapshot() {
		v, ok := s.get(e)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if fn == nil {
		return
	}
	ForEach(w, ka, func(e Entity, a *A) {
		b, ok := Get(w, e, kb)
		if !ok {
			return
		}
		fn(e, a, b)
	})
}
