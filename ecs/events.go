package ecs

// EventQueue is a FIFO buffer shared between a producing system and the
// systems that consume its events later in the same schedule.
type EventQueue[T any] struct {
	items []T
}

func NewEventQueue[T any]() *EventQueue[T] {
	return &EventQueue[T]{}
}

func (q *EventQueue[T]) Push(evt T) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue[T]) Drain() []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Items returns the pending events without consuming them.
func (q *EventQueue[T]) Items() []T {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue[T]) Clear() {
	if q == nil {
		return
	}
	q.items = q.items[:0]
}
