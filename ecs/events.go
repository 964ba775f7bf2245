package ecs

// EventQueue is a simple FIFO queue.
type EventQueue[T any] struct {
	items []T
	limit int
}

// NewEventQueue creates a queue that keeps at most limit pending events,
// dropping the oldest once full. A limit of zero means unbounded.
func NewEventQueue[T any](limit int) *EventQueue[T] {
	return &EventQueue[T]{limit: limit}
}

// Push adds an event.
func (q *EventQueue[T]) Push(evt T) {
	if q == nil {
		return
	}
	if q.limit > 0 && len(q.items) >= q.limit {
		copy(q.items, q.items[1:])
		q.items = q.items[:len(q.items)-1]
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

func (q *EventQueue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue[T]) Flush() {
	if q == nil {
		return
	}
	q.items = nil
}
