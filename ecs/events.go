package ecs

// EventType names a gameplay occurrence. Systems declare their own.
type EventType string

// Event is raised by a system during a tick and read by the host after it.
type Event struct {
	Type EventType
	// Source is the entity that caused the event, e.g. the bomb that exploded.
	Source Entity
	Data   any
}

// EventQueue buffers the events of one tick in the order they were raised.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain hands over every pending event and empties the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// CountType returns how many events in events are of type t.
func CountType(events []Event, t EventType) int {
	n := 0
	for _, evt := range events {
		if evt.Type == t {
			n++
		}
	}
	return n
}
