package core

import "pkt.systems/panemux/schema"

// Observer receives a named workspace event with its payload. Callbacks run
// synchronously in registration order, on the same logical thread as the
// mutation that produced the event. A callback must not mutate the model;
// such re-entrant mutations are rejected with schema.ErrMutationInProgress.
type Observer func(event schema.EventType, payload map[string]any)

type observerEntry struct {
	id int
	fn Observer
}

// AddObserver registers a callback and returns its removal function.
func (m *Model) AddObserver(fn Observer) func() {
	id := m.nextObsID
	m.nextObsID++
	m.observers = append(m.observers, observerEntry{id: id, fn: fn})
	return func() { m.removeObserver(id) }
}

func (m *Model) removeObserver(id int) {
	for i, entry := range m.observers {
		if entry.id == id {
			m.observers = append(m.observers[:i], m.observers[i+1:]...)
			return
		}
	}
}

// notify delivers one event to every observer in registration order. A
// panicking observer is caught and logged; it never aborts the mutation or
// the remaining observers. Notification happens while the mutation guard is
// still held.
func (m *Model) notify(event schema.EventType, payload map[string]any) {
	entries := make([]observerEntry, len(m.observers))
	copy(entries, m.observers)
	for _, entry := range entries {
		m.deliver(entry, event, payload)
	}
}

func (m *Model) deliver(entry observerEntry, event schema.EventType, payload map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Warn("observer callback panicked", "event", event, "observer", entry.id, "err", r)
		}
	}()
	entry.fn(event, payload)
}
