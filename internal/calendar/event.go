package calendar

import "github.com/myorg/hdlsim/internal/trigger"

// Event is a named rendezvous: processes wait on it by yielding it as a
// trigger, and Fire wakes every waiter in arrival order, emptying the
// waiter list. Firing an Event with no waiters is a no-op. An Event may be
// awaited again, by different processes, in later instants.
type Event struct {
	name    string
	waiters []any
}

// NewEvent returns a named Event with no waiters. The name is used only
// for diagnostics.
func NewEvent(name string) *Event {
	return &Event{name: name}
}

// Kind makes *Event satisfy trigger.Trigger so a process can `yield` one
// directly to wait on it.
func (*Event) Kind() trigger.Kind { return trigger.KindEvent }

// Name returns the event's diagnostic name.
func (e *Event) Name() string { return e.name }

// AddWaiter appends proc to the waiter list, preserving arrival order.
// Called by the runner when a process yields this Event.
func (e *Event) AddWaiter(proc any) {
	e.waiters = append(e.waiters, proc)
}

// Fire moves every current waiter, in arrival order, into the active
// phase-queue via enqueue, then empties the waiter list.
func (e *Event) Fire(enqueue func(item any)) {
	waiters := e.waiters
	e.waiters = nil
	for _, w := range waiters {
		enqueue(w)
	}
}

// Waiting reports whether any process is currently waiting on e (for
// tests and diagnostics).
func (e *Event) Waiting() int {
	return len(e.waiters)
}
