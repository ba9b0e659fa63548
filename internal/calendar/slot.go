// Package calendar implements the simulation calendar: a priority queue of
// SimTimeSlot instants, each carrying the six ordered phase-queues that
// together resolve one instant's delta steps.
package calendar

import (
	"errors"
	"fmt"
)

// Phase is one of the six ordered sub-stages of an instant.
type Phase int

const (
	TimeslotBegin Phase = iota
	WriteOnly
	CombRead
	CombStable
	MemStable
	TimeslotEnd

	numPhases
)

func (p Phase) String() string {
	switch p {
	case TimeslotBegin:
		return "timeslot_begin"
	case WriteOnly:
		return "write_only"
	case CombRead:
		return "comb_read"
	case CombStable:
		return "comb_stable"
	case MemStable:
		return "mem_stable"
	case TimeslotEnd:
		return "timeslot_end"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrPhaseClosed is returned by Enqueue when the target phase has already
// been sealed. Wrapped with phase context by callers.
var ErrPhaseClosed = errors.New("phase already sealed")

type queueState int

const (
	statePending queueState = iota
	stateActive
	stateDone
)

// phaseQueue holds one phase's items: pending (not yet drained), active
// (being drained right now, so still appendable), or done (sealed, no
// further appends permitted).
type phaseQueue struct {
	state  queueState
	items  []any
	cursor int
}

func (q *phaseQueue) enqueue(item any) error {
	if q.state == stateDone {
		return ErrPhaseClosed
	}
	q.items = append(q.items, item)
	return nil
}

func (q *phaseQueue) activate() {
	if q.state == statePending {
		q.state = stateActive
	}
}

// next pops the next undrained item, in FIFO arrival order. Items appended
// mid-drain (re-entrant enqueues) are visible to later calls within the
// same drain pass, since cursor only ever advances.
func (q *phaseQueue) next() (any, bool) {
	if q.cursor >= len(q.items) {
		return nil, false
	}
	item := q.items[q.cursor]
	q.cursor++
	return item, true
}

func (q *phaseQueue) pending() bool {
	return q.cursor < len(q.items)
}

func (q *phaseQueue) seal() {
	q.state = stateDone
}

func (q *phaseQueue) sealed() bool {
	return q.state == stateDone
}

// SimTimeSlot aggregates all work for one simulated instant: six ordered
// phase-queues that a single drain pass of the main loop works through in
// order. The write_only re-open loop is driven from outside, by the sim
// package's runInstant.
type SimTimeSlot struct {
	phases [numPhases]phaseQueue
}

// NewSimTimeSlot returns an empty slot with all phases pending.
func NewSimTimeSlot() *SimTimeSlot {
	return &SimTimeSlot{}
}

// Enqueue appends item to phase's queue. It fails with ErrPhaseClosed if
// phase has already been sealed.
func (s *SimTimeSlot) Enqueue(phase Phase, item any) error {
	if err := s.phases[phase].enqueue(item); err != nil {
		return fmt.Errorf("phase %s: %w", phase, err)
	}
	return nil
}

// Activate transitions phase from pending to active, a no-op if it is
// already active or sealed. The scheduler calls this immediately before
// draining a phase so in-phase re-yields (WaitWriteOnly while draining
// write_only) can be recognised by the runner.
func (s *SimTimeSlot) Activate(phase Phase) {
	s.phases[phase].activate()
}

// Active reports whether phase is currently being drained.
func (s *SimTimeSlot) Active(phase Phase) bool {
	return s.phases[phase].state == stateActive
}

// Sealed reports whether phase has been sealed.
func (s *SimTimeSlot) Sealed(phase Phase) bool {
	return s.phases[phase].sealed()
}

// Next pops the next item queued for phase, in FIFO order.
func (s *SimTimeSlot) Next(phase Phase) (any, bool) {
	return s.phases[phase].next()
}

// HasPending reports whether phase has any undrained items.
func (s *SimTimeSlot) HasPending(phase Phase) bool {
	return s.phases[phase].pending()
}

// Seal marks phase as done; further Enqueue calls on it fail.
func (s *SimTimeSlot) Seal(phase Phase) {
	s.phases[phase].seal()
}

// DrainRemaining pops every undrained item across all phases, in phase
// order, passing each to fn. The scheduler uses it to tear down slots it
// will never run once the loop has stopped.
func (s *SimTimeSlot) DrainRemaining(fn func(item any)) {
	for phase := Phase(0); phase < numPhases; phase++ {
		for {
			item, ok := s.phases[phase].next()
			if !ok {
				break
			}
			fn(item)
		}
	}
}
