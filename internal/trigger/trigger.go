// Package trigger defines the closed set of values a simulation process
// may yield to request scheduling action from the runner.
package trigger

import "fmt"

// Kind tags the concrete type of a Trigger so the runner can exhaustively
// switch on it without relying on reflection.
type Kind int

const (
	KindTimer Kind = iota
	KindWaitWriteOnly
	KindWaitCombRead
	KindWaitCombStable
	KindWaitTimeslotEnd
	KindEvent
	KindStop
)

func (k Kind) String() string {
	switch k {
	case KindTimer:
		return "Timer"
	case KindWaitWriteOnly:
		return "WaitWriteOnly"
	case KindWaitCombRead:
		return "WaitCombRead"
	case KindWaitCombStable:
		return "WaitCombStable"
	case KindWaitTimeslotEnd:
		return "WaitTimeslotEnd"
	case KindEvent:
		return "Event"
	case KindStop:
		return "StopSimulation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Trigger is a scheduling directive yielded by a process. The set of
// concrete implementations is closed: Timer, WaitWriteOnly, WaitCombRead,
// WaitCombStable, WaitTimeslotEnd, an Event wait, and Stop.
type Trigger interface {
	Kind() Kind
}

// Timer resumes the process at now+Delay, in the write_only phase of that
// later instant. Delay must be strictly positive.
type Timer struct {
	Delay int64
}

func (Timer) Kind() Kind { return KindTimer }

// WaitWriteOnly resumes the process in the write_only phase of the current
// instant. If yielded while write_only is already draining, the process
// continues immediately without suspending.
type WaitWriteOnly struct{}

func (WaitWriteOnly) Kind() Kind { return KindWaitWriteOnly }

// WaitCombRead resumes the process in the comb_read phase, after writes
// have settled once.
type WaitCombRead struct{}

func (WaitCombRead) Kind() Kind { return KindWaitCombRead }

// WaitCombStable resumes the process in the comb_stable phase, after the
// combinational fixpoint has been reached.
type WaitCombStable struct{}

func (WaitCombStable) Kind() Kind { return KindWaitCombStable }

// WaitTimeslotEnd resumes the process in the timeslot_end phase, the last
// phase of the instant.
type WaitTimeslotEnd struct{}

func (WaitTimeslotEnd) Kind() Kind { return KindWaitTimeslotEnd }

// Stop is the sentinel raised to cleanly end the main loop.
type Stop struct {
	// Reason is an optional human-readable cause, surfaced in run reports.
	Reason string
}

func (Stop) Kind() Kind { return KindStop }
