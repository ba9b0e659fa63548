package sim

import (
	"fmt"

	"github.com/myorg/hdlsim/internal/calendar"
	"github.com/myorg/hdlsim/internal/rtlmodel"
)

// PhaseClosedError is returned when an item tries to enqueue into an
// already-sealed phase. It wraps calendar.ErrPhaseClosed so callers can
// still errors.Is(err, calendar.ErrPhaseClosed).
type PhaseClosedError struct {
	Now   int64
	Phase calendar.Phase
	Item  any
}

func (e *PhaseClosedError) Error() string {
	return fmt.Sprintf("now=%d: phase %s is sealed, cannot enqueue %T", e.Now, e.Phase, e.Item)
}

func (e *PhaseClosedError) Unwrap() error { return calendar.ErrPhaseClosed }

// InvalidTriggerError is returned when a process yields a value that is
// neither a trigger.Trigger nor a process.Process.
type InvalidTriggerError struct {
	Now   int64
	Value any
}

func (e *InvalidTriggerError) Error() string {
	return fmt.Sprintf("now=%d: process yielded unknown value %#v (%T)", e.Now, e.Value, e.Value)
}

// BackendStatusError is returned when Backend.Eval reports a status the
// scheduler did not expect at that point in the phase cycle.
type BackendStatusError struct {
	Now      int64
	Status   rtlmodel.EvalStatus
	Expected string
}

func (e *BackendStatusError) Error() string {
	return fmt.Sprintf("now=%d: backend eval returned %s, expected %s", e.Now, e.Status, e.Expected)
}

// BackendError wraps an error returned directly by Backend.Eval.
type BackendError struct {
	Now int64
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("now=%d: backend eval failed: %v", e.Now, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// stopSignal is the internal sentinel used to unwind Run cleanly once a
// process yields trigger.Stop. It is never returned from Run itself -
// Run converts it into a nil error plus a StopReason.
type stopSignal struct {
	Now    int64
	Reason string
}

func (e *stopSignal) Error() string {
	return fmt.Sprintf("now=%d: stop simulation: %s", e.Now, e.Reason)
}

// invalidTimerError is returned when a Timer trigger carries a
// non-positive delay.
type invalidTimerError struct {
	Now   int64
	Delay int64
}

func (e *invalidTimerError) Error() string {
	return fmt.Sprintf("now=%d: Timer delay must be > 0, got %d", e.Now, e.Delay)
}
