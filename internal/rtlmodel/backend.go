// Package rtlmodel defines the contract the scheduler requires of the
// external RTL back-end (the opaque circuit simulator) and provides a
// deterministic in-memory fake implementing it, for tests and for the
// CLI's smoke-test mode.
package rtlmodel

import "github.com/myorg/hdlsim/internal/process"

// EvalStatus is the result of one Backend.Eval call.
type EvalStatus int

const (
	// CombUpdateDone means the combinational network has been resolved
	// for this pass; the scheduler may proceed to comb_read.
	CombUpdateDone EvalStatus = iota
	// EndOfStep means sequential/memory elements have been updated and
	// the instant is ready to close out.
	EndOfStep
)

func (s EvalStatus) String() string {
	switch s {
	case CombUpdateDone:
		return "COMB_UPDATE_DONE"
	case EndOfStep:
		return "END_OF_STEP"
	default:
		return "UNKNOWN_STATUS"
	}
}

// Callback is an item the back-end enqueues on its pending-event list
// after Eval. now is the instant the callback fires in; the returned
// Process (if non-nil) is scheduled into the phase the scheduler is
// currently draining.
type Callback func(now int64) process.Process

// Backend is the external RTL simulator collaborator. The
// scheduler owns a mutable borrow of it for the duration of a run and is
// the only caller of Eval/ResetEval/SetWriteOnly/Finalize; agents never
// call these directly.
type Backend interface {
	// Eval advances the circuit one micro-step.
	Eval() (EvalStatus, error)
	// ResetEval invalidates any cached combinational result so the next
	// Eval call re-resolves it.
	ResetEval()
	// SetWriteOnly puts the back-end into write-accept mode for the next
	// instant.
	SetWriteOnly()
	// Finalize irrevocably ends the simulation and releases resources.
	// Called exactly once on every exit path from Run's main loop; Run's
	// up-front argument and boot-scheduling errors return without it.
	Finalize()
	// PendingEvents drains and returns the callbacks queued since the
	// last call (by Eval or by circuit-internal activity).
	PendingEvents() []Callback
	// SetReadOnlyNotWriteOnly flips the read-only introspection flag;
	// the scheduler sets it true once StopSimulation fires.
	SetReadOnlyNotWriteOnly(v bool)
	// SetTime mirrors the scheduler's now into the back-end before each
	// instant begins.
	SetTime(now int64)
}
