// Package sim implements HdlSimulator: the main loop that drives the
// calendar, cycles an RTL back-end through its six phases per instant,
// and runs cooperative processes in lockstep with it.
package sim

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/myorg/hdlsim/internal/calendar"
	"github.com/myorg/hdlsim/internal/process"
	"github.com/myorg/hdlsim/internal/rtlmodel"
	"github.com/myorg/hdlsim/internal/trigger"
)

// ProcessFactory builds a Process bound to sim, the way an agent's
// driver()/monitor() method closes over its owning HdlSimulator.
type ProcessFactory func(sim *HdlSimulator) process.Process

// StopReason classifies how Run ended.
type StopReason int

const (
	// StopReasonBound means the until bound's guard raiser fired.
	StopReasonBound StopReason = iota
	// StopReasonSentinel means a process yielded trigger.Stop directly.
	StopReasonSentinel
	// StopReasonContext means the caller's context was cancelled.
	StopReasonContext
)

func (r StopReason) String() string {
	switch r {
	case StopReasonBound:
		return "until bound reached"
	case StopReasonSentinel:
		return "StopSimulation raised"
	case StopReasonContext:
		return "context cancelled"
	default:
		return "unknown"
	}
}

// Observer receives instant-level notifications purely for diagnostics
// and stats (internal/histogram wires one in); it never influences
// scheduling.
type Observer interface {
	InstantBegin(now int64)
	InstantEnd(now int64)
	PhaseBegin(now int64, phase calendar.Phase)
	PhaseEnd(now int64, phase calendar.Phase)
}

// HdlSimulator owns the calendar, the currently-active slot and phase,
// and a mutable borrow of the external RTL back-end for the duration of
// Run. It is single-threaded and cooperative.
type HdlSimulator struct {
	now      int64
	calendar *calendar.SimCalendar
	backend  rtlmodel.Backend
	logger   zerolog.Logger
	observer Observer

	// curSlot/curPhase track the phase-queue currently draining, so
	// agent-facing re-entrant scheduling (ScheduleProcessNow, FireEvent)
	// lands in the right place. Valid only while Run is executing.
	curSlot  *calendar.SimTimeSlot
	curPhase calendar.Phase

	instants int64
}

// New returns an HdlSimulator starting at now=0, driving backend.
func New(backend rtlmodel.Backend, logger zerolog.Logger) *HdlSimulator {
	return &HdlSimulator{
		calendar: calendar.New(),
		backend:  backend,
		logger:   logger,
	}
}

// WithObserver attaches an Observer (e.g. internal/histogram's sampler)
// and returns s for chaining.
func (s *HdlSimulator) WithObserver(o Observer) *HdlSimulator {
	s.observer = o
	return s
}

// Now returns the current simulated instant.
func (s *HdlSimulator) Now() int64 { return s.now }

// Instants returns how many instants Run has fully processed so far.
func (s *HdlSimulator) Instants() int64 { return s.instants }

// Schedule registers slot at time, replacing any slot already stored
// there. Most callers want ScheduleProcess instead; this is the low-level
// hook for wrappers that build a whole slot themselves.
func (s *HdlSimulator) Schedule(time int64, slot *calendar.SimTimeSlot) {
	s.calendar.Push(time, slot)
}

// ScheduleProcess enqueues p into the write_only phase of the slot at
// time, creating that slot if needed (agent-facing `_schedule_proc`).
func (s *HdlSimulator) ScheduleProcess(time int64, p process.Process) error {
	return s.scheduleAtWriteOnly(time, p)
}

// ScheduleProcessNow enqueues p into the currently active phase-queue
// (agent-facing `_schedule_proc_now`); valid only while called from code
// running underneath Run (an agent's process body, or a callback-loop
// re-arm).
func (s *HdlSimulator) ScheduleProcessNow(p process.Process) error {
	if s.curSlot == nil {
		return fmt.Errorf("ScheduleProcessNow called outside of Run")
	}
	if err := s.curSlot.Enqueue(s.curPhase, p); err != nil {
		return &PhaseClosedError{Now: s.now, Phase: s.curPhase, Item: p}
	}
	return nil
}

// FireEvent wakes every process currently waiting on ev, moving them into
// the currently active phase-queue in their original arrival order.
func (s *HdlSimulator) FireEvent(ev *calendar.Event) error {
	if s.curSlot == nil {
		return fmt.Errorf("FireEvent called outside of Run")
	}
	var enqueueErr error
	ev.Fire(func(waiter any) {
		if enqueueErr != nil {
			return
		}
		if err := s.curSlot.Enqueue(s.curPhase, waiter); err != nil {
			enqueueErr = &PhaseClosedError{Now: s.now, Phase: s.curPhase, Item: waiter}
		}
	})
	return enqueueErr
}

// Run advances the simulation from now by until ticks, processing
// extraProcesses as boot processes in the write_only phase of the first
// instant. Run returns the reason the loop stopped; once the loop has
// started, err is non-nil only for a fatal scheduling error
// (PhaseClosedError, InvalidTriggerError, BackendStatusError and friends),
// in which case Finalize has already been called on the back-end. A
// negative until or a failure to schedule a boot process is returned
// before the loop starts, without calling Finalize.
func (s *HdlSimulator) Run(ctx context.Context, until int64, extraProcesses ...ProcessFactory) (StopReason, error) {
	if until < 0 {
		return 0, fmt.Errorf("until must be >= 0, got %d", until)
	}

	boot := s.calendar.PeekOrCreate(s.now)
	for _, factory := range extraProcesses {
		p := factory(s)
		if err := boot.Enqueue(calendar.WriteOnly, p); err != nil {
			return 0, fmt.Errorf("scheduling boot process: %w", err)
		}
	}

	guardAt := s.now + until
	guard := s.calendar.PeekOrCreate(guardAt)
	_ = guard.Enqueue(calendar.WriteOnly, process.New(func(yield process.Yield) {
		yield(trigger.Stop{Reason: boundReachedReason})
	}))

	reason, err := s.loop(ctx)

	s.closeRemaining()
	s.backend.Finalize()
	if err == nil {
		s.backend.SetReadOnlyNotWriteOnly(true)
	}
	return reason, err
}

// closeRemaining tears down every process still suspended when the loop
// stops - first the undrained remainder of the instant being run, then
// every future slot in the calendar - so no fiber goroutine outlives Run.
// Processes parked on a never-fired Event are owned by their agent and are
// not reachable from here.
func (s *HdlSimulator) closeRemaining() {
	closeItem := func(item any) {
		if c, ok := item.(process.Closer); ok {
			c.Close()
		}
	}
	if s.curSlot != nil {
		s.curSlot.DrainRemaining(closeItem)
		s.curSlot = nil
	}
	for {
		_, slot, ok := s.calendar.Pop()
		if !ok {
			return
		}
		slot.DrainRemaining(closeItem)
	}
}

func (s *HdlSimulator) loop(ctx context.Context) (StopReason, error) {
	for {
		select {
		case <-ctx.Done():
			return StopReasonContext, nil
		default:
		}

		now, slot, ok := s.calendar.Pop()
		if !ok {
			return StopReasonBound, fmt.Errorf("now=%d: calendar exhausted before a stop sentinel fired", s.now)
		}
		s.now = now
		s.backend.SetTime(now)
		s.logger.Debug().Int64("now", now).Msg("instant begin")
		if s.observer != nil {
			s.observer.InstantBegin(now)
		}

		err := s.runInstant(slot)
		if s.observer != nil {
			s.observer.InstantEnd(now)
		}
		if err != nil {
			if stop, isStop := err.(*stopSignal); isStop {
				reason := StopReasonSentinel
				if stop.Reason == boundReachedReason {
					reason = StopReasonBound
				}
				return reason, nil
			}
			return 0, err
		}
		s.instants++
	}
}

// runInstant drives one instant through all six phases: timeslot_begin,
// the write_only/comb_read re-open loop, comb_stable, mem_stable,
// timeslot_end.
func (s *HdlSimulator) runInstant(slot *calendar.SimTimeSlot) error {
	if err := s.drainSeal(slot, calendar.TimeslotBegin); err != nil {
		return err
	}

	for {
		if err := s.drainObserved(slot, calendar.WriteOnly); err != nil {
			return err
		}

		status, err := s.backend.Eval()
		if err != nil {
			return &BackendError{Now: s.now, Err: err}
		}
		if status != rtlmodel.CombUpdateDone {
			return &BackendStatusError{Now: s.now, Status: status, Expected: rtlmodel.CombUpdateDone.String()}
		}

		if err := s.enqueueCallbacks(slot, calendar.CombRead); err != nil {
			return err
		}
		if err := s.drainObserved(slot, calendar.CombRead); err != nil {
			return err
		}

		if slot.HasPending(calendar.WriteOnly) {
			s.backend.ResetEval()
			continue
		}
		break
	}
	slot.Seal(calendar.WriteOnly)
	slot.Seal(calendar.CombRead)

	// Run the back-end's remaining micro-steps for this instant. Every
	// pass before the terminal EndOfStep status feeds comb_stable (the
	// post-convergence combinational snapshot); the terminal pass's own
	// callbacks feed mem_stable (the final, memory-updated read-only
	// hook). Eval has only the two statuses, so one loop covers both
	// phases.
	for {
		status, err := s.backend.Eval()
		if err != nil {
			return &BackendError{Now: s.now, Err: err}
		}
		if status == rtlmodel.EndOfStep {
			if err := s.enqueueCallbacks(slot, calendar.MemStable); err != nil {
				return err
			}
			break
		}
		if err := s.enqueueCallbacks(slot, calendar.CombStable); err != nil {
			return err
		}
	}
	if err := s.drainSeal(slot, calendar.CombStable); err != nil {
		return err
	}
	if err := s.drainSeal(slot, calendar.MemStable); err != nil {
		return err
	}
	if err := s.drainSeal(slot, calendar.TimeslotEnd); err != nil {
		return err
	}

	s.backend.SetWriteOnly()
	return nil
}

// drainObserved is drainPhase bracketed by observer notifications; the
// write_only/comb_read reopen loop uses it directly since those phases are
// drained multiple times per instant before being sealed.
func (s *HdlSimulator) drainObserved(slot *calendar.SimTimeSlot, phase calendar.Phase) error {
	if s.observer != nil {
		s.observer.PhaseBegin(s.now, phase)
		defer s.observer.PhaseEnd(s.now, phase)
	}
	return s.drainPhase(slot, phase)
}

func (s *HdlSimulator) drainSeal(slot *calendar.SimTimeSlot, phase calendar.Phase) error {
	if err := s.drainObserved(slot, phase); err != nil {
		return err
	}
	slot.Seal(phase)
	return nil
}

func (s *HdlSimulator) enqueueCallbacks(slot *calendar.SimTimeSlot, phase calendar.Phase) error {
	for _, cb := range s.backend.PendingEvents() {
		if err := slot.Enqueue(phase, cb); err != nil {
			return &PhaseClosedError{Now: s.now, Phase: phase, Item: cb}
		}
	}
	return nil
}

// boundReachedReason tags the Stop trigger yielded by the until-bound
// guard raiser, so loop can tell it apart from a user process's own
// StopSimulation (both unwind identically; only StopReason differs).
const boundReachedReason = "until bound reached"
