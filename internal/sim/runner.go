package sim

import (
	"github.com/myorg/hdlsim/internal/calendar"
	"github.com/myorg/hdlsim/internal/process"
	"github.com/myorg/hdlsim/internal/rtlmodel"
	"github.com/myorg/hdlsim/internal/trigger"
)

// runItem runs one phase-queue item to its first suspension point. item is
// whatever was appended to the phase: a process.Process, an
// rtlmodel.Callback from the back-end's pending-event list, or a bare
// one-shot action.
func (s *HdlSimulator) runItem(item any, slot *calendar.SimTimeSlot, phase calendar.Phase) error {
	switch v := item.(type) {
	case process.Process:
		return s.runProcess(v, slot, phase)
	case rtlmodel.Callback:
		if p := v(s.now); p != nil {
			return s.runProcess(p, slot, phase)
		}
		return nil
	case func():
		v()
		return nil
	default:
		return &InvalidTriggerError{Now: s.now, Value: item}
	}
}

// runProcess steps p forward until it suspends, finishes, spawns a child
// (in which case the child is scheduled and the parent keeps running), or
// yields trigger.Stop (in which case a stopSignal unwinds the caller).
func (s *HdlSimulator) runProcess(p process.Process, slot *calendar.SimTimeSlot, phase calendar.Phase) error {
	for {
		val, ok := p.Step()
		if !ok {
			return nil
		}

		if child, isProcess := val.(process.Process); isProcess {
			if err := slot.Enqueue(phase, child); err != nil {
				return &PhaseClosedError{Now: s.now, Phase: phase, Item: child}
			}
			continue
		}

		t, isTrigger := val.(trigger.Trigger)
		if !isTrigger {
			return &InvalidTriggerError{Now: s.now, Value: val}
		}

		switch t.Kind() {
		case trigger.KindTimer:
			delay := t.(trigger.Timer).Delay
			if delay <= 0 {
				return &invalidTimerError{Now: s.now, Delay: delay}
			}
			if err := s.scheduleAtWriteOnly(s.now+delay, p); err != nil {
				return err
			}
			return nil

		case trigger.KindWaitWriteOnly:
			if phase == calendar.WriteOnly && slot.Active(calendar.WriteOnly) {
				continue // in-phase re-yield: keep running, no suspension
			}
			if err := slot.Enqueue(calendar.WriteOnly, p); err != nil {
				return &PhaseClosedError{Now: s.now, Phase: calendar.WriteOnly, Item: p}
			}
			return nil

		case trigger.KindWaitCombRead:
			if err := slot.Enqueue(calendar.CombRead, p); err != nil {
				return &PhaseClosedError{Now: s.now, Phase: calendar.CombRead, Item: p}
			}
			return nil

		case trigger.KindWaitCombStable:
			if err := slot.Enqueue(calendar.CombStable, p); err != nil {
				return &PhaseClosedError{Now: s.now, Phase: calendar.CombStable, Item: p}
			}
			return nil

		case trigger.KindWaitTimeslotEnd:
			if err := slot.Enqueue(calendar.TimeslotEnd, p); err != nil {
				return &PhaseClosedError{Now: s.now, Phase: calendar.TimeslotEnd, Item: p}
			}
			return nil

		case trigger.KindEvent:
			ev := t.(*calendar.Event)
			ev.AddWaiter(p)
			return nil

		case trigger.KindStop:
			reason := t.(trigger.Stop).Reason
			return &stopSignal{Now: s.now, Reason: reason}

		default:
			return &InvalidTriggerError{Now: s.now, Value: t}
		}
	}
}

// drainPhase activates phase and runs every item queued on it. Items
// appended re-entrantly by items already running land at the tail of the
// same queue and are visited in this same pass.
func (s *HdlSimulator) drainPhase(slot *calendar.SimTimeSlot, phase calendar.Phase) error {
	slot.Activate(phase)
	s.curSlot, s.curPhase = slot, phase
	for {
		item, ok := slot.Next(phase)
		if !ok {
			return nil
		}
		if err := s.runItem(item, slot, phase); err != nil {
			return err
		}
	}
}

// scheduleAtWriteOnly enqueues p into the write_only phase of the slot at
// time, creating that slot if it doesn't exist yet. This realises both the
// Timer trigger's resume point and the agent-facing ScheduleProcess call.
func (s *HdlSimulator) scheduleAtWriteOnly(at int64, p process.Process) error {
	target := s.calendar.PeekOrCreate(at)
	if err := target.Enqueue(calendar.WriteOnly, p); err != nil {
		return &PhaseClosedError{Now: s.now, Phase: calendar.WriteOnly, Item: p}
	}
	return nil
}
