package calendar

import (
	"errors"
	"testing"
)

func TestEnqueueThenSealRejectsFurtherAppends(t *testing.T) {
	s := NewSimTimeSlot()
	if err := s.Enqueue(WriteOnly, "a"); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	s.Seal(WriteOnly)

	err := s.Enqueue(WriteOnly, "b")
	if err == nil {
		t.Fatal("expected an error enqueueing into a sealed phase")
	}
	if !errors.Is(err, ErrPhaseClosed) {
		t.Errorf("err = %v, want wrapping ErrPhaseClosed", err)
	}
}

func TestReentrantEnqueueVisibleInSameDrain(t *testing.T) {
	s := NewSimTimeSlot()
	s.Enqueue(WriteOnly, "a")
	s.Activate(WriteOnly)

	item, ok := s.Next(WriteOnly)
	if !ok || item != "a" {
		t.Fatalf("Next() = %v, %v, want a, true", item, ok)
	}

	// simulate the item re-entrantly enqueueing a second item mid-drain
	s.Enqueue(WriteOnly, "b")

	item, ok = s.Next(WriteOnly)
	if !ok || item != "b" {
		t.Fatalf("Next() = %v, %v, want b, true (re-entrant append visible this pass)", item, ok)
	}

	_, ok = s.Next(WriteOnly)
	if ok {
		t.Fatal("expected the phase queue to be drained")
	}
}

func TestHasPendingAfterActivate(t *testing.T) {
	s := NewSimTimeSlot()
	if s.HasPending(WriteOnly) {
		t.Fatal("empty phase should have no pending items")
	}
	s.Enqueue(WriteOnly, 1)
	if !s.HasPending(WriteOnly) {
		t.Fatal("expected a pending item")
	}
	s.Activate(WriteOnly)
	s.Next(WriteOnly)
	if s.HasPending(WriteOnly) {
		t.Fatal("phase should have no pending items once drained")
	}
}

func TestActiveReflectsActivation(t *testing.T) {
	s := NewSimTimeSlot()
	if s.Active(WriteOnly) {
		t.Fatal("phase should not be active before Activate")
	}
	s.Activate(WriteOnly)
	if !s.Active(WriteOnly) {
		t.Fatal("phase should be active after Activate")
	}
	s.Seal(WriteOnly)
	if s.Active(WriteOnly) {
		t.Fatal("a sealed phase is no longer active")
	}
}

func TestDrainRemainingVisitsUndrainedItemsInPhaseOrder(t *testing.T) {
	s := NewSimTimeSlot()
	s.Enqueue(TimeslotEnd, "late")
	s.Enqueue(WriteOnly, "a")
	s.Enqueue(WriteOnly, "b")
	s.Activate(WriteOnly)
	s.Next(WriteOnly) // "a" already drained by a normal pass
	s.Seal(WriteOnly)

	var got []any
	s.DrainRemaining(func(item any) { got = append(got, item) })

	want := []any{"b", "late"}
	if len(got) != len(want) {
		t.Fatalf("got = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPhaseStringAndUnknown(t *testing.T) {
	if TimeslotBegin.String() != "timeslot_begin" {
		t.Errorf("TimeslotBegin.String() = %q", TimeslotBegin.String())
	}
	if got := Phase(99).String(); got != "phase(99)" {
		t.Errorf("Phase(99).String() = %q", got)
	}
}

func TestSealedReportsState(t *testing.T) {
	s := NewSimTimeSlot()
	if s.Sealed(MemStable) {
		t.Fatal("phase should not start sealed")
	}
	s.Seal(MemStable)
	if !s.Sealed(MemStable) {
		t.Fatal("expected phase to be sealed")
	}
}
