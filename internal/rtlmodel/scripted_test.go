package rtlmodel

import (
	"testing"

	"github.com/myorg/hdlsim/internal/process"
)

func TestScriptedModelDefaultTwoPasses(t *testing.T) {
	m := NewScriptedModel()
	m.SetTime(0)

	status, err := m.Eval()
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if status != CombUpdateDone {
		t.Errorf("first Eval of an instant = %s, want CombUpdateDone", status)
	}
	status, err = m.Eval()
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if status != EndOfStep {
		t.Errorf("second Eval of an instant = %s, want EndOfStep", status)
	}
}

func TestScriptedModelMultiStep(t *testing.T) {
	m := NewScriptedModel()
	m.StepsPerInstant = 3
	m.SetTime(0)

	for i := 0; i < 2; i++ {
		status, err := m.Eval()
		if err != nil {
			t.Fatalf("Eval: %v", err)
		}
		if status != CombUpdateDone {
			t.Errorf("Eval #%d = %s, want CombUpdateDone", i+1, status)
		}
	}
	status, err := m.Eval()
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if status != EndOfStep {
		t.Errorf("Eval #3 = %s, want EndOfStep", status)
	}
}

func TestScriptedModelResetEval(t *testing.T) {
	m := NewScriptedModel()
	m.StepsPerInstant = 2
	m.SetTime(0)

	m.Eval()
	m.ResetEval()
	status, _ := m.Eval()
	if status != CombUpdateDone {
		t.Errorf("after ResetEval, first Eval should behave like the first pass, got %s", status)
	}
}

func TestScriptedModelSetTimeResetsCount(t *testing.T) {
	m := NewScriptedModel()
	m.SetTime(0)
	m.Eval()
	m.Eval() // reaches EndOfStep at step 2

	m.SetTime(10)
	status, _ := m.Eval()
	if status != CombUpdateDone {
		t.Errorf("SetTime should reset the per-instant eval counter, got %s", status)
	}
}

func TestScriptedModelOnEvalHook(t *testing.T) {
	m := NewScriptedModel()
	var calls []int
	m.OnEval = func(mm *ScriptedModel, now int64, call int) {
		calls = append(calls, call)
	}
	m.StepsPerInstant = 2
	m.SetTime(5)
	m.Eval()
	m.Eval()

	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("calls = %v, want [1 2]", calls)
	}
}

func TestScriptedModelPendingEvents(t *testing.T) {
	m := NewScriptedModel()

	var firedAt int64
	m.Enqueue(func(now int64) process.Process {
		firedAt = now
		return nil
	})

	cbs := m.PendingEvents()
	if len(cbs) != 1 {
		t.Fatalf("PendingEvents() returned %d callbacks, want 1", len(cbs))
	}
	cbs[0](42)
	if firedAt != 42 {
		t.Errorf("callback saw now=%d, want 42", firedAt)
	}

	if remaining := m.PendingEvents(); len(remaining) != 0 {
		t.Errorf("PendingEvents should drain the queue, got %d left", len(remaining))
	}
}

func TestScriptedModelFinalizeAndReadOnly(t *testing.T) {
	m := NewScriptedModel()
	var finalizeCalls int
	m.OnFinalize(func() { finalizeCalls++ })

	if m.Finalized() {
		t.Fatal("should not be finalized yet")
	}
	m.Finalize()
	if !m.Finalized() || finalizeCalls != 1 {
		t.Errorf("Finalized()=%v calls=%d, want true, 1", m.Finalized(), finalizeCalls)
	}

	m.SetReadOnlyNotWriteOnly(true)
	if !m.ReadOnly() {
		t.Error("expected ReadOnly() to reflect SetReadOnlyNotWriteOnly(true)")
	}
}
