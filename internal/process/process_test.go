package process

import "testing"

func TestFuncYieldsAndFinishes(t *testing.T) {
	p := New(func(yield Yield) {
		yield("a")
		yield("b")
	})

	v, ok := p.Step()
	if !ok || v != "a" {
		t.Fatalf("step 1 = %v, %v, want a, true", v, ok)
	}
	v, ok = p.Step()
	if !ok || v != "b" {
		t.Fatalf("step 2 = %v, %v, want b, true", v, ok)
	}
	v, ok = p.Step()
	if ok || v != nil {
		t.Fatalf("step 3 = %v, %v, want nil, false", v, ok)
	}
}

func TestFuncWithNoYields(t *testing.T) {
	p := New(func(yield Yield) {})
	_, ok := p.Step()
	if ok {
		t.Fatal("expected immediate finish for a body with no yields")
	}
}

func TestFuncCanYieldChildProcess(t *testing.T) {
	child := New(func(yield Yield) {})
	p := New(func(yield Yield) {
		yield(child)
	})

	v, ok := p.Step()
	if !ok {
		t.Fatal("expected a yield")
	}
	if _, isProc := v.(Process); !isProc {
		t.Fatalf("expected a Process value, got %T", v)
	}
}

func TestCloseUnwindsSuspendedBody(t *testing.T) {
	unwound := false
	p := New(func(yield Yield) {
		defer func() { unwound = true }()
		for {
			yield("tick")
		}
	})

	if v, ok := p.Step(); !ok || v != "tick" {
		t.Fatalf("Step() = %v, %v, want tick, true", v, ok)
	}
	p.Close()
	if !unwound {
		t.Error("expected the body's deferred statements to run on Close")
	}
	if _, ok := p.Step(); ok {
		t.Error("Step after Close should report the process finished")
	}
}

func TestCloseBeforeFirstStepIsSafe(t *testing.T) {
	started := false
	p := New(func(yield Yield) {
		started = true
		yield("never delivered")
	})

	p.Close()
	p.Close() // idempotent
	if started {
		t.Error("a never-stepped body must not run at all")
	}
	if _, ok := p.Step(); ok {
		t.Error("Step after Close should report the process finished")
	}
}

func TestCloseAfterFinishIsNoOp(t *testing.T) {
	p := New(func(yield Yield) {})
	if _, ok := p.Step(); ok {
		t.Fatal("expected immediate finish")
	}
	p.Close()
}

func TestFuncResumesWithValuesInBetween(t *testing.T) {
	var seen []int
	p := New(func(yield Yield) {
		for i := 0; i < 3; i++ {
			yield(i)
			seen = append(seen, i)
		}
	})

	for i := 0; i < 3; i++ {
		p.Step()
	}
	p.Step()

	if len(seen) != 3 {
		t.Fatalf("expected body to observe 3 resumes, got %d (%v)", len(seen), seen)
	}
}
