package rtlmodel

// ScriptedModel is a deterministic, in-memory fake Backend. It has no
// actual circuit: Eval resolves instantly and callbacks are whatever the
// test or CLI smoke-run script enqueued via Enqueue - a thin,
// lifecycle-managed stand-in for the real external resource.
type ScriptedModel struct {
	now          int64
	readOnly     bool
	pending      []Callback
	evalCount    int
	finalized    bool
	finalizeHook func()

	// StepsPerInstant is how many Eval calls happen before Eval reports
	// EndOfStep. Defaults to 2: one combinational settle pass reporting
	// CombUpdateDone, then the end-of-step pass. The scheduler requires
	// the first Eval of an instant to report CombUpdateDone, so a value
	// below 2 only suits direct unit tests of the model itself.
	StepsPerInstant int

	// OnEval, if set, is invoked synchronously on every Eval call before
	// the status is decided, letting a test drive write/callback
	// injection in lockstep with the phase cycle.
	OnEval func(m *ScriptedModel, now int64, call int)
}

// NewScriptedModel returns a ScriptedModel with the default two eval
// passes per instant (one combinational settle, one end-of-step).
func NewScriptedModel() *ScriptedModel {
	return &ScriptedModel{StepsPerInstant: 2}
}

func (m *ScriptedModel) SetTime(now int64) {
	m.now = now
	m.evalCount = 0
}

func (m *ScriptedModel) Eval() (EvalStatus, error) {
	m.evalCount++
	if m.OnEval != nil {
		m.OnEval(m, m.now, m.evalCount)
	}
	steps := m.StepsPerInstant
	if steps < 1 {
		steps = 1
	}
	if m.evalCount < steps {
		return CombUpdateDone, nil
	}
	return EndOfStep, nil
}

func (m *ScriptedModel) ResetEval() {
	m.evalCount = 0
}

func (m *ScriptedModel) SetWriteOnly() {}

func (m *ScriptedModel) Finalize() {
	m.finalized = true
	if m.finalizeHook != nil {
		m.finalizeHook()
	}
}

// Finalized reports whether Finalize has been called (tests use this to
// assert it happens exactly once).
func (m *ScriptedModel) Finalized() bool { return m.finalized }

// OnFinalize registers a hook invoked from Finalize, for counting calls
// in tests without a mutex (the scheduler never calls it concurrently).
func (m *ScriptedModel) OnFinalize(fn func()) { m.finalizeHook = fn }

func (m *ScriptedModel) PendingEvents() []Callback {
	p := m.pending
	m.pending = nil
	return p
}

// Enqueue schedules cb to be returned from the next PendingEvents call.
func (m *ScriptedModel) Enqueue(cb Callback) {
	m.pending = append(m.pending, cb)
}

func (m *ScriptedModel) SetReadOnlyNotWriteOnly(v bool) { m.readOnly = v }

// ReadOnly reports the current read_only_not_write_only flag.
func (m *ScriptedModel) ReadOnly() bool { return m.readOnly }
