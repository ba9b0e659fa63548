// Package signal is the read/write surface agents use to interact with
// top-level circuit signals. It is deliberately outside the scheduler
// core: the scheduler never reads or writes a Signal
// itself, it only sequences when agents are allowed to.
package signal

import "fmt"

// Value is a signal's value. A signal can be undefined ("x" state); Defined
// is false in that case and Int must not be trusted.
type Value struct {
	Int     int64
	Defined bool
}

// Defined returns a Value carrying i.
func Defined(i int64) Value { return Value{Int: i, Defined: true} }

// Undefined returns an "x"-state Value.
func Undefined() Value { return Value{} }

func (v Value) String() string {
	if !v.Defined {
		return "x"
	}
	return fmt.Sprintf("%d", v.Int)
}

// ErrUndefined is returned by AsInt when a Value is undefined, so an agent
// that required a definite bit gets an error naming the signal.
type ErrUndefined struct {
	Signal string
}

func (e *ErrUndefined) Error() string {
	return fmt.Sprintf("signal %q is undefined (x state)", e.Signal)
}

// AsInt returns v's integer value, or ErrUndefined if v is undefined.
// name is used only for the error message.
func (v Value) AsInt(name string) (int64, error) {
	if !v.Defined {
		return 0, &ErrUndefined{Signal: name}
	}
	return v.Int, nil
}

// Signal is a single top-level circuit signal as seen by an agent.
type Signal interface {
	Name() string
	Read() Value
	Write(v Value)
}

// Memory is an in-memory Signal backed by a plain variable, the
// realisation agents and tests use when there is no real RTL back-end
// wired underneath (paired with rtlmodel.ScriptedModel).
type Memory struct {
	name string
	val  Value
}

// NewMemory returns a Memory signal named name, initially undefined.
func NewMemory(name string) *Memory {
	return &Memory{name: name, val: Undefined()}
}

func (m *Memory) Name() string  { return m.name }
func (m *Memory) Read() Value   { return m.val }
func (m *Memory) Write(v Value) { m.val = v }
