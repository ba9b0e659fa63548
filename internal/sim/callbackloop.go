package sim

import (
	"github.com/myorg/hdlsim/internal/process"
	"github.com/myorg/hdlsim/internal/trigger"
)

// EdgeKind selects which clock transition a CallbackLoop re-arms on.
type EdgeKind int

const (
	RisingEdge EdgeKind = iota
	FallingEdge
	AnyChange
)

// CallbackLoop is the edge-triggered overlay: it turns a bare child
// process-factory into one that re-arms itself on every clock edge,
// subject to an enable predicate. At most one instance of the child is
// ever live at a time; disabling only takes effect at the next edge.
type CallbackLoop struct {
	sim       *HdlSimulator
	edge      EdgeKind
	enabled   func() bool
	newChild  func(sim *HdlSimulator) process.Process
	lastLevel int // -1 = unknown, 0/1 = last observed clock level
	running   bool
}

// NewCallbackLoop builds the overlay. newChild is called to produce a
// fresh child process instance each time the edge fires and the loop is
// enabled. enabled is consulted at the top of every edge, never mid-child.
func NewCallbackLoop(sim *HdlSimulator, edge EdgeKind, newChild func(sim *HdlSimulator) process.Process, enabled func() bool) *CallbackLoop {
	return &CallbackLoop{
		sim:       sim,
		edge:      edge,
		enabled:   enabled,
		newChild:  newChild,
		lastLevel: -1,
	}
}

// OnLevel feeds the loop a freshly-observed clock level (0 or 1); callers
// invoke it from the comb_stable drain. It returns
// a child process to enqueue into the current active phase-queue, or nil
// if no edge fired / the loop is disabled / a child is already running.
func (c *CallbackLoop) OnLevel(level int) process.Process {
	prev := c.lastLevel
	c.lastLevel = level
	if prev < 0 {
		return nil // first observation establishes a baseline, no edge yet
	}

	var fired bool
	switch c.edge {
	case RisingEdge:
		fired = prev == 0 && level == 1
	case FallingEdge:
		fired = prev == 1 && level == 0
	case AnyChange:
		fired = prev != level
	}
	if !fired {
		return nil
	}
	if c.enabled != nil && !c.enabled() {
		return nil
	}
	if c.running {
		return nil // at most one live instance at a time
	}

	c.running = true
	child := c.newChild(c.sim)
	wrapped := process.New(func(yield process.Yield) {
		defer func() { c.running = false }()
		if closer, ok := child.(process.Closer); ok {
			defer closer.Close()
		}
		// The wrapper is spawned during the comb_stable drain, where the
		// earlier phases of the instant are already sealed; hop to the next
		// instant's write_only first so the child may open with any wait
		// trigger it likes.
		yield(trigger.Timer{Delay: 1})
		for {
			val, ok := child.Step()
			if !ok {
				return
			}
			yield(val)
		}
	})
	return wrapped
}
