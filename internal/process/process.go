// Package process gives cooperative simulation processes a single-step
// interface the scheduler can drive without ever running two of them at
// once.
//
// A Process is any value implementing "produce next trigger or finish".
// Go has no native stackful coroutines, so Func realises one with a
// goroutine paired to the caller over two unbuffered channels: the
// goroutine runs the user body until it yields (or returns), hands the
// yielded value to the caller, and blocks until Step is called again.
// Exactly one of the pair is ever runnable at a time, so this never
// introduces real concurrency into the scheduler - it is a fiber, not a
// worker.
package process

import "runtime"

// Process advances one step and reports what the step produced.
//
// Step returns (value, true) for every yield, where value is either a
// trigger.Trigger (the process wants to suspend / resume per the trigger's
// semantics) or another Process (the process spawned a child and wants to
// keep running immediately, without suspending - the runner must call Step
// again right away). Step returns (nil, false) once the process body has
// returned; a finished Process must not be stepped again.
type Process interface {
	Step() (value any, ok bool)
}

// Closer is implemented by processes whose fiber holds resources needing
// explicit teardown when the scheduler discards them unresumed (a bounded
// run ends with the clock driver still suspended, for example). The
// scheduler closes every discarded Closer on its way out of Run.
type Closer interface {
	Close()
}

// Yield is handed to a process body; calling it suspends the body until
// the runner steps the process again, handing back val (a trigger.Trigger
// or a child Process) to the caller of Step.
type Yield func(val any)

// Func adapts an ordinary Go function, written as straight-line control
// flow that calls yield to hand control back to the scheduler, into a
// Process.
type Func struct {
	body    func(yield Yield)
	resume  chan struct{}
	yielded chan any
	quit    chan struct{}
	started bool
	done    bool
}

// New builds a Process from body. body must call yield() every time it
// wants the scheduler to observe a trigger or a spawned child, and must
// not retain the yield function past its own return. The body does not
// start executing until the first Step call, so no part of it ever runs
// concurrently with the caller.
func New(body func(yield Yield)) *Func {
	return &Func{
		body:    body,
		resume:  make(chan struct{}),
		yielded: make(chan any),
		quit:    make(chan struct{}),
	}
}

// Step implements Process.
func (f *Func) Step() (any, bool) {
	if f.done {
		return nil, false
	}
	if !f.started {
		f.started = true
		go func() {
			defer close(f.yielded)
			f.body(func(val any) {
				select {
				case f.yielded <- val:
				case <-f.quit:
					runtime.Goexit()
				}
				select {
				case <-f.resume:
				case <-f.quit:
					runtime.Goexit()
				}
			})
		}()
	} else {
		f.resume <- struct{}{}
	}
	val, ok := <-f.yielded
	if !ok {
		f.done = true
		return nil, false
	}
	return val, true
}

// Close tears down a suspended fiber without resuming its body: the parked
// goroutine unwinds at its current yield point, running any deferred
// statements on the way out. Safe to call on a finished or never-started
// Func, and idempotent; a Step after Close reports the process finished.
func (f *Func) Close() {
	if f.done || !f.started {
		f.done = true
		return
	}
	f.done = true
	close(f.quit)
	for range f.yielded {
		// drain an in-flight yield racing the close
	}
}
