// Package agent ports the handful of stock simulation agents an HDL
// testbench almost always needs: a clock oscillator, reset pull agents, a
// ready/valid handshake driver and monitor, and a UART bit-banger. Each
// agent is just a pair of ProcessFactory-shaped closures over a
// signal.Signal; there is nothing scheduler-internal about them, they are
// ordinary users of the public sim/signal/trigger API.
package agent

import (
	"github.com/myorg/hdlsim/internal/process"
	"github.com/myorg/hdlsim/internal/signal"
	"github.com/myorg/hdlsim/internal/sim"
	"github.com/myorg/hdlsim/internal/trigger"
)

// Edge is one observed transition on a monitored signal.
type Edge struct {
	Time  int64
	Value signal.Value
}

// Clock drives or monitors a single clock signal oscillating with a fixed
// period (first half low, second half high).
type Clock struct {
	Sig      signal.Signal
	Period   int64
	InitWait int64

	Edges []Edge // appended to by Monitor
	last  signal.Value
	seen  bool
}

// NewClock returns a Clock agent driving/monitoring sig at period ticks.
func NewClock(sig signal.Signal, period int64) *Clock {
	return &Clock{Sig: sig, Period: period}
}

// Driver oscillates Sig forever: write 0, wait InitWait, then alternate
// high/low every Period/2 ticks.
func (c *Clock) Driver(s *sim.HdlSimulator) process.Process {
	return process.New(func(yield process.Yield) {
		yield(trigger.WaitWriteOnly{})
		c.Sig.Write(signal.Defined(0))
		if c.InitWait > 0 {
			yield(trigger.Timer{Delay: c.InitWait})
		}

		half := c.Period / 2
		for {
			yield(trigger.Timer{Delay: half})
			yield(trigger.WaitWriteOnly{})
			c.Sig.Write(signal.Defined(1))

			yield(trigger.Timer{Delay: half})
			yield(trigger.WaitWriteOnly{})
			c.Sig.Write(signal.Defined(0))
		}
	})
}

// Monitor records every change of Sig's value, coalescing same-instant
// updates the way the reference monitor does (a value that changes twice
// within one instant keeps only the final value for that instant). Like
// Uart.Monitor, it escapes to timeslot_end and then a 1-tick Timer before
// re-arming comb_read: a bare yield(WaitCombRead{}) loop would re-enqueue
// itself into the same already-draining comb_read queue and never return.
func (c *Clock) Monitor(s *sim.HdlSimulator) process.Process {
	return process.New(func(yield process.Yield) {
		for {
			yield(trigger.WaitCombRead{})
			v := c.Sig.Read()
			now := s.Now()

			switch {
			case len(c.Edges) > 0 && c.Edges[len(c.Edges)-1].Time == now:
				c.Edges[len(c.Edges)-1].Value = v
			case !c.seen || v != c.last:
				c.Edges = append(c.Edges, Edge{Time: now, Value: v})
			}
			c.last, c.seen = v, true

			yield(trigger.WaitTimeslotEnd{})
			yield(trigger.Timer{Delay: 1})
		}
	})
}
