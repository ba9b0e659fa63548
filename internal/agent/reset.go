package agent

import (
	"github.com/myorg/hdlsim/internal/process"
	"github.com/myorg/hdlsim/internal/signal"
	"github.com/myorg/hdlsim/internal/sim"
	"github.com/myorg/hdlsim/internal/trigger"
)

// PullUp drives sig to 0, then flips it to 1 after InitDelay ticks and
// never touches it again - the standard shape for an active-low reset
// release.
type PullUp struct {
	Sig       signal.Signal
	InitDelay int64
}

// NewPullUp returns a PullUp agent that releases after initDelay ticks.
func NewPullUp(sig signal.Signal, initDelay int64) *PullUp {
	return &PullUp{Sig: sig, InitDelay: initDelay}
}

// Driver is the one-shot reset-release process. A zero InitDelay releases
// within the boot instant's write_only drain, with no Timer round-trip.
func (p *PullUp) Driver(s *sim.HdlSimulator) process.Process {
	return process.New(func(yield process.Yield) {
		yield(trigger.WaitWriteOnly{})
		p.Sig.Write(signal.Defined(0))
		if p.InitDelay > 0 {
			yield(trigger.Timer{Delay: p.InitDelay})
			yield(trigger.WaitWriteOnly{})
		}
		p.Sig.Write(signal.Defined(1))
	})
}

// PullDown is PullUp's mirror: asserts an active-high reset at t=0 and
// releases it after InitDelay ticks.
type PullDown struct {
	Sig       signal.Signal
	InitDelay int64
}

// NewPullDown returns a PullDown agent that deasserts after initDelay ticks.
func NewPullDown(sig signal.Signal, initDelay int64) *PullDown {
	return &PullDown{Sig: sig, InitDelay: initDelay}
}

// Driver is the one-shot reset-assert-then-release process. A zero
// InitDelay deasserts within the boot instant's write_only drain.
func (p *PullDown) Driver(s *sim.HdlSimulator) process.Process {
	return process.New(func(yield process.Yield) {
		yield(trigger.WaitWriteOnly{})
		p.Sig.Write(signal.Defined(1))
		if p.InitDelay > 0 {
			yield(trigger.Timer{Delay: p.InitDelay})
			yield(trigger.WaitWriteOnly{})
		}
		p.Sig.Write(signal.Defined(0))
	})
}
