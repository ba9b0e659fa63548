package agent

import (
	"github.com/myorg/hdlsim/internal/process"
	"github.com/myorg/hdlsim/internal/signal"
	"github.com/myorg/hdlsim/internal/sim"
	"github.com/myorg/hdlsim/internal/trigger"
)

// ReadyValid drives or monitors a 2-phase ready/valid handshaked
// channel. MonitorOnce and DriverOnce each run one
// handshake attempt and are meant to be re-armed every clock edge through
// a sim.CallbackLoop, the same separation the RTL back-end and the
// scheduler keep between "what happens" and "when it happens".
type ReadyValid struct {
	Ready signal.Signal
	Valid signal.Signal
	Data  signal.Signal

	// Rst, if non-nil, gates the channel: while it reads the asserted
	// level (1 normally, 0 if RstActiveLow), the monitor holds ready low
	// and the driver holds valid low instead of handshaking.
	Rst          signal.Signal
	RstActiveLow bool

	Enabled bool

	// Queue holds values queued to send (driver side); Received
	// accumulates values read off the channel (monitor side).
	Queue    []signal.Value
	Received []signal.Value

	// OnMonitorReady, if set, runs right before the monitor (re)asserts
	// ready for a new data item, letting a caller preset signals that
	// travel against this channel's main data flow.
	OnMonitorReady func()
	// AfterRead, if set, runs right after the monitor accepts a value.
	AfterRead func(v signal.Value)
	// OnDriverWriteAck, if set, runs right after the driver sees its
	// current value accepted by the peer.
	OnDriverWriteAck func()
	// OnDone, if set, runs with the value that was just accepted.
	OnDone func(v signal.Value)

	actualData  *signal.Value
	lastWritten *signal.Value
	lastRd      int64
	lastVld     int64

	// readyConsumed is true once a handshake has completed and the
	// channel is free to advertise readiness for the next item; it
	// starts true so the first MonitorOnce call is allowed to run
	// OnMonitorReady immediately. The reset path deliberately sets it
	// before the write path would have deasserted ready; see DESIGN.md.
	readyConsumed bool
}

// NewReadyValid returns a ReadyValid agent over the given signals, enabled
// by default and with no reset gating.
func NewReadyValid(ready, valid, data signal.Signal) *ReadyValid {
	return &ReadyValid{
		Ready:         ready,
		Valid:         valid,
		Data:          data,
		Enabled:       true,
		readyConsumed: true,
	}
}

// Send queues v to be sent by the driver side.
func (r *ReadyValid) Send(v signal.Value) {
	r.Queue = append(r.Queue, v)
}

// advance moves the next queued value (if any) into actualData.
func (r *ReadyValid) advance() {
	if len(r.Queue) > 0 {
		v := r.Queue[0]
		r.Queue = r.Queue[1:]
		r.actualData = &v
		return
	}
	r.actualData = nil
}

func (r *ReadyValid) notReset() bool {
	if r.Rst == nil {
		return true
	}
	v, err := r.Rst.Read().AsInt("rst")
	if err != nil {
		return false
	}
	asserted := v != 0
	if r.RstActiveLow {
		asserted = v == 0
	}
	return !asserted
}

// MonitorOnce runs one pass of the receive side: assert ready, wait for
// the peer's valid, and accept data on a positive ack.
func (r *ReadyValid) MonitorOnce(s *sim.HdlSimulator) process.Process {
	return process.New(func(yield process.Yield) {
		yield(trigger.WaitCombRead{})
		if !r.Enabled {
			return
		}

		if !r.notReset() {
			r.readyConsumed = true
			if r.lastRd != 0 {
				yield(trigger.WaitWriteOnly{})
				r.Ready.Write(signal.Defined(0))
				r.lastRd = 0
			}
			return
		}

		yield(trigger.WaitWriteOnly{})
		if !r.Enabled {
			return
		}
		if r.readyConsumed {
			if r.OnMonitorReady != nil {
				r.OnMonitorReady()
			}
			r.readyConsumed = false
		}
		if r.lastRd != 1 {
			r.Ready.Write(signal.Defined(1))
			r.lastRd = 1
		}

		yield(trigger.WaitCombStable{})
		if !r.Enabled {
			return
		}
		vld, err := r.Valid.Read().AsInt("valid")
		if err != nil || vld == 0 {
			return
		}

		d := r.Data.Read()
		r.Received = append(r.Received, d)
		if r.AfterRead != nil {
			r.AfterRead(d)
		}
		r.readyConsumed = true
	})
}

// DriverOnce runs one pass of the send side: present the next queued value
// (if any) on data/valid, then in comb_stable of the same pass check
// whether the peer's ready accepted it and advance the queue.
func (r *ReadyValid) DriverOnce(s *sim.HdlSimulator) process.Process {
	return process.New(func(yield process.Yield) {
		yield(trigger.WaitWriteOnly{})
		if !r.Enabled {
			return
		}
		if r.actualData == nil && len(r.Queue) > 0 {
			v := r.Queue[0]
			r.Queue = r.Queue[1:]
			r.actualData = &v
		}
		// an undefined queue entry is a one-cycle bubble: valid stays low
		// and the entry is consumed without waiting for an ack
		doSend := r.actualData != nil && r.actualData.Defined
		if r.actualData != r.lastWritten {
			if doSend {
				r.Data.Write(*r.actualData)
			} else if r.lastVld != 0 {
				r.Valid.Write(signal.Defined(0))
				r.lastVld = 0
			}
			r.lastWritten = r.actualData
		}

		yield(trigger.WaitCombRead{})
		if !r.Enabled {
			return
		}
		vld := int64(0)
		if r.notReset() && doSend {
			vld = 1
		}
		if r.lastVld != vld {
			yield(trigger.WaitWriteOnly{})
			r.Valid.Write(signal.Defined(vld))
			r.lastVld = vld
		}

		yield(trigger.WaitCombStable{})
		if !r.Enabled {
			return
		}
		if r.actualData != nil && !r.actualData.Defined {
			r.advance()
			return
		}
		if r.lastVld == 0 {
			return
		}
		rd, err := r.Ready.Read().AsInt("ready")
		if err != nil || rd == 0 {
			return
		}

		sent := r.actualData
		r.advance()
		if r.OnDriverWriteAck != nil {
			r.OnDriverWriteAck()
		}
		if r.OnDone != nil && sent != nil {
			r.OnDone(*sent)
		}
	})
}
