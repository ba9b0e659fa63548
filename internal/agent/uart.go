package agent

import (
	"github.com/myorg/hdlsim/internal/process"
	"github.com/myorg/hdlsim/internal/signal"
	"github.com/myorg/hdlsim/internal/sim"
	"github.com/myorg/hdlsim/internal/trigger"
)

// Common baud rates, named the way a UART testbench usually spells them.
const (
	Baud9600    = 9600
	Baud19200   = 19200
	Baud38400   = 38400
	Baud57600   = 57600
	Baud115200  = 115200
	BaudDefault = Baud115200
)

// TicksPerSecond fixes the simulated-time resolution at one tick per
// nanosecond, giving UART bit periods enough precision at any standard
// baud rate.
const TicksPerSecond = 1_000_000_000

const (
	uartStartBit = 0
	uartStopBit  = 1
)

// Uart drives or monitors an asynchronous single-wire UART line: no clock
// or reset dependency, just a fixed bit period derived from baud.
type Uart struct {
	Sig  signal.Signal
	Baud int

	// Outgoing holds bytes queued to transmit (driver side); Received
	// accumulates bytes successfully framed with start/stop bits intact
	// (monitor side).
	Outgoing []byte
	Received []byte

	Enabled bool

	bitPeriod int64
	charBuf   []int64
}

// NewUart returns a Uart agent over sig at the given baud rate.
func NewUart(sig signal.Signal, baud int) *Uart {
	return &Uart{
		Sig:       sig,
		Baud:      baud,
		Enabled:   true,
		bitPeriod: int64(TicksPerSecond) / int64(baud),
	}
}

// Send queues a byte for the driver to transmit.
func (u *Uart) Send(b byte) {
	u.Outgoing = append(u.Outgoing, b)
}

// Monitor continuously scans Sig for a start bit, samples 8 data bits one
// bit period apart, and on a valid stop bit appends the framed byte to
// Received; a malformed frame is discarded.
func (u *Uart) Monitor(s *sim.HdlSimulator) process.Process {
	return process.New(func(yield process.Yield) {
		half := trigger.Timer{Delay: u.bitPeriod / 2}
		period := trigger.Timer{Delay: u.bitPeriod}

		yield(half)

		for {
			for {
				if !u.Enabled {
					yield(period)
					continue
				}
				yield(trigger.WaitTimeslotEnd{})
				v, err := u.Sig.Read().AsInt("uart_rx")
				if err == nil && v == uartStartBit {
					break
				}
				yield(half)
			}

			u.charBuf = u.charBuf[:0]
			for i := 0; i < 8; i++ {
				yield(period)
				yield(trigger.WaitTimeslotEnd{})
				v, _ := u.Sig.Read().AsInt("uart_rx")
				u.charBuf = append(u.charBuf, v)
			}

			yield(period)
			yield(trigger.WaitTimeslotEnd{})
			stop, _ := u.Sig.Read().AsInt("uart_rx")
			if stop == uartStopBit {
				var ch byte
				for i := len(u.charBuf) - 1; i >= 0; i-- {
					ch <<= 1
					ch |= byte(u.charBuf[i] & 1)
				}
				u.Received = append(u.Received, ch)
				yield(period)
			} else {
				yield(half)
			}
			u.charBuf = u.charBuf[:0]
		}
	})
}

// Driver continuously pops bytes off Outgoing and frames them with a start
// and stop bit at the configured baud rate, idling the line high between
// characters.
func (u *Uart) Driver(s *sim.HdlSimulator) process.Process {
	return process.New(func(yield process.Yield) {
		period := trigger.Timer{Delay: u.bitPeriod}
		yield(trigger.Timer{Delay: u.bitPeriod / 2})

		for {
			if u.Enabled && len(u.Outgoing) > 0 {
				ch := u.Outgoing[0]
				u.Outgoing = u.Outgoing[1:]

				u.Sig.Write(signal.Defined(uartStartBit))
				yield(period)
				for i := 0; i < 8; i++ {
					bit := (int64(ch) >> uint(i)) & 1
					u.Sig.Write(signal.Defined(bit))
					yield(period)
				}
				u.Sig.Write(signal.Defined(uartStopBit))
			}
			yield(period)
		}
	})
}
