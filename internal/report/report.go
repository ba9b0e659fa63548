// Package report renders a finished hdlsim run - stop reason, final
// simulated time, per-phase wall-clock timing, and per-agent counters -
// as either a console summary or a JSON document.
package report

import (
	"time"

	"github.com/myorg/hdlsim/internal/histogram"
)

// Report is the complete record of one hdlsim run.
type Report struct {
	Version string
	RunInfo RunInfo
	Summary Summary
	Phases  map[string]PhaseStats
	Agents  map[string]AgentStats
}

// RunInfo contains run-level metadata: both wall-clock (real) timing and
// simulated time.
type RunInfo struct {
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	StopReason   string
	ClockPeriod  int64
	UntilBound   int64
	FinalSimTime int64
}

// Summary contains aggregated run counters.
type Summary struct {
	Instants int64
}

// PhaseStats is a phase's (or the whole-instant) wall-clock distribution,
// mirroring histogram.LatencyStats but independent of that package's
// internal representation so the report can be serialized on its own.
type PhaseStats struct {
	Count  int64
	Min    time.Duration
	Max    time.Duration
	Mean   time.Duration
	StdDev time.Duration
	P50    time.Duration
	P90    time.Duration
	P99    time.Duration
}

// AgentStats holds a free-form set of named counters for one agent
// instance (e.g. a clock agent reports "edges", a ready/valid agent
// reports "received" and "queued").
type AgentStats struct {
	Name     string
	Counters map[string]int64
}

// GenerateReport assembles a Report from run metadata, a histogram
// snapshot, and a map of agent name to its counters.
func GenerateReport(runInfo RunInfo, snap *histogram.Snapshot, agents map[string]AgentStats) *Report {
	r := &Report{
		Version: "1.0",
		RunInfo: runInfo,
		Phases:  make(map[string]PhaseStats),
		Agents:  agents,
	}

	if snap != nil {
		r.Phases["instant"] = fromLatencyStats(snap.Instant)
		for name, stats := range snap.Phases {
			r.Phases[name] = fromLatencyStats(stats)
		}
	}

	return r
}

func fromLatencyStats(l histogram.LatencyStats) PhaseStats {
	return PhaseStats{
		Count:  l.Count,
		Min:    l.Min,
		Max:    l.Max,
		Mean:   l.Mean,
		StdDev: l.StdDev,
		P50:    l.P50,
		P90:    l.P90,
		P99:    l.P99,
	}
}

// String returns a one-line human-readable summary of the report.
func (r *Report) String() string {
	return r.RunInfo.StopReason + " at t=" + formatNumber(r.RunInfo.FinalSimTime) +
		" (" + formatNumber(r.Summary.Instants) + " instants, " + r.RunInfo.Duration.String() + " wall-clock)"
}
