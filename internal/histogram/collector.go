// Package histogram samples the wall-clock cost of driving a simulation,
// one HdrHistogram per phase plus one for whole instants, so a run report
// can show where scheduler time actually goes. It is pure diagnostics: it
// implements sim.Observer and never influences scheduling decisions.
package histogram

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/myorg/hdlsim/internal/calendar"
	"github.com/myorg/hdlsim/internal/clock"
)

const (
	// Histogram range: 1 nanosecond to 10 seconds of wall-clock time spent
	// per phase or instant - generous enough for a breakpoint-laden debug
	// session without losing resolution on a fast headless run.
	minLatencyNs = 1
	maxLatencyNs = 10_000_000_000
	sigFigs      = 3
)

// phaseMetrics holds the wall-clock histogram for a single phase.
type phaseMetrics struct {
	mu        sync.Mutex
	histogram *hdrhistogram.Histogram
}

func newPhaseMetrics() *phaseMetrics {
	return &phaseMetrics{histogram: hdrhistogram.New(minLatencyNs, maxLatencyNs, sigFigs)}
}

// Collector is a sim.Observer that times every phase drain and every
// instant, recording wall-clock nanoseconds into per-phase histograms.
type Collector struct {
	mu        sync.RWMutex
	clock     clock.Clock
	phases    map[calendar.Phase]*phaseMetrics
	instant   *phaseMetrics
	startTime time.Time

	instantStart time.Time
	phaseStart   map[calendar.Phase]time.Time
}

// NewCollector returns an empty Collector, timed by the real wall clock,
// ready to be attached via HdlSimulator.WithObserver.
func NewCollector() *Collector {
	return NewCollectorWithClock(clock.New())
}

// NewCollectorWithClock is like NewCollector but lets a test substitute a
// fake clock.Clock instead of sleeping real time.
func NewCollectorWithClock(c clock.Clock) *Collector {
	return &Collector{
		clock:      c,
		phases:     make(map[calendar.Phase]*phaseMetrics),
		instant:    newPhaseMetrics(),
		startTime:  c.Now(),
		phaseStart: make(map[calendar.Phase]time.Time),
	}
}

func (c *Collector) getOrCreatePhase(phase calendar.Phase) *phaseMetrics {
	c.mu.RLock()
	pm, exists := c.phases[phase]
	c.mu.RUnlock()
	if exists {
		return pm
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if pm, exists = c.phases[phase]; exists {
		return pm
	}
	pm = newPhaseMetrics()
	c.phases[phase] = pm
	return pm
}

// InstantBegin implements sim.Observer.
func (c *Collector) InstantBegin(now int64) {
	c.instantStart = c.clock.Now()
}

// InstantEnd implements sim.Observer.
func (c *Collector) InstantEnd(now int64) {
	c.record(c.instant, c.clock.Since(c.instantStart))
}

// PhaseBegin implements sim.Observer.
func (c *Collector) PhaseBegin(now int64, phase calendar.Phase) {
	c.phaseStart[phase] = c.clock.Now()
}

// PhaseEnd implements sim.Observer.
func (c *Collector) PhaseEnd(now int64, phase calendar.Phase) {
	start, ok := c.phaseStart[phase]
	if !ok {
		return
	}
	c.record(c.getOrCreatePhase(phase), c.clock.Since(start))
}

func (c *Collector) record(pm *phaseMetrics, d time.Duration) {
	ns := d.Nanoseconds()
	if ns < minLatencyNs {
		ns = minLatencyNs
	}
	if ns > maxLatencyNs {
		ns = maxLatencyNs
	}
	pm.mu.Lock()
	pm.histogram.RecordValue(ns)
	pm.mu.Unlock()
}

// GetSnapshot returns a point-in-time view of every sampled histogram.
func (c *Collector) GetSnapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := &Snapshot{
		StartTime: c.startTime,
		Duration:  c.clock.Since(c.startTime),
		Phases:    make(map[string]LatencyStats),
	}

	snap.Instant = exportStats(c.instant)
	for phase, pm := range c.phases {
		snap.Phases[phase.String()] = exportStats(pm)
	}
	return snap
}

func exportStats(pm *phaseMetrics) LatencyStats {
	pm.mu.Lock()
	exported := pm.histogram.Export()
	pm.mu.Unlock()

	imported := hdrhistogram.Import(exported)
	return LatencyStats{
		Count:  imported.TotalCount(),
		Min:    time.Duration(imported.Min()),
		Max:    time.Duration(imported.Max()),
		Mean:   time.Duration(imported.Mean()),
		StdDev: time.Duration(imported.StdDev()),
		P50:    time.Duration(imported.ValueAtQuantile(50)),
		P90:    time.Duration(imported.ValueAtQuantile(90)),
		P99:    time.Duration(imported.ValueAtQuantile(99)),
	}
}
