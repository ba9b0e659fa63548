package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/myorg/hdlsim/internal/calendar"
	"github.com/myorg/hdlsim/internal/histogram"
)

func testSnapshot() *histogram.Snapshot {
	c := histogram.NewCollector()
	for i := 0; i < 50; i++ {
		c.InstantBegin(int64(i))
		c.PhaseBegin(int64(i), calendar.WriteOnly)
		c.PhaseEnd(int64(i), calendar.WriteOnly)
		c.InstantEnd(int64(i))
	}
	return c.GetSnapshot()
}

func testRunInfo() RunInfo {
	return RunInfo{
		StartTime:    time.Now().Add(-time.Second),
		EndTime:      time.Now(),
		Duration:     time.Second,
		StopReason:   "until bound reached",
		ClockPeriod:  10,
		UntilBound:   500,
		FinalSimTime: 500,
	}
}

func TestGenerateReport(t *testing.T) {
	snap := testSnapshot()
	agents := map[string]AgentStats{
		"clk0": {Name: "clk0", Counters: map[string]int64{"edges": 50}},
	}

	r := GenerateReport(testRunInfo(), snap, agents)

	if r.Version != "1.0" {
		t.Errorf("expected version 1.0, got %s", r.Version)
	}
	if r.RunInfo.StopReason != "until bound reached" {
		t.Errorf("unexpected stop reason %q", r.RunInfo.StopReason)
	}
	if _, ok := r.Phases["instant"]; !ok {
		t.Error("expected an 'instant' phase entry")
	}
	if _, ok := r.Phases[calendar.WriteOnly.String()]; !ok {
		t.Error("expected a write_only phase entry")
	}
	if r.Agents["clk0"].Counters["edges"] != 50 {
		t.Errorf("expected clk0 edges=50, got %d", r.Agents["clk0"].Counters["edges"])
	}
}

func TestReportToJSON(t *testing.T) {
	r := GenerateReport(testRunInfo(), testSnapshot(), nil)

	data, err := r.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := parsed["run_info"]; !ok {
		t.Error("run_info field missing")
	}
	if _, ok := parsed["phases"]; !ok {
		t.Error("phases field missing")
	}
}

func TestReportToJSONCompact(t *testing.T) {
	r := GenerateReport(testRunInfo(), testSnapshot(), nil)

	compact, err := r.ToJSONCompact()
	if err != nil {
		t.Fatalf("ToJSONCompact failed: %v", err)
	}
	indented, err := r.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if len(compact) >= len(indented) {
		t.Errorf("compact JSON (%d bytes) should be smaller than indented (%d bytes)", len(compact), len(indented))
	}
}

func TestReportWriteToFile(t *testing.T) {
	r := GenerateReport(testRunInfo(), testSnapshot(), nil)

	tmpFile := filepath.Join(t.TempDir(), "report.json")
	if err := r.WriteToFile(tmpFile); err != nil {
		t.Fatalf("WriteToFile failed: %v", err)
	}

	data, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("file contains invalid JSON: %v", err)
	}
}

func TestReportString(t *testing.T) {
	r := GenerateReport(testRunInfo(), testSnapshot(), nil)
	str := r.String()
	if str == "" {
		t.Error("String() returned empty")
	}
	if !strings.Contains(str, "until bound reached") {
		t.Errorf("expected stop reason in String(), got %q", str)
	}
}
