package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type jsonReport struct {
	Version string                `json:"version"`
	RunInfo jsonRunInfo           `json:"run_info"`
	Summary jsonSummary           `json:"summary"`
	Phases  map[string]jsonPhase  `json:"phases"`
	Agents  map[string]AgentStats `json:"agents,omitempty"`
}

type jsonRunInfo struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Duration     string `json:"duration"`
	StopReason   string `json:"stop_reason"`
	ClockPeriod  int64  `json:"clock_period"`
	UntilBound   int64  `json:"until_bound"`
	FinalSimTime int64  `json:"final_sim_time"`
}

type jsonSummary struct {
	Instants int64 `json:"instants"`
}

type jsonPhase struct {
	Count  int64  `json:"count"`
	MinUs  int64  `json:"min_us"`
	MaxUs  int64  `json:"max_us"`
	MeanUs int64  `json:"mean_us"`
	P50Us  int64  `json:"p50_us"`
	P90Us  int64  `json:"p90_us"`
	P99Us  int64  `json:"p99_us"`
}

// ToJSON serializes the report to JSON.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r.toJSONReport(), "", "  ")
}

// ToJSONCompact serializes the report to compact JSON.
func (r *Report) ToJSONCompact() ([]byte, error) {
	return json.Marshal(r.toJSONReport())
}

// WriteToFile writes the report to a file as indented JSON.
func (r *Report) WriteToFile(path string) error {
	data, err := r.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

func (r *Report) toJSONReport() jsonReport {
	jr := jsonReport{
		Version: r.Version,
		RunInfo: jsonRunInfo{
			StartTime:    r.RunInfo.StartTime.Format(time.RFC3339),
			EndTime:      r.RunInfo.EndTime.Format(time.RFC3339),
			Duration:     r.RunInfo.Duration.String(),
			StopReason:   r.RunInfo.StopReason,
			ClockPeriod:  r.RunInfo.ClockPeriod,
			UntilBound:   r.RunInfo.UntilBound,
			FinalSimTime: r.RunInfo.FinalSimTime,
		},
		Summary: jsonSummary{Instants: r.Summary.Instants},
		Phases:  make(map[string]jsonPhase, len(r.Phases)),
		Agents:  r.Agents,
	}

	for name, p := range r.Phases {
		jr.Phases[name] = jsonPhase{
			Count:  p.Count,
			MinUs:  p.Min.Microseconds(),
			MaxUs:  p.Max.Microseconds(),
			MeanUs: p.Mean.Microseconds(),
			P50Us:  p.P50.Microseconds(),
			P90Us:  p.P90.Microseconds(),
			P99Us:  p.P99.Microseconds(),
		}
	}

	return jr
}
