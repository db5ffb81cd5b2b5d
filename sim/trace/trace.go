// Package trace records which event fired at each simulation step.
// This package has no dependencies on sim/: it stores pure data types and
// satisfies sim.Recorder structurally.
package trace

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// TraceLevel controls the verbosity of step tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSteps captures every fired event.
	TraceLevelSteps TraceLevel = "steps"
)

var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelSteps: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel `json:"level"`
	// MaxRecords caps the number of stored steps; 0 means unlimited.
	// Steps past the cap are counted in Dropped.
	MaxRecords int `json:"max_records,omitempty"`
}

// StepRecord captures a single fired event.
type StepRecord struct {
	Step  int     `json:"step"`
	Time  float64 `json:"time"`
	Event string  `json:"event"`
	Kind  string  `json:"kind"`
}

// SimulationTrace collects step records during a run.
type SimulationTrace struct {
	RunID   string       `json:"run_id"`
	Config  TraceConfig  `json:"config"`
	Steps   []StepRecord `json:"steps"`
	Dropped int          `json:"dropped,omitempty"`
}

// NewSimulationTrace creates a SimulationTrace with a fresh, time-ordered run ID.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		RunID:  uuid.Must(uuid.NewV7()).String(),
		Config: config,
		Steps:  make([]StepRecord, 0),
	}
}

// Enabled reports whether records are being kept.
func (st *SimulationTrace) Enabled() bool {
	return st.Config.Level == TraceLevelSteps
}

// RecordStep appends a step record. It is a no-op unless the level is TraceLevelSteps.
func (st *SimulationTrace) RecordStep(step int, time float64, event string, kind string) {
	if !st.Enabled() {
		return
	}
	if st.Config.MaxRecords > 0 && len(st.Steps) >= st.Config.MaxRecords {
		st.Dropped++
		return
	}
	st.Steps = append(st.Steps, StepRecord{Step: step, Time: time, Event: event, Kind: kind})
}

// WriteJSON encodes the trace as indented JSON.
func (st *SimulationTrace) WriteJSON(w io.Writer) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("encoding trace %s: %w", st.RunID, err)
	}
	return nil
}

// ReadJSON decodes a trace previously written by WriteJSON.
func ReadJSON(r io.Reader) (*SimulationTrace, error) {
	var st SimulationTrace
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(r).Decode(&st); err != nil {
		return nil, fmt.Errorf("decoding trace: %w", err)
	}
	return &st, nil
}
