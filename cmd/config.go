package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/eventsim/sim/customerqueue"
	"github.com/inference-sim/eventsim/sim/trace"
)

// RunConfig is the full configuration of a `run` invocation.
// Sources, lowest precedence first: DefaultRunConfig, the YAML file given by
// --config, EVENTSIM_* environment variables, explicitly set flags.
type RunConfig struct {
	Seed          int64   `yaml:"seed" env:"EVENTSIM_SEED"`
	ArrivalRate   float64 `yaml:"arrival_rate" env:"EVENTSIM_ARRIVAL_RATE"`
	ServiceMean   float64 `yaml:"service_mean" env:"EVENTSIM_SERVICE_MEAN"`
	ServiceStdDev float64 `yaml:"service_stddev" env:"EVENTSIM_SERVICE_STDDEV"`

	MaxTime  float64 `yaml:"max_time" env:"EVENTSIM_MAX_TIME"`   // 0 = unbounded
	MaxSteps int     `yaml:"max_steps" env:"EVENTSIM_MAX_STEPS"` // fired events, 0 = unbounded

	LogLevel   string `yaml:"log_level" env:"EVENTSIM_LOG"`
	TraceLevel string `yaml:"trace_level" env:"EVENTSIM_TRACE_LEVEL"`
	TraceOut   string `yaml:"trace_out" env:"EVENTSIM_TRACE_OUT"`
}

// DefaultRunConfig returns the built-in defaults.
func DefaultRunConfig() RunConfig {
	m := customerqueue.DefaultConfig()
	return RunConfig{
		Seed:          m.Seed,
		ArrivalRate:   m.ArrivalRate,
		ServiceMean:   m.ServiceMean,
		ServiceStdDev: m.ServiceStdDev,
		MaxTime:       100,
		LogLevel:      "error",
		TraceLevel:    string(trace.TraceLevelNone),
	}
}

// LoadRunConfig reads a YAML run configuration on top of base.
// Keys absent from the file keep their value from base; unknown keys are errors.
func LoadRunConfig(path string, base RunConfig) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading run config: %w", err)
	}
	cfg := base
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any EVENTSIM_* variables that are set.
func ApplyEnv(cfg *RunConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Model returns the customer-queue parameters of the run.
func (c RunConfig) Model() customerqueue.Config {
	return customerqueue.Config{
		ArrivalRate:   c.ArrivalRate,
		ServiceMean:   c.ServiceMean,
		ServiceStdDev: c.ServiceStdDev,
		Seed:          c.Seed,
	}
}

// Validate checks that the run is bounded and every field is in range.
func (c RunConfig) Validate() error {
	if err := c.Model().Validate(); err != nil {
		return err
	}
	if c.MaxTime < 0 || math.IsNaN(c.MaxTime) || math.IsInf(c.MaxTime, 0) {
		return fmt.Errorf("max_time must be non-negative and finite, got %f", c.MaxTime)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative, got %d", c.MaxSteps)
	}
	// arrivals reschedule themselves forever
	if c.MaxTime == 0 && c.MaxSteps == 0 {
		return errors.New("at least one of max_time and max_steps must be set")
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("unknown trace level %q", c.TraceLevel)
	}
	return nil
}
