package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inference-sim/eventsim/sim"
	"github.com/inference-sim/eventsim/sim/customerqueue"
	"github.com/inference-sim/eventsim/sim/trace"
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "eventsim",
	Short: "Discrete-event simulation kernel with timed and conditional events",
}

// runCmd executes the customer-queue simulation using parameters from
// defaults, --config, environment and flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the single-operator customer queue simulation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveRunConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		// Set up logging
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", cfg.LogLevel)
		}
		logrus.SetLevel(level)

		if err := runSimulation(cfg, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addRunFlags declares the `run` flags. Defaults are only shown in help:
// a flag overrides the configuration only when it is set explicitly.
func addRunFlags(fs *pflag.FlagSet) {
	d := DefaultRunConfig()
	fs.String("config", "", "Path to a YAML run configuration")
	fs.Int64("seed", d.Seed, "Seed for arrival and service sampling")
	fs.Float64("arrival-rate", d.ArrivalRate, "Customer arrivals per time unit")
	fs.Float64("service-mean", d.ServiceMean, "Mean service duration")
	fs.Float64("service-stddev", d.ServiceStdDev, "Standard deviation of the service duration")
	fs.Float64("max-time", d.MaxTime, "Stop after this simulated time (0 = unbounded)")
	fs.Int("max-steps", d.MaxSteps, "Stop after this many fired events (0 = unbounded)")
	fs.String("log", d.LogLevel, "Log level (trace, debug, info, warn, error, fatal, panic)")
	fs.String("trace-level", d.TraceLevel, "Step trace level (none, steps)")
	fs.String("trace-out", d.TraceOut, "Write the step trace as JSON to this path (implies --trace-level=steps)")
}

// resolveRunConfig layers defaults, the config file, environment and explicitly set flags.
func resolveRunConfig(fs *pflag.FlagSet) (RunConfig, error) {
	cfg := DefaultRunConfig()

	if path, _ := fs.GetString("config"); path != "" {
		loaded, err := LoadRunConfig(path, cfg)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	if fs.Changed("seed") {
		cfg.Seed, _ = fs.GetInt64("seed")
	}
	if fs.Changed("arrival-rate") {
		cfg.ArrivalRate, _ = fs.GetFloat64("arrival-rate")
	}
	if fs.Changed("service-mean") {
		cfg.ServiceMean, _ = fs.GetFloat64("service-mean")
	}
	if fs.Changed("service-stddev") {
		cfg.ServiceStdDev, _ = fs.GetFloat64("service-stddev")
	}
	if fs.Changed("max-time") {
		cfg.MaxTime, _ = fs.GetFloat64("max-time")
	}
	if fs.Changed("max-steps") {
		cfg.MaxSteps, _ = fs.GetInt("max-steps")
	}
	if fs.Changed("log") {
		cfg.LogLevel, _ = fs.GetString("log")
	}
	if fs.Changed("trace-level") {
		cfg.TraceLevel, _ = fs.GetString("trace-level")
	}
	if fs.Changed("trace-out") {
		cfg.TraceOut, _ = fs.GetString("trace-out")
	}

	if cfg.TraceOut != "" && (cfg.TraceLevel == "" || cfg.TraceLevel == string(trace.TraceLevelNone)) {
		cfg.TraceLevel = string(trace.TraceLevelSteps)
	}
	return cfg, cfg.Validate()
}

// runSimulation runs the customer queue described by cfg and writes the
// report to w.
func runSimulation(cfg RunConfig, w io.Writer) error {
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(cfg.TraceLevel)})

	eng, err := customerqueue.New(cfg.Model(), sim.WithRecorder(tr))
	if err != nil {
		return err
	}

	logrus.Infof("Starting run %s: seed=%d arrival_rate=%v service=%v±%v max_time=%v max_steps=%d",
		tr.RunID, cfg.Seed, cfg.ArrivalRate, cfg.ServiceMean, cfg.ServiceStdDev, cfg.MaxTime, cfg.MaxSteps)

	startTime := time.Now()

	seq := eng.All()
	if cfg.MaxTime > 0 {
		seq = eng.AllUntil(cfg.MaxTime)
	}
	if cfg.MaxSteps > 0 {
		// the initial snapshot is not a fired event
		seq = sim.FirstN(seq, cfg.MaxSteps+1)
	}
	snaps := sim.Collect(seq)

	// the state of the last snapshot holds up to max_time when the next event lies beyond it
	var endTime float64
	if len(snaps) > 0 {
		endTime = snaps[len(snaps)-1].Time
	}
	if next, ok := eng.NextTime(); ok && cfg.MaxTime > 0 && next > cfg.MaxTime {
		endTime = cfg.MaxTime
	}
	logrus.Infof("Run %s produced %d snapshots in %v", tr.RunID, len(snaps), time.Since(startTime))

	fmt.Fprintf(w, "Run ID               : %s\n", tr.RunID)
	eng.Metrics().Print(w)
	customerqueue.Summarize(snaps, endTime).Print(w)

	if cfg.TraceOut != "" {
		if err := writeTrace(tr, cfg.TraceOut); err != nil {
			return err
		}
		logrus.Infof("Trace with %d steps written to %s", len(tr.Steps), cfg.TraceOut)
	}
	return nil
}

func writeTrace(tr *trace.SimulationTrace, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	if err := tr.WriteJSON(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// init sets up CLI flags and subcommands
func init() {
	addRunFlags(runCmd.Flags())

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
