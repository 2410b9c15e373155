package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lossq/lossq/sim"
	"github.com/lossq/lossq/sim/trace"
)

var (
	quiet       bool   // Suppress per-event lines
	compare     bool   // Print the analytic reference after the summary
	traceLevel  string // Decision trace level
	traceOutput string // File to write the decision trace to
)

// runOptions controls what a single run reports.
type runOptions struct {
	Quiet       bool
	Compare     bool
	TraceLevel  trace.TraceLevel
	TraceOutput string
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the loss-system simulation once",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if err := validateTraceFlags(traceLevel, traceOutput); err != nil {
			logrus.Fatalf("Invalid trace flags: %v", err)
		}
		cfg, s, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting simulation with horizon=%v, service_rate=%v, seed=%d", cfg.Horizon, cfg.ServiceRate, s)
		startTime := time.Now()

		opts := runOptions{Quiet: quiet, Compare: compare, TraceLevel: trace.TraceLevel(traceLevel), TraceOutput: traceOutput}
		if err := runSimulation(cmd.Context(), os.Stdout, cfg, s, opts); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// runSimulation builds an engine, streams its events to out and prints the summary.
func runSimulation(ctx context.Context, out io.Writer, cfg sim.Config, s int64, opts runOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	engine, err := sim.NewEngine(cfg, sim.NewPartitionedRNG(sim.NewSimulationKey(s)))
	if err != nil {
		return err
	}

	var st *trace.SimulationTrace
	if opts.TraceLevel == trace.TraceLevelDecisions {
		st = trace.NewSimulationTrace(trace.TraceConfig{Level: opts.TraceLevel})
		engine.SetTrace(st)
	}

	var emit func(sim.Event)
	if !opts.Quiet {
		emit = func(ev sim.Event) {
			fmt.Fprintln(out, ev.String())
		}
	}
	stats, err := engine.Run(ctx, emit)
	if err != nil {
		return err
	}

	if err := stats.Print(out); err != nil {
		if errors.Is(err, sim.ErrNoEvents) {
			fmt.Fprintf(out, "Total: %d\nProcessed: %d\nRefused: %d\n", stats.Total(), stats.Processed, stats.Refused)
		}
		return err
	}

	if opts.Compare {
		printReference(out, sim.Theory(cfg))
	}
	if st != nil && opts.TraceOutput != "" {
		if err := writeTrace(opts.TraceOutput, st); err != nil {
			return err
		}
		logrus.Infof("Wrote %d trace records to %s", len(st.Arrivals), opts.TraceOutput)
	}
	return nil
}

// validateTraceFlags rejects unknown levels and an output file that would never be written.
func validateTraceFlags(level, output string) error {
	if !trace.IsValidTraceLevel(level) {
		return fmt.Errorf("unknown trace level %q (want none or decisions)", level)
	}
	if output != "" && trace.TraceLevel(level) != trace.TraceLevelDecisions {
		return fmt.Errorf("--trace-output %s requires --trace-level decisions", output)
	}
	return nil
}

func printReference(out io.Writer, ref sim.Reference) {
	fmt.Fprintln(out, "=== Steady-State Reference ===")
	fmt.Fprintf(out, "Arrival rate: %v\n", ref.ArrivalRate)
	fmt.Fprintf(out, "Proportion of processed requests: %v\n", ref.AcceptanceRatio)
	fmt.Fprintf(out, "Probability of refuse: %v\n", ref.RefusalProbability)
	fmt.Fprintf(out, "Absolute bandwidth: %v\n", ref.Throughput)
}

// traceFile is the on-disk layout of --trace-output.
type traceFile struct {
	Summary *trace.TraceSummary    `yaml:"summary"`
	Trace   *trace.SimulationTrace `yaml:"trace"`
}

func writeTrace(path string, st *trace.SimulationTrace) error {
	data, err := yaml.Marshal(traceFile{Summary: trace.Summarize(st), Trace: st})
	if err != nil {
		return fmt.Errorf("marshal trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write trace %s: %w", path, err)
	}
	return nil
}

func init() {
	registerSimFlags(runCmd)
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress per-event lines")
	runCmd.Flags().BoolVar(&compare, "compare", false, "Print the analytic steady-state reference after the summary")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&traceOutput, "trace-output", "", "Write the decision trace as YAML to this file")

	rootCmd.AddCommand(runCmd)
}
