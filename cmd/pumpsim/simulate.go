package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pumpsim-xyz/go-pumpsim/results"
	"github.com/pumpsim-xyz/go-pumpsim/store"
	"github.com/pumpsim-xyz/go-pumpsim/transient"
)

func simulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	start := fs.Float64("start", 0, "Start flow in m³/h")
	target := fs.Float64("target", -1, "Target flow in m³/h (required)")
	mode := fs.String("mode", "stable", "Control mode: fast, stable, smooth")
	duration := fs.Float64("duration", transient.DefaultDuration, "Simulation duration in seconds")
	stepSize := fs.Float64("step", transient.DefaultStepSize, "Sample step size in seconds")
	output := fs.String("output", "", "Output JSON file (required)")
	save := fs.Bool("save", false, "Also persist the run to PUMPSIM_DB")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: pumpsim simulate [options]

Simulate a flow transition under one control mode.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  pumpsim simulate --start 8 --target 18 --mode fast --output run.json
  pumpsim simulate --start 20 --target 10 --duration 60 --output run.json
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *target < 0 {
		fs.Usage()
		return fmt.Errorf("--target required")
	}
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("--output required")
	}

	engine := transient.Default()

	began := time.Now()
	res := engine.Simulate(transient.Request{
		StartFlow:  *start,
		TargetFlow: *target,
		Mode:       transient.Mode(*mode),
		Duration:   *duration,
		StepSize:   *stepSize,
	})
	elapsed := time.Since(began).Seconds()

	run := results.NewBuilder().
		WithScenario(*start, *target, *mode, *duration, *stepSize, engine.Model().Spec()).
		WithSimulation(*mode, res).
		WithComputeTime(elapsed).
		Build()

	if err := results.WriteJSON(run, *output); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if *save {
		if err := saveRun(run); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "Simulation complete\n")
	fmt.Fprintf(os.Stderr, "  Run: %s\n", run.Metadata.RunID)
	fmt.Fprintf(os.Stderr, "  τ: %.2fs, overshoot: %.1f%%\n", res.TimeConstant, res.Overshoot)
	fmt.Fprintf(os.Stderr, "  Samples: %d\n", len(res.Series))
	fmt.Fprintf(os.Stderr, "  Output: %s\n", *output)
	return nil
}

func compare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	start := fs.Float64("start", 0, "Start flow in m³/h")
	target := fs.Float64("target", -1, "Target flow in m³/h (required)")
	duration := fs.Float64("duration", transient.DefaultDuration, "Simulation duration in seconds")
	stepSize := fs.Float64("step", transient.DefaultStepSize, "Sample step size in seconds")
	output := fs.String("output", "", "Output JSON file (required)")
	save := fs.Bool("save", false, "Also persist the run to PUMPSIM_DB")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: pumpsim compare [options]

Simulate the valve, PID, and AI strategy cases side by side against the
same transition and derive control metrics per case.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *target < 0 {
		fs.Usage()
		return fmt.Errorf("--target required")
	}
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("--output required")
	}

	engine := transient.Default()

	began := time.Now()
	cmp := engine.CompareCases(transient.CompareRequest{
		StartFlow:  *start,
		TargetFlow: *target,
		Duration:   *duration,
		StepSize:   *stepSize,
	})
	elapsed := time.Since(began).Seconds()

	run := results.NewBuilder().
		WithScenario(*start, *target, "", *duration, *stepSize, engine.Model().Spec()).
		WithComparison(cmp).
		WithComputeTime(elapsed).
		Build()

	if err := results.WriteJSON(run, *output); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if *save {
		if err := saveRun(run); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "Comparison complete\n")
	fmt.Fprintf(os.Stderr, "  Run: %s\n", run.Metadata.RunID)
	for _, c := range run.Cases {
		fmt.Fprintf(os.Stderr, "  %-5s τ=%.2fs OS=%.1f%% settle=%.1fs energy=%.4f kWh\n",
			c.Label, c.TimeConstant, c.Overshoot, c.Metrics.SettlingTime, c.EnergyKWh)
	}
	fmt.Fprintf(os.Stderr, "  Output: %s\n", *output)
	return nil
}

// saveRun persists a run to the database named by PUMPSIM_DB.
func saveRun(run *results.Results) error {
	dbPath := envOr("PUMPSIM_DB", "pumpsim.db")
	st, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.SaveRun(run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	fmt.Fprintf(os.Stderr, "  Saved to %s\n", dbPath)
	return nil
}
