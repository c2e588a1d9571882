package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/pumpsim-xyz/go-pumpsim/power"
	"github.com/pumpsim-xyz/go-pumpsim/pump"
	"github.com/pumpsim-xyz/go-pumpsim/results"
)

func sweep(args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	flowMin := fs.Float64("min", 0, "Lower flow bound in m³/h")
	flowMax := fs.Float64("max", 0, "Upper flow bound in m³/h (default: end of stage table)")
	step := fs.Float64("step", 1.0, "Flow step in m³/h")
	output := fs.String("output", "", "Output JSON file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: pumpsim sweep [options]

Evaluate the strategy energy saving at every flow in a range and rank
the operating points by saving percent.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	model := power.Default()
	limit := *flowMax
	if limit <= 0 {
		limit = pump.MaxTableFlow(model.Stages())
	}

	sw, err := results.SweepFlows(model, *flowMin, limit, *step)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(sw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sweep: %w", err)
	}

	if *output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Sweep complete\n")
	fmt.Fprintf(os.Stderr, "  Variants: %d\n", sw.Summary.TotalVariants)
	if sw.Best != nil {
		fmt.Fprintf(os.Stderr, "  Best: %.1f m³/h at %.1f%% saving\n", sw.Best.Saving.Flow, sw.Best.Saving.SavingPercent)
	}
	fmt.Fprintf(os.Stderr, "  Output: %s\n", *output)
	return nil
}
