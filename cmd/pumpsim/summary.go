package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pumpsim-xyz/go-pumpsim/results"
	"github.com/pumpsim-xyz/go-pumpsim/store"
)

func summary(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	csvCase := fs.String("csv", "", "Also export the named case's series as CSV to <case>.csv")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: pumpsim summary <results.json> [options]

Display a quick summary of run results.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("results file required")
	}

	res, err := results.ReadJSON(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Printf("Run %s (%s)\n", res.Metadata.RunID, res.Metadata.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Transition: %.1f → %.1f m³/h over %.0fs\n",
		res.Scenario.StartFlow, res.Scenario.TargetFlow, res.Scenario.Duration)
	if res.Scenario.Mode != "" {
		fmt.Printf("  Mode: %s\n", res.Scenario.Mode)
	}
	for _, c := range res.Cases {
		fmt.Printf("  %-6s τ=%.2fs OS=%.1f%%", c.Label, c.TimeConstant, c.Overshoot)
		fmt.Printf("  transition=%.2fs settle=%.2fs overshoot=%.1f%%",
			c.Metrics.TransitionTime, c.Metrics.SettlingTime, c.Metrics.Overshoot)
		fmt.Printf("  power %.2f–%.2f kW, %.4f kWh\n",
			c.PowerStats.Min, c.PowerStats.Max, c.EnergyKWh)
	}

	if *csvCase != "" {
		filename := *csvCase + ".csv"
		if err := results.WriteCaseCSV(res, *csvCase, filename); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Series exported to %s\n", filename)
	}
	return nil
}

func runs(args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Number of runs to list")
	get := fs.String("get", "", "Fetch one run by ID and write it to the given file as JSON")
	output := fs.String("output", "run.json", "Output file for --get")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: pumpsim runs [options]

List persisted runs from PUMPSIM_DB, or fetch one by ID.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := store.New(envOr("PUMPSIM_DB", "pumpsim.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if *get != "" {
		res, err := st.GetRun(*get)
		if err != nil {
			return err
		}
		if err := results.WriteJSON(res, *output); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Run %s written to %s\n", *get, *output)
		return nil
	}

	summaries, err := st.ListRuns(*limit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}
	for _, rs := range summaries {
		mode := rs.Mode
		if mode == "" {
			mode = "compare"
		}
		fmt.Printf("%s  %s  %-8s %.1f → %.1f m³/h  (%d cases)\n",
			rs.RunID, rs.Timestamp.Format("2006-01-02 15:04"), mode,
			rs.StartFlow, rs.TargetFlow, rs.Cases)
	}
	return nil
}
