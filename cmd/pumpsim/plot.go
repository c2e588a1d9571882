package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pumpsim-xyz/go-pumpsim/curvefit"
	"github.com/pumpsim-xyz/go-pumpsim/plotter"
	"github.com/pumpsim-xyz/go-pumpsim/pump"
	"github.com/pumpsim-xyz/go-pumpsim/results"
)

func plot(args []string) error {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	output := fs.String("output", "", "Output SVG file (required)")
	kind := fs.String("kind", "flow", "What to plot: flow, power, curve")
	width := fs.Float64("width", 800, "SVG width in pixels")
	height := fs.Float64("height", 500, "SVG height in pixels")
	title := fs.String("title", "", "Plot title")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: pumpsim plot [results.json] [options]

Generate an SVG visualization. For --kind flow or power a results file is
required; --kind curve plots the fitted Q-H curve from the stage table.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("--output required")
	}

	var svg string
	switch *kind {
	case "curve":
		points := pump.OperatingPoints(pump.ValveStages())
		quad := curvefit.FitQuadratic(points)
		curve := quad.Curve(pump.MaxTableFlow(pump.ValveStages()), 50)
		name := *title
		if name == "" {
			name = "Pump Q-H Curve"
		}
		svg = plotter.PlotCurve(curve, points, *width, *height, name)

	case "flow", "power":
		if fs.NArg() < 1 {
			fs.Usage()
			return fmt.Errorf("results file required for --kind %s", *kind)
		}
		res, err := results.ReadJSON(fs.Arg(0))
		if err != nil {
			return err
		}
		if *kind == "flow" {
			svg = plotter.PlotCases(res, *width, *height, *title)
		} else {
			svg = plotter.PlotPowerCases(res, *width, *height, *title)
		}

	default:
		return fmt.Errorf("unknown plot kind: %s", *kind)
	}

	if err := os.WriteFile(*output, []byte(svg), 0644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Plot written to %s\n", *output)
	return nil
}
