package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for database path, broker address, and tariff
	// overrides. Missing file is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "curve":
		if err := curve(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "power":
		if err := powerCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "saving":
		if err := saving(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "roi":
		if err := roi(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "simulate":
		if err := simulate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "compare":
		if err := compare(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "sweep":
		if err := sweep(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "plot":
		if err := plot(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "summary":
		if err := summary(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "runs":
		if err := runs(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "publish":
		if err := publish(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("pumpsim version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pumpsim - centrifugal pump energy and transient modeling tool

Usage:
  pumpsim <command> [options]

Commands:
  curve      Fit and resample the pump Q-H curve
  power      Report strategy power draw at a flow
  saving     Compare strategy energy consumption at a flow
  roi        Compute the drive retrofit payback period
  simulate   Simulate a flow transition under one control mode
  compare    Simulate the valve/PID/AI strategy cases side by side
  sweep      Evaluate energy saving across a flow range
  plot       Generate SVG visualization from run results
  summary    Display quick summary of run results
  runs       List or fetch persisted runs
  publish    Stream run results to an MQTT broker
  help       Show this help message
  version    Show version information

Examples:
  # Fit the Q-H curve from the empirical stage table
  pumpsim curve --output curve.json

  # Simulate a transition from 8 to 18 m³/h
  pumpsim simulate --start 8 --target 18 --mode stable --output run.json

  # Compare control strategies and plot the result
  pumpsim compare --start 8 --target 18 --output run.json
  pumpsim plot run.json --output run.svg

Environment (also read from .env):
  PUMPSIM_DB           SQLite database path for run history
  PUMPSIM_MQTT_BROKER  MQTT broker URL for publish
  PUMPSIM_RATE         electricity rate override, per kWh

For command-specific help, run:
  pumpsim <command> --help`)
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
