// Package results defines the structured output format for simulation runs
package results

import (
	"time"

	"github.com/pumpsim-xyz/go-pumpsim/metrics"
	"github.com/pumpsim-xyz/go-pumpsim/pump"
	"github.com/pumpsim-xyz/go-pumpsim/transient"
)

const SchemaVersion = "1.0.0"

// Results contains the complete output of one simulation run.
type Results struct {
	Version  string   `json:"version"`
	Metadata Metadata `json:"metadata"`
	Scenario Scenario `json:"scenario"`
	Cases    []Case   `json:"cases"`
}

// Metadata contains run execution information.
type Metadata struct {
	RunID       string    `json:"runId"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"` // success, error
	Error       string    `json:"error,omitempty"`
	ComputeTime float64   `json:"computeTime"` // seconds
}

// Scenario records the simulated transition and the pump it ran against.
type Scenario struct {
	StartFlow  float64   `json:"startFlow"`
	TargetFlow float64   `json:"targetFlow"`
	Mode       string    `json:"mode,omitempty"` // single-mode runs only
	Duration   float64   `json:"duration"`
	StepSize   float64   `json:"stepSize"`
	Spec       pump.Spec `json:"spec"`
}

// Case is one strategy's (or mode's) simulated series with its derived
// metrics and summary statistics.
type Case struct {
	Label        string             `json:"label"`
	TimeConstant float64            `json:"timeConstant"`
	Overshoot    float64            `json:"overshoot"`
	Series       []transient.Sample `json:"timeSeries"`
	Metrics      metrics.Response   `json:"metrics"`
	FlowStats    Stat               `json:"flowStats"`
	PowerStats   Stat               `json:"powerStats"`
	EnergyKWh    float64            `json:"energyKWh"` // integrated over the run
}

// Stat contains a statistical summary of one series.
type Stat struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}
