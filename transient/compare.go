package transient

import (
	"github.com/pumpsim-xyz/go-pumpsim/metrics"
)

// Case labels for the strategy comparison.
const (
	CaseValve = "valve"
	CasePID   = "pid"
	CaseAI    = "ai"
)

// CompareRequest describes one side-by-side comparison scenario.
type CompareRequest struct {
	StartFlow  float64 `json:"startFlow"`
	TargetFlow float64 `json:"targetFlow"`
	Duration   float64 `json:"duration,omitempty"` // s, default 30
	StepSize   float64 `json:"stepSize,omitempty"` // s, default 0.1
}

// Case is one strategy's simulated response plus its derived metrics.
type Case struct {
	Label        string           `json:"label"`
	TimeConstant float64          `json:"timeConstant"`
	Overshoot    float64          `json:"overshoot"`
	Series       []Sample         `json:"timeSeries"`
	Metrics      metrics.Response `json:"metrics"`
}

// Comparison holds the three strategy cases for one scenario.
type Comparison struct {
	StartFlow  float64 `json:"startFlow"`
	TargetFlow float64 `json:"targetFlow"`
	CaseA      Case    `json:"caseA"` // throttling valve
	CaseB      Case    `json:"caseB"` // PID-driven VFD
	CaseC      Case    `json:"caseC"` // optimized VFD
}

// caseParams fixes the per-strategy response tuning. The valve case is
// first-order (a fixed-speed pump has no control loop to ring), with the
// slowest time constant and a gentler delta factor; the PID case rings
// moderately; the optimized case is fastest with the least overshoot.
type caseParams struct {
	label      string
	base       modeParams
	firstOrder bool
	deltaGain  float64
}

var (
	valveCase = caseParams{label: CaseValve, base: modeParams{timeConstant: 2.2}, firstOrder: true, deltaGain: 0.25}
	pidCase   = caseParams{label: CasePID, base: modeParams{timeConstant: 1.4, overshoot: 10}, deltaGain: 0.5}
	aiCase    = caseParams{label: CaseAI, base: modeParams{timeConstant: 0.9, overshoot: 4}, deltaGain: 0.4}
)

// CompareCases runs the three independently parameterized strategy
// simulations against the same scenario, pairing each with its power model
// variant, and derives the control metrics per case.
func (e *Engine) CompareCases(req CompareRequest) *Comparison {
	sim := Request{
		StartFlow:  req.StartFlow,
		TargetFlow: req.TargetFlow,
		Duration:   req.Duration,
		StepSize:   req.StepSize,
	}

	return &Comparison{
		StartFlow:  req.StartFlow,
		TargetFlow: req.TargetFlow,
		CaseA:      e.runCase(sim, valveCase, e.model.ValvePower),
		CaseB:      e.runCase(sim, pidCase, e.model.PIDPower),
		CaseC:      e.runCase(sim, aiCase, e.model.InverterPower),
	}
}

// runCase simulates one strategy with its delta-scaled tuning.
func (e *Engine) runCase(req Request, params caseParams, powerAt func(float64) float64) Case {
	// Per-case delta factor replaces the engine-wide one; level scaling
	// still applies through adjustTimeConstant.
	coeffs := e.coeffs
	coeffs.DeltaTauGain = params.deltaGain
	scoped := &Engine{model: e.model, coeffs: coeffs}

	res := scoped.simulate(req, params.base, params.firstOrder, powerAt)

	time := make([]float64, len(res.Series))
	flow := make([]float64, len(res.Series))
	for i, s := range res.Series {
		time[i] = s.Time
		flow[i] = s.Flow
	}

	return Case{
		Label:        params.label,
		TimeConstant: res.TimeConstant,
		Overshoot:    res.Overshoot,
		Series:       res.Series,
		Metrics:      metrics.Compute(time, flow, req.StartFlow, req.TargetFlow),
	}
}
