// Package transient simulates how pump flow transitions between operating
// points under a given control mode, as a closed-form second-order step
// response with dynamically adjusted time constant and damping. Each flow
// sample is annotated with the corresponding drive power draw.
package transient

import (
	"math"

	"github.com/pumpsim-xyz/go-pumpsim/power"
)

// Mode selects the qualitative control tuning.
type Mode string

const (
	ModeFast   Mode = "fast"
	ModeStable Mode = "stable"
	ModeSmooth Mode = "smooth"
)

// Simulation defaults.
const (
	DefaultDuration = 30.0 // s
	DefaultStepSize = 0.1  // s

	// flatEpsilon is the flow delta under which start and target are
	// treated as the same operating point.
	flatEpsilon = 0.1

	// maxOvershoot caps the adjusted overshoot percentage.
	maxOvershoot = 30.0
)

// modeParams holds the base tuning per control mode.
type modeParams struct {
	timeConstant float64 // s
	overshoot    float64 // percent
}

// baseParams returns the base tuning for a mode. Unknown modes get the
// stable tuning; enum validation is the caller's concern.
func baseParams(mode Mode) modeParams {
	switch mode {
	case ModeFast:
		return modeParams{timeConstant: 0.8, overshoot: 12}
	case ModeSmooth:
		return modeParams{timeConstant: 2.5, overshoot: 0}
	default:
		return modeParams{timeConstant: 1.5, overshoot: 6}
	}
}

// Coefficients scale the base tuning by the size and level of the flow
// change. Larger steps and higher absolute flow both slow the response
// (more fluid inertia and pipe resistance to work against).
type Coefficients struct {
	DeltaTauGain        float64 `json:"deltaTauGain"`
	LevelTauGain        float64 `json:"levelTauGain"`
	DeltaOvershootGain  float64 `json:"deltaOvershootGain"`
	TargetOvershootGain float64 `json:"targetOvershootGain"`
}

// DefaultCoefficients returns the tuned adjustment gains.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		DeltaTauGain:        0.5,
		LevelTauGain:        0.3,
		DeltaOvershootGain:  0.4,
		TargetOvershootGain: 0.2,
	}
}

// Sample is one point of a simulated response.
type Sample struct {
	Time  float64 `json:"time"`  // s
	Flow  float64 `json:"flow"`  // m³/h
	Power float64 `json:"power"` // kW
}

// Request describes one transient simulation.
type Request struct {
	StartFlow  float64 `json:"startFlow"`
	TargetFlow float64 `json:"targetFlow"`
	Mode       Mode    `json:"mode"`
	Duration   float64 `json:"duration,omitempty"` // s, default 30
	StepSize   float64 `json:"stepSize,omitempty"` // s, default 0.1
}

// Result is the outcome of one transient simulation.
type Result struct {
	TimeConstant float64  `json:"timeConstant"` // adjusted τ, s
	Overshoot    float64  `json:"overshoot"`    // adjusted %OS
	DampingRatio float64  `json:"dampingRatio"`
	Series       []Sample `json:"timeSeries"`
}

// Engine generates transient responses over one power model. Engines are
// stateless beyond their configuration and safe for concurrent use.
type Engine struct {
	model  *power.Model
	coeffs Coefficients
}

// NewEngine builds a transient engine over a power model.
func NewEngine(model *power.Model, coeffs Coefficients) *Engine {
	return &Engine{model: model, coeffs: coeffs}
}

// Default returns an engine over the default power model and coefficients.
func Default() *Engine {
	return NewEngine(power.Default(), DefaultCoefficients())
}

// Model returns the engine's power model.
func (e *Engine) Model() *power.Model { return e.model }

// DampingToOvershoot converts a damping ratio to the overshoot percentage
// of the corresponding second-order step response. ζ ≥ 1 (critically or
// over-damped) yields 0.
func DampingToOvershoot(zeta float64) float64 {
	if zeta >= 1 || zeta <= 0 {
		return 0
	}
	return 100 * math.Exp(-zeta*math.Pi/math.Sqrt(1-zeta*zeta))
}

// OvershootToDamping converts an overshoot percentage to the damping ratio
// that produces it. Overshoot ≤ 0 yields ζ = 1 (no oscillation).
func OvershootToDamping(overshootPct float64) float64 {
	if overshootPct <= 0 {
		return 1
	}
	ln := math.Log(overshootPct / 100)
	return math.Abs(ln) / math.Sqrt(math.Pi*math.Pi+ln*ln)
}

// adjustTimeConstant scales the base τ by the step size and flow level.
func (e *Engine) adjustTimeConstant(base, start, target float64) float64 {
	rated := e.model.Spec().RatedFlow
	delta := math.Abs(target - start)
	level := math.Max(start, target)
	return base * (1 + e.coeffs.DeltaTauGain*delta/rated) * (1 + e.coeffs.LevelTauGain*level/rated)
}

// adjustOvershoot scales the base overshoot by the step size and target
// level, capped at maxOvershoot. A zero base (critically damped tuning) is
// never perturbed into oscillation.
func (e *Engine) adjustOvershoot(base, start, target float64) float64 {
	if base <= 0 {
		return 0
	}
	rated := e.model.Spec().RatedFlow
	delta := math.Abs(target - start)
	os := base * (1 + e.coeffs.DeltaOvershootGain*delta/rated) * (0.8 + e.coeffs.TargetOvershootGain*target/rated)
	return math.Min(os, maxOvershoot)
}

// Simulate generates the step response for one request. Power at each
// sample comes from the inverter model with transient undershoot clamped to
// zero flow before lookup.
func (e *Engine) Simulate(req Request) *Result {
	return e.simulate(req, baseParams(req.Mode), false, e.model.InverterPower)
}

// simulate runs the shared response generator. firstOrder forces the pure
// exponential response regardless of overshoot tuning.
func (e *Engine) simulate(req Request, params modeParams, firstOrder bool, powerAt func(float64) float64) *Result {
	duration := req.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}
	step := req.StepSize
	if step <= 0 {
		step = DefaultStepSize
	}

	tau := e.adjustTimeConstant(params.timeConstant, req.StartFlow, req.TargetFlow)
	os := e.adjustOvershoot(params.overshoot, req.StartFlow, req.TargetFlow)
	if firstOrder {
		os = 0
	}
	zeta := OvershootToDamping(os)

	steps := int(math.Ceil(duration/step - 1e-9))
	res := &Result{
		TimeConstant: round2(tau),
		Overshoot:    round2(os),
		DampingRatio: round2(zeta),
		Series:       make([]Sample, 0, steps+1),
	}

	delta := req.TargetFlow - req.StartFlow
	flat := math.Abs(delta) < flatEpsilon
	if flat {
		res.Overshoot = 0
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) * step
		// The final sample lands on the requested duration even when it
		// is not a multiple of the step.
		if t > duration {
			t = duration
		}

		var flow float64
		switch {
		case flat:
			flow = req.TargetFlow
		case zeta >= 1 || os <= 0:
			flow = req.StartFlow + delta*(1-math.Exp(-t/tau))
		default:
			flow = req.StartFlow + delta*secondOrderStep(t, tau, zeta)
		}

		// Round the flow first and annotate power at the rounded value,
		// so each sample's power corresponds to the flow it publishes.
		f := round2(flow)
		res.Series = append(res.Series, Sample{
			Time:  round2(t),
			Flow:  f,
			Power: round2(powerAt(math.Max(0, f))),
		})
	}
	return res
}

// secondOrderStep evaluates the unit step response of an underdamped
// second-order system with ωn = 1/(ζτ) at time t.
func secondOrderStep(t, tau, zeta float64) float64 {
	wn := 1 / (zeta * tau)
	root := math.Sqrt(1 - zeta*zeta)
	wd := wn * root
	phi := math.Atan2(root, zeta)
	return 1 - math.Exp(-zeta*wn*t)*math.Sin(wd*t+phi)/root
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
