package results

import (
	"time"

	"github.com/google/uuid"

	"github.com/pumpsim-xyz/go-pumpsim/metrics"
	"github.com/pumpsim-xyz/go-pumpsim/pump"
	"github.com/pumpsim-xyz/go-pumpsim/transient"
)

// Builder helps construct Results from simulation output.
type Builder struct {
	results Results
}

// NewBuilder creates a results builder with a fresh run ID.
func NewBuilder() *Builder {
	return &Builder{
		results: Results{
			Version: SchemaVersion,
			Metadata: Metadata{
				RunID:     uuid.New().String(),
				Timestamp: time.Now(),
				Status:    "success",
			},
		},
	}
}

// WithScenario sets the scenario parameters.
func (b *Builder) WithScenario(startFlow, targetFlow float64, mode string, duration, stepSize float64, spec pump.Spec) *Builder {
	if duration <= 0 {
		duration = transient.DefaultDuration
	}
	if stepSize <= 0 {
		stepSize = transient.DefaultStepSize
	}
	b.results.Scenario = Scenario{
		StartFlow:  startFlow,
		TargetFlow: targetFlow,
		Mode:       mode,
		Duration:   duration,
		StepSize:   stepSize,
		Spec:       spec,
	}
	return b
}

// WithSimulation adds a single-mode simulation result as one case.
func (b *Builder) WithSimulation(label string, res *transient.Result) *Builder {
	b.results.Cases = append(b.results.Cases, buildCase(label, res.TimeConstant, res.Overshoot, res.Series,
		b.results.Scenario.StartFlow, b.results.Scenario.TargetFlow))
	return b
}

// WithComparison adds the three strategy cases of a comparison.
func (b *Builder) WithComparison(cmp *transient.Comparison) *Builder {
	for _, c := range []transient.Case{cmp.CaseA, cmp.CaseB, cmp.CaseC} {
		built := buildCase(c.Label, c.TimeConstant, c.Overshoot, c.Series, cmp.StartFlow, cmp.TargetFlow)
		built.Metrics = c.Metrics
		b.results.Cases = append(b.results.Cases, built)
	}
	return b
}

// WithComputeTime records the wall-clock compute time in seconds.
func (b *Builder) WithComputeTime(seconds float64) *Builder {
	b.results.Metadata.ComputeTime = seconds
	return b
}

// WithError sets error status.
func (b *Builder) WithError(err error) *Builder {
	b.results.Metadata.Status = "error"
	b.results.Metadata.Error = err.Error()
	return b
}

// Build returns the constructed Results.
func (b *Builder) Build() *Results {
	return &b.results
}

// buildCase derives metrics, summary statistics, and integrated energy for
// one series.
func buildCase(label string, tau, overshoot float64, series []transient.Sample, start, target float64) Case {
	time := make([]float64, len(series))
	flow := make([]float64, len(series))
	pow := make([]float64, len(series))
	for i, s := range series {
		time[i] = s.Time
		flow[i] = s.Flow
		pow[i] = s.Power
	}

	return Case{
		Label:        label,
		TimeConstant: tau,
		Overshoot:    overshoot,
		Series:       series,
		Metrics:      metrics.Compute(time, flow, start, target),
		FlowStats:    computeStats(flow),
		PowerStats:   computeStats(pow),
		EnergyKWh:    integrateEnergy(time, pow),
	}
}

// computeStats calculates a statistical summary.
func computeStats(data []float64) Stat {
	if len(data) == 0 {
		return Stat{}
	}
	min := data[0]
	max := data[0]
	sum := 0.0
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	return Stat{Min: min, Max: max, Mean: sum / float64(len(data))}
}

// integrateEnergy trapezoid-integrates a kW series over seconds into kWh.
func integrateEnergy(time, power []float64) float64 {
	if len(time) < 2 {
		return 0
	}
	kws := 0.0
	for i := 1; i < len(time); i++ {
		dt := time[i] - time[i-1]
		kws += (power[i] + power[i-1]) / 2 * dt
	}
	return kws / 3600
}
