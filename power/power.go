// Package power maps target flow to electrical power draw under the three
// control strategies: throttling valve (fixed speed), PID-driven variable
// frequency drive, and the optimized drive. The ordering
//
//	valve ≥ pid ≥ ai
//
// holds for every non-negative flow by construction: the two drive
// estimates are capped against the valve baseline using the guaranteed
// minimum saving ratios, not merely tuned to stay below it.
package power

import (
	"math"

	"github.com/pumpsim-xyz/go-pumpsim/pump"
)

// Model computes strategy power draw for one pump configuration. Models are
// immutable after construction and safe for concurrent use.
type Model struct {
	spec   pump.Spec
	stages []pump.ValveStage
}

// NewModel builds a power model from a pump spec and its empirical valve
// stage table.
func NewModel(spec pump.Spec, stages []pump.ValveStage) *Model {
	return &Model{spec: spec, stages: stages}
}

// Default returns a model over the current pump generation's spec and
// stage table.
func Default() *Model {
	return NewModel(pump.DefaultSpec(), pump.ValveStages())
}

// Spec returns the model's pump spec.
func (m *Model) Spec() pump.Spec { return m.spec }

// Stages returns the model's valve stage table.
func (m *Model) Stages() []pump.ValveStage { return m.stages }

// ValvePower interpolates the throttling-valve power draw at the given
// flow. Flows outside the table clamp to the boundary stages; the pump
// never extrapolates past measured data.
func (m *Model) ValvePower(flow float64) float64 {
	if len(m.stages) == 0 {
		return 0
	}
	if flow <= m.stages[0].Flow {
		return m.stages[0].Power
	}
	last := m.stages[len(m.stages)-1]
	if flow >= last.Flow {
		return last.Power
	}
	for i := 0; i < len(m.stages)-1; i++ {
		lo, hi := m.stages[i], m.stages[i+1]
		if flow >= lo.Flow && flow <= hi.Flow {
			ratio := (flow - lo.Flow) / (hi.Flow - lo.Flow)
			return lo.Power + ratio*(hi.Power-lo.Power)
		}
	}
	return last.Power
}

// MotorEfficiency interpolates the partial-load motor efficiency at the
// given load ratio. The curve peaks at 0.75 load; ratios are clamped to
// [0, 1] before lookup.
func (m *Model) MotorEfficiency(loadRatio float64) float64 {
	loads := m.spec.MotorLoads
	effs := m.spec.MotorEfficiencies
	if len(loads) == 0 || len(loads) != len(effs) {
		return 1
	}
	if loadRatio <= loads[0] {
		return effs[0]
	}
	if loadRatio >= loads[len(loads)-1] {
		return effs[len(effs)-1]
	}
	for i := 0; i < len(loads)-1; i++ {
		if loadRatio >= loads[i] && loadRatio <= loads[i+1] {
			ratio := (loadRatio - loads[i]) / (loads[i+1] - loads[i])
			return effs[i] + ratio*(effs[i+1]-effs[i])
		}
	}
	return effs[len(effs)-1]
}

// InverterPower computes the optimized-drive power draw at the given flow
// using affinity-law cube scaling of the variable portion over the fixed
// loss, corrected for drive and partial-load motor efficiency. The result
// is capped at valve×(1−minSavingAI) so the guaranteed saving holds even
// where the analytic formula disagrees with the measured baseline.
func (m *Model) InverterPower(flow float64) float64 {
	if flow <= 0 {
		return m.spec.FixedLoss
	}

	flowRatio := math.Min(flow/m.spec.RatedFlow, 1)
	variable := (m.spec.RatedPower - m.spec.FixedLoss) * flowRatio * flowRatio * flowRatio
	base := m.spec.FixedLoss + variable

	loadRatio := base / m.spec.RatedPower
	eff := m.spec.VFDEfficiency * m.MotorEfficiency(loadRatio)
	total := base
	if eff > 0 {
		total = base / eff
	}

	cap := m.ValvePower(flow) * (1 - m.spec.MinSavingAI)
	return math.Min(total, cap)
}

// PIDPower computes the PID-driven VFD power draw at the given flow: the
// optimized-drive power with a fixed overhead multiplier, capped at
// valve×(1−minSavingPID) and floored at the AI power.
func (m *Model) PIDPower(flow float64) float64 {
	ai := m.InverterPower(flow)
	cap := m.ValvePower(flow) * (1 - m.spec.MinSavingPID)
	pid := math.Min(ai*m.spec.PIDOverhead, cap)
	return math.Max(pid, ai)
}
