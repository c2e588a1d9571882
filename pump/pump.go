// Package pump holds the fixed reference data for the modeled centrifugal
// pump: physical constants, nameplate specifications, the empirical valve
// stage table, and economic defaults. Everything here is immutable
// configuration that gets injected into the model/engine constructors.
package pump

// Physical constants (SI units unless noted).
const (
	// WaterDensity is the fluid density in kg/m³.
	WaterDensity = 1000.0

	// Gravity is the gravitational acceleration in m/s².
	Gravity = 9.81

	// PressureToHead converts gauge pressure in bar to meters of water
	// column (1 bar ≈ 10.197 m for water at 20 °C).
	PressureToHead = 10.197
)

// OperatingPoint is one measured or derived steady-state condition.
type OperatingPoint struct {
	Flow float64 `json:"flow"` // m³/h
	Head float64 `json:"head"` // m

	// Optional derived fields, populated for table entries.
	Power          float64 `json:"power,omitempty"`          // electrical input, kW
	HydraulicPower float64 `json:"hydraulicPower,omitempty"` // kW
	Efficiency     float64 `json:"efficiency,omitempty"`     // percent
	OutletPressure float64 `json:"outletPressure,omitempty"` // bar
}

// CurvePoint is one resampled point on a fitted Q-H curve.
type CurvePoint struct {
	Flow float64 `json:"flow"` // m³/h
	Head float64 `json:"head"` // m
}

// Spec carries the nameplate ratings and model parameters for one pump
// generation. The power model has been re-tuned against new empirical data
// more than once, so everything a recalibration touches lives here rather
// than in code.
type Spec struct {
	RatedFlow  float64 `json:"ratedFlow"`  // m³/h
	RatedHead  float64 `json:"ratedHead"`  // m
	RatedPower float64 `json:"ratedPower"` // kW, motor nameplate

	// FixedLoss is the no-flow power floor of the inverter-driven system
	// (drive standby + motor magnetization), kW.
	FixedLoss float64 `json:"fixedLoss"`

	// VFDEfficiency is the drive conversion efficiency scalar.
	VFDEfficiency float64 `json:"vfdEfficiency"`

	// MinSavingAI and MinSavingPID are the guaranteed saving ratios versus
	// the valve baseline. They cap the analytic formulas so the
	// valve ≥ pid ≥ ai ordering holds by construction.
	MinSavingAI  float64 `json:"minSavingAI"`
	MinSavingPID float64 `json:"minSavingPID"`

	// PIDOverhead multiplies the AI power to produce the PID estimate. A
	// conventionally tuned PID loop tracks the same setpoint with more
	// actuation effort than the optimized drive.
	PIDOverhead float64 `json:"pidOverhead"`

	// MotorLoads and MotorEfficiencies define the partial-load motor
	// efficiency curve, keyed by load ratio. Non-monotonic: peaks at 0.75.
	MotorLoads        []float64 `json:"motorLoads"`
	MotorEfficiencies []float64 `json:"motorEfficiencies"`
}

// DefaultSpec returns the current pump generation's parameters.
func DefaultSpec() Spec {
	return Spec{
		RatedFlow:     20.0,
		RatedHead:     42.0,
		RatedPower:    7.5,
		FixedLoss:     0.35,
		VFDEfficiency: 0.97,
		MinSavingAI:   0.15,
		MinSavingPID:  0.10,
		PIDOverhead:   1.1,
		MotorLoads:    []float64{0, 0.25, 0.5, 0.75, 1.0},
		// IE3 4-pole class shape: rises steeply off no-load, peaks at
		// three-quarter load, drops slightly at full load.
		MotorEfficiencies: []float64{0.45, 0.82, 0.89, 0.92, 0.90},
	}
}

// Tariff carries the economic defaults used for savings and ROI reporting.
type Tariff struct {
	// ElectricityRate is the energy price per kWh.
	ElectricityRate float64 `json:"electricityRate"`
	// InverterCost is the installed cost of the drive retrofit.
	InverterCost float64 `json:"inverterCost"`
	// DailyHours and YearlyDays describe the duty cycle.
	DailyHours float64 `json:"dailyHours"`
	YearlyDays float64 `json:"yearlyDays"`
}

// DefaultTariff returns the reference duty cycle and pricing.
func DefaultTariff() Tariff {
	return Tariff{
		ElectricityRate: 130.0,
		InverterCost:    4500000.0,
		DailyHours:      16.0,
		YearlyDays:      300.0,
	}
}

// HydraulicPower returns the water power ρ·g·Q·H in kW for a flow in m³/h
// and head in m.
func HydraulicPower(flow, head float64) float64 {
	return WaterDensity * Gravity * (flow / 3600.0) * head / 1000.0
}

// HeadFromPressure converts outlet gauge pressure in bar to head in m.
func HeadFromPressure(bar float64) float64 {
	return bar * PressureToHead
}
