package power

import (
	"math"

	"github.com/pumpsim-xyz/go-pumpsim/pump"
)

// Saving reports the strategy power comparison at one flow.
type Saving struct {
	Flow             float64 `json:"flow"`
	ValvePower       float64 `json:"valvePower"`
	InverterPower    float64 `json:"inverterPower"`
	PIDPower         float64 `json:"pidPower"`
	SavingPower      float64 `json:"savingPower"`
	SavingPercent    float64 `json:"savingPercent"`
	PIDSavingPercent float64 `json:"pidSavingPercent"`
}

// EnergySaving compares the three strategies at the given flow. Percentages
// are relative to the valve baseline and are 0 when the baseline is 0.
func (m *Model) EnergySaving(flow float64) Saving {
	valve := m.ValvePower(flow)
	ai := m.InverterPower(flow)
	pid := m.PIDPower(flow)

	s := Saving{
		Flow:          flow,
		ValvePower:    round2(valve),
		InverterPower: round2(ai),
		PIDPower:      round2(pid),
		SavingPower:   round2(valve - ai),
	}
	if valve > 0 {
		s.SavingPercent = round2((valve - ai) / valve * 100)
		s.PIDSavingPercent = round2((valve - pid) / valve * 100)
	}
	return s
}

// ROIParams describes one payback scenario.
type ROIParams struct {
	Flow   float64     `json:"flow"`
	Tariff pump.Tariff `json:"tariff"`
}

// ROIResult reports the payback analysis. ROIYears is nil (JSON null) when
// yearly savings are non-positive, meaning the payback period is undefined
// rather than zero or infinite.
type ROIResult struct {
	Flow             float64  `json:"flow"`
	SavingPower      float64  `json:"savingPower"`      // kW
	YearlySavingKWh  float64  `json:"yearlySavingKWh"`  // kWh/year
	YearlySavingCost float64  `json:"yearlySavingCost"` // currency/year
	ROIYears         *float64 `json:"roiYears"`
}

// ROI computes the payback period of the drive retrofit at the given
// operating flow and duty cycle.
func (m *Model) ROI(params ROIParams) ROIResult {
	t := params.Tariff
	saving := m.ValvePower(params.Flow) - m.InverterPower(params.Flow)
	yearlyKWh := saving * t.DailyHours * t.YearlyDays
	yearlyCost := yearlyKWh * t.ElectricityRate

	res := ROIResult{
		Flow:             params.Flow,
		SavingPower:      round2(saving),
		YearlySavingKWh:  round2(yearlyKWh),
		YearlySavingCost: round2(yearlyCost),
	}
	if yearlyCost > 0 {
		years := round2(t.InverterCost / yearlyCost)
		res.ROIYears = &years
	}
	return res
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
