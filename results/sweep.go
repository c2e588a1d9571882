package results

import (
	"fmt"
	"sort"

	"github.com/pumpsim-xyz/go-pumpsim/power"
)

// SweepResults contains a strategy comparison across a flow range.
type SweepResults struct {
	Version  string         `json:"version"`
	FlowMin  float64        `json:"flowMin"`
	FlowMax  float64        `json:"flowMax"`
	Step     float64        `json:"step"`
	Variants []SweepVariant `json:"variants"`
	Best     *SweepVariant  `json:"best"`
	Worst    *SweepVariant  `json:"worst"`
	Summary  SweepSummary   `json:"summary"`
}

// SweepVariant is the strategy comparison at one flow.
type SweepVariant struct {
	Saving power.Saving `json:"saving"`
	Rank   int          `json:"rank"`
}

// SweepSummary provides an overview of the sweep.
type SweepSummary struct {
	TotalVariants    int     `json:"totalVariants"`
	BestSavingPct    float64 `json:"bestSavingPct"`
	WorstSavingPct   float64 `json:"worstSavingPct"`
	MeanSavingPct    float64 `json:"meanSavingPct"`
	TotalSavingPower float64 `json:"totalSavingPower"` // kW summed over variants
}

// SweepFlows evaluates the energy saving at every flow in [flowMin,
// flowMax] at the given step and ranks the variants by descending saving
// percent.
func SweepFlows(model *power.Model, flowMin, flowMax, step float64) (*SweepResults, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %g", step)
	}
	if flowMax < flowMin {
		return nil, fmt.Errorf("flowMax %g below flowMin %g", flowMax, flowMin)
	}

	sweep := &SweepResults{
		Version: SchemaVersion,
		FlowMin: flowMin,
		FlowMax: flowMax,
		Step:    step,
	}

	for flow := flowMin; flow <= flowMax+1e-9; flow += step {
		sweep.Variants = append(sweep.Variants, SweepVariant{
			Saving: model.EnergySaving(flow),
		})
	}

	RankVariants(sweep.Variants)

	sumPct := 0.0
	sumPower := 0.0
	for i := range sweep.Variants {
		v := &sweep.Variants[i]
		sumPct += v.Saving.SavingPercent
		sumPower += v.Saving.SavingPower
		if v.Rank == 1 {
			sweep.Best = v
		}
		if v.Rank == len(sweep.Variants) {
			sweep.Worst = v
		}
	}

	n := len(sweep.Variants)
	sweep.Summary = SweepSummary{
		TotalVariants:    n,
		TotalSavingPower: sumPower,
	}
	if sweep.Best != nil {
		sweep.Summary.BestSavingPct = sweep.Best.Saving.SavingPercent
	}
	if sweep.Worst != nil {
		sweep.Summary.WorstSavingPct = sweep.Worst.Saving.SavingPercent
	}
	if n > 0 {
		sweep.Summary.MeanSavingPct = sumPct / float64(n)
	}

	return sweep, nil
}

// RankVariants sorts variants by descending saving percent and assigns
// ranks.
func RankVariants(variants []SweepVariant) {
	sort.Slice(variants, func(i, j int) bool {
		return variants[i].Saving.SavingPercent > variants[j].Saving.SavingPercent
	})
	for i := range variants {
		variants[i].Rank = i + 1
	}
}
