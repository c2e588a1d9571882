package results

import (
	"bytes"
	"encoding/csv"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pumpsim-xyz/go-pumpsim/power"
	"github.com/pumpsim-xyz/go-pumpsim/pump"
	"github.com/pumpsim-xyz/go-pumpsim/transient"
)

func buildComparisonResults(t *testing.T) *Results {
	t.Helper()
	eng := transient.Default()
	cmp := eng.CompareCases(transient.CompareRequest{StartFlow: 8, TargetFlow: 18})

	return NewBuilder().
		WithScenario(8, 18, "", 0, 0, eng.Model().Spec()).
		WithComparison(cmp).
		WithComputeTime(0.002).
		Build()
}

func TestBuilderComparison(t *testing.T) {
	res := buildComparisonResults(t)

	if res.Version != SchemaVersion {
		t.Errorf("Expected schema version %s, got %s", SchemaVersion, res.Version)
	}
	if res.Metadata.RunID == "" {
		t.Error("Expected a generated run ID")
	}
	if res.Metadata.Status != "success" {
		t.Errorf("Expected success status, got %s", res.Metadata.Status)
	}
	if res.Scenario.Duration != transient.DefaultDuration {
		t.Errorf("Expected default duration %f, got %f", transient.DefaultDuration, res.Scenario.Duration)
	}
	if res.Scenario.StepSize != transient.DefaultStepSize {
		t.Errorf("Expected default step %f, got %f", transient.DefaultStepSize, res.Scenario.StepSize)
	}

	if len(res.Cases) != 3 {
		t.Fatalf("Expected 3 cases, got %d", len(res.Cases))
	}
	labels := []string{transient.CaseValve, transient.CasePID, transient.CaseAI}
	for i, c := range res.Cases {
		if c.Label != labels[i] {
			t.Errorf("Case %d labeled %s, want %s", i, c.Label, labels[i])
		}
		if len(c.Series) == 0 {
			t.Errorf("Case %s has no series", c.Label)
		}
		if c.FlowStats.Min > c.FlowStats.Mean || c.FlowStats.Mean > c.FlowStats.Max {
			t.Errorf("Case %s flow stats inconsistent: %+v", c.Label, c.FlowStats)
		}
		if c.EnergyKWh <= 0 {
			t.Errorf("Case %s has non-positive energy %f", c.Label, c.EnergyKWh)
		}
	}

	// The valve baseline burns the most energy over the run, the
	// optimized drive the least.
	if !(res.Cases[0].EnergyKWh > res.Cases[1].EnergyKWh && res.Cases[1].EnergyKWh > res.Cases[2].EnergyKWh) {
		t.Errorf("Expected energy valve > pid > ai, got %f/%f/%f",
			res.Cases[0].EnergyKWh, res.Cases[1].EnergyKWh, res.Cases[2].EnergyKWh)
	}
}

func TestBuilderSimulation(t *testing.T) {
	eng := transient.Default()
	sim := eng.Simulate(transient.Request{StartFlow: 5, TargetFlow: 15, Mode: transient.ModeStable})

	res := NewBuilder().
		WithScenario(5, 15, string(transient.ModeStable), 0, 0, eng.Model().Spec()).
		WithSimulation("stable", sim).
		Build()

	if len(res.Cases) != 1 {
		t.Fatalf("Expected 1 case, got %d", len(res.Cases))
	}
	c := res.Cases[0]
	if c.TimeConstant != sim.TimeConstant || c.Overshoot != sim.Overshoot {
		t.Errorf("Case does not carry the simulation tuning: %+v", c)
	}
	if c.Metrics.TransitionTime <= 0 {
		t.Errorf("Expected a positive transition time, got %f", c.Metrics.TransitionTime)
	}
}

func TestBuilderError(t *testing.T) {
	res := NewBuilder().WithError(errTest{}).Build()
	if res.Metadata.Status != "error" {
		t.Errorf("Expected error status, got %s", res.Metadata.Status)
	}
	if res.Metadata.Error != "test failure" {
		t.Errorf("Expected error message recorded, got %q", res.Metadata.Error)
	}
}

type errTest struct{}

func (errTest) Error() string { return "test failure" }

func TestIntegrateEnergyConstantPower(t *testing.T) {
	// 1 kW held for one hour is exactly 1 kWh under the trapezoid rule.
	time := []float64{0, 1800, 3600}
	pow := []float64{1, 1, 1}
	if got := integrateEnergy(time, pow); math.Abs(got-1) > 1e-12 {
		t.Errorf("Expected 1 kWh, got %f", got)
	}
	if integrateEnergy([]float64{0}, []float64{5}) != 0 {
		t.Errorf("Expected 0 for a single-sample series")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	res := buildComparisonResults(t)

	filename := filepath.Join(t.TempDir(), "results.json")
	if err := WriteJSON(res, filename); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	loaded, err := ReadJSON(filename)
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if loaded.Metadata.RunID != res.Metadata.RunID {
		t.Errorf("Run ID lost in round trip: %s vs %s", loaded.Metadata.RunID, res.Metadata.RunID)
	}
	if len(loaded.Cases) != len(res.Cases) {
		t.Fatalf("Case count lost in round trip: %d vs %d", len(loaded.Cases), len(res.Cases))
	}
	if loaded.Cases[2].EnergyKWh != res.Cases[2].EnergyKWh {
		t.Errorf("Energy lost in round trip: %f vs %f", loaded.Cases[2].EnergyKWh, res.Cases[2].EnergyKWh)
	}
}

func TestToFromJSON(t *testing.T) {
	res := buildComparisonResults(t)

	s, err := ToJSON(res)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(s, `"timeSeries"`) {
		t.Error("Expected timeSeries key in JSON output")
	}

	parsed, err := FromJSON(s)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if parsed.Scenario.TargetFlow != 18 {
		t.Errorf("Expected target flow 18, got %f", parsed.Scenario.TargetFlow)
	}
}

func TestWriteSeriesCSV(t *testing.T) {
	series := []transient.Sample{
		{Time: 0, Flow: 8, Power: 4.53},
		{Time: 0.1, Flow: 8.5, Power: 4.62},
	}

	var buf bytes.Buffer
	if err := WriteSeriesCSV(&buf, series); err != nil {
		t.Fatalf("WriteSeriesCSV failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "time" || rows[0][1] != "flow" || rows[0][2] != "power" {
		t.Errorf("Unexpected header: %v", rows[0])
	}
	if rows[1][1] != "8.00" || rows[2][2] != "4.62" {
		t.Errorf("Unexpected rows: %v / %v", rows[1], rows[2])
	}
}

func TestWriteCaseCSV(t *testing.T) {
	res := buildComparisonResults(t)

	filename := filepath.Join(t.TempDir(), "ai.csv")
	if err := WriteCaseCSV(res, transient.CaseAI, filename); err != nil {
		t.Fatalf("WriteCaseCSV failed: %v", err)
	}

	if err := WriteCaseCSV(res, "nope", filename); err == nil {
		t.Error("Expected an error for an unknown label")
	}
}

func TestSweepFlows(t *testing.T) {
	model := power.Default()

	sw, err := SweepFlows(model, 0, pump.MaxTableFlow(model.Stages()), 1.0)
	if err != nil {
		t.Fatalf("SweepFlows failed: %v", err)
	}

	if sw.Summary.TotalVariants != len(sw.Variants) {
		t.Errorf("Summary count %d does not match %d variants", sw.Summary.TotalVariants, len(sw.Variants))
	}
	if sw.Best == nil || sw.Worst == nil {
		t.Fatal("Expected best and worst variants")
	}
	if sw.Best.Rank != 1 {
		t.Errorf("Best variant has rank %d", sw.Best.Rank)
	}
	if sw.Best.Saving.SavingPercent < sw.Worst.Saving.SavingPercent {
		t.Errorf("Best saving %f%% below worst %f%%", sw.Best.Saving.SavingPercent, sw.Worst.Saving.SavingPercent)
	}

	// Descending rank order after sorting.
	for i := 1; i < len(sw.Variants); i++ {
		if sw.Variants[i].Rank != sw.Variants[i-1].Rank+1 {
			t.Fatalf("Ranks not consecutive at index %d", i)
		}
		if sw.Variants[i].Saving.SavingPercent > sw.Variants[i-1].Saving.SavingPercent {
			t.Fatalf("Variants not sorted by saving percent at index %d", i)
		}
	}
}

func TestSweepFlowsValidation(t *testing.T) {
	model := power.Default()

	if _, err := SweepFlows(model, 0, 10, 0); err == nil {
		t.Error("Expected an error for zero step")
	}
	if _, err := SweepFlows(model, 10, 5, 1); err == nil {
		t.Error("Expected an error for an inverted range")
	}
}
