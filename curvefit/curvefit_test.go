package curvefit

import (
	"math"
	"testing"

	"github.com/pumpsim-xyz/go-pumpsim/pump"
)

func TestFitQuadraticExactRecovery(t *testing.T) {
	// Three non-collinear-in-Q² points on H = -0.05Q² + 0.2Q + 58.
	points := []pump.OperatingPoint{
		{Flow: 0, Head: 58},
		{Flow: 10, Head: 55},
		{Flow: 20, Head: 42},
	}

	fit := FitQuadratic(points)

	if math.Abs(fit.A+0.05) > 1e-9 {
		t.Errorf("Expected a=-0.05, got %f", fit.A)
	}
	if math.Abs(fit.B-0.2) > 1e-9 {
		t.Errorf("Expected b=0.2, got %f", fit.B)
	}
	if math.Abs(fit.C-58) > 1e-9 {
		t.Errorf("Expected c=58, got %f", fit.C)
	}
	if math.Abs(fit.R2-1.0) > 1e-9 {
		t.Errorf("Expected r2=1.0 for an exact fit, got %f", fit.R2)
	}

	for _, p := range points {
		if math.Abs(fit.Head(p.Flow)-p.Head) > 1e-9 {
			t.Errorf("Fitted curve misses point (%f, %f): got %f", p.Flow, p.Head, fit.Head(p.Flow))
		}
	}
}

func TestFitQuadraticStageTable(t *testing.T) {
	points := pump.OperatingPoints(pump.ValveStages())
	fit := FitQuadratic(points)

	if fit.R2 < 0.95 {
		t.Errorf("Expected a tight fit on the empirical table, got r2=%f", fit.R2)
	}
	// A pump curve droops: the quadratic term must be negative.
	if fit.A >= 0 {
		t.Errorf("Expected negative quadratic coefficient, got %f", fit.A)
	}
}

func TestFitQuadraticDegenerate(t *testing.T) {
	// Fewer than 3 points never throws and reports r2=0.
	fit := FitQuadratic(nil)
	if fit.A != 0 || fit.B != 0 || fit.C != 0 || fit.R2 != 0 {
		t.Errorf("Expected zero fit for no points, got %+v", fit)
	}

	fit = FitQuadratic([]pump.OperatingPoint{{Flow: 5, Head: 50}, {Flow: 10, Head: 45}})
	if fit.A != 0 || fit.B != 0 {
		t.Errorf("Expected flat model for 2 points, got %+v", fit)
	}
	if fit.C != 50 {
		t.Errorf("Expected flat model at first head 50, got %f", fit.C)
	}
	if fit.R2 != 0 {
		t.Errorf("Expected r2=0 for degenerate fit, got %f", fit.R2)
	}
}

func TestFitQuadraticSingular(t *testing.T) {
	// All points at the same flow make the normal equations singular.
	points := []pump.OperatingPoint{
		{Flow: 5, Head: 40},
		{Flow: 5, Head: 50},
		{Flow: 5, Head: 60},
	}

	fit := FitQuadratic(points)
	if fit.A != 0 || fit.B != 0 {
		t.Errorf("Expected fallback model for singular system, got %+v", fit)
	}
	if math.Abs(fit.C-50) > 1e-9 {
		t.Errorf("Expected mean head 50, got %f", fit.C)
	}
	if fit.R2 != 0 {
		t.Errorf("Expected r2=0 for singular system, got %f", fit.R2)
	}
}

func TestFitQuadraticZeroVariance(t *testing.T) {
	// All heads identical: SS_tot=0 must report r2=0, not divide by zero.
	points := []pump.OperatingPoint{
		{Flow: 0, Head: 50},
		{Flow: 10, Head: 50},
		{Flow: 20, Head: 50},
	}

	fit := FitQuadratic(points)
	if fit.R2 != 0 {
		t.Errorf("Expected r2=0 for zero head variance, got %f", fit.R2)
	}
}

func TestCurveGeneration(t *testing.T) {
	fit := Quadratic{A: -0.05, B: 0.2, C: 58}
	curve := fit.Curve(24.3, 50)

	if len(curve) != 51 {
		t.Errorf("Expected 51 points, got %d", len(curve))
	}
	if curve[0].Flow != 0 {
		t.Errorf("Expected curve to start at flow 0, got %f", curve[0].Flow)
	}
	if curve[len(curve)-1].Flow != 24.3 {
		t.Errorf("Expected curve to end at maxFlow, got %f", curve[len(curve)-1].Flow)
	}
	for _, p := range curve {
		if p.Head < 0 {
			t.Errorf("Head must clamp to >=0, got %f at flow %f", p.Head, p.Flow)
		}
		if p.Flow != math.Round(p.Flow*100)/100 {
			t.Errorf("Flow not rounded to 2 decimals: %v", p.Flow)
		}
	}
}

func TestCurveGenerationClampsNegativeHead(t *testing.T) {
	// A steeply drooping curve goes negative before maxFlow.
	fit := Quadratic{A: -1, B: 0, C: 10}
	curve := fit.Curve(10, 10)

	last := curve[len(curve)-1]
	if last.Head != 0 {
		t.Errorf("Expected clamped head 0 at flow %f, got %f", last.Flow, last.Head)
	}
}

func TestEstimateSystemCurve(t *testing.T) {
	// Points on H = 20 + 0.06Q², with a zero-flow point that must be
	// excluded from the fit.
	points := []pump.OperatingPoint{
		{Flow: 0, Head: 99},
		{Flow: 5, Head: 20 + 0.06*25},
		{Flow: 10, Head: 20 + 0.06*100},
		{Flow: 20, Head: 20 + 0.06*400},
	}

	sc := EstimateSystemCurve(points)
	if math.Abs(sc.StaticHead-20) > 1e-9 {
		t.Errorf("Expected static head 20, got %f", sc.StaticHead)
	}
	if math.Abs(sc.ResistanceCoeff-0.06) > 1e-9 {
		t.Errorf("Expected resistance 0.06, got %f", sc.ResistanceCoeff)
	}
	if math.Abs(sc.R2-1.0) > 1e-9 {
		t.Errorf("Expected r2=1.0 for exact fit, got %f", sc.R2)
	}
}

func TestEstimateSystemCurveDegenerate(t *testing.T) {
	// Only zero-flow points survive filtering: mean head, default
	// resistance.
	points := []pump.OperatingPoint{
		{Flow: 0, Head: 30},
		{Flow: 0, Head: 50},
	}

	sc := EstimateSystemCurve(points)
	if math.Abs(sc.StaticHead-40) > 1e-9 {
		t.Errorf("Expected mean head 40, got %f", sc.StaticHead)
	}
	if sc.ResistanceCoeff != 0.1 {
		t.Errorf("Expected default resistance 0.1, got %f", sc.ResistanceCoeff)
	}
	if sc.R2 != 0 {
		t.Errorf("Expected r2=0, got %f", sc.R2)
	}
}
