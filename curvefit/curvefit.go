// Package curvefit fits pump performance curves to sparse operating-point
// data by least squares. All fits are total: degenerate input (too few
// points, singular normal equations, zero head variance) degrades to a flat
// mean-head model with R²=0 instead of returning an error.
package curvefit

import (
	"math"

	"github.com/pumpsim-xyz/go-pumpsim/pump"
)

// pivotEpsilon is the singularity threshold for the normal-equations solve.
const pivotEpsilon = 1e-10

// Quadratic holds fitted coefficients for H(Q) = aQ² + bQ + c.
type Quadratic struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	C  float64 `json:"c"`
	R2 float64 `json:"r2"`
}

// SystemCurve holds the fitted system resistance curve H = H₀ + kQ².
type SystemCurve struct {
	StaticHead      float64 `json:"staticHead"`
	ResistanceCoeff float64 `json:"resistanceCoeff"`
	R2              float64 `json:"r2"`
}

// FitQuadratic fits H(Q) = aQ² + bQ + c to the given operating points.
// Fewer than 3 points or a singular system falls back to a flat model at
// the first point's head (or the mean head) with R²=0.
func FitQuadratic(points []pump.OperatingPoint) Quadratic {
	if len(points) < 3 {
		c := 0.0
		if len(points) > 0 {
			c = points[0].Head
		}
		return Quadratic{C: c}
	}

	// Power sums for the 3×3 normal equations.
	var s0, s1, s2, s3, s4 float64
	var t0, t1, t2 float64
	for _, p := range points {
		q := p.Flow
		q2 := q * q
		s0++
		s1 += q
		s2 += q2
		s3 += q2 * q
		s4 += q2 * q2
		t0 += p.Head
		t1 += q * p.Head
		t2 += q2 * p.Head
	}

	m := [3][4]float64{
		{s4, s3, s2, t2},
		{s3, s2, s1, t1},
		{s2, s1, s0, t0},
	}

	coeffs, ok := solve3(m)
	if !ok {
		return Quadratic{C: meanHead(points)}
	}

	fit := Quadratic{A: coeffs[0], B: coeffs[1], C: coeffs[2]}
	fit.R2 = rSquared(points, func(q float64) float64 {
		return fit.A*q*q + fit.B*q + fit.C
	})
	return fit
}

// Head evaluates the fitted curve at the given flow.
func (q Quadratic) Head(flow float64) float64 {
	return q.A*flow*flow + q.B*flow + q.C
}

// Curve resamples the fitted curve at steps+1 evenly spaced flows over
// [0, maxFlow]. Head is clamped to ≥0 and both coordinates are rounded to
// 2 decimals for presentation stability.
func (q Quadratic) Curve(maxFlow float64, steps int) []pump.CurvePoint {
	if steps < 1 {
		steps = 50
	}
	curve := make([]pump.CurvePoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		flow := maxFlow * float64(i) / float64(steps)
		head := math.Max(0, q.Head(flow))
		curve = append(curve, pump.CurvePoint{
			Flow: round2(flow),
			Head: round2(head),
		})
	}
	return curve
}

// EstimateSystemCurve fits H = H₀ + kQ² by ordinary least squares in the
// transformed coordinate X = Q². Zero-flow points are excluded so the X=0
// cluster does not bias the intercept. Fewer than 2 valid points falls back
// to the mean head with the default resistance 0.1.
func EstimateSystemCurve(points []pump.OperatingPoint) SystemCurve {
	slope, intercept, r2, ok := linearRegression(points, func(p pump.OperatingPoint) (float64, bool) {
		if p.Flow <= 0 {
			return 0, false
		}
		return p.Flow * p.Flow, true
	})
	if !ok {
		return SystemCurve{StaticHead: meanHead(points), ResistanceCoeff: 0.1}
	}
	return SystemCurve{StaticHead: intercept, ResistanceCoeff: slope, R2: r2}
}

// Head evaluates the system curve at the given flow.
func (s SystemCurve) Head(flow float64) float64 {
	return s.StaticHead + s.ResistanceCoeff*flow*flow
}

// linearRegression fits head = slope·x + intercept over the points whose
// feature transform accepts them. The same routine backs every
// linear-in-transformed-variable fit. ok is false when fewer than 2 points
// survive the transform or the x values are degenerate.
func linearRegression(points []pump.OperatingPoint, feature func(pump.OperatingPoint) (float64, bool)) (slope, intercept, r2 float64, ok bool) {
	var n, sx, sy, sxx, sxy float64
	type sample struct{ x, y float64 }
	var samples []sample

	for _, p := range points {
		x, keep := feature(p)
		if !keep {
			continue
		}
		samples = append(samples, sample{x, p.Head})
		n++
		sx += x
		sy += p.Head
		sxx += x * x
		sxy += x * p.Head
	}

	if n < 2 {
		return 0, 0, 0, false
	}

	det := n*sxx - sx*sx
	if math.Abs(det) < pivotEpsilon {
		return 0, 0, 0, false
	}

	slope = (n*sxy - sx*sy) / det
	intercept = (sy - slope*sx) / n

	// R² over the points that participated in the fit.
	mean := sy / n
	var ssRes, ssTot float64
	for _, s := range samples {
		pred := slope*s.x + intercept
		ssRes += (s.y - pred) * (s.y - pred)
		ssTot += (s.y - mean) * (s.y - mean)
	}
	if ssTot == 0 {
		return slope, intercept, 0, true
	}
	return slope, intercept, 1 - ssRes/ssTot, true
}

// solve3 solves a 3×3 augmented system by Gaussian elimination with
// partial pivoting. ok is false when any pivot magnitude falls below
// pivotEpsilon.
func solve3(m [3][4]float64) ([3]float64, bool) {
	var x [3]float64

	for col := 0; col < 3; col++ {
		// Select the largest-magnitude pivot in this column.
		pivot := col
		for row := col + 1; row < 3; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(m[pivot][col]) < pivotEpsilon {
			return x, false
		}
		m[col], m[pivot] = m[pivot], m[col]

		for row := col + 1; row < 3; row++ {
			factor := m[row][col] / m[col][col]
			for k := col; k < 4; k++ {
				m[row][k] -= factor * m[col][k]
			}
		}
	}

	// Back substitution.
	for i := 2; i >= 0; i-- {
		sum := m[i][3]
		for j := i + 1; j < 3; j++ {
			sum -= m[i][j] * x[j]
		}
		x[i] = sum / m[i][i]
	}
	return x, true
}

// rSquared computes the coefficient of determination for a fitted head
// predictor. Zero head variance reports 0 rather than dividing by zero.
func rSquared(points []pump.OperatingPoint, predict func(flow float64) float64) float64 {
	mean := meanHead(points)
	var ssRes, ssTot float64
	for _, p := range points {
		pred := predict(p.Flow)
		ssRes += (p.Head - pred) * (p.Head - pred)
		ssTot += (p.Head - mean) * (p.Head - mean)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

func meanHead(points []pump.OperatingPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range points {
		sum += p.Head
	}
	return sum / float64(len(points))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
