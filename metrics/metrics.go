// Package metrics derives standardized control-performance numbers from a
// flow time series: transition time (10%→90% of the commanded change),
// overshoot/undershoot percent, and settling time (±2% band). All three are
// direction-aware and total: degenerate input produces zero/neutral values,
// never an error.
package metrics

import "math"

// DefaultTolerance is the settling band half-width as a fraction of the
// target (or of the delta near a zero target).
const DefaultTolerance = 0.02

// deltaEpsilon short-circuits near-zero commanded changes so floating-point
// noise does not produce spurious metrics.
const deltaEpsilon = 0.01

// Response holds the three performance metrics for one transition.
type Response struct {
	TransitionTime float64 `json:"transitionTime"` // s
	Overshoot      float64 `json:"overshoot"`      // percent of |delta|
	SettlingTime   float64 `json:"settlingTime"`   // s
}

// Compute derives all three metrics from a series with the default ±2%
// settling band. time and flow must be the same length and time strictly
// increasing; an empty series yields the zero response.
func Compute(time, flow []float64, start, target float64) Response {
	return ComputeWithTolerance(time, flow, start, target, DefaultTolerance)
}

// ComputeWithTolerance is Compute with an explicit settling band fraction.
func ComputeWithTolerance(time, flow []float64, start, target float64, tolerance float64) Response {
	if len(time) == 0 || len(time) != len(flow) {
		return Response{}
	}
	delta := target - start
	if math.Abs(delta) < deltaEpsilon {
		return Response{}
	}
	return Response{
		TransitionTime: transitionTime(time, flow, start, delta),
		Overshoot:      overshoot(flow, target, delta),
		SettlingTime:   settlingTime(time, flow, target, delta, tolerance),
	}
}

// transitionTime returns t90 − t10, the span between the first crossings of
// 10% and 90% of the commanded change. A threshold that is never crossed
// contributes time 0; a too-short series can therefore report a small or
// negative span. That fallback matches the reference behavior and is kept
// deliberately (flagged in the tests as a known sharp edge).
func transitionTime(time, flow []float64, start, delta float64) float64 {
	t10 := crossingTime(time, flow, start+0.1*delta, delta > 0)
	t90 := crossingTime(time, flow, start+0.9*delta, delta > 0)
	return t90 - t10
}

// crossingTime returns the first sample time at which the series reaches
// the threshold, or 0 when it never does.
func crossingTime(time, flow []float64, threshold float64, rising bool) float64 {
	for i := range flow {
		if rising && flow[i] >= threshold {
			return time[i]
		}
		if !rising && flow[i] <= threshold {
			return time[i]
		}
	}
	return 0
}

// overshoot returns how far the series exceeds the target, as a percent of
// the commanded change. For falling transitions the symmetric undershoot is
// measured. A target within deltaEpsilon of zero reports 0 because the
// percentage is undefined there.
func overshoot(flow []float64, target, delta float64) float64 {
	if math.Abs(target) < deltaEpsilon {
		return 0
	}
	if delta > 0 {
		peak := flow[0]
		for _, v := range flow {
			if v > peak {
				peak = v
			}
		}
		if peak <= target {
			return 0
		}
		return (peak - target) / math.Abs(delta) * 100
	}
	trough := flow[0]
	for _, v := range flow {
		if v < trough {
			trough = v
		}
	}
	if trough >= target {
		return 0
	}
	return (target - trough) / math.Abs(delta) * 100
}

// settlingTime scans backward for the last sample outside the tolerance
// band and returns the timestamp of the sample after it: the earliest time
// from which the series stays inside the band through the end. A series
// that never leaves the band settles at the first sample's time.
func settlingTime(time, flow []float64, target, delta, tolerance float64) float64 {
	// Near a zero target the target-relative band vanishes, so fall back
	// to a delta-relative band.
	band := tolerance * math.Abs(target)
	if math.Abs(target) <= 0.1 {
		band = tolerance * math.Abs(delta)
	}

	for i := len(flow) - 1; i >= 0; i-- {
		if math.Abs(flow[i]-target) > band {
			if i+1 < len(time) {
				return time[i+1]
			}
			// Still outside the band at the end of the series.
			return time[len(time)-1]
		}
	}
	return time[0]
}
