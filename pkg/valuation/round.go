package valuation

import "math"

// round returns the nearest integer, with halves going towards +Inf
// (2.5 -> 3, -2.5 -> -2).
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// roundTo5 returns the nearest multiple of 5.
func roundTo5(x float64) float64 {
	return round(x/5) * 5
}

// finite coerces NaN and ±Inf to 0.
func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
