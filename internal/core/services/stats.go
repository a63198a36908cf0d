package services

import "math"

// round2 rounds to two decimal places, half away from zero. Every
// percentage and hour figure in report responses passes through here.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// resolutionRate returns resolved/total as a percentage rounded to two
// decimals. A zero total yields 0, never NaN.
func resolutionRate(resolved, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(resolved) / float64(total) * 100)
}
