package pricing

import "math"

// epsilon guards increment rounding against float noise on values that are
// already an exact multiple of the step.
const epsilon = 1e-9

// Round2 rounds to 2 decimal places, half up. All money fields are rounded
// at the point of computation, not at display.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// RoundUpToIncrement rounds v up to the next multiple of step. Rounding is
// always a ceiling, never nearest: this is a monetization policy. A
// non-positive step passes v through unchanged.
func RoundUpToIncrement(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Ceil(v/step-epsilon) * step
}
