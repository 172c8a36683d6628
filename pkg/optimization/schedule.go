package optimization

import "math"

// Schedule maps an initial temperature and a stage index (1, 2, ...) to the
// temperature for that stage.
type Schedule func(initial float64, stage int) float64

// Geometric cools by a constant factor per stage, the usual choice with a
// factor just below 1.
func Geometric(factor float64) Schedule {
	return func(initial float64, stage int) float64 {
		return initial * math.Pow(factor, float64(stage))
	}
}

// Fast is the 1/k cooling strategy: initial / (stage + 1).
func Fast() Schedule {
	return func(initial float64, stage int) float64 {
		return initial / float64(stage+1)
	}
}
