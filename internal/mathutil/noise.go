package mathutil

import (
	"math"
	"math/rand"
)

// GaussianNoise draws one standard-normal sample using the Box-Muller transform.
//
// Both uniform draws are taken from (0, 1] so the logarithm stays finite.
func GaussianNoise(rng *rand.Rand) float64 {
	u1 := 1.0 - rng.Float64()
	u2 := 1.0 - rng.Float64()
	return math.Sqrt(-2.0*math.Log(u1)) * math.Sin(2.0*math.Pi*u2)
}
