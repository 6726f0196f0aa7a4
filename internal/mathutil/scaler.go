// Package mathutil provides the small numeric helpers shared by the network
// generator and the data generator: a linear range scaler and a Gaussian
// noise source.
package mathutil

import (
	"math"

	"github.com/pkg/errors"
)

// ErrDegenerateRange is returned when a scaler is built over a zero-width
// source range.
var ErrDegenerateRange = errors.New("degenerate scale range")

// Scaler linearly maps values from [OriginalMin, OriginalMax] onto [NewMin, NewMax].
//
//	scale(v) = NewMin + (v - OriginalMin) / (OriginalMax - OriginalMin) * (NewMax - NewMin)
//
// Values outside the original range are extrapolated, not clamped.
type Scaler struct {
	OriginalMin float64
	OriginalMax float64
	NewMin      float64
	NewMax      float64
}

// NewScaler creates a scaler for the given ranges.
//
// Returns ErrDegenerateRange when originalMin == originalMax or any bound is
// not finite, since the mapping would divide by zero.
func NewScaler(originalMin, originalMax, newMin, newMax float64) (*Scaler, error) {
	for _, v := range [...]float64{originalMin, originalMax, newMin, newMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Wrapf(ErrDegenerateRange, "non-finite bound in [%v, %v] -> [%v, %v]",
				originalMin, originalMax, newMin, newMax)
		}
	}
	if originalMin == originalMax {
		return nil, errors.Wrapf(ErrDegenerateRange, "source range [%v, %v] has zero width", originalMin, originalMax)
	}
	return &Scaler{
		OriginalMin: originalMin,
		OriginalMax: originalMax,
		NewMin:      newMin,
		NewMax:      newMax,
	}, nil
}

// Scale maps a single value.
func (s *Scaler) Scale(v float64) float64 {
	return s.NewMin + (v-s.OriginalMin)/(s.OriginalMax-s.OriginalMin)*(s.NewMax-s.NewMin)
}

// ScaleAll returns a new slice with every value of vs scaled.
func (s *Scaler) ScaleAll(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = s.Scale(v)
	}
	return out
}

// Inverse returns the scaler mapping [NewMin, NewMax] back onto the original range.
func (s *Scaler) Inverse() (*Scaler, error) {
	return NewScaler(s.NewMin, s.NewMax, s.OriginalMin, s.OriginalMax)
}
