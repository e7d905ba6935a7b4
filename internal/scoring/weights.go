package scoring

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// WeightVector holds one importance weight per domain, positionally aligned
// with the score matrix columns.
type WeightVector []float64

// Sum returns the total of all weights.
func (w WeightVector) Sum() float64 {
	return floats.Sum(w)
}

// Validate checks that weights are finite, non-negative and sum to 1.0
// (±1e-9 tolerance).
func (w WeightVector) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("empty weight vector")
	}
	for i, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight %d is not finite: %f", i, v)
		}
		if v < 0 {
			return fmt.Errorf("negative weight %d: %f", i, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("weights sum to %.12f, must sum to 1.0", w.Sum())
	}
	return nil
}

// Normalize returns a copy of w scaled to sum to 1.
func (w WeightVector) Normalize() (WeightVector, error) {
	sum := w.Sum()
	if !(sum > 0) || math.IsInf(sum, 0) {
		return nil, ErrZeroWeightSum
	}
	out := make(WeightVector, len(w))
	for i, v := range w {
		out[i] = v / sum
	}
	return out, nil
}

// Clone returns an independent copy.
func (w WeightVector) Clone() WeightVector {
	out := make(WeightVector, len(w))
	copy(out, w)
	return out
}
