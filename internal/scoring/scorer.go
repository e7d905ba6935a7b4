package scoring

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// WeightedScores returns scores·w, one weighted additive score per item.
// Both the baseline and every simulation trial go through this function so
// that unperturbed inputs reproduce the baseline bit for bit.
func WeightedScores(scores mat.Matrix, w WeightVector) []float64 {
	out := make([]float64, rows(scores))
	WeightedScoresTo(out, scores, w)
	return out
}

// WeightedScoresTo writes scores·w into dst, which must have one slot per item.
func WeightedScoresTo(dst []float64, scores mat.Matrix, w WeightVector) {
	r, c := scores.Dims()
	if len(w) != c {
		panic(fmt.Sprintf("scoring: %d weights for %d domains", len(w), c))
	}
	if len(dst) != r {
		panic(fmt.Sprintf("scoring: destination length %d for %d items", len(dst), r))
	}
	out := mat.NewVecDense(r, dst)
	out.MulVec(scores, mat.NewVecDense(c, w))
}

// Baseline returns the unperturbed weighted score of every item in m.
func (m *Model) Baseline() []float64 {
	return WeightedScores(m.Scores, m.Weights)
}

func rows(m mat.Matrix) int {
	r, _ := m.Dims()
	return r
}
