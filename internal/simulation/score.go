package simulation

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/MikeSquared-Agency/Ranker/internal/scoring"
)

// Score scale bounds. Perturbed scores are clipped into [MinScore, MaxScore].
const (
	MinScore = 1.0
	MaxScore = 5.0
)

// ScoreInterval summarizes one item's weighted score across noisy trials.
type ScoreInterval struct {
	Mean   float64 `json:"mean"`
	Lower  float64 `json:"p2_5"`
	Upper  float64 `json:"p97_5"`
	StdDev float64 `json:"std_dev"`
}

// scoreSampler produces perturbed copies of a base score matrix.
type scoreSampler struct {
	base  *mat.Dense
	noise distuv.Uniform
}

func newScoreSampler(scores mat.Matrix, noise float64, seed int64) *scoreSampler {
	return &scoreSampler{
		base:  mat.DenseCopyOf(scores),
		noise: newUniform(-noise, noise, seed),
	}
}

// draw fills dst with one trial: each cell gets independent uniform noise,
// drawn item by item and domain by domain, then clipped to the scale.
func (s *scoreSampler) draw(dst *mat.Dense) {
	rows, cols := s.base.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst.Set(i, j, clip(s.base.At(i, j)+s.noise.Rand()))
		}
	}
}

func clip(v float64) float64 {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// SimulateScoreIntervals perturbs every score with uniform noise in
// [-noise, +noise] for r trials, re-aggregates each trial under the fixed
// weights, and returns one ScoreInterval per item in item order.
// Parameters are validated before any draw.
func SimulateScoreIntervals(scores mat.Matrix, weights scoring.WeightVector, r int, noise float64, seed int64) ([]ScoreInterval, error) {
	if err := validateReplicates(r); err != nil {
		return nil, err
	}
	if err := validateNoise(noise); err != nil {
		return nil, err
	}
	n, d := scores.Dims()
	if len(weights) != d {
		return nil, &InvalidParameterError{Name: "weights", Value: len(weights)}
	}

	sampler := newScoreSampler(scores, noise, seed)
	trial := mat.NewDense(n, d, nil)
	weighted := make([]float64, n)

	// samples[i] holds item i's weighted score in every trial.
	samples := make([][]float64, n)
	for i := range samples {
		samples[i] = make([]float64, r)
	}

	for t := 0; t < r; t++ {
		sampler.draw(trial)
		scoring.WeightedScoresTo(weighted, trial, weights)
		for i, v := range weighted {
			samples[i][t] = v
		}
	}

	out := make([]ScoreInterval, n)
	for i := range samples {
		s := summarize(samples[i])
		out[i] = ScoreInterval{Mean: s.mean, Lower: s.lower, Upper: s.upper, StdDev: s.stdDev}
	}
	return out, nil
}
