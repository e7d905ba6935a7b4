package simulation

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/MikeSquared-Agency/Ranker/internal/scoring"
)

// TopK cut-off used for PTop3.
const TopK = 3

// RankRobustness summarizes one item's rank across weight-perturbed trials.
// MeanRank is not guaranteed to lie within [RankLower, RankUpper]: ranks are
// integers, so an item that leaves its usual rank in fewer than 2.5% of
// trials shifts the mean but neither percentile.
type RankRobustness struct {
	BaselineScore float64 `json:"baseline_score"`
	BaselineRank  int     `json:"baseline_rank"`
	MeanRank      float64 `json:"mean_rank"`
	RankLower     float64 `json:"rank_p2_5"`
	RankUpper     float64 `json:"rank_p97_5"`
	RankStdDev    float64 `json:"rank_std_dev"`
	PTop1         float64 `json:"p_top1"`
	PTop3         float64 `json:"p_top3"`
}

// SimulateWeightRobustness runs r trials. In each one every weight is
// multiplied by its own factor drawn from [1-wpert, 1+wpert], the vector is
// renormalized to sum to 1, and items are competition-ranked by their
// weighted score. With wpert == 0 every trial uses weights unchanged and no
// draws are made. Parameters are validated before any draw.
func SimulateWeightRobustness(scores mat.Matrix, weights scoring.WeightVector, r int, wpert float64, seed int64) ([]RankRobustness, error) {
	if err := validateReplicates(r); err != nil {
		return nil, err
	}
	if err := validatePerturbation(wpert); err != nil {
		return nil, err
	}
	n, d := scores.Dims()
	if len(weights) != d {
		return nil, &InvalidParameterError{Name: "weights", Value: len(weights)}
	}

	baseline := scoring.WeightedScores(scores, weights)
	baselineRanks := scoring.CompetitionRanks(baseline)

	factor := newUniform(1-wpert, 1+wpert, seed)
	trialWeights := weights.Clone()
	weighted := make([]float64, n)
	ranks := make([]int, n)
	order := make([]int, n)

	samples := make([][]float64, n)
	for i := range samples {
		samples[i] = make([]float64, r)
	}
	top1 := make([]int, n)
	top3 := make([]int, n)

	for t := 0; t < r; t++ {
		if wpert > 0 {
			for j, w := range weights {
				trialWeights[j] = w * factor.Rand()
			}
			sum := floats.Sum(trialWeights)
			for j := range trialWeights {
				trialWeights[j] /= sum
			}
		}

		scoring.WeightedScoresTo(weighted, scores, trialWeights)
		scoring.CompetitionRanksTo(ranks, weighted, order)
		for i, rank := range ranks {
			samples[i][t] = float64(rank)
			if rank == 1 {
				top1[i]++
			}
			if rank <= TopK {
				top3[i]++
			}
		}
	}

	out := make([]RankRobustness, n)
	for i := range samples {
		s := summarize(samples[i])
		out[i] = RankRobustness{
			BaselineScore: baseline[i],
			BaselineRank:  baselineRanks[i],
			MeanRank:      s.mean,
			RankLower:     s.lower,
			RankUpper:     s.upper,
			RankStdDev:    s.stdDev,
			PTop1:         float64(top1[i]) / float64(r),
			PTop3:         float64(top3[i]) / float64(r),
		}
	}
	return out, nil
}
