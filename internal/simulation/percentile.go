package simulation

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// Bounds of the reported 95% empirical interval.
const (
	LowerPercentile = 2.5
	UpperPercentile = 97.5
)

// Percentile returns the p-th percentile (0..100) of samples using linear
// interpolation between closest ranks: h = (p/100)(n-1), then
// x[floor(h)] + (h-floor(h))(x[floor(h)+1]-x[floor(h)]). samples is not
// modified. Returns NaN for an empty input.
func Percentile(samples []float64, p float64) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 || p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}
	h := p / 100 * float64(n-1)
	lo := int(math.Floor(h))
	if lo+1 >= n {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// summary is the per-item statistic set both simulators report.
type summary struct {
	mean   float64
	lower  float64
	upper  float64
	stdDev float64
}

// summarize sorts samples in place.
func summarize(samples []float64) summary {
	// Incremental mean: a constant sample yields that constant exactly.
	var mean float64
	for k, x := range samples {
		mean += (x - mean) / float64(k+1)
	}

	var sd float64
	if len(samples) > 1 {
		if v, err := stats.StandardDeviationSample(stats.Float64Data(samples)); err == nil {
			sd = v
		}
	}

	sort.Float64s(samples)
	return summary{
		mean:   mean,
		lower:  percentileSorted(samples, LowerPercentile),
		upper:  percentileSorted(samples, UpperPercentile),
		stdDev: sd,
	}
}
