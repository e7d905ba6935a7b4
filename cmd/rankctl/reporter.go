package main

import (
	"fmt"
	"io"

	"github.com/MikeSquared-Agency/Ranker/internal/store"
)

func printIntervals(w io.Writer, a *store.Analysis, n int) {
	fmt.Fprintf(w, "\nTop %d items (mean weighted score):\n", n)
	for i, it := range head(a.ByMeanScore(), n) {
		fmt.Fprintf(w, "  %d. %s: %.2f [%.2f, %.2f]\n",
			i+1, it.Item, it.Interval.Mean, it.Interval.Lower, it.Interval.Upper)
	}
}

func printRobustness(w io.Writer, a *store.Analysis, n int) {
	fmt.Fprintf(w, "\nTop %d most stable rankings:\n", n)
	for i, it := range head(a.ByMeanRank(), n) {
		r := it.Robustness
		fmt.Fprintf(w, "  %d. %s: rank %.1f [%.0f, %.0f], P(top-1)=%.1f%%, P(top-3)=%.1f%%\n",
			i+1, it.Item, r.MeanRank, r.RankLower, r.RankUpper, r.PTop1*100, r.PTop3*100)
	}
}

func head(items []store.ItemResult, n int) []store.ItemResult {
	if len(items) > n {
		return items[:n]
	}
	return items
}
