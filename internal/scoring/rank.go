package scoring

import "sort"

// CompetitionRanks ranks values in descending order, 1 being the highest.
// Equal values share the lowest rank available to them and the following
// rank is skipped ("1224" ranking). The result does not depend on sort
// stability: ties are resolved by comparing values, not positions.
func CompetitionRanks(values []float64) []int {
	ranks := make([]int, len(values))
	CompetitionRanksTo(ranks, values, make([]int, len(values)))
	return ranks
}

// CompetitionRanksTo is CompetitionRanks writing into ranks, using order as
// scratch space. Both slices must be len(values) long.
func CompetitionRanksTo(ranks []int, values []float64, order []int) {
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})
	for pos, idx := range order {
		if pos > 0 && values[idx] == values[order[pos-1]] {
			ranks[idx] = ranks[order[pos-1]]
			continue
		}
		ranks[idx] = pos + 1
	}
}
