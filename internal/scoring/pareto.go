package scoring

// ParetoCandidate is one item with its raw domain scores. Higher is better
// on every domain.
type ParetoCandidate struct {
	Item   string    `json:"item"`
	Scores []float64 `json:"scores"`
}

// Candidates builds one ParetoCandidate per item of m, in item order.
func (m *Model) Candidates() []ParetoCandidate {
	out := make([]ParetoCandidate, m.NumItems())
	for i, item := range m.Items {
		out[i] = ParetoCandidate{Item: item, Scores: m.ItemScores(i)}
	}
	return out
}

// ComputeFrontier returns the items no other item dominates, in input order.
// A candidate is dominated if another candidate is >= on all domains and
// strictly better on at least one. O(n^2) dominance check.
func ComputeFrontier(candidates []ParetoCandidate) []ParetoCandidate {
	if len(candidates) <= 1 {
		return candidates
	}

	var frontier []ParetoCandidate
	for i := range candidates {
		dominated := false
		for j := range candidates {
			if i == j {
				continue
			}
			if dominates(candidates[j], candidates[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, candidates[i])
		}
	}
	return frontier
}

// dominates returns true if a dominates b.
func dominates(a, b ParetoCandidate) bool {
	better := false
	for d := range a.Scores {
		if a.Scores[d] < b.Scores[d] {
			return false
		}
		if a.Scores[d] > b.Scores[d] {
			better = true
		}
	}
	return better
}
