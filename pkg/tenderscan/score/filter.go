package score

// Filter returns the positions with relevance at or above minRelevance.
// With showAll set, everything passes unchanged.
func Filter(scored []ScoredPosition, minRelevance int, showAll bool) []ScoredPosition {
	if showAll {
		return scored
	}
	out := make([]ScoredPosition, 0, len(scored))
	for _, sp := range scored {
		if sp.Relevance >= minRelevance {
			out = append(out, sp)
		}
	}
	return out
}
