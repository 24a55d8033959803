package rotation

// Split is one way to partition four players into two teams of two.
type Split struct {
	TeamA []string `json:"team_a"`
	TeamB []string `json:"team_b"`
}

// BestSplit evaluates the three distinct 2v2 partitions of four players and
// returns the one whose teams have been paired together the least. The
// candidates are enumerated in a fixed order and the first minimum wins, so
// ties resolve deterministically.
func BestSplit(players []string, counts PairCounts) Split {
	candidates := [3]Split{
		{TeamA: []string{players[0], players[1]}, TeamB: []string{players[2], players[3]}},
		{TeamA: []string{players[0], players[2]}, TeamB: []string{players[1], players[3]}},
		{TeamA: []string{players[0], players[3]}, TeamB: []string{players[1], players[2]}},
	}

	best := candidates[0]
	bestPenalty := SplitPenalty(best, counts)
	for _, candidate := range candidates[1:] {
		if penalty := SplitPenalty(candidate, counts); penalty < bestPenalty {
			best = candidate
			bestPenalty = penalty
		}
	}
	return best
}

// SplitPenalty is the cumulative teammate-repetition cost of a split: the
// number of times each proposed team has already played together. It is only
// meaningful relative to the other splits of the same four players.
func SplitPenalty(s Split, counts PairCounts) int {
	return counts.CountFor(s.TeamA[0], s.TeamA[1]) + counts.CountFor(s.TeamB[0], s.TeamB[1])
}
