package rotation

// PairCounts tracks how many times each unordered pair of players has been
// teammates. Keys are normalized by sorting the two ids, so lookups are
// order-independent. Hosts that pre-aggregate counts must use the same
// normalization.
type PairCounts map[string]int

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// BuildPairCounts derives teammate counts from a list of completed games.
// Each game contributes two increments, one per team.
func BuildPairCounts(games []Game) PairCounts {
	counts := make(PairCounts)
	for _, game := range games {
		counts.addTeam(game.TeamAIDs)
		counts.addTeam(game.TeamBIDs)
	}
	return counts
}

func (p PairCounts) addTeam(team []string) {
	if len(team) != 2 {
		return
	}
	p[pairKey(team[0], team[1])]++
}

// CountFor returns how many times a and b have been teammates, in either order.
func (p PairCounts) CountFor(a, b string) int {
	return p[pairKey(a, b)]
}
