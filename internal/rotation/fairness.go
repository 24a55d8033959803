package rotation

import (
	"sort"
	"time"
)

// RankPlayers orders the candidates by who is most owed court time: fewest
// games played first, ties broken by least recently played. A player who has
// never played carries the zero time and therefore sorts before anyone with
// real history. Remaining ties keep input order (stable sort), so identical
// input always produces identical output.
func RankPlayers(playerIDs []string, games []Game) []string {
	type record struct {
		gamesPlayed int
		lastPlayed  time.Time
	}

	history := make(map[string]*record, len(playerIDs))
	for _, id := range playerIDs {
		history[id] = &record{}
	}

	for _, game := range games {
		for _, team := range [2][]string{game.TeamAIDs, game.TeamBIDs} {
			for _, id := range team {
				rec, ok := history[id]
				if !ok {
					continue
				}
				rec.gamesPlayed++
				if game.PlayedAt.After(rec.lastPlayed) {
					rec.lastPlayed = game.PlayedAt
				}
			}
		}
	}

	ranked := append([]string(nil), playerIDs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := history[ranked[i]], history[ranked[j]]
		if ri.gamesPlayed != rj.gamesPlayed {
			return ri.gamesPlayed < rj.gamesPlayed
		}
		return ri.lastPlayed.Before(rj.lastPlayed)
	})
	return ranked
}
