package rotation

import "github.com/charmbracelet/log"

// PlayersPerCourt is the number of players a doubles court seats.
const PlayersPerCourt = 4

// Suggest ranks the active players by fairness, seats the top courtCount*4 of
// them in ranked groups of four, and splits each group into the
// least-repetitive teams. A court that cannot be filled with a complete group
// of four is omitted entirely; the unseated remainder comes back as the
// ranked waiting pool. Pass nil counts to derive them from the games.
func Suggest(games []Game, activePlayerIDs []string, courtCount int, counts PairCounts) Slate {
	if counts == nil {
		counts = BuildPairCounts(games)
	}

	ranked := RankPlayers(activePlayerIDs, games)
	fullCourts := len(ranked) / PlayersPerCourt
	if fullCourts > courtCount {
		fullCourts = courtCount
	}
	seated := fullCourts * PlayersPerCourt

	slate := Slate{Waiting: append([]string(nil), ranked[seated:]...)}
	for i := 0; i < fullCourts; i++ {
		group := ranked[i*PlayersPerCourt : (i+1)*PlayersPerCourt]
		split := BestSplit(group, counts)
		slate.Assignments = append(slate.Assignments, CourtAssignment{
			CourtIndex: i,
			TeamA:      split.TeamA,
			TeamB:      split.TeamB,
		})
	}
	log.Debug("Computed court slate", "courts", len(slate.Assignments), "waiting", len(slate.Waiting))
	return slate
}

// Reshuffle keeps the exact four players on every court and only recomputes
// each court's split. A court whose assignment does not hold exactly four
// players passes through unchanged.
func Reshuffle(current []CourtAssignment, counts PairCounts) []CourtAssignment {
	out := make([]CourtAssignment, 0, len(current))
	for _, assignment := range current {
		players := append(append([]string(nil), assignment.TeamA...), assignment.TeamB...)
		if len(players) != PlayersPerCourt {
			out = append(out, assignment)
			continue
		}
		split := BestSplit(players, counts)
		out = append(out, CourtAssignment{
			CourtIndex: assignment.CourtIndex,
			TeamA:      split.TeamA,
			TeamB:      split.TeamB,
		})
	}
	return out
}

// Reselect redoes player selection and team formation from scratch. The UI
// exposes it as its own action; the computation is Suggest's.
func Reselect(games []Game, activePlayerIDs []string, courtCount int, counts PairCounts) Slate {
	return Suggest(games, activePlayerIDs, courtCount, counts)
}
