package rotation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pklbhq/courtside/internal/rotation"
)

func game(id string, teamA, teamB []string, playedAt time.Time) rotation.Game {
	return rotation.Game{ID: id, TeamAIDs: teamA, TeamBIDs: teamB, PlayedAt: playedAt}
}

func TestBuildPairCounts(t *testing.T) {
	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	games := []rotation.Game{
		game("g1", []string{"A", "B"}, []string{"C", "D"}, base),
		game("g2", []string{"B", "A"}, []string{"C", "E"}, base.Add(time.Hour)),
	}

	counts := rotation.BuildPairCounts(games)

	assert.Equal(t, 2, counts.CountFor("A", "B"))
	assert.Equal(t, 2, counts.CountFor("B", "A"), "lookup must be order-independent")
	assert.Equal(t, 1, counts.CountFor("C", "D"))
	assert.Equal(t, 1, counts.CountFor("C", "E"))
	assert.Equal(t, 0, counts.CountFor("A", "C"), "opponents are not teammates")
	assert.Equal(t, 0, counts.CountFor("X", "Y"))
}

func TestRankPlayersFewestGamesFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	games := []rotation.Game{
		game("g1", []string{"A", "B"}, []string{"C", "D"}, base),
		game("g2", []string{"A", "C"}, []string{"B", "D"}, base.Add(time.Hour)),
		game("g3", []string{"A", "D"}, []string{"B", "C"}, base.Add(2*time.Hour)),
	}

	// E never played, so E outranks everyone; A has played the most recently
	// of the three-game players but game counts are equal among A-D, so their
	// order falls back to last-played (all equal) then input order.
	ranked := rotation.RankPlayers([]string{"A", "B", "C", "D", "E"}, games)
	assert.Equal(t, "E", ranked[0])
}

func TestRankPlayersLastPlayedTieBreak(t *testing.T) {
	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	games := []rotation.Game{
		game("g1", []string{"A", "B"}, []string{"C", "D"}, base),
		game("g2", []string{"A", "E"}, []string{"C", "F"}, base.Add(time.Hour)),
	}

	// B and D both played once; B at base, D at base. A and C played twice.
	// E and F played once, more recently than B and D.
	ranked := rotation.RankPlayers([]string{"A", "B", "C", "D", "E", "F"}, games)

	require.Len(t, ranked, 6)
	// One-game players come before two-game players.
	assert.ElementsMatch(t, []string{"B", "D", "E", "F"}, ranked[:4])
	// Among one-game players, the long-ago game beats the recent one.
	assert.Equal(t, []string{"B", "D", "E", "F"}, ranked[:4], "stable order within equal keys")
	assert.ElementsMatch(t, []string{"A", "C"}, ranked[4:])
}

func TestRankPlayersNeverPlayedBeatsLongAgo(t *testing.T) {
	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	games := []rotation.Game{
		game("g1", []string{"old", "x"}, []string{"y", "z"}, base.AddDate(-1, 0, 0)),
		game("g2", []string{"recent", "x"}, []string{"y", "z"}, base),
	}

	ranked := rotation.RankPlayers([]string{"recent", "old", "fresh"}, games)
	assert.Equal(t, []string{"fresh", "old", "recent"}, ranked)
}

func TestBestSplitPicksLeastRepeatedTeams(t *testing.T) {
	// Pair counts: (A,B)=3, (C,D)=0, everything else involving A-D is 1.
	counts := rotation.BuildPairCounts([]rotation.Game{
		game("1", []string{"A", "B"}, []string{"x1", "x2"}, time.Time{}),
		game("2", []string{"A", "B"}, []string{"x1", "x2"}, time.Time{}),
		game("3", []string{"A", "B"}, []string{"x1", "x2"}, time.Time{}),
		game("4", []string{"A", "C"}, []string{"B", "D"}, time.Time{}),
		game("5", []string{"A", "D"}, []string{"B", "C"}, time.Time{}),
	})

	split := rotation.BestSplit([]string{"A", "B", "C", "D"}, counts)
	penalty := rotation.SplitPenalty(split, counts)

	assert.Equal(t, 2, penalty, "must avoid the A+B rematch (penalty 3)")
	assert.NotEqual(t, []string{"A", "B"}, split.TeamA)
}

func TestBestSplitOptimality(t *testing.T) {
	counts := rotation.PairCounts{}
	players := []string{"p1", "p2", "p3", "p4"}
	splits := []rotation.Split{
		{TeamA: []string{"p1", "p2"}, TeamB: []string{"p3", "p4"}},
		{TeamA: []string{"p1", "p3"}, TeamB: []string{"p2", "p4"}},
		{TeamA: []string{"p1", "p4"}, TeamB: []string{"p2", "p3"}},
	}

	games := []rotation.Game{
		game("1", []string{"p1", "p2"}, []string{"p3", "p4"}, time.Time{}),
		game("2", []string{"p1", "p3"}, []string{"p2", "p4"}, time.Time{}),
		game("3", []string{"p1", "p3"}, []string{"p2", "p4"}, time.Time{}),
	}
	counts = rotation.BuildPairCounts(games)

	best := rotation.BestSplit(players, counts)
	bestPenalty := rotation.SplitPenalty(best, counts)
	for _, candidate := range splits {
		assert.LessOrEqual(t, bestPenalty, rotation.SplitPenalty(candidate, counts))
	}
	// With history {p1p2:1, p3p4:1, p1p3:2, p2p4:2}, the p1p4|p2p3 split is untouched.
	assert.Equal(t, []string{"p1", "p4"}, best.TeamA)
	assert.Equal(t, []string{"p2", "p3"}, best.TeamB)
}

func TestBestSplitTieGoesToFirstEnumerated(t *testing.T) {
	split := rotation.BestSplit([]string{"p1", "p2", "p3", "p4"}, rotation.PairCounts{})
	assert.Equal(t, []string{"p1", "p2"}, split.TeamA)
	assert.Equal(t, []string{"p3", "p4"}, split.TeamB)
}

func TestSuggestFreshSessionFillsAllCourts(t *testing.T) {
	// 8 players, no history, 2 courts: both courts filled, all players
	// distinct, every split penalty zero.
	players := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8"}
	counts := rotation.PairCounts{}

	slate := rotation.Suggest(nil, players, 2, counts)

	require.Len(t, slate.Assignments, 2)
	assert.Empty(t, slate.Waiting)

	seen := map[string]bool{}
	for _, assignment := range slate.Assignments {
		require.Len(t, assignment.TeamA, 2)
		require.Len(t, assignment.TeamB, 2)
		for _, id := range append(append([]string{}, assignment.TeamA...), assignment.TeamB...) {
			assert.False(t, seen[id], "player %s seated twice", id)
			seen[id] = true
		}
		penalty := rotation.SplitPenalty(rotation.Split{TeamA: assignment.TeamA, TeamB: assignment.TeamB}, counts)
		assert.Zero(t, penalty)
	}
	assert.Len(t, seen, 8)
	assert.Equal(t, 0, slate.Assignments[0].CourtIndex)
	assert.Equal(t, 1, slate.Assignments[1].CourtIndex)
}

func TestSuggestOmitsPartialCourts(t *testing.T) {
	// 6 players for 2 courts: one full court, four seated, two waiting, no
	// partial second court.
	players := []string{"p1", "p2", "p3", "p4", "p5", "p6"}

	slate := rotation.Suggest(nil, players, 2, nil)

	require.Len(t, slate.Assignments, 1)
	assert.Len(t, slate.Assignments[0].TeamA, 2)
	assert.Len(t, slate.Assignments[0].TeamB, 2)
	assert.Len(t, slate.Waiting, 2)
}

func TestSuggestFairnessMonotonicity(t *testing.T) {
	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	// "veteran" has played twice, everyone else once or never. With one court
	// for six players, the veteran must never be seated while a lesser-played
	// player waits.
	games := []rotation.Game{
		game("g1", []string{"veteran", "a"}, []string{"b", "c"}, base),
		game("g2", []string{"veteran", "d"}, []string{"a", "b"}, base.Add(time.Hour)),
	}
	players := []string{"veteran", "a", "b", "c", "d", "rookie"}

	slate := rotation.Suggest(games, players, 1, nil)

	require.Len(t, slate.Assignments, 1)
	seated := append(append([]string{}, slate.Assignments[0].TeamA...), slate.Assignments[0].TeamB...)
	assert.NotContains(t, seated, "veteran")
	assert.Contains(t, seated, "rookie")
	assert.Contains(t, slate.Waiting, "veteran")
}

func TestSuggestDeterministic(t *testing.T) {
	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	games := []rotation.Game{
		game("g1", []string{"p1", "p2"}, []string{"p3", "p4"}, base),
		game("g2", []string{"p5", "p6"}, []string{"p7", "p8"}, base.Add(time.Hour)),
	}
	players := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9"}

	first := rotation.Suggest(games, players, 2, nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, rotation.Suggest(games, players, 2, nil))
	}
}

func TestReselectMatchesSuggest(t *testing.T) {
	players := []string{"p1", "p2", "p3", "p4", "p5"}
	assert.Equal(t,
		rotation.Suggest(nil, players, 1, nil),
		rotation.Reselect(nil, players, 1, nil),
	)
}

func TestReshufflePreservesRoster(t *testing.T) {
	counts := rotation.BuildPairCounts([]rotation.Game{
		game("1", []string{"p1", "p2"}, []string{"p3", "p4"}, time.Time{}),
		game("2", []string{"p1", "p2"}, []string{"p3", "p4"}, time.Time{}),
	})
	current := []rotation.CourtAssignment{
		{CourtIndex: 0, TeamA: []string{"p1", "p2"}, TeamB: []string{"p3", "p4"}},
		{CourtIndex: 1, TeamA: []string{"p5", "p6"}, TeamB: []string{"p7", "p8"}},
	}

	reshuffled := rotation.Reshuffle(current, counts)

	require.Len(t, reshuffled, 2)
	for i := range current {
		before := append(append([]string{}, current[i].TeamA...), current[i].TeamB...)
		after := append(append([]string{}, reshuffled[i].TeamA...), reshuffled[i].TeamB...)
		assert.ElementsMatch(t, before, after)
		assert.Equal(t, current[i].CourtIndex, reshuffled[i].CourtIndex)
	}
	// Court 0's players have history as p1+p2 and p3+p4; reshuffle must move
	// away from the repeated pairing.
	assert.NotEqual(t, []string{"p1", "p2"}, reshuffled[0].TeamA)
}

func TestReshufflePassesThroughPartialCourts(t *testing.T) {
	current := []rotation.CourtAssignment{
		{CourtIndex: 0, TeamA: []string{"p1"}, TeamB: []string{"p2", "p3"}},
	}
	assert.Equal(t, current, rotation.Reshuffle(current, rotation.PairCounts{}))
}
