package session

import "github.com/pklbhq/courtside/internal/rotation"

// RotationGames maps stored game records into the plain game values the
// rotation engine consumes. The input is already filtered to non-voided games
// and ordered ascending by play time by GetGames.
func RotationGames(records []GameRecord) []rotation.Game {
	games := make([]rotation.Game, 0, len(records))
	for _, record := range records {
		games = append(games, rotation.Game{
			ID:       record.ID,
			TeamAIDs: record.TeamAIDs,
			TeamBIDs: record.TeamBIDs,
			PlayedAt: record.PlayedAt,
		})
	}
	return games
}
