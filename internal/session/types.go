package session

import "time"

// ProcessingStatus tracks a recorded game through the post-game pipeline.
type ProcessingStatus string

const (
	StatusNew            ProcessingStatus = "NEW"
	StatusResultNotified ProcessingStatus = "RESULT_NOTIFIED"
	StatusCompleted      ProcessingStatus = "COMPLETED"
)

// PlayerInfo is one roster member. Active means not sat out; only active
// players are candidates for rotation.
type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// GameRecord is one recorded doubles game. Voided games stay in the table for
// audit but are excluded from every read the engine consumes.
type GameRecord struct {
	ID               string           `json:"id"`
	TeamAIDs         []string         `json:"team_a_ids"`
	TeamBIDs         []string         `json:"team_b_ids"`
	ScoreA           int              `json:"score_a"`
	ScoreB           int              `json:"score_b"`
	PlayedAt         time.Time        `json:"played_at"`
	Voided           bool             `json:"voided"`
	ProcessingStatus ProcessingStatus `json:"processing_status"`
}

// PlayerStats is a player's aggregate record for the leaderboard.
type PlayerStats struct {
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	GamesPlayed int    `json:"games_played"`
	GamesWon    int    `json:"games_won"`
	GamesLost   int    `json:"games_lost"`
	PointsWon   int    `json:"points_won"`
	PointsLost  int    `json:"points_lost"`
}
