package rotation

import "time"

// Game is one completed, non-voided doubles game. The engine only reads
// these; the caller filters out voided games before handing them over.
type Game struct {
	ID       string    `json:"id"`
	TeamAIDs []string  `json:"team_a_ids"`
	TeamBIDs []string  `json:"team_b_ids"`
	PlayedAt time.Time `json:"played_at"`
}

// CourtAssignment is one proposed 2v2 pairing for one physical court.
type CourtAssignment struct {
	CourtIndex int      `json:"court_index"`
	TeamA      []string `json:"team_a"`
	TeamB      []string `json:"team_b"`
}

// Slate is the full output of a Suggest or Reselect run: the per-court
// assignments plus the ranked players left off the courts, most-owed first.
type Slate struct {
	Assignments []CourtAssignment `json:"assignments"`
	Waiting     []string          `json:"waiting,omitempty"`
}
