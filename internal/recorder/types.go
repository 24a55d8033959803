package recorder

// RecordStatus classifies the backend's answer to a game submission.
type RecordStatus string

const (
	// StatusRecorded means the game was inserted and ratings were updated.
	StatusRecorded RecordStatus = "RECORDED"
	// StatusPossibleDuplicate means the backend found a matching game inside
	// its recent-duplicate window and wants explicit operator confirmation.
	StatusPossibleDuplicate RecordStatus = "POSSIBLE_DUPLICATE"
	// StatusInvalid means validation failed and nothing was changed.
	StatusInvalid RecordStatus = "INVALID"
)

// GameSubmission is one court's finished game as submitted for recording.
// Force is the operator's explicit confirmation to record despite a
// possible-duplicate warning on an earlier attempt.
type GameSubmission struct {
	SessionID string   `json:"session_id"`
	TeamAIDs  []string `json:"team_a_ids"`
	TeamBIDs  []string `json:"team_b_ids"`
	ScoreA    int      `json:"score_a"`
	ScoreB    int      `json:"score_b"`
	Force     bool     `json:"force,omitempty"`
}

// RecordOutcome is the backend's structured verdict on a submission. Exactly
// one of the optional fields is meaningful per status: GameID when recorded,
// DuplicateOf when a possible duplicate was flagged, FieldErrors when
// validation failed.
type RecordOutcome struct {
	Status      RecordStatus      `json:"status"`
	GameID      string            `json:"game_id,omitempty"`
	DuplicateOf string            `json:"duplicate_of,omitempty"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}
