package courts

// Team identifies one side of a court.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// SlotsPerTeam is the number of players on one side of a doubles court.
const SlotsPerTeam = 2

// CourtState is the operator-facing view of one court: two slots per team and
// a lock flag. An empty slot holds "". A locked court is frozen against both
// manual edits and algorithmic overwrites until it is unlocked again.
type CourtState struct {
	TeamA  [SlotsPerTeam]string `json:"team_a"`
	TeamB  [SlotsPerTeam]string `json:"team_b"`
	Locked bool                 `json:"locked"`
}

// IsEmpty reports whether all four slots are empty.
func (c CourtState) IsEmpty() bool {
	return c.TeamA[0] == "" && c.TeamA[1] == "" && c.TeamB[0] == "" && c.TeamB[1] == ""
}

// Players returns the ids currently seated on the court, team A first,
// skipping empty slots.
func (c CourtState) Players() []string {
	var players []string
	for _, id := range [4]string{c.TeamA[0], c.TeamA[1], c.TeamB[0], c.TeamB[1]} {
		if id != "" {
			players = append(players, id)
		}
	}
	return players
}
