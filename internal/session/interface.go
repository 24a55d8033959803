package session

import (
	"errors"

	"github.com/pklbhq/courtside/internal/courts"
)

// ErrUnknownPlayer is returned when an operation targets a player id that is
// not in the roster.
var ErrUnknownPlayer = errors.New("unknown player")

// SessionStore defines the persistence the host owns on behalf of the
// rotation engine: the roster, the game history, and the operator's court
// board snapshots. The engine itself never touches storage.
type SessionStore interface {
	AddPlayer(playerID, name string)
	UpsertPlayers(players []PlayerInfo) error
	SetPlayerActive(playerID string, active bool) error
	GetAllPlayers() ([]PlayerInfo, error)
	GetActivePlayerIDs() ([]string, error)
	IsKnownPlayer(playerID string) bool

	InsertGame(game *GameRecord) error
	VoidGame(gameID string) error
	// GetGames returns non-voided games ascending by play time, the contract
	// the rotation engine expects.
	GetGames() ([]GameRecord, error)
	GetGamesForProcessing() ([]*GameRecord, error)
	UpdateProcessingStatus(gameID string, status ProcessingStatus) error

	UpdatePlayerStats(game *GameRecord)
	GetPlayerStats() ([]PlayerStats, error)

	SaveCourtSnapshot(sessionID string, states []courts.CourtState) error
	LoadCourtSnapshot(sessionID string) ([]courts.CourtState, error)

	Clear()
}
