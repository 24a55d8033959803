package processor

import (
	"github.com/pklbhq/courtside/internal/notifier"
	"github.com/pklbhq/courtside/internal/session"
)

// Store defines the database operations required by the processor. Player
// stats are deliberately absent: the processor only publishes the stats
// event, and the push subscriber applies it.
type Store interface {
	GetGamesForProcessing() ([]*session.GameRecord, error)
	UpdateProcessingStatus(gameID string, status session.ProcessingStatus) error
	GetAllPlayers() ([]session.PlayerInfo, error)
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
