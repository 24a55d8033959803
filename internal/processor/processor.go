package processor

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/pklbhq/courtside/internal/metrics"
	"github.com/pklbhq/courtside/internal/pubsub"
	"github.com/pklbhq/courtside/internal/session"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
	}
}

// ProcessGames fetches recorded games that need processing and advances them
// through the state machine.
func (p *Processor) ProcessGames(dryRun bool) {
	log.Info("Starting game processing...")
	games, err := p.store.GetGamesForProcessing()
	if err != nil {
		log.Error("Failed to get games for processing", "error", err)
		return
	}

	if len(games) == 0 {
		log.Info("No games to process.")
		return
	}

	playerNames := p.playerNames()

	log.Info("Found games to process", "count", len(games))
	for _, game := range games {
		startTime := time.Now()
		p.processGame(game, playerNames, dryRun)
		duration := time.Since(startTime).Seconds()
		p.metrics.ObserveRecordingDuration(duration)
	}
	log.Info("Game processing finished.")
}

func (p *Processor) processGame(game *session.GameRecord, playerNames map[string]string, dryRun bool) {
	log.Info("Processing game", "gameID", game.ID, "initial_status", game.ProcessingStatus)
	for {
		currentState := game.ProcessingStatus
		log.Debug("Evaluating game state", "gameID", game.ID, "status", currentState)

		switch currentState {
		case session.StatusNew:
			// Results for old games are imported silently, so historical
			// backfills do not spam the channel.
			timeSincePlayed := time.Since(game.PlayedAt)
			if timeSincePlayed < 24*time.Hour {
				if err := p.notifier.SendResultNotification(game, playerNames, dryRun); err != nil {
					log.Error("Failed to send result notification", "error", err, "gameID", game.ID)
				}
			} else {
				log.Info("Game played more than a day ago, skipping result notification.", "gameID", game.ID)
			}
			p.updateStatus(game, session.StatusResultNotified, dryRun)

		case session.StatusResultNotified:
			// Stats are applied exclusively by the update-player-stats push
			// subscriber; publishing here is the one and only credit per game.
			log.Info("Game result has been notified. Publishing stats update.", "gameID", game.ID)
			if !dryRun {
				if err := p.pubsub.SendMessage(string(pubsub.EventUpdatePlayerStats), game); err != nil {
					log.Error("Failed to publish stats update event", "error", err, "gameID", game.ID)
				}
			}
			p.updateStatus(game, session.StatusCompleted, dryRun)

		case session.StatusCompleted:
			log.Info("Game is fully processed.", "gameID", game.ID)
			return

		default:
			log.Warn("Game is in an unknown state, skipping.", "gameID", game.ID, "status", currentState)
			return
		}
	}
}

func (p *Processor) updateStatus(game *session.GameRecord, status session.ProcessingStatus, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would update game status", "gameID", game.ID, "status", status)
		game.ProcessingStatus = status
		return
	}
	if err := p.store.UpdateProcessingStatus(game.ID, status); err != nil {
		log.Error("Failed to update processing status", "error", err, "gameID", game.ID, "status", status)
		return
	}
	game.ProcessingStatus = status
}

func (p *Processor) playerNames() map[string]string {
	players, err := p.store.GetAllPlayers()
	if err != nil {
		log.Error("Failed to load players for notifications", "error", err)
		return nil
	}
	names := make(map[string]string, len(players))
	for _, player := range players {
		names[player.ID] = player.Name
	}
	return names
}
