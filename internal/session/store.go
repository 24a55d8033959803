package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pklbhq/courtside/internal/courts"
)

// store handles all database operations for a courtside session.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new session store.
func New(db *sql.DB) SessionStore {
	return &store{db: db}
}

func (s *store) AddPlayer(playerID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `INSERT INTO players (id, name, active, created_at) VALUES (?, ?, 1, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`
	if _, err := s.db.Exec(query, playerID, name, time.Now().Unix()); err != nil {
		log.Error("Failed to add player", "error", err, "playerID", playerID)
	}
}

func (s *store) UpsertPlayers(players []PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO players (id, name, active, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, active = excluded.active`
	now := time.Now().Unix()
	for _, player := range players {
		active := 0
		if player.Active {
			active = 1
		}
		if _, err := tx.Exec(query, player.ID, player.Name, active, now); err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", player.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player upsert: %w", err)
	}
	log.Info("Upserted players", "count", len(players))
	return nil
}

func (s *store) SetPlayerActive(playerID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value := 0
	if active {
		value = 1
	}
	result, err := s.db.Exec(`UPDATE players SET active = ? WHERE id = ?`, value, playerID)
	if err != nil {
		return fmt.Errorf("failed to update player active flag: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	log.Info("Updated player active flag", "playerID", playerID, "active", active)
	return nil
}

func (s *store) GetAllPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, active FROM players ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []PlayerInfo
	for rows.Next() {
		var player PlayerInfo
		var active int
		if err := rows.Scan(&player.ID, &player.Name, &active); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		player.Active = active != 0
		players = append(players, player)
	}
	return players, rows.Err()
}

func (s *store) GetActivePlayerIDs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id FROM players WHERE active = 1 ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active players: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan player id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id string
	err := s.db.QueryRow(`SELECT id FROM players WHERE id = ?`, playerID).Scan(&id)
	return err == nil
}

func (s *store) InsertGame(game *GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	if game.ProcessingStatus == "" {
		game.ProcessingStatus = StatusNew
	}
	if game.PlayedAt.IsZero() {
		game.PlayedAt = time.Now()
	}

	teamA, err := json.Marshal(game.TeamAIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal team A: %w", err)
	}
	teamB, err := json.Marshal(game.TeamBIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal team B: %w", err)
	}

	query := `
		INSERT INTO games (id, team_a_json, team_b_json, score_a, score_b, played_at, voided, processing_status)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?)
	`
	_, err = s.db.Exec(query,
		game.ID,
		string(teamA),
		string(teamB),
		game.ScoreA,
		game.ScoreB,
		game.PlayedAt.Unix(),
		string(game.ProcessingStatus),
	)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}

	log.Info("Inserted game", "gameID", game.ID, "playedAt", game.PlayedAt)
	return nil
}

func (s *store) VoidGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`UPDATE games SET voided = 1 WHERE id = ?`, gameID)
	if err != nil {
		return fmt.Errorf("failed to void game: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("game not found: %s", gameID)
	}
	log.Info("Voided game", "gameID", gameID)
	return nil
}

func (s *store) GetGames() ([]GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, team_a_json, team_b_json, score_a, score_b, played_at, processing_status
		FROM games
		WHERE voided = 0
		ORDER BY played_at ASC, id ASC
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}
	return games, rows.Err()
}

func (s *store) GetGamesForProcessing() ([]*GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, team_a_json, team_b_json, score_a, score_b, played_at, processing_status
		FROM games
		WHERE voided = 0 AND processing_status != ?
		ORDER BY played_at ASC, id ASC
	`
	rows, err := s.db.Query(query, string(StatusCompleted))
	if err != nil {
		return nil, fmt.Errorf("failed to query games for processing: %w", err)
	}
	defer rows.Close()

	var games []*GameRecord
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func scanGame(rows *sql.Rows) (*GameRecord, error) {
	var game GameRecord
	var teamA, teamB, status string
	var playedAt int64

	if err := rows.Scan(&game.ID, &teamA, &teamB, &game.ScoreA, &game.ScoreB, &playedAt, &status); err != nil {
		return nil, fmt.Errorf("failed to scan game row: %w", err)
	}
	if err := json.Unmarshal([]byte(teamA), &game.TeamAIDs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team A for game %s: %w", game.ID, err)
	}
	if err := json.Unmarshal([]byte(teamB), &game.TeamBIDs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team B for game %s: %w", game.ID, err)
	}
	game.PlayedAt = time.Unix(playedAt, 0)
	game.ProcessingStatus = ProcessingStatus(status)
	return &game, nil
}

func (s *store) UpdateProcessingStatus(gameID string, status ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE games SET processing_status = ? WHERE id = ?`, string(status), gameID)
	if err != nil {
		return fmt.Errorf("failed to update processing status: %w", err)
	}
	log.Info("Updated game processing status", "gameID", gameID, "status", status)
	return nil
}

// UpdatePlayerStats folds one game into the per-player aggregates. Errors are
// logged rather than returned; stats are derived data and the next run heals
// them.
func (s *store) UpdatePlayerStats(game *GameRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	teamAWon := game.ScoreA > game.ScoreB

	query := `
		INSERT INTO player_stats (player_id, games_played, games_won, games_lost, points_won, points_lost)
		VALUES (?, 1, ?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			games_played = games_played + 1,
			games_won = games_won + excluded.games_won,
			games_lost = games_lost + excluded.games_lost,
			points_won = points_won + excluded.points_won,
			points_lost = points_lost + excluded.points_lost
	`
	apply := func(ids []string, won bool, pointsFor, pointsAgainst int) {
		for _, id := range ids {
			wonN, lostN := 0, 1
			if won {
				wonN, lostN = 1, 0
			}
			if _, err := s.db.Exec(query, id, wonN, lostN, pointsFor, pointsAgainst); err != nil {
				log.Error("Failed to update player stats", "error", err, "playerID", id, "gameID", game.ID)
			}
		}
	}
	apply(game.TeamAIDs, teamAWon, game.ScoreA, game.ScoreB)
	apply(game.TeamBIDs, !teamAWon, game.ScoreB, game.ScoreA)
}

func (s *store) GetPlayerStats() ([]PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ps.player_id, COALESCE(p.name, ps.player_id), ps.games_played, ps.games_won, ps.games_lost, ps.points_won, ps.points_lost
		FROM player_stats ps
		LEFT JOIN players p ON p.id = ps.player_id
		ORDER BY ps.games_won DESC, ps.games_played ASC, ps.player_id ASC
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query player stats: %w", err)
	}
	defer rows.Close()

	var stats []PlayerStats
	for rows.Next() {
		var st PlayerStats
		if err := rows.Scan(&st.PlayerID, &st.PlayerName, &st.GamesPlayed, &st.GamesWon, &st.GamesLost, &st.PointsWon, &st.PointsLost); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func (s *store) SaveCourtSnapshot(sessionID string, states []courts.CourtState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := json.Marshal(states)
	if err != nil {
		return fmt.Errorf("failed to marshal court states: %w", err)
	}

	query := `
		INSERT INTO court_snapshots (session_id, courts_json, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET courts_json = excluded.courts_json, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, sessionID, string(blob), time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to save court snapshot: %w", err)
	}
	log.Debug("Saved court snapshot", "sessionID", sessionID, "courts", len(states))
	return nil
}

func (s *store) LoadCourtSnapshot(sessionID string) ([]courts.CourtState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blob string
	err := s.db.QueryRow(`SELECT courts_json FROM court_snapshots WHERE session_id = ?`, sessionID).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load court snapshot: %w", err)
	}

	var states []courts.CourtState
	if err := json.Unmarshal([]byte(blob), &states); err != nil {
		return nil, fmt.Errorf("failed to unmarshal court snapshot: %w", err)
	}
	return states, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"court_snapshots", "player_stats", "games", "players"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
	log.Info("Store cleared")
}
