package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"io"

	"github.com/charmbracelet/log"

	"github.com/pklbhq/courtside/internal/courts"
	"github.com/pklbhq/courtside/internal/pubsub"
	"github.com/pklbhq/courtside/internal/recorder"
	"github.com/pklbhq/courtside/internal/rotation"
	"github.com/pklbhq/courtside/internal/session"
)

// defaultCourtCount seeds a session that has no persisted board yet. The
// operator resizes to the real court count on arrival.
const defaultCourtCount = 2

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Store.Clear()
		s.mu.Lock()
		s.boards = make(map[string]*courts.Board)
		s.mu.Unlock()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) PlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var players []session.PlayerInfo
			if err := json.NewDecoder(r.Body).Decode(&players); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if err := s.Store.UpsertPlayers(players); err != nil {
				log.Error("Failed to upsert players", "error", err)
				http.Error(w, "Failed to save players", http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Upserted %d players", len(players))
			return
		}

		players, err := s.Store.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, players)
	}
}

func (s *Server) PlayerOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID is required", http.StatusBadRequest)
			return
		}
		out := r.URL.Query().Get("out") == "true"
		isDryRun := isDryRunFromContext(r)

		if err := s.Store.SetPlayerActive(playerID, !out); err != nil {
			log.Error("Failed to set player active state", "error", err, "playerID", playerID)
			if errors.Is(err, session.ErrUnknownPlayer) {
				http.Error(w, "Unknown player", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to update player", http.StatusInternalServerError)
			return
		}
		if !isDryRun {
			if err := s.Recorder.SetPlayerOut(sessionID(r), playerID, out); err != nil {
				// The local roster is authoritative for selection; backend
				// sync failure is reported but does not undo the change.
				log.Error("Failed to sync player out state to backend", "error", err, "playerID", playerID)
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Player %s out=%t", playerID, out)
	}
}

func (s *Server) ListGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := s.Store.GetGames()
		if err != nil {
			http.Error(w, "Failed to get games", http.StatusInternalServerError)
			log.Error("Failed to get games from store", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, games)
	}
}

func (s *Server) RecordGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var submission recorder.GameSubmission
		if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		submission.SessionID = sessionID(r)
		isDryRun := isDryRunFromContext(r)

		outcome, err := s.Recorder.RecordGame(&submission)
		if err != nil {
			log.Error("Failed to record game against backend", "error", err)
			http.Error(w, "Recording backend unavailable", http.StatusBadGateway)
			return
		}

		switch outcome.Status {
		case recorder.StatusRecorded:
			s.Metrics.IncGamesRecorded()
			game := &session.GameRecord{
				ID:               outcome.GameID,
				TeamAIDs:         submission.TeamAIDs,
				TeamBIDs:         submission.TeamBIDs,
				ScoreA:           submission.ScoreA,
				ScoreB:           submission.ScoreB,
				ProcessingStatus: session.StatusNew,
			}
			if !isDryRun {
				if err := s.Store.InsertGame(game); err != nil {
					log.Error("Failed to insert recorded game locally", "error", err, "gameID", game.ID)
					http.Error(w, "Failed to save game", http.StatusInternalServerError)
					return
				}
				if err := s.pubsub.SendMessage(string(pubsub.EventGameRecorded), game); err != nil {
					log.Error("Failed to publish game recorded event", "error", err, "gameID", game.ID)
				}
			}
			respondJSON(w, http.StatusOK, outcome)

		case recorder.StatusPossibleDuplicate:
			s.Metrics.IncDuplicatesFlagged()
			log.Warn("Backend flagged possible duplicate", "duplicateOf", outcome.DuplicateOf)
			if err := s.Notifier.SendDuplicateWarning(outcome.DuplicateOf, isDryRun); err != nil {
				log.Error("Failed to send duplicate warning", "error", err)
			}
			respondJSON(w, http.StatusConflict, outcome)

		case recorder.StatusInvalid:
			respondJSON(w, http.StatusUnprocessableEntity, outcome)

		default:
			log.Error("Backend returned unknown record status", "status", outcome.Status)
			http.Error(w, "Unknown record status", http.StatusBadGateway)
		}
	}
}

func (s *Server) VoidGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("gameID")
		if gameID == "" {
			http.Error(w, "gameID is required", http.StatusBadRequest)
			return
		}
		if err := s.Store.VoidGame(gameID); err != nil {
			log.Error("Failed to void game", "error", err, "gameID", gameID)
			http.Error(w, "Failed to void game", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Voided game %s", gameID)
	}
}

// LeaderboardHandler returns a handler that serves the player statistics leaderboard.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Store.GetPlayerStats()
		if err != nil {
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get player stats from store", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, stats)
	}
}

// slateResponse is the JSON shape for the rotation endpoints.
type slateResponse struct {
	Assignments   []rotation.CourtAssignment `json:"assignments"`
	Waiting       []string                   `json:"waiting"`
	SkippedLocked []int                      `json:"skipped_locked,omitempty"`
}

func (s *Server) SuggestHandler() http.HandlerFunc {
	return s.slateHandler()
}

// ReselectHandler redoes selection and team formation from scratch. Identical
// computation to suggest; the UI exposes it as its own action.
func (s *Server) ReselectHandler() http.HandlerFunc {
	return s.slateHandler()
}

func (s *Server) slateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)
		sessionID := sessionID(r)

		games, err := s.Store.GetGames()
		if err != nil {
			http.Error(w, "Failed to get games", http.StatusInternalServerError)
			log.Error("Failed to get games from store", "error", err)
			return
		}
		activeIDs, err := s.Store.GetActivePlayerIDs()
		if err != nil {
			http.Error(w, "Failed to get active players", http.StatusInternalServerError)
			log.Error("Failed to get active players from store", "error", err)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		board, err := s.board(sessionID)
		if err != nil {
			http.Error(w, "Failed to load court board", http.StatusInternalServerError)
			return
		}
		// Replacing a board that still has players seated on open courts is
		// destructive; the operator confirms explicitly.
		if board.HasOpenEntries() && r.URL.Query().Get("confirm") != "true" {
			http.Error(w, "Open courts are not empty; pass confirm=true to replace them", http.StatusConflict)
			return
		}

		rotationGames := session.RotationGames(games)
		slate := rotation.Suggest(rotationGames, activeIDs, board.Len(), nil)
		s.Metrics.IncSuggestionsComputed()

		if isDryRun {
			board = courts.FromStates(board.States())
		}
		skippedLocked := board.ApplyAssignments(slate.Assignments)
		if !isDryRun {
			s.persistBoard(sessionID, board)
			for _, assignment := range slate.Assignments {
				if containsInt(skippedLocked, assignment.CourtIndex) {
					continue
				}
				if err := s.Recorder.PersistAssignment(sessionID, assignment); err != nil {
					log.Error("Failed to persist assignment to backend", "error", err, "court", assignment.CourtIndex)
				}
			}
			if err := s.pubsub.SendMessage(string(pubsub.EventRotationSuggested), slate); err != nil {
				log.Error("Failed to publish rotation suggested event", "error", err)
			}
		}

		if err := s.Notifier.SendSlateNotification(&slate, skippedLocked, s.playerNames(), isDryRun); err != nil {
			log.Error("Failed to send slate notification", "error", err)
		}

		respondJSON(w, http.StatusOK, slateResponse{
			Assignments:   slate.Assignments,
			Waiting:       slate.Waiting,
			SkippedLocked: skippedLocked,
		})
	}
}

// ReshuffleHandler keeps the players on every court and only recomputes each
// court's split, so no confirmation is needed.
func (s *Server) ReshuffleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)
		sessionID := sessionID(r)

		games, err := s.Store.GetGames()
		if err != nil {
			http.Error(w, "Failed to get games", http.StatusInternalServerError)
			log.Error("Failed to get games from store", "error", err)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		board, err := s.board(sessionID)
		if err != nil {
			http.Error(w, "Failed to load court board", http.StatusInternalServerError)
			return
		}

		counts := rotation.BuildPairCounts(session.RotationGames(games))
		reshuffled := rotation.Reshuffle(board.Assignments(), counts)
		s.Metrics.IncSuggestionsComputed()

		if isDryRun {
			board = courts.FromStates(board.States())
		}
		skippedLocked := board.ApplyAssignments(reshuffled)
		if !isDryRun {
			s.persistBoard(sessionID, board)
		}

		respondJSON(w, http.StatusOK, slateResponse{
			Assignments:   reshuffled,
			SkippedLocked: skippedLocked,
		})
	}
}

func (s *Server) CourtsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		board, err := s.board(sessionID(r))
		if err != nil {
			http.Error(w, "Failed to load court board", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, board.States())
	}
}

func (s *Server) AssignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courtIndex, team, slotIndex, ok := slotParams(w, r)
		if !ok {
			return
		}
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID is required", http.StatusBadRequest)
			return
		}
		if !s.Store.IsKnownPlayer(playerID) {
			http.Error(w, "Unknown player", http.StatusNotFound)
			return
		}
		isDryRun := isDryRunFromContext(r)
		sessionID := sessionID(r)

		s.mu.Lock()
		defer s.mu.Unlock()
		board, err := s.board(sessionID)
		if err != nil {
			http.Error(w, "Failed to load court board", http.StatusInternalServerError)
			return
		}
		changed := board.Assign(courtIndex, team, slotIndex, playerID)
		if changed && !isDryRun {
			s.persistBoard(sessionID, board)
			assignment := board.Assignments()[courtIndex]
			if err := s.Recorder.PersistAssignment(sessionID, assignment); err != nil {
				log.Error("Failed to persist assignment to backend", "error", err, "court", courtIndex)
			}
		}
		respondBoardChange(w, board, changed)
	}
}

func (s *Server) ClearSlotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courtIndex, team, slotIndex, ok := slotParams(w, r)
		if !ok {
			return
		}
		isDryRun := isDryRunFromContext(r)
		sessionID := sessionID(r)

		s.mu.Lock()
		defer s.mu.Unlock()
		board, err := s.board(sessionID)
		if err != nil {
			http.Error(w, "Failed to load court board", http.StatusInternalServerError)
			return
		}
		changed := board.Clear(courtIndex, team, slotIndex)
		if changed && !isDryRun {
			s.persistBoard(sessionID, board)
		}
		respondBoardChange(w, board, changed)
	}
}

func (s *Server) LockHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courtIndex, ok := courtParam(w, r)
		if !ok {
			return
		}
		isDryRun := isDryRunFromContext(r)
		sessionID := sessionID(r)

		s.mu.Lock()
		defer s.mu.Unlock()
		board, err := s.board(sessionID)
		if err != nil {
			http.Error(w, "Failed to load court board", http.StatusInternalServerError)
			return
		}
		changed := board.ToggleLock(courtIndex)
		if changed && !isDryRun {
			s.persistBoard(sessionID, board)
		}
		respondBoardChange(w, board, changed)
	}
}

func (s *Server) ResizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := strconv.Atoi(r.URL.Query().Get("count"))
		if err != nil || count < 0 {
			http.Error(w, "count must be a non-negative integer", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		sessionID := sessionID(r)

		s.mu.Lock()
		defer s.mu.Unlock()
		board, err := s.board(sessionID)
		if err != nil {
			http.Error(w, "Failed to load court board", http.StatusInternalServerError)
			return
		}
		if board.HasOpenEntries() && r.URL.Query().Get("confirm") != "true" {
			http.Error(w, "Open courts are not empty; pass confirm=true to replace them", http.StatusConflict)
			return
		}
		if isDryRun {
			board = courts.FromStates(board.States())
		}
		board.Resize(count)
		if !isDryRun {
			s.persistBoard(sessionID, board)
			if err := s.Recorder.InitCourts(sessionID, count); err != nil {
				log.Error("Failed to init courts on backend", "error", err, "count", count)
			}
		}
		respondJSON(w, http.StatusOK, board.States())
	}
}

func (s *Server) StartCourtHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courtIndex, ok := courtParam(w, r)
		if !ok {
			return
		}
		if isDryRunFromContext(r) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "[Dry Run] Would start court %d", courtIndex)
			return
		}
		if err := s.Recorder.StartCourt(sessionID(r), courtIndex); err != nil {
			log.Error("Failed to start court on backend", "error", err, "court", courtIndex)
			http.Error(w, "Failed to start court", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Started court %d", courtIndex)
	}
}

func (s *Server) ProcessGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting game processing...")
		isDryRun := isDryRunFromContext(r)

		s.Processor.ProcessGames(isDryRun)

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Game processing completed.")
		log.Info("Game processing finished.")
	}
}

// UpdatePlayerStatsHandler is the Pub/Sub push endpoint for the
// update-player-stats subscription.
func (s *Server) UpdatePlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received update player stats message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		game := session.GameRecord{}
		s.pubsub.ProcessMessage(rawData, &game)
		if !isDryRun {
			s.Store.UpdatePlayerStats(&game)
		}
		w.Write([]byte("OK"))
	}
}

// board returns the session's board, loading it from the persisted snapshot on
// first use. Callers must hold s.mu.
func (s *Server) board(sessionID string) (*courts.Board, error) {
	if board, ok := s.boards[sessionID]; ok {
		return board, nil
	}
	states, err := s.Store.LoadCourtSnapshot(sessionID)
	if err != nil {
		log.Error("Failed to load court snapshot", "error", err, "sessionID", sessionID)
		return nil, err
	}
	var board *courts.Board
	if states == nil {
		board = courts.NewBoard(defaultCourtCount)
	} else {
		board = courts.FromStates(states)
	}
	s.boards[sessionID] = board
	return board, nil
}

// persistBoard stores the board snapshot and keeps the in-memory copy current.
// Callers must hold s.mu.
func (s *Server) persistBoard(sessionID string, board *courts.Board) {
	s.boards[sessionID] = board
	if err := s.Store.SaveCourtSnapshot(sessionID, board.States()); err != nil {
		log.Error("Failed to save court snapshot", "error", err, "sessionID", sessionID)
	}
}

func (s *Server) playerNames() map[string]string {
	players, err := s.Store.GetAllPlayers()
	if err != nil {
		log.Error("Failed to load players for notification", "error", err)
		return nil
	}
	names := make(map[string]string, len(players))
	for _, player := range players {
		names[player.ID] = player.Name
	}
	return names
}

func sessionID(r *http.Request) string {
	if id := r.URL.Query().Get("session"); id != "" {
		return id
	}
	return "default"
}

func slotParams(w http.ResponseWriter, r *http.Request) (int, courts.Team, int, bool) {
	courtIndex, err := strconv.Atoi(r.URL.Query().Get("court"))
	if err != nil {
		http.Error(w, "court must be an integer", http.StatusBadRequest)
		return 0, "", 0, false
	}
	team := courts.Team(r.URL.Query().Get("team"))
	if team != courts.TeamA && team != courts.TeamB {
		http.Error(w, "team must be A or B", http.StatusBadRequest)
		return 0, "", 0, false
	}
	slotIndex, err := strconv.Atoi(r.URL.Query().Get("slot"))
	if err != nil {
		http.Error(w, "slot must be an integer", http.StatusBadRequest)
		return 0, "", 0, false
	}
	return courtIndex, team, slotIndex, true
}

func courtParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	courtIndex, err := strconv.Atoi(r.URL.Query().Get("court"))
	if err != nil {
		http.Error(w, "court must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return courtIndex, true
}

func respondBoardChange(w http.ResponseWriter, board *courts.Board, changed bool) {
	respondJSON(w, http.StatusOK, struct {
		Changed bool                `json:"changed"`
		Courts  []courts.CourtState `json:"courts"`
	}{Changed: changed, Courts: board.States()})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func containsInt(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
