package session

import (
	"sync"

	"github.com/pklbhq/courtside/internal/courts"
)

// MockStore is a mock implementation of the SessionStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetAllPlayersFunc          func() ([]PlayerInfo, error)
	GetActivePlayerIDsFunc     func() ([]string, error)
	GetGamesFunc               func() ([]GameRecord, error)
	GetGamesForProcessingFunc  func() ([]*GameRecord, error)
	GetPlayerStatsFunc         func() ([]PlayerStats, error)
	InsertGameFunc             func(game *GameRecord) error
	VoidGameFunc               func(gameID string) error
	SetPlayerActiveFunc        func(playerID string, active bool) error
	UpsertPlayersFunc          func(players []PlayerInfo) error
	LoadCourtSnapshotFunc      func(sessionID string) ([]courts.CourtState, error)
	SaveCourtSnapshotFunc      func(sessionID string, states []courts.CourtState) error
	UpdateProcessingStatusFunc func(gameID string, status ProcessingStatus) error

	// Call records
	AddPlayerCalls              []PlayerInfo
	InsertGameCalls             []*GameRecord
	VoidGameCalls               []string
	SetPlayerActiveCalls        []string
	UpdatePlayerStatsCalls      []*GameRecord
	UpdateProcessingStatusCalls []string
	SaveCourtSnapshotCalls      []string
	ClearCalls                  int
}

// NewMockStore creates a new mock instance.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) AddPlayer(playerID, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, PlayerInfo{ID: playerID, Name: name, Active: true})
}

func (m *MockStore) UpsertPlayers(players []PlayerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) SetPlayerActive(playerID string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetPlayerActiveCalls = append(m.SetPlayerActiveCalls, playerID)
	if m.SetPlayerActiveFunc != nil {
		return m.SetPlayerActiveFunc(playerID, active)
	}
	return nil
}

func (m *MockStore) GetAllPlayers() ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) GetActivePlayerIDs() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetActivePlayerIDsFunc != nil {
		return m.GetActivePlayerIDsFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, call := range m.AddPlayerCalls {
		if call.ID == playerID {
			return true
		}
	}
	return false
}

func (m *MockStore) InsertGame(game *GameRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertGameCalls = append(m.InsertGameCalls, game)
	if m.InsertGameFunc != nil {
		return m.InsertGameFunc(game)
	}
	return nil
}

func (m *MockStore) VoidGame(gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VoidGameCalls = append(m.VoidGameCalls, gameID)
	if m.VoidGameFunc != nil {
		return m.VoidGameFunc(gameID)
	}
	return nil
}

func (m *MockStore) GetGames() ([]GameRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetGamesFunc != nil {
		return m.GetGamesFunc()
	}
	return nil, nil
}

func (m *MockStore) GetGamesForProcessing() ([]*GameRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetGamesForProcessingFunc != nil {
		return m.GetGamesForProcessingFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateProcessingStatus(gameID string, status ProcessingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateProcessingStatusCalls = append(m.UpdateProcessingStatusCalls, gameID+":"+string(status))
	if m.UpdateProcessingStatusFunc != nil {
		return m.UpdateProcessingStatusFunc(gameID, status)
	}
	return nil
}

func (m *MockStore) UpdatePlayerStats(game *GameRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdatePlayerStatsCalls = append(m.UpdatePlayerStatsCalls, game)
}

func (m *MockStore) GetPlayerStats() ([]PlayerStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerStatsFunc != nil {
		return m.GetPlayerStatsFunc()
	}
	return nil, nil
}

func (m *MockStore) SaveCourtSnapshot(sessionID string, states []courts.CourtState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCourtSnapshotCalls = append(m.SaveCourtSnapshotCalls, sessionID)
	if m.SaveCourtSnapshotFunc != nil {
		return m.SaveCourtSnapshotFunc(sessionID, states)
	}
	return nil
}

func (m *MockStore) LoadCourtSnapshot(sessionID string) ([]courts.CourtState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadCourtSnapshotFunc != nil {
		return m.LoadCourtSnapshotFunc(sessionID)
	}
	return nil, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
}
