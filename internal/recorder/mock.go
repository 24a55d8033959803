package recorder

import (
	"sync"

	"github.com/pklbhq/courtside/internal/rotation"
)

// MockClient is a mock implementation of the RecorderClient interface for
// testing. It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	RecordGameFunc        func(submission *GameSubmission) (*RecordOutcome, error)
	InitCourtsFunc        func(sessionID string, courtCount int) error
	PersistAssignmentFunc func(sessionID string, assignment rotation.CourtAssignment) error
	StartCourtFunc        func(sessionID string, courtIndex int) error
	SetPlayerOutFunc      func(sessionID, playerID string, out bool) error

	// Call records
	RecordGameCalls        []*GameSubmission
	InitCourtsCalls        []int
	PersistAssignmentCalls []rotation.CourtAssignment
	StartCourtCalls        []int
	SetPlayerOutCalls      []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) RecordGame(submission *GameSubmission) (*RecordOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordGameCalls = append(m.RecordGameCalls, submission)
	if m.RecordGameFunc != nil {
		return m.RecordGameFunc(submission)
	}
	return &RecordOutcome{Status: StatusRecorded, GameID: "mock-game"}, nil
}

func (m *MockClient) InitCourts(sessionID string, courtCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitCourtsCalls = append(m.InitCourtsCalls, courtCount)
	if m.InitCourtsFunc != nil {
		return m.InitCourtsFunc(sessionID, courtCount)
	}
	return nil
}

func (m *MockClient) PersistAssignment(sessionID string, assignment rotation.CourtAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistAssignmentCalls = append(m.PersistAssignmentCalls, assignment)
	if m.PersistAssignmentFunc != nil {
		return m.PersistAssignmentFunc(sessionID, assignment)
	}
	return nil
}

func (m *MockClient) StartCourt(sessionID string, courtIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartCourtCalls = append(m.StartCourtCalls, courtIndex)
	if m.StartCourtFunc != nil {
		return m.StartCourtFunc(sessionID, courtIndex)
	}
	return nil
}

func (m *MockClient) SetPlayerOut(sessionID, playerID string, out bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetPlayerOutCalls = append(m.SetPlayerOutCalls, playerID)
	if m.SetPlayerOutFunc != nil {
		return m.SetPlayerOutFunc(sessionID, playerID, out)
	}
	return nil
}
