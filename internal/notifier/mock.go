package notifier

import (
	"sync"

	"github.com/pklbhq/courtside/internal/rotation"
	"github.com/pklbhq/courtside/internal/session"
)

// MockNotifier is a mock implementation of the Notifier interface for
// testing. It is safe for concurrent use.
type MockNotifier struct {
	mu sync.Mutex

	// Spies for method calls
	SendSlateNotificationFunc  func(slate *rotation.Slate, skippedLocked []int, playerNames map[string]string, dryRun bool) error
	SendResultNotificationFunc func(game *session.GameRecord, playerNames map[string]string, dryRun bool) error
	SendDuplicateWarningFunc   func(duplicateOf string, dryRun bool) error

	// Call records
	SlateCalls     []*rotation.Slate
	ResultCalls    []*session.GameRecord
	DuplicateCalls []string
}

var _ Notifier = (*MockNotifier)(nil)

// NewMockNotifier creates a new mock instance.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) SendSlateNotification(slate *rotation.Slate, skippedLocked []int, playerNames map[string]string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlateCalls = append(m.SlateCalls, slate)
	if m.SendSlateNotificationFunc != nil {
		return m.SendSlateNotificationFunc(slate, skippedLocked, playerNames, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendResultNotification(game *session.GameRecord, playerNames map[string]string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResultCalls = append(m.ResultCalls, game)
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(game, playerNames, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendDuplicateWarning(duplicateOf string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicateCalls = append(m.DuplicateCalls, duplicateOf)
	if m.SendDuplicateWarningFunc != nil {
		return m.SendDuplicateWarningFunc(duplicateOf, dryRun)
	}
	return nil
}
