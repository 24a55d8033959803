package metrics

import "sync"

// MockMetrics is a no-op Metrics implementation that counts calls for tests.
type MockMetrics struct {
	mu sync.Mutex

	SuggestionsComputed int
	GamesRecorded       int
	DuplicatesFlagged   int
	RecordingDurations  []float64
	SlackNotifSent      int
	SlackNotifFailed    int
	StartupTime         float64
}

var _ Metrics = (*MockMetrics)(nil)

// NewMockMetrics creates a new mock instance.
func NewMockMetrics() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncSuggestionsComputed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuggestionsComputed++
}

func (m *MockMetrics) IncGamesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GamesRecorded++
}

func (m *MockMetrics) IncDuplicatesFlagged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFlagged++
}

func (m *MockMetrics) ObserveRecordingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordingDurations = append(m.RecordingDurations, duration)
}

func (m *MockMetrics) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifSent++
}

func (m *MockMetrics) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifFailed++
}

func (m *MockMetrics) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTime = duration
}
