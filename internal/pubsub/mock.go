package pubsub

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// MockClient is a mock implementation of the PubSubClient interface for
// testing. Published messages are retained in-memory instead of leaving the
// process.
type MockClient struct {
	mu sync.Mutex

	SendMessageFunc func(topic string, data any) error

	// Call records
	SentMessages map[string][]any
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{SentMessages: make(map[string][]any)}
}

func (m *MockClient) SendMessage(topic string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentMessages[topic] = append(m.SentMessages[topic], data)
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(topic, data)
	}
	return nil
}

func (m *MockClient) ProcessMessage(data []byte, returnValue any) error {
	return msgpack.Unmarshal(data, returnValue)
}
