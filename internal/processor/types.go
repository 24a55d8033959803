package processor

import (
	"github.com/pklbhq/courtside/internal/metrics"
	"github.com/pklbhq/courtside/internal/pubsub"
)

// Processor handles the business logic of processing recorded games.
type Processor struct {
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
}
