package http

import (
	"net/http"
	"sync"

	"github.com/pklbhq/courtside/internal/config"
	"github.com/pklbhq/courtside/internal/courts"
	"github.com/pklbhq/courtside/internal/metrics"
	"github.com/pklbhq/courtside/internal/notifier"
	"github.com/pklbhq/courtside/internal/processor"
	"github.com/pklbhq/courtside/internal/pubsub"
	"github.com/pklbhq/courtside/internal/recorder"
	"github.com/pklbhq/courtside/internal/session"
)

type Server struct {
	Store          session.SessionStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Recorder       recorder.RecorderClient
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient

	// Court boards are in-memory per session, loaded lazily from the store
	// snapshot and persisted back after every mutation.
	mu     sync.Mutex
	boards map[string]*courts.Board
}
