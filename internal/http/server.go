package http

import (
	"net/http"

	"github.com/pklbhq/courtside/internal/config"
	"github.com/pklbhq/courtside/internal/courts"
	"github.com/pklbhq/courtside/internal/metrics"
	"github.com/pklbhq/courtside/internal/notifier"
	"github.com/pklbhq/courtside/internal/processor"
	"github.com/pklbhq/courtside/internal/pubsub"
	"github.com/pklbhq/courtside/internal/recorder"
	"github.com/pklbhq/courtside/internal/session"
)

func NewServer(store session.SessionStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, recorderClient recorder.RecorderClient, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Recorder:       recorderClient,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
		boards:         make(map[string]*courts.Board),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.PlayersHandler(), paramsMiddleware))
	s.Router.Handle("/players/out", Chain(s.PlayerOutHandler(), paramsMiddleware))
	s.Router.Handle("/games", Chain(s.ListGamesHandler(), paramsMiddleware))
	s.Router.Handle("/games/record", Chain(s.RecordGameHandler(), paramsMiddleware))
	s.Router.Handle("/games/void", Chain(s.VoidGameHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/rotation/suggest", Chain(s.SuggestHandler(), paramsMiddleware))
	s.Router.Handle("/rotation/reshuffle", Chain(s.ReshuffleHandler(), paramsMiddleware))
	s.Router.Handle("/rotation/reselect", Chain(s.ReselectHandler(), paramsMiddleware))
	s.Router.Handle("/courts", Chain(s.CourtsHandler(), paramsMiddleware))
	s.Router.Handle("/courts/assign", Chain(s.AssignHandler(), paramsMiddleware))
	s.Router.Handle("/courts/clear", Chain(s.ClearSlotHandler(), paramsMiddleware))
	s.Router.Handle("/courts/lock", Chain(s.LockHandler(), paramsMiddleware))
	s.Router.Handle("/courts/resize", Chain(s.ResizeHandler(), paramsMiddleware))
	s.Router.Handle("/courts/start", Chain(s.StartCourtHandler(), paramsMiddleware))
	s.Router.Handle("/process", Chain(s.ProcessGamesHandler(), paramsMiddleware))
	s.Router.Handle("/update-player-stats", Chain(s.UpdatePlayerStatsHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
