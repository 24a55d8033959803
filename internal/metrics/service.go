package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SuggestionsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_suggestions_computed_total",
			Help: "The total number of rotation slates computed (suggest, reshuffle and reselect).",
		}),
		GamesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_games_recorded_total",
			Help: "The total number of games successfully recorded through the backend.",
		}),
		DuplicatesFlagged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_duplicates_flagged_total",
			Help: "The total number of submissions the backend flagged as possible duplicates.",
		}),
		RecordingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "courtside_recording_duration_seconds",
			Help:    "The duration of individual game recording round trips.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtside_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SuggestionsComputed,
		s.GamesRecorded,
		s.DuplicatesFlagged,
		s.RecordingDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSuggestionsComputed() {
	s.SuggestionsComputed.Inc()
}

func (s *Service) IncGamesRecorded() {
	s.GamesRecorded.Inc()
}

func (s *Service) IncDuplicatesFlagged() {
	s.DuplicatesFlagged.Inc()
}

func (s *Service) ObserveRecordingDuration(duration float64) {
	s.RecordingDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
