package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds the Prometheus collectors for the application.
type Service struct {
	SuggestionsComputed prometheus.Counter
	GamesRecorded       prometheus.Counter
	DuplicatesFlagged   prometheus.Counter
	RecordingDuration   prometheus.Histogram
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
