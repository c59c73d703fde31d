package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stonino"

var (
	ScansRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_recorded_total",
		Help:      "RFID scans stored by the API.",
	})

	LiveFeedQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "live_feed_queries_total",
		Help:      "Live attendance feed queries by mode (full or incremental).",
	}, []string{"mode"})

	SSESubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sse_subscribers",
		Help:      "Open server-sent event streams.",
	})

	MonitorPolls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "monitor_polls_total",
		Help:      "Polls issued by the live monitor by result (ok, empty, error, discarded).",
	}, []string{"result"})

	MonitorFlashes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "monitor_flashes_total",
		Help:      "Flash cycles started by the live monitor.",
	})
)

const (
	ModeFull        = "full"
	ModeIncremental = "incremental"
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// SetSSESubscribers matches the sse.Hub subscriber hook signature.
func SetSSESubscribers(total int) {
	SSESubscribers.Set(float64(total))
}
