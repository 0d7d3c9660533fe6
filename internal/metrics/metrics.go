package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "trackease",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests by handler, method and status.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"handler", "method", "status"},
	)

	actionsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trackease",
			Subsystem: "operator",
			Name:      "actions_total",
			Help:      "Operator actions processed by action and outcome.",
		},
		[]string{"action", "outcome"},
	)
)

func ObserveRequest(handler, method string, status int, elapsed time.Duration) {
	requestDuration.WithLabelValues(handler, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func ObserveAction(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	actionsProcessed.WithLabelValues(action, outcome).Inc()
}
