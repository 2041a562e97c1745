package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	dispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "actionhttp",
			Subsystem: "dispatch",
			Name:      "total",
			Help:      "Total action dispatches by terminal status.",
		},
		[]string{"action", "status"},
	)
	dispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "actionhttp",
			Subsystem: "dispatch",
			Name:      "duration_seconds",
			Help:      "Action dispatch duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"action", "status"},
	)
	progressEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "actionhttp",
			Subsystem: "dispatch",
			Name:      "progress_events_total",
			Help:      "Progress callbacks delivered after throttling.",
		},
		[]string{"action"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "actionhttp",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests served.",
		},
		[]string{"app", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "actionhttp",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"app", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(dispatches, dispatchDuration, progressEvents, httpRequests, httpDuration)
	})
}

func RecordDispatch(actionKind, status string, duration time.Duration) {
	RegisterMetrics()
	dispatches.WithLabelValues(actionKind, status).Inc()
	dispatchDuration.WithLabelValues(actionKind, status).Observe(duration.Seconds())
}

func RecordProgressEvent(actionKind string) {
	RegisterMetrics()
	progressEvents.WithLabelValues(actionKind).Inc()
}

func RecordHTTPRequest(app, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(app, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(app, method, path, statusLabel).Observe(duration.Seconds())
}
