package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments exposed on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	CounterRequests    *prometheus.CounterVec
	HistRequestSeconds *prometheus.HistogramVec
	CounterExecutions  prometheus.Counter
}

// NewMetrics creates a registry with runtime collectors plus the server's
// own instruments.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "liftlog",
			Subsystem: "server",
			Name:      "requests_total",
			Help:      "Incoming HTTP requests by method and status.",
		}, []string{"method", "status"}),
		HistRequestSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "liftlog",
			Subsystem: "server",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		CounterExecutions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "liftlog",
			Subsystem: "server",
			Name:      "executions_recorded_total",
			Help:      "Set executions recorded via the write path.",
		}),
	}
}

// Instrument counts and times every request.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		m.CounterRequests.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
		m.HistRequestSeconds.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
