package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	transitions   *prometheus.CounterVec
	conflicts     prometheus.Counter
	slotRequests  *prometheus.CounterVec
	purgedRecords prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_transitions_total",
				Help: "Successful booking lifecycle transitions",
			},
			[]string{"action"},
		),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Commits rejected because the interval was taken",
		}),
		slotRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_requests_total",
				Help: "Candidate slot lookups by outcome",
			},
			[]string{"outcome"},
		),
		purgedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bookings_purged_total",
			Help: "Bookings removed by the administrative purge",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.transitions,
		m.conflicts,
		m.slotRequests,
		m.purgedRecords,
	)
	return m
}

func (m *Metrics) Transition(action string) {
	m.transitions.WithLabelValues(action).Inc()
}

func (m *Metrics) Conflict() {
	m.conflicts.Inc()
}

func (m *Metrics) SlotLookup(outcome string) {
	m.slotRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Purged(n int) {
	m.purgedRecords.Add(float64(n))
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
