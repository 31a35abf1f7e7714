// Package metrics exposes prometheus collectors for question generation and
// the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/mathaxy/internal/questiongen"
)

// Metrics holds the collectors and the registry they are registered on.
type Metrics struct {
	Registry *prometheus.Registry

	GeneratedSets     *prometheus.CounterVec
	GenerationOutcome *prometheus.CounterVec
	FillAttempts      *prometheus.HistogramVec
	RequestCounter    *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

// New creates and registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		GeneratedSets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mathaxy_question_sets_total",
				Help: "Total number of generated question sets",
			},
			[]string{"level"},
		),
		GenerationOutcome: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mathaxy_question_set_path_total",
				Help: "Generated question sets by the phase that completed them",
			},
			[]string{"path"},
		),
		FillAttempts: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mathaxy_fill_attempts",
				Help:    "Random probes spent filling a question set",
				Buckets: []float64{10, 25, 50, 100, 250, 1000, 10000},
			},
			[]string{"level"},
		),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"method", "endpoint"},
		),
	}
	m.Registry.MustRegister(
		m.GeneratedSets,
		m.GenerationOutcome,
		m.FillAttempts,
		m.RequestCounter,
		m.RequestDuration,
	)
	return m
}

// Generation paths.
const (
	PathRandom   = "random"
	PathRelaxed  = "relaxed"
	PathFallback = "fallback"
)

// ObserveGeneration implements questiongen.Observer.
func (m *Metrics) ObserveGeneration(r questiongen.Report) {
	level := strconv.Itoa(r.Level)
	m.GeneratedSets.WithLabelValues(level).Inc()
	m.FillAttempts.WithLabelValues(level).Observe(float64(r.Attempts))

	path := PathRandom
	switch {
	case r.Fallback:
		path = PathFallback
	case r.Relaxed:
		path = PathRelaxed
	}
	m.GenerationOutcome.WithLabelValues(path).Inc()
}

// Middleware records request counts and latency per route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
