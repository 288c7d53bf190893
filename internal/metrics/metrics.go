// Package metrics provides Prometheus metrics for blogflow.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "blogflow"

type Metrics struct {
	registry *prometheus.Registry

	// GenerationsTotal counts pipeline runs by outcome ("success" or the failed stage).
	GenerationsTotal *prometheus.CounterVec
	// StageDuration measures each pipeline stage.
	StageDuration *prometheus.HistogramVec
	// InFlight tracks running pipelines.
	InFlight prometheus.Gauge
	// HTTPRequestsTotal counts requests by route pattern, method and status.
	HTTPRequestsTotal *prometheus.CounterVec
}

// New registers all collectors on a fresh registry together with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		GenerationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Total number of blog generation attempts",
			},
			[]string{"outcome"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of generation pipeline stages in seconds",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"stage", "status"},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "generations_in_flight",
				Help:      "Number of generation pipelines currently running",
			},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "code"},
		),
	}
}

// ObserveStage records how long a pipeline stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.StageDuration.WithLabelValues(stage, status).Observe(d.Seconds())
}

// RecordGeneration records the final outcome of a pipeline run.
func (m *Metrics) RecordGeneration(outcome string) {
	m.GenerationsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PipelineStarted() { m.InFlight.Inc() }
func (m *Metrics) PipelineFinished() { m.InFlight.Dec() }

func (m *Metrics) RecordRequest(route, method string, code int) {
	m.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
