package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the Prometheus instruments for the server. A nil
// *Metrics is valid and records nothing, which keeps tests free of registry
// bookkeeping.
type Metrics struct {
	registry        *prometheus.Registry
	ticksTotal      prometheus.Counter
	tickDuration    prometheus.Histogram
	sessionsActive  prometheus.Gauge
	broadcastBytes  prometheus.Counter
	telemetryErrors prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_ticks_total",
			Help: "Number of world ticks integrated",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sim_tick_duration_seconds",
			Help:    "Time spent integrating one world tick",
			Buckets: prometheus.DefBuckets,
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Number of open websocket sessions",
		}),
		broadcastBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_bytes_total",
			Help: "Bytes of state frames written to clients",
		}),
		telemetryErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "telemetry_publish_errors_total",
			Help: "Telemetry batches dropped after a publish failure",
		}),
	}
	m.registry.MustRegister(
		m.ticksTotal,
		m.tickDuration,
		m.sessionsActive,
		m.broadcastBytes,
		m.telemetryErrors,
	)
	return m
}

// Handler serves the metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveTick(d time.Duration) {
	if m == nil {
		return
	}
	m.ticksTotal.Inc()
	m.tickDuration.Observe(d.Seconds())
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessionsActive.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}

func (m *Metrics) ObserveBroadcast(bytes int) {
	if m == nil {
		return
	}
	m.broadcastBytes.Add(float64(bytes))
}

func (m *Metrics) TelemetryError() {
	if m == nil {
		return
	}
	m.telemetryErrors.Inc()
}
