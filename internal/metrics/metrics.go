// Package metrics owns the Prometheus collectors of the service. Collectors
// live on a private registry so tests can build as many as they need.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	intakes       *prometheus.CounterVec
	notifications *prometheus.CounterVec
	assistant     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seniorcare",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "seniorcare",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		intakes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seniorcare",
			Name:      "intakes_recorded_total",
			Help:      "MarkTaken outcomes.",
		}, []string{"result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seniorcare",
			Name:      "notifications_total",
			Help:      "Notification delivery attempts by channel and status.",
		}, []string{"channel", "status"}),
		assistant: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seniorcare",
			Name:      "assistant_replies_total",
			Help:      "Assistant replies by provider and outcome.",
		}, []string{"provider", "outcome"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.latency, m.intakes, m.notifications, m.assistant,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// The recording methods are no-ops on a nil *Metrics.

func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Intake results: "taken", "rejected".
func (m *Metrics) IncIntake(result string) {
	if m == nil {
		return
	}
	m.intakes.WithLabelValues(result).Inc()
}

func (m *Metrics) IncNotification(channel, status string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(channel, status).Inc()
}

func (m *Metrics) IncAssistant(provider, outcome string) {
	if m == nil {
		return
	}
	m.assistant.WithLabelValues(provider, outcome).Inc()
}
