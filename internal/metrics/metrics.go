package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы PATCH для счетчика pereval_updates_total
const (
	OutcomeOK       = "ok"
	OutcomeLocked   = "locked"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics держит свой реестр: несколько роутеров в одном процессе (тесты) не конфликтуют
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	submitted     prometheus.Counter
	submitFailed  prometheus.Counter
	updates       *prometheus.CounterVec
	statusChanges *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fstr",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fstr",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fstr",
			Name:      "perevals_submitted_total",
			Help:      "Pereval records committed by the submission transaction.",
		}),
		submitFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fstr",
			Name:      "perevals_submit_failures_total",
			Help:      "Submission transactions rolled back on a store failure.",
		}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fstr",
			Name:      "pereval_updates_total",
			Help:      "Update attempts by outcome.",
		}, []string{"outcome"}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fstr",
			Name:      "pereval_status_changes_total",
			Help:      "Moderation status changes by target status.",
		}, []string{"status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.submitted,
		m.submitFailed,
		m.updates,
		m.statusChanges,
	)
	return m
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(route, method, code string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, code).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(seconds)
}

func (m *Metrics) PerevalSubmitted() {
	if m == nil {
		return
	}
	m.submitted.Inc()
}

func (m *Metrics) PerevalSubmitFailed() {
	if m == nil {
		return
	}
	m.submitFailed.Inc()
}

func (m *Metrics) PerevalUpdate(outcome string) {
	if m == nil {
		return
	}
	m.updates.WithLabelValues(outcome).Inc()
}

func (m *Metrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status).Inc()
}
