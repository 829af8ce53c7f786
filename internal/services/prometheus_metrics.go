package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	refreshesTotal      *prometheus.CounterVec
	refreshDuration     prometheus.Histogram
	accountsNormalized  *prometheus.CounterVec
	malformedPayloads   *prometheus.CounterVec
	transfersTotal      *prometheus.CounterVec
	transferDuration    prometheus.Histogram
	transferAmount      prometheus.Histogram
	autopayRunsTotal    *prometheus.CounterVec
	circuitBreakerState *prometheus.GaugeVec
	totalBudget         prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		refreshesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aggregation_refreshes_total",
				Help: "Total number of aggregation refresh passes",
			},
			[]string{"status"},
		),
		refreshDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "aggregation_refresh_duration_milliseconds",
				Help:    "Aggregation refresh duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
		),
		accountsNormalized: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_normalized_total",
				Help: "Total number of canonical accounts produced per provider",
			},
			[]string{"provider"},
		),
		malformedPayloads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "malformed_payloads_total",
				Help: "Total number of provider payloads with no recognizable shape",
			},
			[]string{"provider"},
		),
		transfersTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfers_total",
				Help: "Total number of transfers processed",
			},
			[]string{"status", "destination"},
		),
		transferDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transfer_duration_milliseconds",
				Help:    "Transfer processing duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		transferAmount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transfer_amount",
				Help:    "Transfer amount in currency major units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
		autopayRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autopay_runs_total",
				Help: "Total number of auto-transfer rule executions",
			},
			[]string{"status"},
		),
		circuitBreakerState: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "provider_circuit_breaker_state",
				Help: "Circuit breaker state per provider (0=closed, 1=open, 2=half-open)",
			},
			[]string{"provider"},
		),
		totalBudget: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "total_budget",
				Help: "Sum of all tracked balances in currency major units",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	provider := tags["provider"]
	status := tags["status"]

	switch name {
	case "aggregation.refresh":
		m.refreshesTotal.WithLabelValues(status).Inc()
	case "normalizer.accounts":
		m.accountsNormalized.WithLabelValues(provider).Inc()
	case "normalizer.malformed":
		m.malformedPayloads.WithLabelValues(provider).Inc()
	case "transfers":
		m.transfersTotal.WithLabelValues(status, tags["destination"]).Inc()
	case "autopay.run":
		m.autopayRunsTotal.WithLabelValues(status).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "aggregation.refresh":
		m.refreshDuration.Observe(float64(duration.Milliseconds()))
	case "transfer":
		m.transferDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "transfer_amount":
		m.transferAmount.Observe(value)
	case "total_budget":
		m.totalBudget.Set(value)
	case "circuit_breaker_state":
		if provider := tags["provider"]; provider != "" {
			m.circuitBreakerState.WithLabelValues(provider).Set(value)
		}
	}
}

// NoopMetrics is used where metric collection is not wired, e.g. tests
type NoopMetrics struct{}

func (NoopMetrics) IncrementCounter(string, map[string]string)     {}
func (NoopMetrics) RecordProcessingTime(string, time.Duration)     {}
func (NoopMetrics) RecordGauge(string, float64, map[string]string) {}
