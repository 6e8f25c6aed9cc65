package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionsProcessed *prometheus.CounterVec
	transactionDuration   prometheus.Histogram
	transactionAmount     *prometheus.HistogramVec
	accountsCreatedTotal  *prometheus.CounterVec
	activeAccountsTotal   prometheus.Gauge
	feesCollectedTotal    prometheus.Counter
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		transactionsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_transactions_total",
				Help: "Total number of transactions processed",
			},
			[]string{"operation", "status"},
		),
		transactionDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bank_transaction_duration_milliseconds",
				Help:    "Transaction processing duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		transactionAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bank_transaction_amount",
				Help:    "Transaction amount in base currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
			[]string{"operation"},
		),
		accountsCreatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_accounts_created_total",
				Help: "Total number of accounts created",
			},
			[]string{"account_type"},
		),
		activeAccountsTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "bank_active_accounts_total",
				Help: "Current number of active accounts",
			},
		),
		feesCollectedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bank_fees_collected_total",
				Help: "Total fees collected in base currency units",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "transaction.processed":
		m.transactionsProcessed.WithLabelValues(tags["operation"], tags["status"]).Inc()
	case "account.created":
		m.accountsCreatedTotal.WithLabelValues(tags["account_type"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "transaction.processing":
		m.transactionDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "transaction_amount":
		m.transactionAmount.WithLabelValues(tags["operation"]).Observe(value)
	case "fees_collected":
		m.feesCollectedTotal.Add(value)
	case "active_accounts":
		m.activeAccountsTotal.Set(value)
	}
}
