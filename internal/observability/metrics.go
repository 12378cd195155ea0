package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the paper search service.
// Counters and histograms are registered via promauto for automatic
// registration with the default Prometheus registry.
type Metrics struct {
	// SearchesTotal counts search requests, labeled by ranking mode.
	SearchesTotal *prometheus.CounterVec

	// SearchesFailed counts failed search requests, labeled by ranking mode
	// and error type (invalid_argument, provider_unavailable).
	SearchesFailed *prometheus.CounterVec

	// SearchDuration observes end-to-end search request duration in seconds.
	SearchDuration prometheus.Histogram

	// PapersReturned observes the number of papers returned per search.
	PapersReturned prometheus.Histogram

	// ProviderRequestsTotal counts requests to the metadata provider,
	// labeled by endpoint (works, authors).
	ProviderRequestsTotal *prometheus.CounterVec

	// ProviderRequestsFailed counts failed provider requests by endpoint.
	ProviderRequestsFailed *prometheus.CounterVec

	// ProviderRequestDuration observes provider request duration in seconds
	// by endpoint.
	ProviderRequestDuration *prometheus.HistogramVec

	// QueryLogWrites counts successful query log inserts.
	QueryLogWrites prometheus.Counter

	// QueryLogWriteFailures counts swallowed query log insert failures.
	QueryLogWriteFailures prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SearchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of search requests by ranking mode",
		}, []string{"mode"}),
		SearchesFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_failed_total",
			Help:      "Total number of failed search requests by ranking mode and error type",
		}, []string{"mode", "error_type"}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of search requests in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		PapersReturned: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "papers_returned",
			Help:      "Number of papers returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50},
		}),
		ProviderRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Total number of requests to the metadata provider by endpoint",
		}, []string{"endpoint"}),
		ProviderRequestsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_failed_total",
			Help:      "Total number of failed provider requests by endpoint",
		}, []string{"endpoint"}),
		ProviderRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of provider requests in seconds by endpoint",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		QueryLogWrites: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_log_writes_total",
			Help:      "Total number of query log entries written",
		}),
		QueryLogWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_log_write_failures_total",
			Help:      "Total number of query log writes that failed and were swallowed",
		}),
	}
}

// RecordSearch records a completed search request.
func (m *Metrics) RecordSearch(mode string, papers int, durationSeconds float64) {
	m.SearchesTotal.WithLabelValues(mode).Inc()
	m.PapersReturned.Observe(float64(papers))
	m.SearchDuration.Observe(durationSeconds)
}

// RecordSearchFailed records a failed search request.
func (m *Metrics) RecordSearchFailed(mode, errorType string) {
	m.SearchesTotal.WithLabelValues(mode).Inc()
	m.SearchesFailed.WithLabelValues(mode, errorType).Inc()
}

// RecordProviderRequest records one request to the metadata provider.
func (m *Metrics) RecordProviderRequest(endpoint string, durationSeconds float64, failed bool) {
	m.ProviderRequestsTotal.WithLabelValues(endpoint).Inc()
	m.ProviderRequestDuration.WithLabelValues(endpoint).Observe(durationSeconds)
	if failed {
		m.ProviderRequestsFailed.WithLabelValues(endpoint).Inc()
	}
}

// RecordQueryLogWrite records the outcome of a query log insert.
func (m *Metrics) RecordQueryLogWrite(err error) {
	if err != nil {
		m.QueryLogWriteFailures.Inc()
		return
	}
	m.QueryLogWrites.Inc()
}
