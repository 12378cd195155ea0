package observability

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: prometheus/promauto registers metrics globally, so we need to use
// unique namespaces per test to avoid registration conflicts.

func TestNewMetrics(t *testing.T) {
	m := NewMetrics("test_papersearch_new")

	assert.NotNil(t, m.SearchesTotal)
	assert.NotNil(t, m.SearchesFailed)
	assert.NotNil(t, m.SearchDuration)
	assert.NotNil(t, m.PapersReturned)
	assert.NotNil(t, m.ProviderRequestsTotal)
	assert.NotNil(t, m.ProviderRequestsFailed)
	assert.NotNil(t, m.ProviderRequestDuration)
	assert.NotNil(t, m.QueryLogWrites)
	assert.NotNil(t, m.QueryLogWriteFailures)
}

func TestRecordSearch(t *testing.T) {
	m := NewMetrics("test_record_search")

	m.RecordSearch("relevance", 25, 0.3)
	m.RecordSearch("relevance", 10, 0.2)
	m.RecordSearch("open_access", 5, 0.1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("relevance")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("open_access")))

	count, err := getHistogramSampleCount(m.SearchDuration)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestRecordSearchFailed(t *testing.T) {
	m := NewMetrics("test_record_search_failed")

	m.RecordSearchFailed("best_match", "provider_unavailable")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("best_match")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesFailed.WithLabelValues("best_match", "provider_unavailable")))
}

func TestRecordProviderRequest(t *testing.T) {
	m := NewMetrics("test_record_provider")

	m.RecordProviderRequest("works", 0.25, false)
	m.RecordProviderRequest("works", 0.5, true)
	m.RecordProviderRequest("authors", 0.1, false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProviderRequestsTotal.WithLabelValues("works")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequestsFailed.WithLabelValues("works")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequestsTotal.WithLabelValues("authors")))
}

func TestRecordQueryLogWrite(t *testing.T) {
	m := NewMetrics("test_record_querylog")

	m.RecordQueryLogWrite(nil)
	m.RecordQueryLogWrite(errors.New("connection refused"))
	m.RecordQueryLogWrite(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.QueryLogWrites))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueryLogWriteFailures))
}

// getHistogramSampleCount extracts the sample count from a histogram metric.
func getHistogramSampleCount(h prometheus.Histogram) (uint64, error) {
	var metric dto.Metric
	if err := h.Write(&metric); err != nil {
		return 0, err
	}
	if metric.Histogram == nil {
		return 0, errors.New("metric is not a histogram")
	}
	return metric.Histogram.GetSampleCount(), nil
}
