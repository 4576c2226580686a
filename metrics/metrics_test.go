package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFetch(t *testing.T) {
	m := New()
	m.ObserveFetch(OutcomeSuccess, 10*time.Millisecond)
	m.ObserveFetch(OutcomeSuccess, 20*time.Millisecond)
	m.ObserveFetch(OutcomeRejected, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetches.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetches.WithLabelValues(OutcomeRejected)))
}

func TestMountedGauge(t *testing.T) {
	m := New()
	m.Mounted()
	m.Mounted()
	m.Unmounted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mounted))
}

func TestRequestLifecycle(t *testing.T) {
	m := New()
	m.RequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))
	m.RequestFinished(http.MethodGet, "/", "200", time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/", "200")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RequestStarted()
		m.RequestFinished(http.MethodGet, "/", "200", time.Millisecond)
		m.ObserveFetch(OutcomeTransport, time.Millisecond)
		m.Mounted()
		m.Unmounted()
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveFetch(OutcomeCanceled, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `marketplace_collections_fetches_total{outcome="canceled"} 1`)
}
