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

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/todos", http.StatusOK, 20*time.Millisecond)
	m.ObserveAIRequest("breakdown", OutcomeSuccess, time.Second)
	m.ObserveAIRequest("breakdown", OutcomeTimeout, 30*time.Second)
	m.ObserveCacheResult("hit")
	m.ObserveCacheResult("hit")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/v1/todos", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiRequests.WithLabelValues("breakdown", OutcomeTimeout)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("hit")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ai_requests_total")
	assert.Contains(t, rec.Body.String(), "analytics_cache_requests_total")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
		m.ObserveAIRequest("suggestions", OutcomeError, time.Millisecond)
		m.ObserveCacheResult("miss")
	})
}
