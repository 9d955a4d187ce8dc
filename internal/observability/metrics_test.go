package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/kurier-app/kurier/testing"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	res := httptest.NewRecorder()
	m.Handler().ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, res.Code)
	return res.Body.String()
}

func TestMiddlewareCountsRequests(t *testing.T) {
	m := NewMetrics()
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/restaurants", nil))

	body := scrape(t, m)
	assert.Contains(t, body, `kurier_http_requests_total{code="418",route="unknown"} 1`)
}

func TestSweepCounters(t *testing.T) {
	m := NewMetrics()
	m.SweepCompleted(3, 1)
	m.SweepCompleted(0, 0)
	m.SweepSkipped()

	body := scrape(t, m)
	assert.Contains(t, body, "kurier_promotion_sweeps_total 2")
	assert.Contains(t, body, "kurier_promotions_expired_total 3")
	assert.Contains(t, body, "kurier_promotion_sweep_row_failures_total 1")
	assert.Contains(t, body, "kurier_promotion_sweeps_skipped_total 1")
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.SweepCompleted(1, 1)
	m.SweepSkipped()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	res := httptest.NewRecorder()
	m.Middleware(next).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, res.Code)

	res = httptest.NewRecorder()
	m.Handler().ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
	assert.True(t, strings.Contains(res.Body.String(), http.StatusText(http.StatusServiceUnavailable)))
}
