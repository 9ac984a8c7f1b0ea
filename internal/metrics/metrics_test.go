package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.PerevalSubmitted()
	m.PerevalSubmitted()
	m.PerevalUpdate(OutcomeLocked)
	m.PerevalUpdate(OutcomeOK)
	m.PerevalUpdate(OutcomeOK)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submitted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.updates.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.updates.WithLabelValues(OutcomeLocked)))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.PerevalSubmitted()
		m.PerevalUpdate(OutcomeError)
		m.ObserveRequest("/submitData/", http.MethodGet, "200", 0.1)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRequest("/submitData/", http.MethodPost, "201", 0.05)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fstr_http_requests_total{code="201",method="POST",route="/submitData/"} 1`)
}
