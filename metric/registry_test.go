package metric

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	r := NewRegistry("hostweaver", WithoutRuntimeMetrics())

	r.ObserveRequest(http.MethodGet, "GET /hostinfo", http.StatusOK, 5*time.Millisecond)
	r.ObserveRequest(http.MethodGet, "GET /hostinfo", http.StatusOK, 7*time.Millisecond)
	r.ObserveRequest(http.MethodGet, "GET /hostinfo", http.StatusInternalServerError, time.Millisecond)
	r.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(r.requests.WithLabelValues("GET", "GET /hostinfo", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.requests.WithLabelValues("GET", "GET /hostinfo", "500")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.requests.WithLabelValues("GET", unmatchedRoute, "404")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))
}

func TestGauges(t *testing.T) {
	r := NewRegistry("hostweaver", WithoutRuntimeMetrics())

	r.SetOperations(2)
	r.SetBuildInfo("v1.0.0", "go1.25.4")
	r.SetBuildInfo("v1.0.1", "go1.25.4")

	assert.InDelta(t, 2, testutil.ToFloat64(r.operations), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(r.buildInfo))
	assert.InDelta(t, 1, testutil.ToFloat64(r.buildInfo.WithLabelValues("v1.0.1", "go1.25.4")), 0)
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRegistry("hostweaver")
	r.ObserveRequest(http.MethodGet, "GET /{$}", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `hostweaver_http_requests_total{code="200",method="GET",route="GET /{$}"} 1`)
	assert.Contains(t, body, "hostweaver_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry("hostweaver", WithoutRuntimeMetrics())
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "hostweaver_host_uptime_seconds", Help: "uptime"})

	require.NoError(t, r.Register(gauge))
	err := r.Register(gauge)

	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}

func TestWithBuckets(t *testing.T) {
	r := NewRegistry("hostweaver", WithoutRuntimeMetrics(), WithBuckets(0.01, 0.1))
	r.ObserveRequest(http.MethodGet, "GET /hostinfo", http.StatusOK, 50*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.True(t, strings.Contains(rec.Body.String(), `le="0.1"`))
	assert.False(t, strings.Contains(rec.Body.String(), `le="0.25"`))
}
