package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookinghttp "github.com/drapebook/drapebook/internal/booking/http"
	"github.com/drapebook/drapebook/internal/observability"
	reportshttp "github.com/drapebook/drapebook/internal/reports/http"
	"github.com/drapebook/drapebook/jobs"
)

func newTestRouter(t *testing.T) (http.Handler, *observability.Metrics) {
	t.Helper()
	t.Setenv(testModeEnv, "1")
	RefreshTestMode()
	t.Cleanup(RefreshTestMode)

	metrics := observability.NewMetrics()
	router := NewRouter(RouterParams{
		Config:         &Config{AppEnv: "development"},
		BookingHandler: bookinghttp.NewHandler(nil, nil, nil, nil),
		ReportsHandler: reportshttp.NewHandler(nil, nil, nil, nil, nil),
		JobHandler:     jobs.NewHandler(nil, nil, nil),
		Metrics:        metrics,
	})
	return router, metrics
}

func TestRouterHealthAndSecurityHeaders(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}

func TestRouterMountsApiJobsAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/orders/o1/share", nil))
	assert.Equal(t, http.StatusNotImplemented, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `drapebook_http_requests_total{code="200",route="/healthz"}`) ||
		strings.Contains(rr.Body.String(), `drapebook_http_requests_total{code="200",route="/jobs/health"}`))
}
