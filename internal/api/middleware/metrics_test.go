package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/teamboard/teamboard/internal/api/middleware"
)

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := middleware.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodGet, "/posts/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	expected := `
# HELP teamboard_api_http_requests_total Count of processed HTTP requests
# TYPE teamboard_api_http_requests_total counter
teamboard_api_http_requests_total{method="GET",route="/posts/{id}",status="404"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "teamboard_api_http_requests_total"))
}

func TestMetrics_DefaultStatusIsOK(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := middleware.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	count, err := testutil.GatherAndCount(reg, "teamboard_api_http_request_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	expected := `
# HELP teamboard_api_http_requests_total Count of processed HTTP requests
# TYPE teamboard_api_http_requests_total counter
teamboard_api_http_requests_total{method="GET",route="/health",status="200"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "teamboard_api_http_requests_total"))
}
