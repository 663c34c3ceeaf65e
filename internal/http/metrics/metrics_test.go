package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	assert := require.New(t)
	m := NewHTTP(prometheus.NewRegistry())

	router := chi.NewRouter()
	router.Use(m.Middleware)
	router.Get("/profiles/{handle}", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusNotFound)
	})
	router.Post("/search", func(rw http.ResponseWriter, r *http.Request) {})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/profiles/alice", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/profiles/bob", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/search", nil))

	assert.Equal(2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/profiles/{handle}", "404")))
	assert.Equal(1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/search", "200")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	assert := require.New(t)
	m := NewHTTP(prometheus.NewRegistry())
	m.requests.WithLabelValues("GET", "/user", "200").Inc()

	rw := httptest.NewRecorder()
	m.Handler().ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(http.StatusOK, rw.Code)
	assert.True(strings.Contains(rw.Body.String(), "linkea_http_requests_total"))
}
