package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathaxy/internal/questiongen"
)

func TestObserveGeneration(t *testing.T) {
	m := New()
	m.ObserveGeneration(questiongen.Report{Level: 10, Count: 20, Attempts: 30})
	m.ObserveGeneration(questiongen.Report{Level: 10, Count: 20, Attempts: 1, Relaxed: true})
	m.ObserveGeneration(questiongen.Report{Level: 9, Count: 20, Relaxed: true, Fallback: true})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GeneratedSets.WithLabelValues("10")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeneratedSets.WithLabelValues("9")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationOutcome.WithLabelValues(PathRandom)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationOutcome.WithLabelValues(PathRelaxed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationOutcome.WithLabelValues(PathFallback)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.FillAttempts))
}

func TestGeneratorFeedsObserver(t *testing.T) {
	m := New()
	gen := questiongen.New(questiongen.WithObserver(m))
	for i := 0; i < 3; i++ {
		_, err := gen.Generate(8, 20)
		require.NoError(t, err)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(m.GeneratedSets.WithLabelValues("8")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", m.Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/ping", "200")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "http_requests_total"), body)
}
