package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequestLabelsStatus(t *testing.T) {
	before := testutil.ToFloat64(apiRequests.WithLabelValues("/api/test-metrics", "200"))
	ObserveRequest("/api/test-metrics", 200, 15*time.Millisecond)
	ObserveRequest("/api/test-metrics", 0, time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(apiRequests.WithLabelValues("/api/test-metrics", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(apiRequests.WithLabelValues("/api/test-metrics", "error")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordInvalidation()
	RecordCartAdd(true)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, name := range []string{
		"foodbites_session_invalidations_total",
		"foodbites_cart_adds_total",
	} {
		assert.True(t, strings.Contains(body, name), "missing %s", name)
	}
}
