package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomm-labs/storefront-api/pkg/metrics"
	"github.com/ecomm-labs/storefront-api/pkg/router"
)

func serve(t *testing.T, h http.Handler, target string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := router.New()
	r.Use(metrics.Middleware())
	r.Get("/widgets/{id}", "widgets.show", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Distinct ids collapse into one series keyed by the route pattern.
	before := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues(http.MethodGet, "/widgets/{id}", "200"))
	serve(t, r.Handler(), "/widgets/7")
	serve(t, r.Handler(), "/widgets/8")

	after := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues(http.MethodGet, "/widgets/{id}", "200"))
	assert.InDelta(t, before+2, after, 0.001)

	raw := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues(http.MethodGet, "/widgets/7", "200"))
	assert.Zero(t, raw)
}
