package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager/internal/modules/travel"
)

func TestObserve(t *testing.T) {
	m := New()
	ctx := context.Background()
	m.Observe(ctx, travel.ActionGenerate, 2*time.Second, nil)
	m.Observe(ctx, travel.ActionGenerate, time.Second, nil)
	m.Observe(ctx, travel.ActionGenerate, time.Second, &travel.ValidationError{Field: "destination"})
	m.Observe(ctx, travel.ActionBook, time.Second, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("generate_itinerary", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("generate_itinerary", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("simulate_bookings", "failed")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.Observe(context.Background(), travel.ActionRevise, 300*time.Millisecond, nil)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `voyager_generation_requests_total{action="get_feedback",outcome="ok"} 1`))
	assert.Contains(t, body, "voyager_generation_duration_seconds_bucket")
}
