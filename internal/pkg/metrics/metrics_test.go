package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"procurement/internal/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.OrderTransitioned("approved")
		m.StockRejected()
		m.SummaryAggregated(3, 1)
		m.Broadcast("department", errors.New("down"))
		m.HTTPRequest(http.MethodGet, "/health", http.StatusOK)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.OrderTransitioned("approved")
	m.StockRejected()
	m.SummaryAggregated(2, 1)
	m.Broadcast("global", nil)
	m.HTTPRequest(http.MethodPost, "/api/v1/orders", http.StatusCreated)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `procurement_order_transitions_total{to="approved"} 1`)
	assert.Contains(t, string(body), `procurement_stock_rejections_total 1`)
	assert.Contains(t, string(body), `procurement_summary_rows_total 2`)
	assert.Contains(t, string(body), `procurement_broadcasts_total{channel="global",result="ok"} 1`)
	assert.Contains(t, string(body), `procurement_http_requests_total{method="POST",path="/api/v1/orders",status="201"} 1`)
}
