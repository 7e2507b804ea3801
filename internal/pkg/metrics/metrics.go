// Package metrics holds the Prometheus collectors of the procurement service.
// All recording methods are safe on a nil *Metrics, which disables recording.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "procurement"

type Metrics struct {
	gatherer prometheus.Gatherer

	transitions     *prometheus.CounterVec
	stockRejections prometheus.Counter
	summaryRows     prometheus.Counter
	summaryFailures prometheus.Counter
	broadcasts      *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		gatherer: reg,
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Order status changes by target status.",
		}, []string{"to"}),
		stockRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_rejections_total",
			Help:      "Approvals refused because stock could not cover an item.",
		}),
		summaryRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_rows_total",
			Help:      "Summary rows written by aggregation runs.",
		}),
		summaryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_failures_total",
			Help:      "Summary keys that failed during aggregation runs.",
		}),
		broadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcasts_total",
			Help:      "Notification publishes by channel kind and result.",
		}, []string{"channel", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
	}
	reg.MustRegister(
		m.transitions,
		m.stockRejections,
		m.summaryRows,
		m.summaryFailures,
		m.broadcasts,
		m.httpRequests,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) OrderTransitioned(to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(to).Inc()
}

func (m *Metrics) StockRejected() {
	if m == nil {
		return
	}
	m.stockRejections.Inc()
}

func (m *Metrics) SummaryAggregated(rows, failures int) {
	if m == nil {
		return
	}
	m.summaryRows.Add(float64(rows))
	m.summaryFailures.Add(float64(failures))
}

func (m *Metrics) Broadcast(channel string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.broadcasts.WithLabelValues(channel, result).Inc()
}

func (m *Metrics) HTTPRequest(method, path string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}
