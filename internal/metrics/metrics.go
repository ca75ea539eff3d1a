// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	gatewayRequestsTotal   *prometheus.CounterVec
	gatewayRequestDuration *prometheus.HistogramVec

	dishTransformsTotal *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		httpRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		gatewayRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_gateway_requests_total",
				Help: "Calls to the AI gateway by call type and outcome",
			},
			[]string{"call", "outcome"},
		),
		gatewayRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ai_gateway_request_duration_seconds",
				Help:    "AI gateway call duration in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
			},
			[]string{"call"},
		),
		dishTransformsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dish_transforms_total",
				Help: "Healthy dish transforms by result (full, partial, failed)",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) RecordRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordGatewayCall(call, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.gatewayRequestsTotal.WithLabelValues(call, outcome).Inc()
	m.gatewayRequestDuration.WithLabelValues(call).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordDishTransform(result string) {
	if m == nil {
		return
	}
	m.dishTransformsTotal.WithLabelValues(result).Inc()
}
