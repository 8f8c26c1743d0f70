package client

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asodi_client",
			Name:      "requests_total",
			Help:      "HTTP requests issued by the SDK, by method and status (\"error\" when no response).",
		},
		[]string{"method", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "asodi_client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of SDK requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

type metricsTransport struct{ base http.RoundTripper }

func (t *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	requestsTotal.WithLabelValues(req.Method, status).Inc()
	return resp, err
}
