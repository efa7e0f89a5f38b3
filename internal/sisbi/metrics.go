package sisbi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK           = "ok"
	outcomeHTTPError    = "http_error"
	outcomeNetworkError = "network_error"
	outcomeDecodeError  = "decode_error"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sisbi",
		Name:      "upstream_requests_total",
		Help:      "Upstream registry requests by resource and outcome.",
	}, []string{"resource", "outcome"})

	upstreamCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sisbi",
		Name:      "upstream_cache_hits_total",
		Help:      "Upstream responses served from the local cache.",
	}, []string{"resource"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sisbi",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of upstream registry requests.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"resource"})

	skippedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sisbi",
		Name:      "upstream_skipped_records_total",
		Help:      "Collection items dropped because they were not JSON objects.",
	}, []string{"resource"})
)
