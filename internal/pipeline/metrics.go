package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	degradedFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sisbi",
		Subsystem: "pipeline",
		Name:      "degraded_total",
		Help:      "Upstream failures absorbed by a degrade policy.",
	}, []string{"resource"})

	capacityRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sisbi",
		Subsystem: "pipeline",
		Name:      "capacity_records_total",
		Help:      "Capacity records seen by the aggregator, by result.",
	}, []string{"result"})
)

func observeAggregate(stats AggregateStats) {
	capacityRecords.WithLabelValues("used").Add(float64(stats.Used))
	capacityRecords.WithLabelValues("missing_join_key").Add(float64(stats.MissingJoinKey))
	capacityRecords.WithLabelValues("unmodeled").Add(float64(stats.UnmodeledMetric))
}
