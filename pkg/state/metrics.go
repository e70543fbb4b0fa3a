package state

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "provider_rebuild_duration_seconds",
			Help:    "Time taken to rebuild the dynamic configuration snapshot",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	rebuildTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_rebuild_total",
			Help: "Total number of snapshot rebuild attempts",
		},
		[]string{"status"}, // success or error
	)

	snapshotGeneration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "provider_snapshot_generation",
			Help: "Generation counter of the currently published snapshot",
		},
	)

	snapshotContainers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "provider_snapshot_containers",
			Help: "Number of running containers in the last published snapshot",
		},
	)

	labelWarningsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "provider_label_warnings_total",
			Help: "Total number of label parse and merge warnings",
		},
	)
)
