package layout

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	updates = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "anchor",
		Subsystem: "layout",
		Name:      "updates_total",
		Help:      "Structural updates applied to list layouts.",
	})
	updateOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "anchor",
		Subsystem: "layout",
		Name:      "update_ops_total",
		Help:      "Operations received in structural updates, by kind.",
	}, []string{"kind"})
	abandonedUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "anchor",
		Subsystem: "layout",
		Name:      "abandoned_updates_total",
		Help:      "Updates dropped by a full layout invalidation.",
	})
	remeasurements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "anchor",
		Subsystem: "layout",
		Name:      "remeasurements_total",
		Help:      "Measured heights received, by result.",
	}, []string{"result"})
	updateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "anchor",
		Subsystem: "layout",
		Name:      "update_duration_seconds",
		Help:      "Time spent applying a structural update.",
		Buckets:   []float64{1e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3},
	})
	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "anchor",
		Subsystem: "layout",
		Name:      "query_duration_seconds",
		Help:      "Time spent walking the layout for visible items.",
		Buckets:   []float64{1e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3},
	})
)
