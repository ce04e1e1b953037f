package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Sweeps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "venue_radar_sweeps_total",
		Help: "Completed poller sweeps over the coordinate grid",
	})

	TrendingErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "venue_radar_trending_errors_total",
		Help: "Failed trending searches, one per skipped grid point",
	})

	Enrichments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "venue_radar_enrichments_total",
		Help: "Enrichment calls by result",
	}, []string{"result"}) // "cached", "fetched", "error"

	PersistWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "venue_radar_persist_writes_total",
		Help: "Durable snapshot writes by table",
	}, []string{"table"})

	PersistSkips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "venue_radar_persist_skips_total",
		Help: "Snapshot writes skipped because the content hash was unchanged",
	}, []string{"table"})

	PersistErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "venue_radar_persist_errors_total",
		Help: "Failed durable snapshot writes by table",
	}, []string{"table"})

	CachedVenues = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "venue_radar_cached_venues",
		Help: "Number of venues currently held in the cache",
	})
)
