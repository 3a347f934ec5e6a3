package arrange

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// arrangementsTotal counts runs by outcome.
	arrangementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fretwork_arrangements_total",
		Help: "Total arrangement runs by outcome",
	}, []string{"outcome"})

	// searchExpansions tracks states expanded per successful search.
	searchExpansions = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fretwork_search_expansions",
		Help:    "States expanded per successful search",
		Buckets: prometheus.ExponentialBuckets(4, 4, 10), // 4 to ~1M
	})

	// arrangeDuration tracks wall time per run.
	arrangeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fretwork_arrange_duration_seconds",
		Help:    "Arrangement run duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
	}, []string{"outcome"})
)
