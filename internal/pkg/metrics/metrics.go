package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors for the aggregation pipeline.
var (
	PriceCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solfolio_price_cache_hits_total",
		Help: "Number of price resolutions served from the fresh cache.",
	})

	PriceCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solfolio_price_cache_misses_total",
		Help: "Number of price resolutions that had to consult a provider.",
	})

	PriceProviderRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solfolio_price_provider_requests_total",
		Help: "Price provider requests by provider and outcome.",
	}, []string{"provider", "outcome"})

	PriceStaleFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solfolio_price_stale_fallbacks_total",
		Help: "Number of resolutions that fell back to an expired cache entry.",
	})

	LedgerRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solfolio_ledger_request_duration_seconds",
		Help:    "Latency of ledger RPC calls by method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	HoldingsFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solfolio_holdings_fetch_duration_seconds",
		Help:    "Latency of a full ListHoldings aggregation.",
		Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	})

	SessionRefreshes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solfolio_session_refreshes_total",
		Help: "Session refresh attempts by outcome (run, suppressed).",
	}, []string{"outcome"})
)

// MustRegister registers all pipeline collectors on the default registry.
func MustRegister() {
	prometheus.MustRegister(
		PriceCacheHits,
		PriceCacheMisses,
		PriceProviderRequests,
		PriceStaleFallbacks,
		LedgerRequestDuration,
		HoldingsFetchDuration,
		SessionRefreshes,
	)
}
