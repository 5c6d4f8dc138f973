package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PageHits tracks pages served from Redis
	PageHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "infinite_paging_cache_hits_total",
			Help: "Total number of page cache hits",
		},
	)

	// PageMisses tracks pages fetched from the backing page func
	PageMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "infinite_paging_cache_misses_total",
			Help: "Total number of page cache misses",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "infinite_paging_cache_errors_total",
			Help: "Total number of page cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "decode", "invalidate"
	)
)
