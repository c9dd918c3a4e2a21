package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes recorded per provider call.
const (
	OutcomeHit      = "hit"
	OutcomeMiss     = "miss"
	OutcomeDegraded = "degraded"
)

// ProviderLookups counts provider lookups by provider name and outcome.
var ProviderLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "songlib_provider_lookups_total",
	Help: "Number of provider lookups, labeled by provider and outcome.",
}, []string{"provider", "outcome"})

// SongsCreated counts songs successfully enriched and persisted.
var SongsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "songlib_songs_created_total",
	Help: "Number of songs added to the catalog.",
})

// SongsDeleted counts songs removed from the catalog.
var SongsDeleted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "songlib_songs_deleted_total",
	Help: "Number of songs deleted from the catalog.",
})

// Searches counts catalog search requests.
var Searches = promauto.NewCounter(prometheus.CounterOpts{
	Name: "songlib_searches_total",
	Help: "Number of catalog searches served.",
})
