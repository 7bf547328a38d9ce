package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup outcome labels.
const (
	OutcomeResults    = "results"
	OutcomeDetail     = "detail"
	OutcomeEmpty      = "empty"
	OutcomeFailed     = "failed"
	OutcomeSuperseded = "superseded"
)

// SearchMetrics records catalog lookups issued by the search controller.
type SearchMetrics struct {
	duration    *prometheus.HistogramVec
	outcomes    *prometheus.CounterVec
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

// NewSearchMetrics registers the search metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewSearchMetrics(reg prometheus.Registerer) *SearchMetrics {
	if reg == nil {
		return &SearchMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_lookup_duration_seconds",
		Help:    "Duration of catalog lookups in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "search_outcomes_total",
		Help: "Search submissions by outcome.",
	}, []string{"outcome"})
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_hits_total",
		Help: "Catalog lookups served from the cache.",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_misses_total",
		Help: "Catalog lookups that went to the upstream catalog.",
	})
	reg.MustRegister(duration, outcomes, cacheHits, cacheMisses)
	return &SearchMetrics{
		duration:    duration,
		outcomes:    outcomes,
		cacheHits:   cacheHits,
		cacheMisses: cacheMisses,
	}
}

// ObserveLookup records the duration of one lookup of the given query kind.
func (m *SearchMetrics) ObserveLookup(kind string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

// IncOutcome counts a completed submission.
func (m *SearchMetrics) IncOutcome(outcome string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *SearchMetrics) IncCacheHit() {
	if m == nil || m.cacheHits == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *SearchMetrics) IncCacheMiss() {
	if m == nil || m.cacheMisses == nil {
		return
	}
	m.cacheMisses.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
