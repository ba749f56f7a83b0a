package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors exported by the service.
type Metrics struct {
	Compiles        *prometheus.CounterVec
	CompileDuration prometheus.Histogram
	Matches         *prometheus.CounterVec
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Compiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gomatch",
			Name:      "compiles_total",
			Help:      "Pattern compilations by result.",
		}, []string{"result"}),
		CompileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gomatch",
			Name:      "compile_duration_seconds",
			Help:      "Time spent compiling patterns.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		Matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gomatch",
			Name:      "matches_total",
			Help:      "Inputs matched by verdict.",
		}, []string{"verdict"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gomatch",
			Name:      "pattern_cache_hits_total",
			Help:      "Compiled pattern cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gomatch",
			Name:      "pattern_cache_misses_total",
			Help:      "Compiled pattern cache misses.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Compiles, m.CompileDuration, m.Matches, m.CacheHits, m.CacheMisses)
	}
	return m
}

func (m *Metrics) observeMatch(matched bool) {
	verdict := "reject"
	if matched {
		verdict = "accept"
	}
	m.Matches.WithLabelValues(verdict).Inc()
}
