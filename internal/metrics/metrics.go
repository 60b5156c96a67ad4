// Package metrics exposes Prometheus collectors for the feed client.
// Instrumentation is optional: a nil *Collector is safe everywhere.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes recorded on the requests counter.
const (
	OutcomeFresh  = "fresh"
	OutcomeCached = "cached"
	OutcomeNoData = "no_data"
	OutcomeError  = "error"
)

// Collector tracks feed request and store activity.
type Collector struct {
	requestsTotal *prometheus.CounterVec
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	storageFaults prometheus.Counter
}

// New creates a Collector and registers it on reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "msf",
			Name:      "requests_total",
			Help:      "Feed requests by feed name and outcome.",
		}, []string{"feed", "outcome"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "msf",
			Name:      "cache_hits_total",
			Help:      "304 responses served from the storage backend.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "msf",
			Name:      "cache_misses_total",
			Help:      "304 responses with no usable stored copy.",
		}),
		storageFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "msf",
			Name:      "storage_faults_total",
			Help:      "Object storage faults absorbed at the store boundary.",
		}),
	}
	reg.MustRegister(c.requestsTotal, c.cacheHits, c.cacheMisses, c.storageFaults)
	return c
}

// ObserveRequest records the outcome of one GetData call.
func (c *Collector) ObserveRequest(feedName, outcome string) {
	if c == nil {
		return
	}
	c.requestsTotal.WithLabelValues(feedName, outcome).Inc()
}

// ObserveCacheHit records a 304 served from the store.
func (c *Collector) ObserveCacheHit() {
	if c == nil {
		return
	}
	c.cacheHits.Inc()
}

// ObserveCacheMiss records a 304 with no stored copy to serve.
func (c *Collector) ObserveCacheMiss() {
	if c == nil {
		return
	}
	c.cacheMisses.Inc()
}

// ObserveStorageFault records an absorbed object-storage fault.
func (c *Collector) ObserveStorageFault() {
	if c == nil {
		return
	}
	c.storageFaults.Inc()
}
