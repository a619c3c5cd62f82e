// Package metrics provides Prometheus instrumentation for a cache.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"gocache/internal/cache"
)

// Metrics holds the collectors for one instrumented cache.
type Metrics struct {
	Inserts   prometheus.Counter
	Hits      prometheus.Counter
	Misses    prometheus.Counter
	Removals  prometheus.Counter
	Evictions prometheus.Counter
	Entries   prometheus.Gauge
}

// NewMetrics creates metrics under namespace and registers them with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		Inserts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inserts_total",
			Help:      "Total number of cache inserts",
		}),
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_total",
			Help:      "Total number of reads that found a live entry",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "misses_total",
			Help:      "Total number of reads that found nothing or an expired entry",
		}),
		Removals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "removals_total",
			Help:      "Total number of explicit removals",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Total number of capacity evictions",
		}),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "Number of entries currently stored",
		}),
	}
	for _, c := range []prometheus.Collector{m.Inserts, m.Hits, m.Misses, m.Removals, m.Evictions, m.Entries} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Instrumented wraps a cache and records every operation.
//
// Like the cache it wraps, it is not safe for concurrent use.
type Instrumented[K comparable, V any] struct {
	*cache.Cache[K, V]
	metrics *Metrics
}

// Instrument wraps c. Capacity evictions are counted through the cache's
// eviction hook.
func Instrument[K comparable, V any](c *cache.Cache[K, V], m *Metrics) *Instrumented[K, V] {
	c.OnEviction(func(cache.Entry[K, V]) {
		m.Evictions.Inc()
	})
	m.Entries.Set(float64(c.Len()))
	return &Instrumented[K, V]{Cache: c, metrics: m}
}

func (i *Instrumented[K, V]) Insert(key K, value V) {
	i.Cache.Insert(key, value)
	i.metrics.Inserts.Inc()
	i.sync()
}

func (i *Instrumented[K, V]) Get(key K) (V, bool) {
	v, ok := i.Cache.Get(key)
	if ok {
		i.metrics.Hits.Inc()
	} else {
		i.metrics.Misses.Inc()
	}
	i.sync()
	return v, ok
}

func (i *Instrumented[K, V]) Remove(key K) {
	i.Cache.Remove(key)
	i.metrics.Removals.Inc()
	i.sync()
}

func (i *Instrumented[K, V]) At(key K) (V, bool) {
	return i.Get(key)
}

func (i *Instrumented[K, V]) SetAt(key K, value *V) {
	if value == nil {
		i.Remove(key)
		return
	}
	i.Insert(key, *value)
}

// RemoveExpired counts every swept entry as a removal.
func (i *Instrumented[K, V]) RemoveExpired() int {
	n := i.Cache.RemoveExpired()
	i.metrics.Removals.Add(float64(n))
	i.sync()
	return n
}

func (i *Instrumented[K, V]) Clear() {
	i.Cache.Clear()
	i.sync()
}

// Serialize may drop expired entries, so the entries gauge is refreshed.
func (i *Instrumented[K, V]) Serialize() []cache.Entry[K, V] {
	entries := i.Cache.Serialize()
	i.sync()
	return entries
}

func (i *Instrumented[K, V]) sync() {
	i.metrics.Entries.Set(float64(i.Cache.Len()))
}
