package metrics

import (
	"sync/atomic"

	"github.com/arccache/arc/pkg/base"
	"github.com/prometheus/client_golang/prometheus"
)

var _ Collector = (*PrometheusCollector)(nil)

// PrometheusCollector implements Collector using Prometheus metrics.
type PrometheusCollector struct {
	name   string
	labels prometheus.Labels

	insertionCount int64
	evictionCount  map[string]*int64 // reason -> count
	hitCount       int64
	missCount      int64

	sizeBytes int64
	length    int64

	settingsCapacity  prometheus.Gauge
	settingsAlgorithm prometheus.Gauge

	insertionDesc *prometheus.Desc
	evictionDesc  *prometheus.Desc
	hitDesc       *prometheus.Desc
	missDesc      *prometheus.Desc
	sizeDesc      *prometheus.Desc
	lengthDesc    *prometheus.Desc
}

// NewPrometheusCollector creates a new Prometheus-based metric collector for
// a single named cache instance (or shard, when labels carries a "shard"
// entry).
func NewPrometheusCollector(name string, labels map[string]string, capacity int, algorithm string) *PrometheusCollector {
	collector := &PrometheusCollector{
		name:          name,
		labels:        prometheus.Labels(labels),
		evictionCount: make(map[string]*int64),
	}

	for _, reason := range base.EvictionReasons {
		var count int64
		collector.evictionCount[string(reason)] = &count
	}

	collector.insertionDesc = prometheus.NewDesc(
		"arc_insertion_total",
		"Total number of items inserted into the cache",
		nil, labels,
	)
	collector.evictionDesc = prometheus.NewDesc(
		"arc_eviction_total",
		"Total number of items evicted from the cache, by reason",
		[]string{"reason"}, labels,
	)
	collector.hitDesc = prometheus.NewDesc(
		"arc_hit_total",
		"Total number of cache hits",
		nil, labels,
	)
	collector.missDesc = prometheus.NewDesc(
		"arc_miss_total",
		"Total number of cache misses",
		nil, labels,
	)
	collector.sizeDesc = prometheus.NewDesc(
		"arc_size_bytes",
		"Current size of resident cache entries in bytes (including keys and values)",
		nil, labels,
	)
	collector.lengthDesc = prometheus.NewDesc(
		"arc_length",
		"Current number of resident entries in the cache (|T1| + |T2|)",
		nil, labels,
	)

	collector.settingsCapacity = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "arc_settings_capacity",
		Help:        "Maximum number of resident items the cache can hold",
		ConstLabels: labels,
	})
	collector.settingsCapacity.Set(float64(capacity))

	collector.settingsAlgorithm = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "arc_settings_algorithm",
		Help:        "Eviction algorithm identifier (0=arc)",
		ConstLabels: labels,
	})
	algorithmValue := -1.0
	if algorithm == "arc" {
		algorithmValue = 0.0
	}
	collector.settingsAlgorithm.Set(algorithmValue)

	return collector
}

// IncInsertion atomically increments the insertion counter.
func (p *PrometheusCollector) IncInsertion() {
	atomic.AddInt64(&p.insertionCount, 1)
}

// AddInsertions atomically adds the specified count to the insertion counter.
func (p *PrometheusCollector) AddInsertions(count int64) {
	atomic.AddInt64(&p.insertionCount, count)
}

// IncEviction atomically increments the eviction counter for the given
// reason.
func (p *PrometheusCollector) IncEviction(reason base.EvictionReason) {
	p.AddEvictions(reason, 1)
}

// AddEvictions atomically adds the specified count to the eviction counter
// for the given reason.
func (p *PrometheusCollector) AddEvictions(reason base.EvictionReason, count int64) {
	counter, exists := p.evictionCount[string(reason)]
	if !exists {
		var newCount int64
		counter = &newCount
		p.evictionCount[string(reason)] = counter
	}
	atomic.AddInt64(counter, count)
}

// IncHit atomically increments the hit counter.
func (p *PrometheusCollector) IncHit() {
	atomic.AddInt64(&p.hitCount, 1)
}

// AddHits atomically adds the specified count to the hit counter.
func (p *PrometheusCollector) AddHits(count int64) {
	atomic.AddInt64(&p.hitCount, count)
}

// IncMiss atomically increments the miss counter.
func (p *PrometheusCollector) IncMiss() {
	atomic.AddInt64(&p.missCount, 1)
}

// AddMisses atomically adds the specified count to the miss counter.
func (p *PrometheusCollector) AddMisses(count int64) {
	atomic.AddInt64(&p.missCount, count)
}

// SetSizeBytes atomically updates the cache size in bytes.
func (p *PrometheusCollector) SetSizeBytes(sizeBytes int64) {
	atomic.StoreInt64(&p.sizeBytes, sizeBytes)
}

// SetLength atomically updates the resident entry count.
func (p *PrometheusCollector) SetLength(length int64) {
	atomic.StoreInt64(&p.length, length)
}

// Describe implements prometheus.Collector.
func (p *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- p.insertionDesc
	ch <- p.evictionDesc
	ch <- p.hitDesc
	ch <- p.missDesc
	ch <- p.sizeDesc
	ch <- p.lengthDesc
	ch <- p.settingsCapacity.Desc()
	ch <- p.settingsAlgorithm.Desc()
}

// Collect implements prometheus.Collector.
func (p *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(p.insertionDesc, prometheus.CounterValue, float64(atomic.LoadInt64(&p.insertionCount)))
	ch <- prometheus.MustNewConstMetric(p.hitDesc, prometheus.CounterValue, float64(atomic.LoadInt64(&p.hitCount)))
	ch <- prometheus.MustNewConstMetric(p.missDesc, prometheus.CounterValue, float64(atomic.LoadInt64(&p.missCount)))
	ch <- prometheus.MustNewConstMetric(p.sizeDesc, prometheus.GaugeValue, float64(atomic.LoadInt64(&p.sizeBytes)))
	ch <- prometheus.MustNewConstMetric(p.lengthDesc, prometheus.GaugeValue, float64(atomic.LoadInt64(&p.length)))

	for reason, counter := range p.evictionCount {
		ch <- prometheus.MustNewConstMetric(p.evictionDesc, prometheus.CounterValue, float64(atomic.LoadInt64(counter)), reason)
	}

	p.settingsCapacity.Collect(ch)
	p.settingsAlgorithm.Collect(ch)
}
