package metrics

import (
	"fmt"

	"github.com/arccache/arc/pkg/base"
	"github.com/prometheus/client_golang/prometheus"
)

// NewCollector creates a new metric collector based on whether metrics are
// enabled. shard < 0 means the cache is unsharded and no shard label is
// attached.
func NewCollector(enabled bool, name string, shard int, capacity int, algorithm string) Collector {
	if !enabled {
		return &NoOpCollector{}
	}

	labels := map[string]string{
		"name": name,
	}
	if shard >= 0 {
		labels["shard"] = fmt.Sprintf("%d", shard)
	}

	return NewPrometheusCollector(name, labels, capacity, algorithm)
}

// Collector defines the interface for metric collection operations. This
// allows for both real Prometheus metrics and no-op implementations.
type Collector interface {
	prometheus.Collector

	IncInsertion()
	AddInsertions(count int64)
	IncEviction(reason base.EvictionReason)
	AddEvictions(reason base.EvictionReason, count int64)
	IncHit()
	AddHits(count int64)
	IncMiss()
	AddMisses(count int64)
	SetSizeBytes(bytes int64)
	SetLength(length int64)
}
