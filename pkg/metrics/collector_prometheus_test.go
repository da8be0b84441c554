package metrics

import (
	"testing"

	"github.com/arccache/arc/pkg/base"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusCollectorCounters(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := NewPrometheusCollector("cache", map[string]string{"name": "cache"}, 10, "arc")

	c.IncInsertion()
	c.AddInsertions(2)
	c.IncHit()
	c.AddHits(4)
	c.IncMiss()
	c.AddMisses(3)
	c.IncEviction(base.EvictionReasonCapacity)
	c.AddEvictions(base.EvictionReasonGhosted, 2)
	c.SetSizeBytes(512)
	c.SetLength(7)

	is.Equal(int64(3), c.insertionCount)
	is.Equal(int64(5), c.hitCount)
	is.Equal(int64(4), c.missCount)
	is.Equal(int64(1), *c.evictionCount[string(base.EvictionReasonCapacity)])
	is.Equal(int64(2), *c.evictionCount[string(base.EvictionReasonGhosted)])
	is.Equal(int64(512), c.sizeBytes)
	is.Equal(int64(7), c.length)
}

func TestPrometheusCollectorCollectEmitsAllMetrics(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := NewPrometheusCollector("cache", map[string]string{"name": "cache"}, 10, "arc")
	c.IncHit()

	ch := make(chan prometheus.Metric, 64)
	c.Collect(ch)
	close(ch)

	var metrics []prometheus.Metric
	for m := range ch {
		metrics = append(metrics, m)
	}

	// insertion, hit, miss, size, length, one eviction-reason series per
	// registered reason, plus the two settings gauges.
	is.GreaterOrEqual(len(metrics), 5+len(base.EvictionReasons)+2)

	var pb dto.Metric
	for _, m := range metrics {
		if m.Desc() == c.hitDesc {
			is.NoError(m.Write(&pb))
			is.Equal(float64(1), pb.GetCounter().GetValue())
		}
	}
}
