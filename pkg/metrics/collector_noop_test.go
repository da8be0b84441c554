package metrics

import (
	"testing"

	"github.com/arccache/arc/pkg/base"
	"github.com/stretchr/testify/assert"
)

func TestNoOpCollectorDoesNothing(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	var c Collector = &NoOpCollector{}

	is.NotPanics(func() {
		c.IncInsertion()
		c.AddInsertions(5)
		c.IncEviction(base.EvictionReasonCapacity)
		c.AddEvictions(base.EvictionReasonGhosted, 3)
		c.IncHit()
		c.AddHits(2)
		c.IncMiss()
		c.AddMisses(1)
		c.SetSizeBytes(1024)
		c.SetLength(4)
	})
}
