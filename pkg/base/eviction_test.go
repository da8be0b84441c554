package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvictionCallbackExecution(t *testing.T) {
	is := assert.New(t)

	var capturedReason EvictionReason
	var capturedKey string
	var capturedValue int

	callback := EvictionCallback[string, int](func(reason EvictionReason, key string, value int) {
		capturedReason = reason
		capturedKey = key
		capturedValue = value
	})

	callback(EvictionReasonGhosted, "test-key", 42)

	is.Equal(EvictionReasonGhosted, capturedReason)
	is.Equal("test-key", capturedKey)
	is.Equal(42, capturedValue)
}

func TestEvictionCallbackNilPanics(t *testing.T) {
	is := assert.New(t)

	var callback EvictionCallback[string, int]

	is.Panics(func() {
		callback(EvictionReasonManual, "key", 42)
	})
}

func TestEvictionReasonsCoversAllConstants(t *testing.T) {
	is := assert.New(t)

	is.ElementsMatch([]EvictionReason{
		EvictionReasonCapacity,
		EvictionReasonGhosted,
		EvictionReasonManual,
	}, EvictionReasons)
}
