package shardedarc

// Hasher produces an unsigned 64-bit hash of a key. It should be fast,
// since it runs on every cache operation, and deterministic: the same key
// always maps to the same shard.
type Hasher[K any] func(key K) uint64

// computeHash maps a key's hash into a valid shard index in [0, shards).
func (fn Hasher[K]) computeHash(key K, shards uint64) uint64 {
	return fn(key) % shards
}
