// Package shardmap provides a lock-striped, integer-keyed map used as the
// parallel reduction target for relevance scores during a parallel rank.
//
// Grounded on the original search server's ConcurrentMap<Key, Value>
// (v01/concurrent_map.h): a fixed number of mutex-guarded buckets, selected by
// key modulo bucket count, with per-key linearizable updates and a
// cross-shard-unsynchronized Collect() snapshot. The bucket/mutex shape also
// mirrors the LRU cache's per-entry locking in pkg/cache/query_cache.go.
package shardmap

import "sync"

// DefaultShardCount matches the original's N_BUCKETS_DEFAULT.
const DefaultShardCount = 20

type bucket struct {
	mu   sync.Mutex
	data map[int]float64
}

// Map is a sharded accumulator keyed by int, valued by float64 — the only
// shape the ranker's parallel reduction needs.
type Map struct {
	shards []*bucket
}

// New creates a Map with shardCount independently-locked shards. shardCount
// must be positive; a non-positive value falls back to DefaultShardCount.
func New(shardCount int) *Map {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}
	shards := make([]*bucket, shardCount)
	for i := range shards {
		shards[i] = &bucket{data: make(map[int]float64)}
	}
	return &Map{shards: shards}
}

func (m *Map) shardFor(key int) *bucket {
	idx := uint64(uint32(key)) % uint64(len(m.shards))
	return m.shards[idx]
}

// Add atomically adds delta to the current value stored under key,
// default-constructing the entry (zero value) on first access. This is the
// sole mutation the ranker's parallel path needs, so unlike the original's
// operator[] (which hands back a lock-held reference for arbitrary mutation)
// the Go port exposes just the accumulate operation directly.
func (m *Map) Add(key int, delta float64) {
	b := m.shardFor(key)
	b.mu.Lock()
	b.data[key] += delta
	b.mu.Unlock()
}

// Erase removes key from whichever shard owns it.
func (m *Map) Erase(key int) {
	b := m.shardFor(key)
	b.mu.Lock()
	delete(b.data, key)
	b.mu.Unlock()
}

// Collect acquires each shard in turn and merges its contents into one
// ordinary map. Only a valid snapshot when no writers are concurrently
// active, matching the original's BuildOrdinaryMap contract.
func (m *Map) Collect() map[int]float64 {
	out := make(map[int]float64)
	for _, b := range m.shards {
		b.mu.Lock()
		for k, v := range b.data {
			out[k] = v
		}
		b.mu.Unlock()
	}
	return out
}
