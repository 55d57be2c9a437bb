// Package cache provides a sharded, in-memory LRU cache used to hold
// compiled shader artifacts keyed by their source identity.
package cache

import (
	"container/list"
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// shardCount is the number of shards. A power of 2, so shard selection
// is a bitwise AND of the key hash.
const shardCount = 8

// DefaultCapacity is the default maximum number of entries per shard.
const DefaultCapacity = 64

// Sharded is a thread-safe LRU cache split into shards to reduce lock
// contention when many goroutines compile concurrently. Keys are strings
// (content hashes); values are whatever the caller stores, typically
// *spv.Artifact.
type Sharded[V any] struct {
	shards   [shardCount]shard[V]
	capacity int

	hits   atomic.Uint64
	misses atomic.Uint64
}

type shard[V any] struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

type entry[V any] struct {
	key   string
	value V
}

// New creates a sharded cache holding up to capacity entries per shard.
// A capacity <= 0 selects DefaultCapacity.
func New[V any](capacity int) *Sharded[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[V]{capacity: capacity}
	for i := range c.shards {
		c.shards[i].entries = make(map[string]*list.Element)
		c.shards[i].order = list.New()
	}
	return c
}

func (c *Sharded[V]) shardFor(key string) *shard[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key)) // fnv.Write never returns an error
	return &c.shards[h.Sum32()&(shardCount-1)]
}

// Get returns the cached value for key and moves it to the front of the
// LRU order.
func (c *Sharded[V]) Get(key string) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.order.MoveToFront(el)
	c.hits.Add(1)
	return el.Value.(*entry[V]).value, true
}

// Put stores a value, evicting the least recently used entry when the
// shard is full. The value is stored as-is, not copied.
func (c *Sharded[V]) Put(key string, value V) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[key]; ok {
		el.Value.(*entry[V]).value = value
		s.order.MoveToFront(el)
		return
	}
	for s.order.Len() >= c.capacity {
		oldest := s.order.Back()
		if oldest == nil {
			break
		}
		s.order.Remove(oldest)
		delete(s.entries, oldest.Value.(*entry[V]).key)
	}
	s.entries[key] = s.order.PushFront(&entry[V]{key: key, value: value})
}

// Len returns the total number of cached entries.
func (c *Sharded[V]) Len() int {
	n := 0
	for i := range c.shards {
		c.shards[i].mu.Lock()
		n += c.shards[i].order.Len()
		c.shards[i].mu.Unlock()
	}
	return n
}

// Stats returns the cumulative hit and miss counts.
func (c *Sharded[V]) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
