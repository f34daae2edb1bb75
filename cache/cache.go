package cache

import (
	"sync"

	"github.com/wmcache/wmcache/internal/util"
	"github.com/wmcache/wmcache/policy"
)

// cache is the concrete engine behind the Cache[K,V] interface: one
// sync.RWMutex guarding a hash-bucketed index and a slab-allocated
// eviction queue — two structures kept in lockstep under a single lock,
// rather than sharded behind several.
type cache[K comparable, V any] struct {
	mu sync.RWMutex

	hash   func(K) uint64
	equal  func(K, K) bool
	policy Policy

	low, high uint64

	buckets map[uint64][]int32
	nodes   []node[K, V]
	free    []int32
	head    int32
	tail    int32
	size    int

	callback func(K, *V, EvictionReason)
	metrics  Metrics
}

// New constructs a Cache with the given Options.
//
// New panics if LowWatermark or HighWatermark is zero, or if
// LowWatermark > HighWatermark — both are programmer errors, caught at
// construction time rather than returned as an error value.
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	if opt.LowWatermark == 0 || opt.HighWatermark == 0 || opt.LowWatermark > opt.HighWatermark {
		panic(errInvalidWatermarks)
	}
	if opt.Policy == nil {
		opt.Policy = policy.LRU{}
	}
	if opt.Hash == nil {
		opt.Hash = util.Fnv64a[K]
	}
	if opt.Equal == nil {
		opt.Equal = func(a, b K) bool { return a == b }
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}

	c := &cache[K, V]{
		hash:    opt.Hash,
		equal:   opt.Equal,
		policy:  opt.Policy,
		low:     opt.LowWatermark,
		high:    opt.HighWatermark,
		buckets: make(map[uint64][]int32),
		head:    noNode,
		tail:    noNode,
		metrics: opt.Metrics,
	}
	if opt.OnEvict != nil {
		c.callback = opt.OnEvict
	}
	return c
}

// ---- Cache[K,V] implementation ----

func (c *cache[K, V]) Insert(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertPrimitiveLocked(key, value)
}

func (c *cache[K, V]) InsertBulk(items []Item[K, V]) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	newCount := 0
	for _, it := range items {
		if c.insertPrimitiveLocked(it.Key, it.Value) {
			newCount++
		}
	}
	return newCount
}

// Get's lock mode is decided before acquiring any lock, purely from the
// configured policy — never upgraded mid-operation, which would risk
// deadlock against a concurrent writer.
func (c *cache[K, V]) Get(key K) (*V, bool) {
	if c.policy.PromoteOnGet() {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.lookupLocked(key, true)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lookupLocked(key, false)
}

func (c *cache[K, V]) Peek(key K) (*V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lookupLocked(key, false)
}

// lookupLocked assumes the appropriate lock is already held. promote
// splices a hit to the back of the queue; callers only ever pass true
// while holding the write lock.
func (c *cache[K, V]) lookupLocked(key K, promote bool) (*V, bool) {
	idx, ok := c.findLocked(key)
	if !ok {
		c.metrics.Miss()
		return nil, false
	}
	c.metrics.Hit()
	if promote {
		c.moveToBackLocked(idx)
	}
	return c.nodes[idx].value, true
}

func (c *cache[K, V]) Erase(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.findLocked(key)
	if !ok {
		return false
	}
	c.removeLocked(idx, ReasonErase)
	return true
}

func (c *cache[K, V]) EraseBulk(keys []K) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, k := range keys {
		if idx, ok := c.findLocked(k); ok {
			c.removeLocked(idx, ReasonErase)
			removed++
		}
	}
	return removed
}

func (c *cache[K, V]) PopFront() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.size == 0 {
		return false
	}
	c.evictFrontLocked(ReasonPopFront)
	return true
}

func (c *cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buckets = make(map[uint64][]int32)
	c.nodes = nil
	c.free = nil
	c.head, c.tail = noNode, noNode
	c.size = 0
	c.metrics.Size(0)
}

func (c *cache[K, V]) SetPostEvictionCallback(callback func(K, *V, EvictionReason)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callback = callback
}

func (c *cache[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.size
}

func (c *cache[K, V]) LowWatermark() uint64  { return c.low }
func (c *cache[K, V]) HighWatermark() uint64 { return c.high }

func (c *cache[K, V]) EvictionPolicy() Policy { return c.policy }

func (c *cache[K, V]) HashFunction() func(K) uint64   { return c.hash }
func (c *cache[K, V]) EqualFunction() func(K, K) bool { return c.equal }

func (c *cache[K, V]) Visit(fn func(K, *V) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for idx := c.head; idx != noNode; idx = c.nodes[idx].next {
		n := &c.nodes[idx]
		if !fn(n.key, n.value) {
			return
		}
	}
}
