// Package cache implements a generic, thread-safe, in-process key/value
// cache with hysteretic high/low-watermark eviction and a pluggable
// LRU/FIFO order-maintenance rule.
//
// Design
//
//   - Concurrency: a single sync.RWMutex guards the index, the eviction
//     queue, the watermarks, the policy, and the callback slot as one
//     critical section. Get takes a write lock only when the policy is
//     LRU (it must splice the hit entry to the back of the queue);
//     under FIFO, and for Peek under either policy, it is a pure
//     reader. The read-vs-write decision is made before the lock is
//     acquired — there is no read-to-write upgrade.
//
//   - Storage: a hash-bucketed index (map[uint64][]int32, keyed by the
//     configured Hash function and disambiguated with Equal) maps keys
//     to slab indices. The eviction queue is an intrusive doubly linked
//     list threaded through that same slab, so a key's position in one
//     structure and its entry in the other are always the same slab
//     slot — the "two structures, one invariant" design. Removing an
//     entry returns its slot to a free list; admitting a new entry
//     reuses a freed slot before growing the slab.
//
//   - Eviction: before a new-key insert, the engine checks size against
//     HighWatermark; if at or above it, entries are evicted from the
//     front of the queue until size drops below LowWatermark. A
//     replacement of an existing key never triggers eviction (it
//     doesn't change size) and never invokes the callback, but it does
//     unconditionally move the key to the back of the queue under
//     either policy.
//
//   - Exception (panic) safety: a new-key admission links the queue
//     node first, then inserts into the hash index under a deferred
//     rollback ("queue proctor") that unwinds the queue-side insertion
//     if the index insertion — which runs the user-supplied Hash
//     function — panics. A panicking post-eviction callback propagates
//     to the caller; because the entry is fully detached before the
//     callback runs, the cache's invariants hold even mid-panic, and any
//     further evictions queued in the same burst are abandoned.
//
//   - Values are held as *V "handles": boxed once on insert, returned
//     by Get/Peek/Visit, and passed to the post-eviction callback. Go's
//     garbage collector keeps the referent alive for as long as any
//     holder — inside or outside the cache — still references it, which
//     is exactly the shared-ownership contract the callback relies on.
//
// Basic usage
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    LowWatermark:  6,
//	    HighWatermark: 7,
//	})
//	c.Insert("a", "1")
//	if v, ok := c.Get("a"); ok {
//	    _ = *v // use the value
//	}
//	c.Erase("a")
//
// With a post-eviction callback
//
//	var evicted []string
//	c := cache.New[int, string](cache.Options[int, string]{
//	    LowWatermark:  3,
//	    HighWatermark: 5,
//	    OnEvict: func(_ int, v *string, _ cache.EvictionReason) {
//	        evicted = append(evicted, *v)
//	    },
//	})
//
// FIFO instead of LRU
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    LowWatermark:  100,
//	    HighWatermark: 128,
//	    Policy:        policy.FIFO{},
//	})
//
// Exporting metrics (example Prometheus adapter)
//
//	m := prom.New(nil, "wmcache", "demo", nil) // implements cache.Metrics
//	c := cache.New[string, []byte](cache.Options[string, []byte]{
//	    LowWatermark:  8_000,
//	    HighWatermark: 10_000,
//	    Metrics:       m,
//	})
//
// Thread-safety & complexity
//
// All methods are safe for concurrent use. Every single-key operation is
// amortized O(1) expected time: one hash-bucket scan plus a constant
// number of pointer fixes in the eviction queue. InsertBulk and EraseBulk
// cost that per item, Visit is linear in the entries visited, and an
// eviction burst triggered by the high watermark costs O(1) per entry
// removed.
package cache
