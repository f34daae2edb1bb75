package cache

// node is one slab-allocated element of the eviction queue, indexed by
// its position in engine.nodes rather than by a heap pointer. Cursor
// stability falls out naturally: a node's slab index never changes
// across unrelated insertions or removals, only across its own removal,
// at which point the index returns to the free list and is reused by a
// later insert. This avoids a per-node heap allocation and makes
// rollback on a failed admission (the "queue proctor") a cheap,
// allocation-free operation: push the free index back.
type node[K comparable, V any] struct {
	key   K
	value *V // the shared-ownership "value handle"; boxed once on insert

	// Doubly linked list pointers within the eviction queue. -1 is the
	// sentinel for "no neighbor". head (front) is the next victim; tail
	// (back) is the most recently admitted, read (LRU), or replaced
	// entry.
	prev, next int32

	// hash is cached from admission so removal can find and prune this
	// node's slot out of its index bucket without re-invoking the
	// user-supplied Hash function.
	hash uint64

	// used distinguishes a live node from a free-list slot; slab
	// entries are never physically shrunk, only recycled.
	used bool
}
