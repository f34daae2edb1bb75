package cache

import (
	"context"
	"math/rand"
	"runtime"
	"strconv"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

// A mixed workload of concurrent Insert/Get/Peek/Erase/PopFront on random
// keys, driven across a watermark gap small enough to keep the eviction
// controller busy. Should pass under -race without detector reports.
func TestRace_Basic(t *testing.T) {
	t.Parallel()

	c := New[string, []byte](Options[string, []byte]{
		LowWatermark:  4_096,
		HighWatermark: 8_192,
	})

	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 50_000
	deadline := time.Now().Add(750 * time.Millisecond)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			r := rand.New(rand.NewSource(int64(w)*9973 + 17))
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				switch r.Intn(100) {
				case 0, 1, 2, 3, 4: // ~5% — Erase
					c.Erase(k)
				case 5, 6, 7, 8, 9: // ~5% — PopFront
					c.PopFront()
				case 10, 11, 12, 13, 14, 15, 16, 17, 18, 19: // ~10% — Insert
					c.Insert(k, []byte("x"))
				case 20, 21, 22, 23, 24: // ~5% — Peek (never reorders)
					c.Peek(k)
				default: // ~75% — Get
					c.Get(k)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

// Concurrent InsertBulk/EraseBulk/Visit against the same cache, exercised
// alongside a running post-eviction callback so the callback's own access
// to shared state (a plain counter, protected only by the engine's lock
// around the call) is also raced.
func TestRace_BulkAndVisit(t *testing.T) {
	t.Parallel()

	var evictions int64
	c := New[int, int](Options[int, int]{
		LowWatermark:  500,
		HighWatermark: 600,
		OnEvict: func(int, *int, EvictionReason) {
			evictions++ // safe: callback runs under the engine's write lock
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < runtime.GOMAXPROCS(0); w++ {
		w := w
		g.Go(func() error {
			r := rand.New(rand.NewSource(int64(w) + 1))
			for {
				select {
				case <-gctx.Done():
					return nil
				default:
				}
				base := r.Intn(1000)
				items := make([]Item[int, int], 8)
				for i := range items {
					items[i] = Item[int, int]{Key: base + i, Value: i}
				}
				c.InsertBulk(items)
				c.EraseBulk([]int{base, base + 1})
				c.Visit(func(int, *int) bool { return true })
			}
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	_ = evictions
}
