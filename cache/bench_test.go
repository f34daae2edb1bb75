package cache

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"
)

// benchmarkMix exercises a read/write mix against a warm cache sized well
// above the hot keyspace, so the watermark controller stays quiet and the
// benchmark measures steady-state Get/Insert cost rather than eviction.
func benchmarkMix(b *testing.B, readsPct int) {
	c := New[string, string](Options[string, string]{
		LowWatermark:  80_000,
		HighWatermark: 100_000,
	})

	for i := 0; i < 50_000; i++ {
		k := "k:" + strconv.Itoa(i)
		c.Insert(k, "v")
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1

	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := "k:" + strconv.Itoa(i&keyMask)
			if r.Intn(100) < readsPct {
				c.Get(k)
			} else {
				c.Insert(k, "v")
			}
			i++
		}
	})
}

func BenchmarkCache_90r10w(b *testing.B) { benchmarkMix(b, 90) }
func BenchmarkCache_50r50w(b *testing.B) { benchmarkMix(b, 50) }

// benchmarkMixInt is the same workload with int keys, removing
// strconv/allocation noise so the measurement better isolates the cache's
// own hot path.
func benchmarkMixInt(b *testing.B, readsPct int) {
	c := New[int, int](Options[int, int]{
		LowWatermark:  80_000,
		HighWatermark: 100_000,
	})

	for i := 0; i < 50_000; i++ {
		c.Insert(i, 1)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1

	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := i & keyMask
			if r.Intn(100) < readsPct {
				c.Get(k)
			} else {
				c.Insert(k, 1)
			}
			i++
		}
	})
}

func BenchmarkCache_IntKeys_90r10w(b *testing.B) { benchmarkMixInt(b, 90) }
func BenchmarkCache_IntKeys_50r50w(b *testing.B) { benchmarkMixInt(b, 50) }

// benchmarkEvictionBurst measures the cost of Insert when every call
// triggers a one-entry watermark eviction — the worst case for the
// eviction controller's per-insert overhead.
func benchmarkEvictionBurst(b *testing.B) {
	c := New[int, int](Options[int, int]{LowWatermark: 1000, HighWatermark: 1000})
	for i := 0; i < 1000; i++ {
		c.Insert(i, i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Insert(1000+i, i)
	}
}

func BenchmarkCache_EvictionBurst(b *testing.B) { benchmarkEvictionBurst(b) }
