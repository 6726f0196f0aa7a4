package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, Workers: 4, MinChunk: 8}

	var counter int64
	n := 1000
	hits := make([]int32, n)

	For(n, cfg, func(i int) {
		atomic.AddInt64(&counter, 1)
		atomic.AddInt32(&hits[i], 1)
	})

	assert.Equal(t, int64(n), counter)
	for i, h := range hits {
		assert.Equal(t, int32(1), h, "index %d visited %d times", i, h)
	}
}

func TestRange_CoversDisjointly(t *testing.T) {
	cfg := Config{Enabled: true, Workers: 3, MinChunk: 1}

	var total int64
	var calls int64
	Range(10, cfg, func(lo, hi int) {
		assert.Less(t, lo, hi)
		atomic.AddInt64(&total, int64(hi-lo))
		atomic.AddInt64(&calls, 1)
	})

	assert.Equal(t, int64(10), total)
	// ceil(10/3) = 4 items per chunk -> 3 chunks
	assert.Equal(t, int64(3), calls)
}

func TestRange_SequentialFallback(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		n    int
	}{
		{"disabled", Sequential(), 1000},
		{"below min chunk", Config{Enabled: true, Workers: 8, MinChunk: 64}, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var calls int
			Range(tc.n, tc.cfg, func(lo, hi int) {
				calls++
				assert.Equal(t, 0, lo)
				assert.Equal(t, tc.n, hi)
			})
			assert.Equal(t, 1, calls)
		})
	}
}

func TestRange_Empty(t *testing.T) {
	called := false
	Range(0, DefaultConfig(), func(int, int) { called = true })
	assert.False(t, called)
}

func BenchmarkFor(b *testing.B) {
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		cfg := DefaultConfig()
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, cfg, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			})
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, Sequential(), func(i int) {
				atomic.AddInt64(&sum, int64(i))
			})
		}
	})
}
