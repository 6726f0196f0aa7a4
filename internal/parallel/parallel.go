// Package parallel splits index ranges across goroutines.
//
// It is used for work items that are independent of each other, such as the
// neurons of a single network layer during forward propagation.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled  bool // Whether parallel execution is enabled.
	Workers  int  // Upper bound on goroutines per call. <= 0 means runtime.NumCPU().
	MinChunk int  // Minimum items per goroutine; smaller inputs run inline.
}

// DefaultConfig enables parallelism on multi-core machines.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:  n > 1,
		Workers:  n,
		MinChunk: 16,
	}
}

// Sequential returns a config that always runs inline.
func Sequential() Config {
	return Config{}
}

// Parallel reports whether n items would be split across goroutines.
func (c Config) Parallel(n int) bool {
	return c.Enabled && n >= 2*max(c.MinChunk, 1)
}

// chunkSize returns the number of items handed to each goroutine.
func (c Config) chunkSize(n int) int {
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return max((n+workers-1)/workers, c.MinChunk, 1)
}

// Range calls f with disjoint half-open ranges [lo, hi) covering [0, n).
// It returns once every call has returned.
func Range(n int, cfg Config, f func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if !cfg.Parallel(n) {
		f(0, n)
		return
	}

	size := cfg.chunkSize(n)
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			f(lo, hi)
		}()
	}
	wg.Wait()
}

// For executes f(i) for every i in [0, n).
func For(n int, cfg Config, f func(i int)) {
	Range(n, cfg, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(i)
		}
	})
}
