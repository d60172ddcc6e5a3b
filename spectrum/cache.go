// SPDX-License-Identifier: MIT
// Package: coalescence/spectrum
//
// cache.go — memoized distributions keyed by (k, N).
//
// A simulation whose population size is stable revisits the same (k, N)
// pairs generation after generation. The Cache builds each distribution once
// and serves every later draw from it.
//
// Concurrency:
//   - Lookups take a read lock; a miss upgrades to the write lock and checks
//     again before building, so each key is built at most once.
//   - Distributions are immutable, so concurrent Sample calls are safe when
//     each goroutine brings its own Rand.

package spectrum

import (
	"fmt"
	"sync"
)

// cacheKey identifies a distribution.
type cacheKey struct {
	k, n int
}

// Cache memoizes Distributions built with a fixed set of options.
type Cache struct {
	mu    sync.RWMutex
	opts  []Option
	dists map[cacheKey]*Distribution
}

// NewCache returns an empty cache whose entries are built with opts.
func NewCache(opts ...Option) *Cache {
	return &Cache{
		opts:  opts,
		dists: make(map[cacheKey]*Distribution),
	}
}

// Get returns the distribution for (k, n), building it on first use.
// Errors: those of NewDistribution.
func (c *Cache) Get(k, n int) (*Distribution, error) {
	key := cacheKey{k: k, n: n}

	c.mu.RLock()
	d, ok := c.dists[key]
	c.mu.RUnlock()
	if ok {
		return d, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if d, ok = c.dists[key]; ok {
		return d, nil
	}
	d, err := NewDistribution(k, n, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodCacheGet, err)
	}
	c.dists[key] = d

	return d, nil
}

// Sample draws a spectrum for (k, n) from the memoized distribution.
func (c *Cache) Sample(k, n int, rng Rand) (Spectrum, error) {
	d, err := c.Get(k, n)
	if err != nil {
		return nil, err
	}

	return d.Sample(rng)
}

// Len returns the number of memoized distributions.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.dists)
}

// Reset drops every memoized distribution.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.dists = make(map[cacheKey]*Distribution)
	c.mu.Unlock()
}
