// SPDX-License-Identifier: MIT
// Package: coalescence/merger
//
// sampling.go — strategies that supply an occupancy spectrum for (k, N).

package merger

import (
	"fmt"

	"github.com/katalvlaran/coalescence/spectrum"
)

// SamplingPolicy draws one occupancy spectrum of k lineages among n parents.
type SamplingPolicy interface {
	Sample(k, n int, rng spectrum.Rand) (spectrum.Spectrum, error)
}

// OnTheFly samples without building the support. Preferred when N is large
// or N changes every generation.
type OnTheFly struct{}

// Sample implements SamplingPolicy.
func (OnTheFly) Sample(k, n int, rng spectrum.Rand) (spectrum.Spectrum, error) {
	return spectrum.SampleOnTheFly(k, n, rng)
}

// Memoized samples from distributions kept in Cache, building each (k, N)
// once. A nil Cache panics on first use.
type Memoized struct {
	Cache *spectrum.Cache
}

// NewMemoized returns a Memoized policy over a fresh cache built with opts.
func NewMemoized(opts ...spectrum.Option) Memoized {
	return Memoized{Cache: spectrum.NewCache(opts...)}
}

// Sample implements SamplingPolicy.
func (p Memoized) Sample(k, n int, rng spectrum.Rand) (spectrum.Spectrum, error) {
	return p.Cache.Sample(k, n, rng)
}

// Fixed samples from one prebuilt distribution and rejects any other (k, N).
type Fixed struct {
	Distribution *spectrum.Distribution
}

// Sample implements SamplingPolicy.
func (p Fixed) Sample(k, n int, rng spectrum.Rand) (spectrum.Spectrum, error) {
	if p.Distribution.K() != k || p.Distribution.N() != n {
		return nil, fmt.Errorf("%s: want (%d, %d), have (%d, %d): %w", methodFixedSample,
			k, n, p.Distribution.K(), p.Distribution.N(), ErrDistributionMismatch)
	}

	return p.Distribution.Sample(rng)
}
