// SPDX-License-Identifier: MIT
// Package: coalescence/spectrum
//
// distribution.go — materialized probability distribution over the support.
//
// Lifecycle:
//   1) NewDistribution enumerates the support with Generate, weighs each
//      spectrum with its exact probability, filters, edits and stores it.
//   2) A cumulative weight table is built once.
//   3) Sample draws by inverse CDF (binary search), read-only afterwards.
//
// Filtering policy:
//   - Dropped mass is NOT redistributed unless WithRenormalize is given, so
//     Weights may sum to less than 1. Mass reports the retained total.
//
// Concurrency:
//   - A built Distribution is immutable; Sample may be called from several
//     goroutines as long as each passes its own random source.

package spectrum

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Distribution is the probability distribution of occupancy spectra for
// k balls thrown into n urns, restricted to the spectra kept by its filter.
type Distribution struct {
	k, n    int
	support []Spectrum
	weights []float64
	cdf     []float64 // cdf[i] = Σ_{l≤i} weights[l]
	mass    float64
}

// NewDistribution builds the distribution for (k, n).
//
// Edge cases:
//   - k == 0: support {[n]} with weight 1.
//   - n == 0 && k > 0: infeasible, the support is empty (Len() == 0).
//   - k > n: fine, several balls share an urn.
//
// Errors: ErrNegativeArgument.
// Complexity: O(p(k, n) · k) time and memory.
func NewDistribution(k, n int, opts ...Option) (*Distribution, error) {
	if k < 0 || n < 0 {
		return nil, fmt.Errorf("%s: k=%d n=%d: %w", methodNewDistribution, k, n, ErrNegativeArgument)
	}
	cfg := newConfig(opts...)

	d := &Distribution{k: k, n: n}
	var generated int
	err := Generate(k, n, func(m Spectrum) {
		generated++
		p := probability(k, n, m)
		if !cfg.filter(p) {
			return
		}
		d.support = append(d.support, cfg.editor(m))
		d.weights = append(d.weights, p)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodNewDistribution, err)
	}

	d.cdf = make([]float64, len(d.weights))
	for i, w := range d.weights {
		d.mass += w
		d.cdf[i] = d.mass
	}

	if cfg.renormalize && d.mass > 0 {
		for i := range d.weights {
			d.weights[i] /= d.mass
			d.cdf[i] /= d.mass
		}
		d.mass = 1
	}

	cfg.logger.Debug("occupancy spectrum distribution built",
		"k", k, "n", n,
		"generated", generated,
		"retained", len(d.support),
		"mass", d.mass,
		"renormalized", cfg.renormalize)

	return d, nil
}

// K returns the number of balls (lineages) the distribution was built for.
func (d *Distribution) K() int { return d.k }

// N returns the number of urns (parents) the distribution was built for.
func (d *Distribution) N() int { return d.n }

// Len returns the number of retained spectra.
func (d *Distribution) Len() int { return len(d.support) }

// Mass returns the sum of the retained weights: 1 without a filter (up to
// rounding), possibly less with one.
func (d *Distribution) Mass() float64 { return d.mass }

// Support returns a copy of the retained spectra in generation order.
func (d *Distribution) Support() []Spectrum {
	out := make([]Spectrum, len(d.support))
	for i, m := range d.support {
		out[i] = m.Clone()
	}

	return out
}

// Weights returns a copy of the probabilities, parallel to Support.
func (d *Distribution) Weights() []float64 {
	out := make([]float64, len(d.weights))
	copy(out, d.weights)

	return out
}

// At returns the i-th retained spectrum (a copy) and its weight.
// Panics if i is out of range.
func (d *Distribution) At(i int) (Spectrum, float64) {
	return d.support[i].Clone(), d.weights[i]
}

// Sample draws one spectrum with probability proportional to its weight.
// The returned spectrum is a copy owned by the caller. Spectra removed by the
// filter are never drawn.
//
// Errors: ErrNilRand, ErrEmptySupport, ErrZeroMass.
// Complexity: O(log Len()) plus the copy.
func (d *Distribution) Sample(rng Rand) (Spectrum, error) {
	i, err := d.sampleIndex(rng)
	if err != nil {
		return nil, err
	}

	return d.support[i].Clone(), nil
}

// sampleIndex draws the index of a retained spectrum.
func (d *Distribution) sampleIndex(rng Rand) (int, error) {
	if rng == nil {
		return 0, fmt.Errorf("%s: %w", methodSample, ErrNilRand)
	}
	if len(d.support) == 0 {
		return 0, fmt.Errorf("%s: k=%d n=%d: %w", methodSample, d.k, d.n, ErrEmptySupport)
	}
	total := d.cdf[len(d.cdf)-1]
	if total <= 0 || math.IsNaN(total) {
		return 0, fmt.Errorf("%s: k=%d n=%d: %w", methodSample, d.k, d.n, ErrZeroMass)
	}

	u := rng.Float64() * total
	// Smallest i with cdf[i] > u; zero-weight entries are never selected.
	i := sort.Search(len(d.cdf), func(i int) bool { return d.cdf[i] > u })
	if i == len(d.cdf) {
		i = len(d.cdf) - 1
	}

	return i, nil
}

// String renders one "P( [M_0 …] ) = w" line per retained spectrum.
func (d *Distribution) String() string {
	var b strings.Builder
	for i, m := range d.support {
		fmt.Fprintf(&b, "P( %v ) = %g\n", m, d.weights[i])
	}

	return b.String()
}
