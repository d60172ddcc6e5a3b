// SPDX-License-Identifier: MIT
// Package: coalescence/merger
//
// merger.go — the Merger contract and its two policies.
//
// State machine per call: Ready → [AcquireSpectrum] → Merge → Done.
// Nothing is observable between steps and nothing is carried to the next call.

package merger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/coalescence/merge"
	"github.com/katalvlaran/coalescence/spectrum"
)

// Merger performs one generation of coalescence on the active lineages of l
// for a population of n parents and returns the new active length.
type Merger[T any] interface {
	Merge(l *merge.Lineages[T], n int, init T, op merge.Op[T], rng spectrum.Rand) (int, error)
}

// Binary merges one pair of lineages per call.
type Binary[T any] struct {
	s settings
}

// NewBinary returns a pairwise merger.
func NewBinary[T any](opts ...Option) *Binary[T] {
	return &Binary[T]{s: newSettings(opts...)}
}

// Merge collapses two lineages drawn uniformly into one parent.
//
// Without WithCoalescenceProbability, n is ignored. With it, n must be at least
// 1 and the pair merges only with probability k(k-1)/2n; otherwise l is left
// as is and k is returned.
// Errors: ErrPopulationSize, and those of merge.Binary.
func (b *Binary[T]) Merge(l *merge.Lineages[T], n int, init T, op merge.Op[T], rng spectrum.Rand) (int, error) {
	if b.s.probability && n < 1 {
		return 0, fmt.Errorf("%s: n=%d: %w", methodBinaryMerge, n, ErrPopulationSize)
	}
	if l == nil {
		return 0, fmt.Errorf("%s: %w", methodBinaryMerge, merge.ErrNilLineages)
	}
	k := l.Len()
	if b.s.probability && rng != nil && k >= 2 && rng.Float64() >= CoalescenceProbability(k, n) {
		b.log(k, n, k)
		return k, nil
	}

	after, err := merge.Binary(l, init, op, rng)
	if err != nil {
		return after, fmt.Errorf("%s: %w", methodBinaryMerge, err)
	}
	b.log(k, n, after)

	return after, nil
}

func (b *Binary[T]) log(k, n, after int) {
	b.s.logger.LogAttrs(context.Background(), slog.LevelDebug, "binary merge",
		slog.Int("k", k), slog.Int("n", n), slog.Int("after", after))
}

// CoalescenceProbability returns k(k-1)/2n clamped to [0, 1], the chance that
// some pair among k lineages shares a parent in a population of n.
// Returns 1 for n < 1.
func CoalescenceProbability(k, n int) float64 {
	if k < 2 {
		return 0
	}
	if n < 1 {
		return 1
	}
	p := float64(k) * float64(k-1) / (2 * float64(n))
	if p > 1 {
		return 1
	}

	return p
}

// SimultaneousMultiple merges every active lineage per call into the parents
// described by a spectrum drawn from its SamplingPolicy.
type SimultaneousMultiple[T any] struct {
	policy SamplingPolicy
	s      settings
}

// NewSimultaneousMultiple returns a multiple merger drawing spectra from
// policy. Panics on a nil policy.
func NewSimultaneousMultiple[T any](policy SamplingPolicy, opts ...Option) *SimultaneousMultiple[T] {
	if policy == nil {
		panic("merger: NewSimultaneousMultiple(nil)")
	}
	return &SimultaneousMultiple[T]{policy: policy, s: newSettings(opts...)}
}

// Merge draws a spectrum for (k, n) and merges the lineages accordingly.
// A single lineage (or none) is left untouched.
// Errors: ErrPopulationSize, the sampling policy's errors, and those of
// merge.SimultaneousMultiple.
func (sm *SimultaneousMultiple[T]) Merge(l *merge.Lineages[T], n int, init T, op merge.Op[T], rng spectrum.Rand) (int, error) {
	if l == nil {
		return 0, fmt.Errorf("%s: %w", methodSimultaneousMerge, merge.ErrNilLineages)
	}
	k := l.Len()
	if k <= 1 {
		return k, nil
	}
	if n < 1 {
		return k, fmt.Errorf("%s: n=%d: %w", methodSimultaneousMerge, n, ErrPopulationSize)
	}
	if rng == nil {
		return k, fmt.Errorf("%s: %w", methodSimultaneousMerge, merge.ErrNilRand)
	}

	m, err := sm.policy.Sample(k, n, rng)
	if err != nil {
		return k, fmt.Errorf("%s: k=%d n=%d: %w", methodSimultaneousMerge, k, n, err)
	}
	after, err := merge.SimultaneousMultiple(l, m, init, op, rng)
	if err != nil {
		return after, fmt.Errorf("%s: %w", methodSimultaneousMerge, err)
	}
	sm.s.logger.LogAttrs(context.Background(), slog.LevelDebug, "simultaneous multiple merge",
		slog.Int("k", k), slog.Int("n", n), slog.Int("after", after), slog.String("spectrum", m.String()))

	return after, nil
}
