// SPDX-License-Identifier: MIT
// Package: coalescence/spectrum
//
// generator.go — exact enumeration of the occupancy spectrum support.
//
// Canonical model:
//   - n distinguishable balls into m indistinguishable urns; each emitted
//     spectrum corresponds to one partition of n into at most m parts.
//   - Recursion on (n, m, jMax), jMax being the largest occupancy still allowed.
//     Vertical descent puts i = ⌊n/jMax⌋ … 1 urns at occupancy jMax and recurses
//     on the remaining balls with a strictly smaller jMax; horizontal descent
//     then forbids jMax altogether.
//
// Determinism:
//   - Larger occupancies are tried first, and for a given occupancy the
//     largest multiplicity first. The order never depends on randomness.
//
// Complexity:
//   - Time: O(p(n, m) · n), p being the restricted partition count.
//   - Space: O(n) recursion depth plus one buffer; each emission allocates its copy.

package spectrum

import (
	"fmt"
	"math/big"
)

// Generate calls handler once for every distinct occupancy spectrum obtained by
// throwing nBalls balls into nUrns urns. Each spectrum passed to handler is a
// fresh slice of length nBalls+1 that the handler may keep or modify.
//
// Edge cases:
//   - nBalls == 0: a single spectrum [nUrns] is emitted.
//   - nUrns == 0 && nBalls > 0: nothing is emitted (infeasible), nil is returned.
//
// Errors: ErrNegativeArgument, ErrNilHandler.
func Generate(nBalls, nUrns int, handler func(Spectrum)) error {
	if nBalls < 0 || nUrns < 0 {
		return fmt.Errorf("%s: balls=%d urns=%d: %w", methodGenerate, nBalls, nUrns, ErrNegativeArgument)
	}
	if handler == nil {
		return fmt.Errorf("%s: %w", methodGenerate, ErrNilHandler)
	}

	buf := make(Spectrum, nBalls+1)
	descend(nBalls, nUrns, nBalls, buf, handler)

	return nil
}

// descend emits every completion of buf that places n balls into m urns with
// occupancies no larger than jMax.
// On return, buf[1..jMax] is all zero again.
func descend(n, m, jMax int, buf Spectrum, emit func(Spectrum)) {
	if n == 0 {
		// Every ball is placed; the urns left over are empty.
		out := buf.Clone()
		out[0] = m
		emit(out)
		return
	}
	if m == 0 || jMax == 0 {
		// Balls remain but no urn or no occupancy is left: dead branch.
		return
	}

	// Vertical descent: i urns hold exactly jMax balls.
	for i := n / jMax; i >= 1; i-- {
		if i > m {
			continue
		}
		buf[jMax] = i
		left := n - i*jMax
		next := jMax - 1
		if left < next {
			next = left
		}
		descend(left, m-i, next, buf, emit)
	}
	buf[jMax] = 0

	// Horizontal descent: no urn holds jMax balls.
	descend(n, m, jMax-1, buf, emit)
}

// Count returns the number of spectra Generate(nBalls, nUrns, …) would emit,
// i.e. the number of partitions of nBalls into at most nUrns parts.
//
// Recurrence: p(i, j) = p(i, j-1) + p(i-j, j), with p(0, j) = 1.
// Complexity: O(nBalls · min(nBalls, nUrns)) big-integer additions.
//
// Errors: ErrNegativeArgument.
func Count(nBalls, nUrns int) (*big.Int, error) {
	if nBalls < 0 || nUrns < 0 {
		return nil, fmt.Errorf("%s: balls=%d urns=%d: %w", methodCount, nBalls, nUrns, ErrNegativeArgument)
	}

	parts := nUrns
	if parts > nBalls {
		parts = nBalls
	}

	// p[i] holds the count of partitions of i into parts ≤ j for the current j.
	p := make([]*big.Int, nBalls+1)
	p[0] = big.NewInt(1)
	for i := 1; i <= nBalls; i++ {
		p[i] = new(big.Int)
	}
	for j := 1; j <= parts; j++ {
		for i := j; i <= nBalls; i++ {
			p[i].Add(p[i], p[i-j])
		}
	}

	return p[nBalls], nil
}
