// SPDX-License-Identifier: MIT
// Package: coalescence/spectrum
//
// onthefly.go — direct simulation of the balls-into-urns experiment.
//
// Canonical model:
//   - Each of the k balls picks an urn uniformly in [0, n) with rng.Intn.
//   - The per-urn tally is folded into occupancy counts: M[tally[u]]++.
//
// The result has the same law as Distribution.Sample for (k, n) without the
// support ever being enumerated.
//
// Complexity:
//   - Time: O(k + n). Space: O(k + n).

package spectrum

import "fmt"

// SampleOnTheFly draws one occupancy spectrum for k balls and n urns.
// The result has length k+1.
//
// Edge cases:
//   - k == 0: returns [n] without consuming randomness.
//
// Errors: ErrNegativeArgument, ErrNoUrns (n == 0 && k > 0), ErrNilRand.
func SampleOnTheFly(k, n int, rng Rand) (Spectrum, error) {
	if k < 0 || n < 0 {
		return nil, fmt.Errorf("%s: k=%d n=%d: %w", methodSampleOnTheFly, k, n, ErrNegativeArgument)
	}
	if k == 0 {
		return Spectrum{n}, nil
	}
	if n == 0 {
		return nil, fmt.Errorf("%s: k=%d: %w", methodSampleOnTheFly, k, ErrNoUrns)
	}
	if rng == nil {
		return nil, fmt.Errorf("%s: %w", methodSampleOnTheFly, ErrNilRand)
	}

	tally := make([]int, n)
	for i := 0; i < k; i++ {
		tally[rng.Intn(n)]++
	}

	m := make(Spectrum, k+1)
	for _, c := range tally {
		m[c]++
	}

	return m, nil
}
