// SPDX-License-Identifier: MIT
// Package: coalescence/spectrum
//
// probability.go — exact weight of an occupancy spectrum.
//
// Formula (von Mises, 1939; Johnson & Kotz, 1977, p.115):
//
//	P(M | k, N) = N! · k! / ( Π_j (j!)^{M_j} · M_j! · N^k )
//
// The j = 0 term contributes M_0! = (N − Σ_{j≥1} M_j)!, which turns N!/M_0! into
// the number of ordered choices of non-empty urns.
//
// Numeric policy:
//   - Factorials and powers are exact big.Int values; the ratio is a big.Rat.
//   - Conversion to float64 happens once, at the end, with round-to-nearest.

package spectrum

import (
	"fmt"
	"math/big"
)

// Probability returns the probability of observing spectrum m when k balls are
// thrown independently and uniformly into n urns.
//
// The spectrum must account for exactly k balls and n urns (index 0 included).
// Errors: ErrNegativeArgument, ErrMismatch.
//
// Complexity: O(k · log) big-integer multiplications.
func Probability(k, n int, m Spectrum) (float64, error) {
	if k < 0 || n < 0 || !m.valid() {
		return 0, fmt.Errorf("%s: k=%d n=%d m=%v: %w", methodProbability, k, n, m, ErrNegativeArgument)
	}
	for j, mj := range m {
		// M_0 ≤ n and M_j ≤ k, so Balls and Urns cannot overflow.
		if (j == 0 && mj > n) || (j >= 1 && mj > k) {
			return 0, fmt.Errorf("%s: m=%v: M_%d=%d exceeds k=%d n=%d: %w",
				methodProbability, m, j, mj, k, n, ErrMismatch)
		}
	}
	if m.Balls() != k || m.Urns() != n {
		return 0, fmt.Errorf("%s: m=%v accounts for %d balls in %d urns, want k=%d n=%d: %w",
			methodProbability, m, m.Balls(), m.Urns(), k, n, ErrMismatch)
	}

	return probability(k, n, m), nil
}

// probability assumes m has already been validated against (k, n).
func probability(k, n int, m Spectrum) float64 {
	num := new(big.Int).Mul(factorial(n), factorial(k))

	den := new(big.Int).Exp(big.NewInt(int64(n)), big.NewInt(int64(k)), nil)
	term := new(big.Int)
	for j, mj := range m {
		if mj == 0 {
			continue
		}
		// (j!)^{M_j} · M_j!
		term.Exp(factorial(j), big.NewInt(int64(mj)), nil)
		den.Mul(den, term)
		den.Mul(den, factorial(mj))
	}

	p, _ := new(big.Rat).SetFrac(num, den).Float64()

	return p
}

// factorial returns n! as a big.Int. n ≤ 1 yields 1.
func factorial(n int) *big.Int {
	if n <= 1 {
		return big.NewInt(1)
	}

	return new(big.Int).MulRange(1, int64(n))
}
