// SPDX-License-Identifier: MIT
// Package: coalescence/merger
//
// errors.go — sentinel errors for merger policies.

package merger

import "errors"

var (
	// ErrPopulationSize indicates a population size below one parent.
	ErrPopulationSize = errors.New("merger: population size must be at least 1")

	// ErrDistributionMismatch indicates a Fixed policy asked for a (k, N)
	// other than the one its distribution was built for.
	ErrDistributionMismatch = errors.New("merger: distribution built for another (k, N)")
)

// Method tags for error context.
const (
	methodBinaryMerge       = "Binary.Merge"
	methodSimultaneousMerge = "SimultaneousMultiple.Merge"
	methodFixedSample       = "Fixed.Sample"
)
