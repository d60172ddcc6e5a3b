// SPDX-License-Identifier: MIT
// Package: coalescence/spectrum
//
// rng.go — random source contract and deterministic stream helpers.
//
// Goals:
//   - The caller owns the generator and lends it for the duration of one call;
//     nothing in this module stores a Rand.
//   - Same seed ⇒ same spectra, same merges.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
//   - Use DeriveRand to create independent streams for parallel replicates.

package spectrum

import "math/rand"

// Rand is the random source consumed by samplers and merge algorithms.
// *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a uniform integer in [0, n). n > 0.
	Intn(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// defaultSeed replaces a zero seed to keep reproducible defaults.
const defaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand. seed == 0 uses defaultSeed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new seed using
// the SplitMix64 finalizer, so neighbouring stream ids give unrelated seeds.
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// DeriveRand returns an independent deterministic stream for replicate stream
// of a run seeded with seed. Call it during setup, not in hot loops.
func DeriveRand(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(DeriveSeed(seed, stream)))
}
