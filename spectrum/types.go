// SPDX-License-Identifier: MIT
// Package: coalescence/spectrum
//
// types.go — Spectrum value type and sentinel errors.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Call sites attach context with "%s: ...: %w" using a method tag.
//   • Algorithms never panic at runtime; option constructors do (see options.go).

package spectrum

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNegativeArgument indicates a negative ball or urn count.
var ErrNegativeArgument = errors.New("spectrum: negative argument")

// ErrNilHandler indicates Generate was called without a handler.
var ErrNilHandler = errors.New("spectrum: handler is nil")

// ErrNilRand indicates a sampling call received no random source.
var ErrNilRand = errors.New("spectrum: rng is required")

// ErrNoUrns indicates balls were thrown into zero urns.
var ErrNoUrns = errors.New("spectrum: no urns for a positive number of balls")

// ErrEmptySupport indicates sampling from a distribution whose support is empty,
// either because (k, N) is infeasible or because the filter rejected every spectrum.
var ErrEmptySupport = errors.New("spectrum: empty support")

// ErrZeroMass indicates that every retained spectrum has probability zero.
var ErrZeroMass = errors.New("spectrum: retained probability mass is zero")

// ErrMismatch indicates a spectrum whose ball or urn count disagrees with (k, N).
var ErrMismatch = errors.New("spectrum: spectrum does not match (k, N)")

// Method tags for error context.
const (
	methodGenerate        = "Generate"
	methodCount           = "Count"
	methodProbability     = "Probability"
	methodNewDistribution = "NewDistribution"
	methodSample          = "Sample"
	methodSampleOnTheFly  = "SampleOnTheFly"
	methodCacheGet        = "Cache.Get"
)

// Spectrum is an occupancy spectrum: Spectrum[j] is the number of urns holding
// exactly j balls. Index 0 counts empty urns.
//
// A spectrum may be truncated: trailing zero entries carry no information and
// a truncated spectrum is Equal to its zero-padded form.
type Spectrum []int

// Balls returns Σ j·M_j, the number of balls (children) the spectrum accounts for.
// Complexity: O(len(s)).
func (s Spectrum) Balls() int {
	var total int
	for j, m := range s {
		total += j * m
	}

	return total
}

// Parents returns Σ_{j≥1} M_j, the number of non-empty urns. After a
// simultaneous merge this is the number of surviving lineages.
// Complexity: O(len(s)).
func (s Spectrum) Parents() int {
	var total int
	for j := 1; j < len(s); j++ {
		total += s[j]
	}

	return total
}

// Urns returns Σ_{j≥0} M_j, the total number of urns including empty ones.
// Complexity: O(len(s)).
func (s Spectrum) Urns() int {
	var total int
	for _, m := range s {
		total += m
	}

	return total
}

// Get returns M_j, or 0 when j is past the stored length (truncated tail).
func (s Spectrum) Get(j int) int {
	if j < 0 || j >= len(s) {
		return 0
	}

	return s[j]
}

// Clone returns an independent copy of s.
func (s Spectrum) Clone() Spectrum {
	if s == nil {
		return nil
	}
	out := make(Spectrum, len(s))
	copy(out, s)

	return out
}

// Equal reports whether s and o describe the same spectrum, treating missing
// trailing entries as zero.
func (s Spectrum) Equal(o Spectrum) bool {
	n := len(s)
	if len(o) > n {
		n = len(o)
	}
	for j := 0; j < n; j++ {
		if s.Get(j) != o.Get(j) {
			return false
		}
	}

	return true
}

// valid reports whether every entry is non-negative.
func (s Spectrum) valid() bool {
	for _, m := range s {
		if m < 0 {
			return false
		}
	}

	return true
}

// String renders the spectrum as "[M_0 M_1 … M_j]".
func (s Spectrum) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for j, m := range s {
		if j > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(m))
	}
	b.WriteByte(']')

	return b.String()
}
