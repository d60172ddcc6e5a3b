// SPDX-License-Identifier: MIT
// Package: coalescence/spectrum
//
// policies.go — filter and edit strategies applied while a Distribution is built.
//
// Contract:
//   • A FilterFunc sees the exact probability of each generated spectrum and
//     decides whether the spectrum is retained.
//   • An EditFunc receives a retained spectrum it owns and returns the value to
//     store. It must preserve meaning: Σ j·M_j and Σ M_j stay unchanged.

package spectrum

import (
	"fmt"
	"math"
)

// FilterFunc reports whether a spectrum with probability p is retained.
type FilterFunc func(p float64) bool

// EditFunc transforms a retained spectrum before it is stored.
type EditFunc func(Spectrum) Spectrum

// KeepAll retains every spectrum.
func KeepAll(float64) bool { return true }

// KeepAbove returns a filter keeping spectra with probability strictly greater
// than threshold. Panics if threshold is NaN or outside [0,1).
func KeepAbove(threshold float64) FilterFunc {
	if math.IsNaN(threshold) || threshold < 0 || threshold >= 1 {
		panic(fmt.Sprintf("spectrum: KeepAbove(%v) outside [0,1)", threshold))
	}

	return func(p float64) bool { return p > threshold }
}

// Identity stores the full-length spectrum unchanged.
func Identity(m Spectrum) Spectrum { return m }

// TruncateTail drops trailing zero entries, keeping at least index 0.
// The result shares the backing array of m.
func TruncateTail(m Spectrum) Spectrum {
	last := len(m) - 1
	for last > 0 && m[last] == 0 {
		last--
	}
	if last < 0 {
		return m
	}

	return m[:last+1]
}
