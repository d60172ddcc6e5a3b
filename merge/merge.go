package merge

import (
	"fmt"

	"github.com/katalvlaran/coalescence/spectrum"
)

// Op folds a child into its parent accumulator and returns the new accumulator.
type Op[T any] func(parent, child T) T

// Number lists the payload types Sum can add.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sum is the default combining operation: parent + child.
func Sum[T Number](parent, child T) T { return parent + child }

// Binary merges two lineages drawn uniformly without replacement from the
// active range into a single parent.
//
// Steps:
//  1. Shuffle the whole active range uniformly.
//  2. l[0] = op(init, l[0]).
//  3. l[0] = op(l[0], l[k-1]).
//  4. Drop slot k-1 from the active range.
//
// Returns the new active length, k-1.
// Errors: ErrNilLineages, ErrNilOperation, ErrNilRand, ErrTooFewLineages.
func Binary[T any](l *Lineages[T], init T, op Op[T], rng spectrum.Rand) (int, error) {
	return BinaryFunc(l, constant(init), op, rng)
}

// BinaryFunc is Binary with the parent accumulator seeded by newParent(),
// called once per merge.
func BinaryFunc[T any](l *Lineages[T], newParent func() T, op Op[T], rng spectrum.Rand) (int, error) {
	if err := validate(methodBinary, l, newParent, op, rng); err != nil {
		return 0, err
	}
	k := l.Len()
	if k < 2 {
		return k, fmt.Errorf("%s: k=%d: %w", methodBinary, k, ErrTooFewLineages)
	}

	active := l.items[:k]
	shuffle(active, rng)

	active[0] = op(newParent(), active[0])
	active[0] = op(active[0], active[k-1])
	l.shrink(k - 1)

	return k - 1, nil
}

// SimultaneousMultiple merges every active lineage into the parents described
// by spectrum m in one pass.
//
// Steps:
//  1. Shuffle the whole active range uniformly.
//  2. For j = 2, 3, … and for each of the m[j] parents of size j:
//     seed the front lineage with init, fold j-1 lineages taken from the back
//     into it, and advance the front.
//  3. Occupancies 0 (empty parents) and 1 (single child) combine nothing: the
//     single-child lineages stay untouched between front and back.
//
// Returns the new active length, which equals m.Parents().
// Errors: ErrNilLineages, ErrNilOperation, ErrNilRand, ErrSpectrumMismatch.
func SimultaneousMultiple[T any](l *Lineages[T], m spectrum.Spectrum, init T, op Op[T], rng spectrum.Rand) (int, error) {
	return SimultaneousMultipleFunc(l, m, constant(init), op, rng)
}

// SimultaneousMultipleFunc is SimultaneousMultiple with each parent
// accumulator seeded by newParent().
func SimultaneousMultipleFunc[T any](l *Lineages[T], m spectrum.Spectrum, newParent func() T, op Op[T], rng spectrum.Rand) (int, error) {
	if err := validate(methodSimultaneousMultiple, l, newParent, op, rng); err != nil {
		return 0, err
	}
	k := l.Len()
	for j, mj := range m {
		// Each count is at most k, so Balls cannot overflow.
		if mj < 0 || (j >= 1 && mj > k) {
			return k, fmt.Errorf("%s: m=%v: %w", methodSimultaneousMultiple, m, ErrSpectrumMismatch)
		}
	}
	if balls := m.Balls(); balls != k {
		return k, fmt.Errorf("%s: m=%v accounts for %d lineages, have %d: %w",
			methodSimultaneousMultiple, m, balls, k, ErrSpectrumMismatch)
	}

	active := l.items[:k]
	shuffle(active, rng)

	first, last := 0, k
	for j := 2; j < len(m); j++ {
		for p := 0; p < m[j]; p++ {
			active[first] = op(newParent(), active[first])
			for c := 1; c < j; c++ {
				last--
				active[first] = op(active[first], active[last])
			}
			first++
		}
	}
	l.shrink(last)

	return last, nil
}

// validate checks the arguments common to every merge.
func validate[T any](method string, l *Lineages[T], newParent func() T, op Op[T], rng spectrum.Rand) error {
	switch {
	case l == nil:
		return fmt.Errorf("%s: %w", method, ErrNilLineages)
	case op == nil || newParent == nil:
		return fmt.Errorf("%s: %w", method, ErrNilOperation)
	case rng == nil:
		return fmt.Errorf("%s: %w", method, ErrNilRand)
	}

	return nil
}

// constant returns a parent constructor yielding v.
func constant[T any](v T) func() T {
	return func() T { return v }
}

// shuffle performs an in-place Fisher–Yates shuffle of a using rng.
// Every permutation is equally likely. O(n) time, O(1) extra space.
func shuffle[T any](a []T, rng spectrum.Rand) {
	for i := len(a) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}
