package merge

import "fmt"

// Lineages is a bounded view over a caller-owned slice of lineage payloads.
// Only the prefix [0, Len()) is live. Merges move the boundary left, never
// right; the tail keeps whatever the last merge left there and is not
// reachable through the view.
type Lineages[T any] struct {
	items  []T
	active int
}

// NewLineages wraps items without copying; all of them start active.
func NewLineages[T any](items []T) *Lineages[T] {
	return &Lineages[T]{items: items, active: len(items)}
}

// Len returns the number of active lineages.
func (l *Lineages[T]) Len() int { return l.active }

// Cap returns the length of the underlying slice, scratch included.
func (l *Lineages[T]) Cap() int { return len(l.items) }

// At returns the i-th active lineage. Panics if i is outside [0, Len()).
func (l *Lineages[T]) At(i int) T {
	if i < 0 || i >= l.active {
		panic(fmt.Sprintf("merge: index %d out of active range [0,%d)", i, l.active))
	}

	return l.items[i]
}

// Active returns the live prefix. Its capacity is clipped to its length, so
// appending to it never overwrites or exposes the scratch tail.
func (l *Lineages[T]) Active() []T {
	return l.items[:l.active:l.active]
}

// shrink moves the active boundary to n. n must not exceed the current length.
func (l *Lineages[T]) shrink(n int) {
	if n > l.active || n < 0 {
		panic(fmt.Sprintf("merge: shrink to %d from %d", n, l.active))
	}
	l.active = n
}
