// Package merge implements the in-place merge algorithms that coalesce
// lineages during one discrete generation.
//
// 🚀 What does a merge do?
//
//	The active lineages live in the prefix of a caller-owned slice, wrapped in
//	a Lineages view. A merge shuffles that prefix uniformly, folds children
//	into parents with a user operation, and shrinks the active length. Slots
//	past the new length are scratch and cannot be read through the view.
//
//	    before: [a b c d e]          k = 5
//	    spectrum M = [98 0 1 1]      one pair, one triple
//	    after:  [P1 P2 | · · ·]      k = 2 (P1 has 2 children, P2 has 3)
//
// ✨ Algorithms:
//   - Binary: pick two lineages uniformly without replacement and merge them
//     into one parent (pairwise, Kingman-like step).
//   - SimultaneousMultiple: merge all lineages at once into the parents
//     dictated by an occupancy spectrum (Wright–Fisher-like step).
//   - BinaryFunc / SimultaneousMultipleFunc: same, with a fresh initial
//     parent value built per parent (e.g. a new tree node).
//
// ⚙️ Usage:
//
//	l := merge.NewLineages([]string{"a", "b", "c", "d"})
//	concat := func(parent, child string) string { return parent + child }
//	n, err := merge.Binary(l, "", concat, spectrum.NewRand(1))
//	// n == 3, l.Active() holds the 3 surviving lineages
//
// Complexity: O(k) per call for both algorithms (shuffle plus one pass).
//
// The random source is borrowed for the call only; nothing is retained.
package merge
