// Package coalescence is a lineage-merging engine for discrete-generation
// population genetics: given the lineages sampled today, it decides
// generation by generation which of them share a parent and collapses them.
//
// 🚀 What is inside?
//
//   - Occupancy spectra: exact enumeration, counting and probabilities of
//     "how many parents get how many children" for k lineages among N parents
//   - Sampling: draw a spectrum from a built distribution, from a shared
//     per-(k, N) cache, or on the fly without enumerating the support
//   - Merges: in-place binary and simultaneous multiple merges over any
//     payload type with a user combining operation
//   - Mergers: policies binding samplers to merges, one call per generation
//   - Driver: walk a sample back to its common ancestor, serially or as a
//     reproducible parallel batch
//
// Under the hood:
//
//	spectrum/         — Spectrum, Generate, Count, Probability, Distribution, Cache, SampleOnTheFly
//	merge/            — Lineages, Binary, SimultaneousMultiple
//	merger/           — Merger, Binary, SimultaneousMultiple, OnTheFly, Memoized, Fixed
//	simulate/         — Run, Batch
//	internal/config/  — viper loader for the CLI
//	cmd/coalesce/     — command-line front end
//
// Quick example, five lineages and the spectrum [98 0 1 1]:
//
//	    a b c   d e          98 childless parents
//	     \|/     \|
//	      P1      P2         one triple, one pair
//
//	l := merge.NewLineages([]int{1, 1, 1, 1, 1})
//	n, _ := merge.SimultaneousMultiple(l, spectrum.Spectrum{98, 0, 1, 1}, 0, merge.Sum[int], spectrum.NewRand(1))
//	// n == 2; l.Active() is a permutation of [3 2]
//
// Randomness is always injected: every sampler and merge borrows a caller
// Rand for one call, so seeded runs reproduce exactly.
package coalescence
