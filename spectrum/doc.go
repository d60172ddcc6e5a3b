// Package spectrum models occupancy spectra: the count, per group size, of how
// many parents receive that many children during one discrete generation.
//
// 🚀 What is an occupancy spectrum?
//
//	Throw k distinguishable balls (lineages) uniformly into N urns (parents).
//	If an urn ends up holding r balls, r is its occupancy number. The vector
//	M = (M_0, M_1, …, M_k), where M_r counts the urns with occupancy r, is the
//	occupancy spectrum of the experiment (Johnson & Kotz, 1977).
//
//	    N = 4 urns, k = 5 balls:   [●●] [●●●] [ ] [ ]
//	    M = [2 0 1 1 0 0]          (2 empty, one pair, one triple)
//
// ✨ Key features:
//   - Generate: exact enumeration of every spectrum compatible with (k, N).
//   - Count: size of that support without materializing it.
//   - Probability: exact combinatorial weight, computed in arbitrary precision.
//   - Distribution: materialized support + weights + inverse-CDF sampling,
//     with optional filtering and editing of the stored spectra.
//   - SampleOnTheFly: O(k+N) direct simulation, no support needed.
//   - Cache: goroutine-safe memoization of distributions keyed by (k, N).
//
// ⚙️ Usage:
//
//	rng := spectrum.NewRand(42)
//
//	// one-shot draw, cheap
//	m, err := spectrum.SampleOnTheFly(10, 100, rng)
//
//	// amortized draws for a fixed (k, N)
//	d, err := spectrum.NewDistribution(10, 100,
//	    spectrum.WithFilter(spectrum.KeepAbove(1e-9)),
//	    spectrum.WithEditor(spectrum.TruncateTail),
//	)
//	m, err = d.Sample(rng)
//
// Performance:
//
//   - Generate / NewDistribution: O(p(k, N)) spectra, where p(k, N) is the number
//     of partitions of k into at most N parts. This grows exponentially in √k.
//   - SampleOnTheFly: O(k + N) time and memory per draw.
//
// Index 0 of a Spectrum always holds M_0, the number of empty urns, so every
// spectrum satisfies Σ_j j·M_j = k and Σ_j M_j = N.
package spectrum
