// Package merger binds the spectrum samplers to the merge algorithms: one
// Merge call is one generation of coalescence for the active lineages.
//
// Policies:
//   - Binary: exactly one pairwise merge per call, optionally gated by the
//     pairwise coalescence probability k(k-1)/2N.
//   - SimultaneousMultiple: draws an occupancy spectrum for (k, N) through a
//     SamplingPolicy and merges every lineage in one pass.
//
// Sampling policies:
//   - OnTheFly: throw k balls into N urns, no enumeration.
//   - Memoized: sample from a per-(k, N) Distribution kept in a spectrum.Cache.
//   - Fixed: sample from one prebuilt Distribution.
//
// Policies hold no per-call state; a Memoized cache is the only shared data
// and is safe for concurrent use.
package merger
