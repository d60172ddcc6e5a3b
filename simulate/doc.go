// Package simulate drives merger policies backward in time, one discrete
// generation per step, until the sampled lineages reach their most recent
// common ancestor or a generation limit is hit.
//
// Run executes one replicate; Batch runs independent replicates in parallel,
// each on its own random stream derived from a base seed, so a batch is
// reproducible regardless of scheduling.
package simulate
