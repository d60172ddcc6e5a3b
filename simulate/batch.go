// SPDX-License-Identifier: MIT
// Package: coalescence/simulate
//
// batch.go — independent replicates on a bounded worker pool.
//
// Determinism:
//   - Replicate r draws from spectrum.DeriveRand(seed, r), so results depend
//     only on (seed, r) and never on which worker ran them.
//   - Results are returned in replicate order.

package simulate

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/coalescence/merge"
	"github.com/katalvlaran/coalescence/merger"
	"github.com/katalvlaran/coalescence/spectrum"
)

// BatchConfig parameterizes Batch.
type BatchConfig struct {
	Config
	// Replicates is the number of independent runs.
	Replicates int
	// Workers bounds concurrency; 0 uses runtime.GOMAXPROCS(0).
	Workers int
	// Seed is the base seed each replicate stream is derived from.
	Seed int64
}

// Batch runs cfg.Replicates independent replicates. sample(r) builds the
// initial lineages of replicate r and must be safe for concurrent use, as
// must m. The first failing replicate cancels those not yet started.
func Batch[T any](ctx context.Context, sample func(r int) []T, m merger.Merger[T], init T, op merge.Op[T], cfg BatchConfig) ([]Result[T], error) {
	if err := cfg.Config.validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNilMerger
	}
	if cfg.Replicates < 0 || cfg.Workers < 0 {
		return nil, fmt.Errorf("simulate: replicates=%d workers=%d: %w", cfg.Replicates, cfg.Workers, ErrInvalidConfig)
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result[T], cfg.Replicates)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for r := 0; r < cfg.Replicates; r++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := spectrum.DeriveRand(cfg.Seed, uint64(r))
			res, err := Run(sample(r), m, init, op, cfg.Config, rng)
			if err != nil {
				return fmt.Errorf("simulate: replicate %d: %w", r, err)
			}
			results[r] = res

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
