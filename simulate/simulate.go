// SPDX-License-Identifier: MIT
// Package: coalescence/simulate
//
// simulate.go — generation loop for a single replicate.
//
// Loop, with t counting generations back from the sample (t = 0):
//  1. Stop when at most one lineage remains or t reaches MaxGenerations.
//  2. N = PopulationSize(t); N ≤ 0 is extinction and aborts the run.
//  3. One Merge call with (N, init, op, rng); record the Event.

package simulate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/coalescence/merge"
	"github.com/katalvlaran/coalescence/merger"
	"github.com/katalvlaran/coalescence/spectrum"
)

var (
	// ErrExtinction indicates a generation whose population size is not positive.
	ErrExtinction = errors.New("simulate: population went extinct")

	// ErrNilMerger indicates Run was called without a merger policy.
	ErrNilMerger = errors.New("simulate: merger is nil")

	// ErrNilPopulation indicates a Config without a PopulationSize function.
	ErrNilPopulation = errors.New("simulate: population size function is nil")

	// ErrInvalidConfig indicates a negative generation limit or replicate count.
	ErrInvalidConfig = errors.New("simulate: invalid configuration")
)

// PopulationFunc returns the number of parents available t generations back.
type PopulationFunc func(t int) int

// Constant returns a PopulationFunc fixed at n.
func Constant(n int) PopulationFunc {
	return func(int) int { return n }
}

// Config parameterizes a run.
type Config struct {
	// MaxGenerations bounds the walk back in time; 0 means no bound.
	MaxGenerations int
	// PopulationSize supplies N(t). Required.
	PopulationSize PopulationFunc
	// Logger receives one Debug record per generation; nil discards.
	Logger *slog.Logger
}

// Event records one generation.
type Event struct {
	Generation     int `json:"generation" yaml:"generation"`
	PopulationSize int `json:"population_size" yaml:"population_size"`
	Before         int `json:"before" yaml:"before"`
	After          int `json:"after" yaml:"after"`
}

// Result is the outcome of one replicate.
type Result[T any] struct {
	// Lineages holds the lineages still active when the run stopped.
	Lineages []T
	// Generations is the number of generations walked.
	Generations int
	// Events holds one entry per generation, oldest last.
	Events []Event
}

// MRCA reports whether the run reached a single common ancestor.
func (r Result[T]) MRCA() bool { return len(r.Lineages) == 1 }

// Coalescences returns the number of generations in which at least one
// merge happened.
func (r Result[T]) Coalescences() int {
	var c int
	for _, e := range r.Events {
		if e.After < e.Before {
			c++
		}
	}

	return c
}

// Run walks lineages back in time under m. The input slice is copied and
// left untouched.
// Errors: ErrNilMerger, ErrNilPopulation, ErrInvalidConfig, ErrExtinction and
// the merger's errors; on error, Result holds the generations completed so far.
func Run[T any](lineages []T, m merger.Merger[T], init T, op merge.Op[T], cfg Config, rng spectrum.Rand) (Result[T], error) {
	if err := cfg.validate(); err != nil {
		return Result[T]{}, err
	}
	if m == nil {
		return Result[T]{}, ErrNilMerger
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	l := merge.NewLineages(append([]T(nil), lineages...))
	var res Result[T]
	for t := 0; l.Len() > 1 && (cfg.MaxGenerations == 0 || t < cfg.MaxGenerations); t++ {
		n := cfg.PopulationSize(t)
		if n <= 0 {
			res.Lineages = append([]T(nil), l.Active()...)
			return res, fmt.Errorf("simulate: generation %d: N=%d: %w", t, n, ErrExtinction)
		}

		before := l.Len()
		after, err := m.Merge(l, n, init, op, rng)
		if err != nil {
			res.Lineages = append([]T(nil), l.Active()...)
			return res, fmt.Errorf("simulate: generation %d: %w", t, err)
		}
		res.Events = append(res.Events, Event{Generation: t, PopulationSize: n, Before: before, After: after})
		res.Generations = t + 1
		logger.LogAttrs(context.Background(), slog.LevelDebug, "generation",
			slog.Int("t", t), slog.Int("n", n), slog.Int("before", before), slog.Int("after", after))
	}
	res.Lineages = append([]T(nil), l.Active()...)

	return res, nil
}

func (c Config) validate() error {
	switch {
	case c.PopulationSize == nil:
		return ErrNilPopulation
	case c.MaxGenerations < 0:
		return fmt.Errorf("simulate: MaxGenerations=%d: %w", c.MaxGenerations, ErrInvalidConfig)
	}

	return nil
}
