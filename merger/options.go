// SPDX-License-Identifier: MIT
// Package: coalescence/merger
//
// options.go — functional options shared by every merger policy.
//
// Contract:
//   • Later options override earlier ones.
//   • Option constructors PANIC on nil arguments.

package merger

import "log/slog"

// Option customizes a merger policy.
type Option func(*settings)

// settings holds the resolved knobs.
type settings struct {
	logger      *slog.Logger
	probability bool
}

// newSettings applies opts over the defaults.
func newSettings(opts ...Option) settings {
	s := settings{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// WithLogger sets the logger receiving one Debug record per merge.
// Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("merger: WithLogger(nil)")
	}
	return func(s *settings) { s.logger = l }
}

// WithCoalescenceProbability makes Binary merge only with probability
// k(k-1)/2N, clamped to 1. Ignored by SimultaneousMultiple.
func WithCoalescenceProbability() Option {
	return func(s *settings) { s.probability = true }
}
