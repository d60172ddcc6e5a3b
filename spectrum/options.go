// SPDX-License-Identifier: MIT
// Package: coalescence/spectrum
//
// options.go — functional options for Distribution and Cache.
//
// Contract:
//   • Options mutate a private config; later options override earlier ones.
//   • Option constructors validate and PANIC on nil arguments.
//   • Defaults: KeepAll, Identity, no renormalization, discarding logger.

package spectrum

import "log/slog"

// Option customizes how a Distribution is built.
type Option func(*config)

// config holds the resolved build knobs.
type config struct {
	filter      FilterFunc
	editor      EditFunc
	renormalize bool
	logger      *slog.Logger
}

// newConfig applies opts over the deterministic defaults.
func newConfig(opts ...Option) config {
	cfg := config{
		filter: KeepAll,
		editor: Identity,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithFilter sets the retention predicate. Panics on nil.
func WithFilter(f FilterFunc) Option {
	if f == nil {
		panic("spectrum: WithFilter(nil)")
	}
	return func(c *config) { c.filter = f }
}

// WithEditor sets the policy applied to retained spectra. Panics on nil.
func WithEditor(e EditFunc) Option {
	if e == nil {
		panic("spectrum: WithEditor(nil)")
	}
	return func(c *config) { c.editor = e }
}

// WithRenormalize rescales the retained weights so they sum to 1.
// Without it, filtered mass is dropped and Weights may sum to less than 1.
func WithRenormalize() Option {
	return func(c *config) { c.renormalize = true }
}

// WithLogger sets the logger receiving build diagnostics at Debug level.
// Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("spectrum: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}
