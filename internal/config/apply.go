package config

import (
	"log/slog"

	"github.com/katalvlaran/coalescence/spectrum"
)

// Options translates the distribution settings into spectrum options.
// A zero threshold keeps every spectrum.
func (d DistributionConfig) Options() []spectrum.Option {
	var opts []spectrum.Option

	if d.Threshold > 0 {
		opts = append(opts, spectrum.WithFilter(spectrum.KeepAbove(d.Threshold)))
	}

	if d.Truncate {
		opts = append(opts, spectrum.WithEditor(spectrum.TruncateTail))
	}

	if d.Renormalize {
		opts = append(opts, spectrum.WithRenormalize())
	}

	return opts
}

// SlogLevel maps the configured level name to a slog.Level.
// Unknown names fall back to Info; Validate rejects them earlier.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
