// Package config loads the coalesce CLI settings from defaults, an optional
// YAML file and COALESCE_* environment variables.
package config

import "errors"

// Config is the top-level configuration for the coalesce CLI.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Seed         int64              `mapstructure:"seed"`
	Log          LogConfig          `mapstructure:"log"`
	Output       OutputConfig       `mapstructure:"output"`
	Distribution DistributionConfig `mapstructure:"distribution"`
	Simulation   SimulationConfig   `mapstructure:"simulation"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	NoColor bool   `mapstructure:"no_color"`
}

// OutputConfig holds rendering settings.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// DistributionConfig holds the options applied to every built distribution.
type DistributionConfig struct {
	Threshold   float64 `mapstructure:"threshold"`
	Renormalize bool    `mapstructure:"renormalize"`
	Truncate    bool    `mapstructure:"truncate"`
}

// SimulationConfig holds the driver settings.
type SimulationConfig struct {
	SampleSize             int    `mapstructure:"sample_size"`
	PopulationSize         int    `mapstructure:"population_size"`
	Model                  string `mapstructure:"model"`
	Sampling               string `mapstructure:"sampling"`
	MaxGenerations         int    `mapstructure:"max_generations"`
	Replicates             int    `mapstructure:"replicates"`
	Workers                int    `mapstructure:"workers"`
	CoalescenceProbability bool   `mapstructure:"coalescence_probability"`
}

// Accepted enumerations.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"

	ModelBinary   = "binary"
	ModelMultiple = "multiple"

	SamplingOnTheFly = "on-the-fly"
	SamplingMemoized = "memoized"
)

// Defaults.
const (
	DefaultSeed           int64 = 1
	DefaultLogLevel             = "info"
	DefaultFormat               = FormatTable
	DefaultSampleSize           = 10
	DefaultPopulationSize       = 100
	DefaultModel                = ModelMultiple
	DefaultSampling             = SamplingOnTheFly
	DefaultReplicates           = 1
)

// Sentinel errors for configuration validation.
var (
	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("log.level must be one of debug, info, warn, error")
	// ErrInvalidFormat indicates an unknown output format.
	ErrInvalidFormat = errors.New("output.format must be table or yaml")
	// ErrInvalidThreshold indicates a threshold outside [0, 1).
	ErrInvalidThreshold = errors.New("distribution.threshold must be in [0, 1)")
	// ErrInvalidSampleSize indicates a negative sample size.
	ErrInvalidSampleSize = errors.New("simulation.sample_size must be non-negative")
	// ErrInvalidPopulationSize indicates a population without parents.
	ErrInvalidPopulationSize = errors.New("simulation.population_size must be positive")
	// ErrInvalidModel indicates an unknown merger model.
	ErrInvalidModel = errors.New("simulation.model must be binary or multiple")
	// ErrInvalidSampling indicates an unknown sampling policy.
	ErrInvalidSampling = errors.New("simulation.sampling must be on-the-fly or memoized")
	// ErrInvalidMaxGenerations indicates a negative generation limit.
	ErrInvalidMaxGenerations = errors.New("simulation.max_generations must be non-negative")
	// ErrInvalidReplicates indicates a replicate count below one.
	ErrInvalidReplicates = errors.New("simulation.replicates must be positive")
	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("simulation.workers must be non-negative")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	if c.Output.Format != FormatTable && c.Output.Format != FormatYAML {
		return ErrInvalidFormat
	}

	if c.Distribution.Threshold < 0 || c.Distribution.Threshold >= 1 {
		return ErrInvalidThreshold
	}

	return c.validateSimulation()
}

func (c *Config) validateSimulation() error {
	s := c.Simulation
	if s.SampleSize < 0 {
		return ErrInvalidSampleSize
	}

	if s.PopulationSize < 1 {
		return ErrInvalidPopulationSize
	}

	if s.Model != ModelBinary && s.Model != ModelMultiple {
		return ErrInvalidModel
	}

	if s.Sampling != SamplingOnTheFly && s.Sampling != SamplingMemoized {
		return ErrInvalidSampling
	}

	if s.MaxGenerations < 0 {
		return ErrInvalidMaxGenerations
	}

	if s.Replicates < 1 {
		return ErrInvalidReplicates
	}

	if s.Workers < 0 {
		return ErrInvalidWorkers
	}

	return nil
}
