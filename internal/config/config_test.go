package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coalescence/internal/config"
	"github.com/katalvlaran/coalescence/spectrum"
)

func validConfig() config.Config {
	return config.Config{
		Seed:   1,
		Log:    config.LogConfig{Level: "info"},
		Output: config.OutputConfig{Format: config.FormatTable},
		Simulation: config.SimulationConfig{
			SampleSize:     10,
			PopulationSize: 100,
			Model:          config.ModelMultiple,
			Sampling:       config.SamplingMemoized,
			Replicates:     1,
		},
	}
}

func TestValidate_ValidConfig_NoError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_Invalid_ReturnsSentinel(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		mutate func(*config.Config)
		want   error
	}{
		"log level":      {func(c *config.Config) { c.Log.Level = "trace" }, config.ErrInvalidLogLevel},
		"format":         {func(c *config.Config) { c.Output.Format = "xml" }, config.ErrInvalidFormat},
		"threshold low":  {func(c *config.Config) { c.Distribution.Threshold = -0.1 }, config.ErrInvalidThreshold},
		"threshold high": {func(c *config.Config) { c.Distribution.Threshold = 1 }, config.ErrInvalidThreshold},
		"sample size":    {func(c *config.Config) { c.Simulation.SampleSize = -1 }, config.ErrInvalidSampleSize},
		"population":     {func(c *config.Config) { c.Simulation.PopulationSize = 0 }, config.ErrInvalidPopulationSize},
		"model":          {func(c *config.Config) { c.Simulation.Model = "kingman" }, config.ErrInvalidModel},
		"sampling":       {func(c *config.Config) { c.Simulation.Sampling = "exact" }, config.ErrInvalidSampling},
		"generations":    {func(c *config.Config) { c.Simulation.MaxGenerations = -5 }, config.ErrInvalidMaxGenerations},
		"replicates":     {func(c *config.Config) { c.Simulation.Replicates = 0 }, config.ErrInvalidReplicates},
		"workers":        {func(c *config.Config) { c.Simulation.Workers = -2 }, config.ErrInvalidWorkers},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tc.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSeed, cfg.Seed)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, config.DefaultFormat, cfg.Output.Format)
	assert.Equal(t, config.DefaultSampleSize, cfg.Simulation.SampleSize)
	assert.Equal(t, config.DefaultPopulationSize, cfg.Simulation.PopulationSize)
	assert.Equal(t, config.DefaultModel, cfg.Simulation.Model)
	assert.Equal(t, config.DefaultSampling, cfg.Simulation.Sampling)
	assert.Equal(t, config.DefaultReplicates, cfg.Simulation.Replicates)
	assert.Zero(t, cfg.Distribution.Threshold)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coalesce.yaml")
	content := []byte(`seed: 42
output:
  format: yaml
distribution:
  threshold: 0.01
  truncate: true
simulation:
  model: binary
  population_size: 500
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("COALESCE_SIMULATION_REPLICATES", "8")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, config.FormatYAML, cfg.Output.Format)
	assert.InDelta(t, 0.01, cfg.Distribution.Threshold, 1e-12)
	assert.True(t, cfg.Distribution.Truncate)
	assert.Equal(t, config.ModelBinary, cfg.Simulation.Model)
	assert.Equal(t, 500, cfg.Simulation.PopulationSize)
	assert.Equal(t, 8, cfg.Simulation.Replicates)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coalesce.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  model: kingman\n"), 0o600))

	_, err := config.Load(path)
	require.ErrorIs(t, err, config.ErrInvalidModel)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestLoadWith_SetOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	v := viper.New()
	v.Set("simulation.sample_size", 3)

	cfg, err := config.LoadWith(v, "")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Simulation.SampleSize)
}

func TestDistributionOptions(t *testing.T) {
	t.Parallel()

	d, err := spectrum.NewDistribution(3, 3, config.DistributionConfig{}.Options()...)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())

	opts := config.DistributionConfig{Threshold: 0.2, Renormalize: true, Truncate: true}.Options()
	require.Len(t, opts, 3)
	d, err = spectrum.NewDistribution(3, 3, opts...)
	require.NoError(t, err)
	assert.Equal(t, []spectrum.Spectrum{{1, 1, 1}, {0, 3}}, d.Support())
	assert.InDelta(t, 1.0, d.Mass(), 1e-9)
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, config.LogConfig{Level: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, config.LogConfig{Level: "info"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, config.LogConfig{Level: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelError, config.LogConfig{Level: "error"}.SlogLevel())
}
