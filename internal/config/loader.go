package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".coalesce"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for coalesce settings.
const envPrefix = "COALESCE"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Load reads configuration from file, env vars, and defaults into a new
// viper instance. If configPath is non-empty, it is used as the explicit
// config file path; otherwise .coalesce.yaml is searched in CWD and $HOME.
// A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	return LoadWith(viper.New(), configPath)
}

// LoadWith is Load on a caller-supplied viper instance, so that command-line
// flags bound to v take precedence over file and environment values.
func LoadWith(v *viper.Viper, configPath string) (*Config, error) {
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator, "-", envKeySeparator))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
	}

	readErr := v.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := v.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("seed", DefaultSeed)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.no_color", false)

	v.SetDefault("output.format", DefaultFormat)

	v.SetDefault("distribution.threshold", 0.0)
	v.SetDefault("distribution.renormalize", false)
	v.SetDefault("distribution.truncate", false)

	v.SetDefault("simulation.sample_size", DefaultSampleSize)
	v.SetDefault("simulation.population_size", DefaultPopulationSize)
	v.SetDefault("simulation.model", DefaultModel)
	v.SetDefault("simulation.sampling", DefaultSampling)
	v.SetDefault("simulation.max_generations", 0)
	v.SetDefault("simulation.replicates", DefaultReplicates)
	v.SetDefault("simulation.workers", 0)
	v.SetDefault("simulation.coalescence_probability", false)
}
