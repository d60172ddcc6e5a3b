// Package commands implements the coalesce subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/coalescence/internal/config"
)

// flagKeys maps command-line flag names to configuration keys. A flag set on
// the command line overrides file and environment values.
var flagKeys = map[string]string{
	"seed":                    "seed",
	"log-level":               "log.level",
	"no-color":                "log.no_color",
	"format":                  "output.format",
	"threshold":               "distribution.threshold",
	"renormalize":             "distribution.renormalize",
	"truncate":                "distribution.truncate",
	"sample-size":             "simulation.sample_size",
	"population":              "simulation.population_size",
	"model":                   "simulation.model",
	"sampling":                "simulation.sampling",
	"max-generations":         "simulation.max_generations",
	"replicates":              "simulation.replicates",
	"workers":                 "simulation.workers",
	"coalescence-probability": "simulation.coalescence_probability",
}

// app carries the state shared by every subcommand once the root has loaded
// configuration.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

// NewRootCommand builds the coalesce command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "coalesce",
		Short: "Coalescence of lineages under discrete-generation population models",
		Long: `Coalesce enumerates, weighs and samples occupancy spectra, and runs
backward-in-time merges of sampled lineages.

Commands:
  spectrum  Enumerate the occupancy spectra of k lineages among n parents
  count     Count the occupancy spectra of k lineages among n parents
  sample    Draw occupancy spectra and tabulate their frequencies
  simulate  Walk sampled lineages back to their common ancestor`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (default .coalesce.yaml in . or $HOME)")
	pf.Int64("seed", config.DefaultSeed, "base random seed")
	pf.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	pf.Bool("no-color", false, "disable colored log output")
	pf.StringP("format", "f", config.DefaultFormat, "output format: table or yaml")

	rootCmd.AddCommand(newSpectrumCommand(a))
	rootCmd.AddCommand(newCountCommand(a))
	rootCmd.AddCommand(newSampleCommand(a))
	rootCmd.AddCommand(newSimulateCommand(a))
	rootCmd.AddCommand(versionCmd(version))

	return rootCmd
}

// setup binds the flags of the running command, loads configuration and
// installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if err := bindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.LoadWith(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
		Level:      cfg.Log.SlogLevel(),
		TimeFormat: time.TimeOnly,
		NoColor:    cfg.Log.NoColor,
	}))

	return nil
}

// bindFlags binds every known flag of fs to its configuration key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("bind flag %q: %w", f.Name, bindErr)
		}
	})

	return err
}

func versionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// Version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "coalesce %s\n", version)
		},
	}
}

// parseKN reads the <k> <n> positional arguments.
func parseKN(args []string) (int, int, error) {
	k, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("parse k %q: %w", args[0], err)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("parse n %q: %w", args[1], err)
	}

	return k, n, nil
}
