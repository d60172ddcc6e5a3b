package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/coalescence/internal/config"
	"github.com/katalvlaran/coalescence/merge"
	"github.com/katalvlaran/coalescence/merger"
	"github.com/katalvlaran/coalescence/simulate"
)

// replicateReport is the YAML form of one replicate.
type replicateReport struct {
	Replicate    int              `yaml:"replicate"`
	Generations  int              `yaml:"generations"`
	Coalescences int              `yaml:"coalescences"`
	Lineages     []int            `yaml:"lineages"`
	MRCA         bool             `yaml:"mrca"`
	Events       []simulate.Event `yaml:"events,omitempty"`
}

// simulationReport is the YAML form of a batch.
type simulationReport struct {
	Model           string            `yaml:"model"`
	Sampling        string            `yaml:"sampling,omitempty"`
	SampleSize      int               `yaml:"sample_size"`
	PopulationSize  int               `yaml:"population_size"`
	Seed            int64             `yaml:"seed"`
	MeanGenerations float64           `yaml:"mean_generations"`
	Replicates      []replicateReport `yaml:"replicates"`
}

func newSimulateCommand(a *app) *cobra.Command {
	var events bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Walk sampled lineages back to their common ancestor",
		Long: `Simulate the genealogy of a sample under a constant-size population, one
discrete generation at a time, until the lineages find their most recent
common ancestor. Each lineage carries the number of sampled descendants it
represents.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.cfg.Simulation
			m := newMerger(a.cfg, a.logger)

			sample := func(int) []int {
				out := make([]int, s.SampleSize)
				for i := range out {
					out[i] = 1
				}
				return out
			}

			start := time.Now()
			results, err := simulate.Batch(cmd.Context(), sample, m, 0, merge.Sum[int], simulate.BatchConfig{
				Config: simulate.Config{
					MaxGenerations: s.MaxGenerations,
					PopulationSize: simulate.Constant(s.PopulationSize),
					Logger:         a.logger,
				},
				Replicates: s.Replicates,
				Workers:    s.Workers,
				Seed:       a.cfg.Seed,
			})
			if err != nil {
				return err
			}
			report := buildSimulationReport(a.cfg, results, events)
			a.logger.Info("simulation finished",
				slog.Int("replicates", len(results)),
				slog.Float64("mean_generations", report.MeanGenerations),
				slog.Duration("elapsed", time.Since(start)))

			return renderSimulation(cmd.OutOrStdout(), a.cfg.Output.Format, report)
		},
	}

	f := cmd.Flags()
	f.Int("sample-size", config.DefaultSampleSize, "number of sampled lineages")
	f.IntP("population", "n", config.DefaultPopulationSize, "number of parents per generation")
	f.String("model", config.DefaultModel, "merger model: binary or multiple")
	f.String("sampling", config.DefaultSampling, "spectrum sampling policy: on-the-fly or memoized")
	f.Int("max-generations", 0, "stop after this many generations (0 = until the common ancestor)")
	f.IntP("replicates", "r", config.DefaultReplicates, "number of independent replicates")
	f.Int("workers", 0, "parallel replicates (0 = GOMAXPROCS)")
	f.Bool("coalescence-probability", false, "binary model: merge with probability k(k-1)/2N")
	addDistributionFlags(cmd)
	f.BoolVar(&events, "events", false, "include per-generation events")

	return cmd
}

// newMerger builds the configured merger policy.
func newMerger(cfg *config.Config, logger *slog.Logger) merger.Merger[int] {
	opts := []merger.Option{merger.WithLogger(logger)}
	if cfg.Simulation.Model == config.ModelBinary {
		if cfg.Simulation.CoalescenceProbability {
			opts = append(opts, merger.WithCoalescenceProbability())
		}
		return merger.NewBinary[int](opts...)
	}

	return merger.NewSimultaneousMultiple[int](samplingPolicy(cfg), opts...)
}

func buildSimulationReport(cfg *config.Config, results []simulate.Result[int], events bool) simulationReport {
	report := simulationReport{
		Model:          cfg.Simulation.Model,
		SampleSize:     cfg.Simulation.SampleSize,
		PopulationSize: cfg.Simulation.PopulationSize,
		Seed:           cfg.Seed,
		Replicates:     make([]replicateReport, 0, len(results)),
	}
	if cfg.Simulation.Model == config.ModelMultiple {
		report.Sampling = cfg.Simulation.Sampling
	}

	var generations int
	for r, res := range results {
		rep := replicateReport{
			Replicate:    r,
			Generations:  res.Generations,
			Coalescences: res.Coalescences(),
			Lineages:     res.Lineages,
			MRCA:         res.MRCA(),
		}
		if events {
			rep.Events = res.Events
		}
		report.Replicates = append(report.Replicates, rep)
		generations += res.Generations
	}
	if len(results) > 0 {
		report.MeanGenerations = float64(generations) / float64(len(results))
	}

	return report
}

func renderSimulation(w io.Writer, format string, report simulationReport) error {
	if format == config.FormatYAML {
		return writeYAML(w, report)
	}

	title := fmt.Sprintf("%s model, %d lineages, N=%s", report.Model, report.SampleSize,
		humanize.Comma(int64(report.PopulationSize)))
	tbl := newTable(w, title)
	tbl.AppendHeader(table.Row{"Replicate", "Generations", "Coalescences", "Lineages", "MRCA"})
	for _, rep := range report.Replicates {
		tbl.AppendRow(table.Row{
			rep.Replicate,
			humanize.Comma(int64(rep.Generations)),
			rep.Coalescences,
			len(rep.Lineages),
			rep.MRCA,
		})
	}
	tbl.AppendFooter(table.Row{"mean", humanize.FormatFloat("#,###.##", report.MeanGenerations), "", "", ""})
	tbl.Render()

	for _, rep := range report.Replicates {
		if len(rep.Events) == 0 {
			continue
		}
		et := newTable(w, fmt.Sprintf("Replicate %d", rep.Replicate))
		et.AppendHeader(table.Row{"Generation", "N", "Before", "After"})
		for _, e := range rep.Events {
			if e.After == e.Before {
				continue
			}
			et.AppendRow(table.Row{e.Generation, e.PopulationSize, e.Before, e.After})
		}
		et.Render()
	}

	return nil
}
