package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/coalescence/internal/config"
	"github.com/katalvlaran/coalescence/merger"
	"github.com/katalvlaran/coalescence/spectrum"
)

// defaultDraws is the default number of sampled spectra.
const defaultDraws = 1000

// sampleRow is one distinct drawn spectrum.
type sampleRow struct {
	Spectrum    []int   `yaml:"spectrum"`
	Draws       int     `yaml:"draws"`
	Frequency   float64 `yaml:"frequency"`
	Probability float64 `yaml:"probability"`
}

// sampleReport is the YAML form of a sampling run.
type sampleReport struct {
	K        int         `yaml:"k"`
	N        int         `yaml:"n"`
	Sampling string      `yaml:"sampling"`
	Draws    int         `yaml:"draws"`
	Rows     []sampleRow `yaml:"rows"`
}

func newSampleCommand(a *app) *cobra.Command {
	var draws int

	cmd := &cobra.Command{
		Use:   "sample <k> <n>",
		Short: "Draw occupancy spectra and tabulate their frequencies",
		Long: `Draw occupancy spectra of k lineages among n parents with the configured
sampling policy and compare empirical frequencies with exact probabilities.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, n, err := parseKN(args)
			if err != nil {
				return err
			}
			if draws < 1 {
				return fmt.Errorf("draws must be positive, got %d", draws)
			}

			policy := samplingPolicy(a.cfg)
			report, err := drawSpectra(policy, k, n, draws, spectrum.NewRand(a.cfg.Seed))
			if err != nil {
				return err
			}
			report.Sampling = a.cfg.Simulation.Sampling
			a.logger.LogAttrs(context.Background(), slog.LevelInfo, "spectra sampled",
				slog.Int("k", k), slog.Int("n", n), slog.Int("draws", draws), slog.Int("distinct", len(report.Rows)))

			return renderSample(cmd.OutOrStdout(), a.cfg.Output.Format, report)
		},
	}

	addDistributionFlags(cmd)
	cmd.Flags().String("sampling", config.DefaultSampling, "sampling policy: on-the-fly or memoized")
	cmd.Flags().IntVarP(&draws, "draws", "d", defaultDraws, "number of spectra to draw")

	return cmd
}

// samplingPolicy builds the configured spectrum sampling policy.
func samplingPolicy(cfg *config.Config) merger.SamplingPolicy {
	if cfg.Simulation.Sampling == config.SamplingMemoized {
		return merger.NewMemoized(cfg.Distribution.Options()...)
	}

	return merger.OnTheFly{}
}

// drawSpectra draws from policy and groups identical spectra, most frequent
// first.
func drawSpectra(policy merger.SamplingPolicy, k, n, draws int, rng spectrum.Rand) (sampleReport, error) {
	byKey := make(map[string]*sampleRow)
	for i := 0; i < draws; i++ {
		m, err := policy.Sample(k, n, rng)
		if err != nil {
			return sampleReport{}, err
		}
		m = spectrum.TruncateTail(m)
		key := m.String()
		row, ok := byKey[key]
		if !ok {
			p, err := spectrum.Probability(k, n, m)
			if err != nil {
				return sampleReport{}, err
			}
			row = &sampleRow{Spectrum: m, Probability: p}
			byKey[key] = row
		}
		row.Draws++
	}

	report := sampleReport{K: k, N: n, Draws: draws, Rows: make([]sampleRow, 0, len(byKey))}
	for _, row := range byKey {
		row.Frequency = float64(row.Draws) / float64(draws)
		report.Rows = append(report.Rows, *row)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].Draws != report.Rows[j].Draws {
			return report.Rows[i].Draws > report.Rows[j].Draws
		}
		return spectrum.Spectrum(report.Rows[i].Spectrum).String() < spectrum.Spectrum(report.Rows[j].Spectrum).String()
	})

	return report, nil
}

func renderSample(w io.Writer, format string, report sampleReport) error {
	if format == config.FormatYAML {
		return writeYAML(w, report)
	}

	tbl := newTable(w, fmt.Sprintf("%s draws of k=%d among N=%d (%s)",
		humanize.Comma(int64(report.Draws)), report.K, report.N, report.Sampling))
	tbl.AppendHeader(table.Row{"Spectrum", "Draws", "Frequency", "Probability"})
	for _, row := range report.Rows {
		tbl.AppendRow(table.Row{
			spectrum.Spectrum(row.Spectrum).String(),
			humanize.Comma(int64(row.Draws)),
			fmt.Sprintf("%.6f", row.Frequency),
			fmt.Sprintf("%.6f", row.Probability),
		})
	}
	tbl.AppendFooter(table.Row{"distinct", len(report.Rows), "", ""})
	tbl.Render()

	return nil
}
