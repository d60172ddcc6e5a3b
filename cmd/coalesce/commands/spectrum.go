package commands

import (
	"fmt"
	"io"
	"math/big"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/coalescence/internal/config"
	"github.com/katalvlaran/coalescence/spectrum"
)

// spectrumEntry is one row of a distribution report.
type spectrumEntry struct {
	Spectrum    []int   `yaml:"spectrum"`
	Parents     int     `yaml:"parents"`
	Probability float64 `yaml:"probability"`
}

// distributionReport is the YAML form of a distribution.
type distributionReport struct {
	K       int             `yaml:"k"`
	N       int             `yaml:"n"`
	Count   string          `yaml:"count"`
	Support int             `yaml:"support"`
	Mass    float64         `yaml:"mass"`
	Entries []spectrumEntry `yaml:"entries"`
}

func newSpectrumCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "spectrum <k> <n>",
		Short: "Enumerate the occupancy spectra of k lineages among n parents",
		Long: `Enumerate every occupancy spectrum of k lineages among n parents with its
exact probability. Filtering, truncation and renormalization follow the
distribution.* settings.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, n, err := parseKN(args)
			if err != nil {
				return err
			}

			opts := append(a.cfg.Distribution.Options(), spectrum.WithLogger(a.logger))
			d, err := spectrum.NewDistribution(k, n, opts...)
			if err != nil {
				return err
			}
			total, err := spectrum.Count(k, n)
			if err != nil {
				return err
			}

			return renderDistribution(cmd.OutOrStdout(), a.cfg.Output.Format, d, total, limit)
		},
	}

	addDistributionFlags(cmd)
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many spectra in table output (0 = all)")

	return cmd
}

func newCountCommand(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count <k> <n>",
		Short: "Count the occupancy spectra of k lineages among n parents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, n, err := parseKN(args)
			if err != nil {
				return err
			}
			total, err := spectrum.Count(k, n)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), humanize.BigComma(total))

			return nil
		},
	}
}

// addDistributionFlags declares the flags mapped to distribution.*.
func addDistributionFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("threshold", 0, "drop spectra with probability at or below this value")
	cmd.Flags().Bool("renormalize", false, "rescale retained weights to sum to 1")
	cmd.Flags().Bool("truncate", false, "store spectra without trailing zero counts")
}

func renderDistribution(w io.Writer, format string, d *spectrum.Distribution, total *big.Int, limit int) error {
	if format == config.FormatYAML {
		report := distributionReport{
			K:       d.K(),
			N:       d.N(),
			Count:   total.String(),
			Support: d.Len(),
			Mass:    d.Mass(),
			Entries: make([]spectrumEntry, 0, d.Len()),
		}
		for i := 0; i < d.Len(); i++ {
			m, p := d.At(i)
			report.Entries = append(report.Entries, spectrumEntry{Spectrum: m, Parents: m.Parents(), Probability: p})
		}

		return writeYAML(w, report)
	}

	tbl := newTable(w, fmt.Sprintf("Occupancy spectra of k=%d among N=%d", d.K(), d.N()))
	tbl.AppendHeader(table.Row{"#", "Spectrum", "Parents", "Probability"})
	for i := 0; i < d.Len(); i++ {
		if limit > 0 && i == limit {
			break
		}
		m, p := d.At(i)
		tbl.AppendRow(table.Row{i + 1, m.String(), m.Parents(), fmt.Sprintf("%.6f", p)})
	}
	tbl.AppendFooter(table.Row{
		"",
		fmt.Sprintf("retained %s of %s", humanize.Comma(int64(d.Len())), humanize.BigComma(total)),
		"mass",
		fmt.Sprintf("%.6f", d.Mass()),
	})
	tbl.Render()

	return nil
}
