package spectrum_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coalescence/spectrum"
)

// chiSquareCritical holds upper 1e-4 tail quantiles of the chi-square law,
// indexed by degrees of freedom.
var chiSquareCritical = map[int]float64{
	1:  15.137,
	2:  18.421,
	3:  21.108,
	4:  23.513,
	5:  25.745,
	6:  27.856,
	7:  29.878,
	8:  31.828,
	9:  33.720,
	10: 35.564,
}

// chiSquare returns Σ (obs-exp)²/exp for the given counts and probabilities.
func chiSquare(counts []int, probs []float64, draws int) float64 {
	var stat float64
	for i, p := range probs {
		exp := p * float64(draws)
		d := float64(counts[i]) - exp
		stat += d * d / exp
	}

	return stat
}

// indexOf locates m in support or fails the test.
func indexOf(t *testing.T, support []spectrum.Spectrum, m spectrum.Spectrum) int {
	t.Helper()
	for i, s := range support {
		if s.Equal(m) {
			return i
		}
	}
	require.Failf(t, "spectrum not in support", "%v", m)

	return -1
}

// requireGoodnessOfFit draws with sample and checks the empirical frequencies
// against d's weights.
func requireGoodnessOfFit(t *testing.T, d *spectrum.Distribution, draws int, sample func() (spectrum.Spectrum, error)) {
	t.Helper()
	support := d.Support()
	counts := make([]int, len(support))
	for i := 0; i < draws; i++ {
		m, err := sample()
		require.NoError(t, err)
		counts[indexOf(t, support, m)]++
	}

	df := len(support) - 1
	crit, ok := chiSquareCritical[df]
	require.True(t, ok, "no critical value for df=%d", df)
	stat := chiSquare(counts, d.Weights(), draws)
	require.Less(t, stat, crit, "chi-square %.3f over %d draws (df=%d), counts=%v", stat, draws, df, counts)
}
