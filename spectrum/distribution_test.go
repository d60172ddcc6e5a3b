package spectrum_test

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/coalescence/spectrum"
)

const tolerance = 1e-9

// sum adds the values of w.
func sum(w []float64) float64 {
	var s float64
	for _, x := range w {
		s += x
	}

	return s
}

// TestProbability_TwoBallsTwoUrns checks the weights by hand:
// both balls apart or both together, each with probability 1/2.
func TestProbability_TwoBallsTwoUrns(t *testing.T) {
	p, err := spectrum.Probability(2, 2, spectrum.Spectrum{0, 2, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, tolerance)

	p, err = spectrum.Probability(2, 2, spectrum.Spectrum{1, 0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, tolerance)
}

// TestProbability_Truncated accepts a spectrum without its zero tail.
func TestProbability_Truncated(t *testing.T) {
	full, err := spectrum.Probability(3, 3, spectrum.Spectrum{1, 1, 1, 0})
	require.NoError(t, err)
	short, err := spectrum.Probability(3, 3, spectrum.Spectrum{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, full, short)
	assert.InDelta(t, 2.0/3.0, full, tolerance)
}

// TestProbability_Errors rejects spectra that do not describe (k, N).
func TestProbability_Errors(t *testing.T) {
	_, err := spectrum.Probability(3, 3, spectrum.Spectrum{0, 3, 0, 1})
	assert.ErrorIs(t, err, spectrum.ErrMismatch)

	_, err = spectrum.Probability(3, 3, spectrum.Spectrum{2, 1, 1})
	assert.ErrorIs(t, err, spectrum.ErrMismatch)

	_, err = spectrum.Probability(2, 2, spectrum.Spectrum{3, -1, 1})
	assert.ErrorIs(t, err, spectrum.ErrNegativeArgument)

	// Overflowing counts whose Σ j·M_j wraps around to k.
	_, err = spectrum.Probability(3, 3, spectrum.Spectrum{0, 3, 0, 0, 1 << 62})
	assert.ErrorIs(t, err, spectrum.ErrMismatch)

	_, err = spectrum.Probability(3, 3, spectrum.Spectrum{1 << 62, 3})
	assert.ErrorIs(t, err, spectrum.ErrMismatch)

	_, err = spectrum.Probability(-1, 2, spectrum.Spectrum{2})
	assert.ErrorIs(t, err, spectrum.ErrNegativeArgument)
}

// DistributionSuite exercises NewDistribution and its accessors.
type DistributionSuite struct {
	suite.Suite
}

// TestNormalization sums the unfiltered weights for every (k, N) in [1,20]².
func (s *DistributionSuite) TestNormalization() {
	for k := 1; k <= 20; k++ {
		for n := 1; n <= 20; n++ {
			d, err := spectrum.NewDistribution(k, n)
			s.Require().NoError(err)
			s.InDelta(1.0, sum(d.Weights()), tolerance, "k=%d n=%d", k, n)
			s.InDelta(1.0, d.Mass(), tolerance, "k=%d n=%d", k, n)
			s.Equal(k, d.K())
			s.Equal(n, d.N())

			want, err := spectrum.Count(k, n)
			s.Require().NoError(err)
			s.Equal(want.Int64(), int64(d.Len()))
		}
	}
}

// TestThreeBallsThreeUrns pins the support, its order and the exact weights.
func (s *DistributionSuite) TestThreeBallsThreeUrns() {
	d, err := spectrum.NewDistribution(3, 3)
	s.Require().NoError(err)

	s.Equal([]spectrum.Spectrum{
		{2, 0, 0, 1},
		{1, 1, 1, 0},
		{0, 3, 0, 0},
	}, d.Support())

	w := d.Weights()
	s.Require().Len(w, 3)
	s.InDelta(1.0/9.0, w[0], tolerance)
	s.InDelta(2.0/3.0, w[1], tolerance)
	s.InDelta(2.0/9.0, w[2], tolerance)

	m, p := d.At(1)
	s.Equal(spectrum.Spectrum{1, 1, 1, 0}, m)
	s.Equal(w[1], p)
}

// TestMoreBallsThanUrns keeps the law normalized when k > N.
func (s *DistributionSuite) TestMoreBallsThanUrns() {
	d, err := spectrum.NewDistribution(7, 2)
	s.Require().NoError(err)
	s.InDelta(1.0, sum(d.Weights()), tolerance)
	for _, m := range d.Support() {
		s.Equal(7, m.Balls())
		s.LessOrEqual(m.Parents(), 2)
	}
}

// TestZeroBalls yields the single certain spectrum.
func (s *DistributionSuite) TestZeroBalls() {
	for _, n := range []int{0, 1, 5} {
		d, err := spectrum.NewDistribution(0, n)
		s.Require().NoError(err)
		s.Equal([]spectrum.Spectrum{{n}}, d.Support())
		s.Equal([]float64{1}, d.Weights())

		m, err := d.Sample(spectrum.NewRand(3))
		s.Require().NoError(err)
		s.Equal(spectrum.Spectrum{n}, m)
	}
}

// TestNoUrns yields an empty support that cannot be sampled.
func (s *DistributionSuite) TestNoUrns() {
	d, err := spectrum.NewDistribution(4, 0)
	s.Require().NoError(err)
	s.Equal(0, d.Len())
	s.Empty(d.Support())

	_, err = d.Sample(spectrum.NewRand(1))
	s.ErrorIs(err, spectrum.ErrEmptySupport)
}

// TestFilterDropsMass verifies the threshold filter and the renormalize switch.
func (s *DistributionSuite) TestFilterDropsMass() {
	d, err := spectrum.NewDistribution(3, 3, spectrum.WithFilter(spectrum.KeepAbove(0.2)))
	s.Require().NoError(err)
	s.Equal([]spectrum.Spectrum{{1, 1, 1, 0}, {0, 3, 0, 0}}, d.Support())
	s.InDelta(8.0/9.0, d.Mass(), tolerance)
	s.InDelta(8.0/9.0, sum(d.Weights()), tolerance)

	r, err := spectrum.NewDistribution(3, 3,
		spectrum.WithFilter(spectrum.KeepAbove(0.2)),
		spectrum.WithRenormalize(),
	)
	s.Require().NoError(err)
	s.InDelta(1.0, r.Mass(), tolerance)
	s.InDelta(0.75, r.Weights()[0], tolerance)
	s.InDelta(0.25, r.Weights()[1], tolerance)

	rng := spectrum.NewRand(11)
	for i := 0; i < 1000; i++ {
		m, err := d.Sample(rng)
		s.Require().NoError(err)
		s.False(m.Equal(spectrum.Spectrum{2, 0, 0, 1}), "filtered spectrum must never be drawn")
	}
}

// TestFilterRejectsAll produces a detectable empty support.
func (s *DistributionSuite) TestFilterRejectsAll() {
	d, err := spectrum.NewDistribution(3, 3, spectrum.WithFilter(spectrum.KeepAbove(0.9)))
	s.Require().NoError(err)
	s.Equal(0, d.Len())
	s.Equal(0.0, d.Mass())

	_, err = d.Sample(spectrum.NewRand(1))
	s.ErrorIs(err, spectrum.ErrEmptySupport)
}

// TestTruncateTailEditor shortens stored spectra without touching weights.
func (s *DistributionSuite) TestTruncateTailEditor() {
	full, err := spectrum.NewDistribution(3, 3)
	s.Require().NoError(err)
	short, err := spectrum.NewDistribution(3, 3, spectrum.WithEditor(spectrum.TruncateTail))
	s.Require().NoError(err)

	s.Equal([]spectrum.Spectrum{{2, 0, 0, 1}, {1, 1, 1}, {0, 3}}, short.Support())
	s.Equal(full.Weights(), short.Weights())
	for i, m := range short.Support() {
		s.True(m.Equal(full.Support()[i]))
	}
}

// TestSampleErrors covers the nil random source.
func (s *DistributionSuite) TestSampleErrors() {
	d, err := spectrum.NewDistribution(3, 3)
	s.Require().NoError(err)
	_, err = d.Sample(nil)
	s.ErrorIs(err, spectrum.ErrNilRand)

	_, err = spectrum.NewDistribution(-1, 3)
	s.ErrorIs(err, spectrum.ErrNegativeArgument)
}

// TestSampleDeterministic reproduces the same draws for the same seed.
func (s *DistributionSuite) TestSampleDeterministic() {
	d, err := spectrum.NewDistribution(8, 6)
	s.Require().NoError(err)

	a, b := spectrum.NewRand(99), spectrum.NewRand(99)
	for i := 0; i < 200; i++ {
		x, err := d.Sample(a)
		s.Require().NoError(err)
		y, err := d.Sample(b)
		s.Require().NoError(err)
		s.Equal(x, y)
	}
}

// TestSampleReturnsCopy keeps the stored support immutable.
func (s *DistributionSuite) TestSampleReturnsCopy() {
	d, err := spectrum.NewDistribution(2, 2)
	s.Require().NoError(err)
	before := d.Support()

	m, err := d.Sample(spectrum.NewRand(5))
	s.Require().NoError(err)
	for j := range m {
		m[j] = 42
	}
	s.Equal(before, d.Support())
}

// TestSampleGoodnessOfFit compares empirical frequencies with weights.
func (s *DistributionSuite) TestSampleGoodnessOfFit() {
	for _, kn := range [][2]int{{3, 3}, {4, 3}, {5, 3}} {
		d, err := spectrum.NewDistribution(kn[0], kn[1])
		s.Require().NoError(err)
		rng := spectrum.NewRand(2024)
		requireGoodnessOfFit(s.T(), d, 20000, func() (spectrum.Spectrum, error) {
			return d.Sample(rng)
		})
	}
}

// TestString renders one line per spectrum.
func (s *DistributionSuite) TestString() {
	d, err := spectrum.NewDistribution(3, 3)
	s.Require().NoError(err)
	lines := strings.Split(strings.TrimSpace(d.String()), "\n")
	s.Require().Len(lines, 3)
	s.True(strings.HasPrefix(lines[0], "P( [2 0 0 1] ) = 0.1111"), lines[0])
}

// TestLogger emits one debug record per build.
func (s *DistributionSuite) TestLogger() {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := spectrum.NewDistribution(4, 4, spectrum.WithLogger(logger))
	s.Require().NoError(err)
	s.Contains(buf.String(), "retained=5")
	s.Contains(buf.String(), "generated=5")
}

func TestDistributionSuite(t *testing.T) {
	suite.Run(t, new(DistributionSuite))
}

// TestOptionPanics checks that option constructors reject nil and bad values.
func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { spectrum.WithFilter(nil) })
	assert.Panics(t, func() { spectrum.WithEditor(nil) })
	assert.Panics(t, func() { spectrum.WithLogger(nil) })
	assert.Panics(t, func() { spectrum.KeepAbove(-0.1) })
	assert.Panics(t, func() { spectrum.KeepAbove(1) })
	assert.Panics(t, func() { spectrum.KeepAbove(math.NaN()) })
}

// TestSpectrumMethods covers the small accessors.
func TestSpectrumMethods(t *testing.T) {
	m := spectrum.Spectrum{98, 0, 1, 1}
	assert.Equal(t, 5, m.Balls())
	assert.Equal(t, 2, m.Parents())
	assert.Equal(t, 100, m.Urns())
	assert.Equal(t, 0, m.Get(7))
	assert.Equal(t, 1, m.Get(3))
	assert.True(t, m.Equal(spectrum.Spectrum{98, 0, 1, 1, 0, 0}))
	assert.False(t, m.Equal(spectrum.Spectrum{98, 0, 1}))
	assert.Equal(t, "[98 0 1 1]", m.String())

	c := m.Clone()
	c[0] = 0
	assert.Equal(t, 98, m[0])

	assert.Equal(t, spectrum.Spectrum{0}, spectrum.TruncateTail(spectrum.Spectrum{0, 0, 0}))
	assert.Equal(t, spectrum.Spectrum{}, spectrum.TruncateTail(spectrum.Spectrum{}))
}
