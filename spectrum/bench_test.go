package spectrum_test

import (
	"testing"

	"github.com/katalvlaran/coalescence/spectrum"
)

// BenchmarkNewDistribution measures a full support build for (20, 20).
func BenchmarkNewDistribution(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := spectrum.NewDistribution(20, 20); err != nil {
			b.Fatalf("NewDistribution failed: %v", err)
		}
	}
}

// BenchmarkDistributionSample measures inverse-CDF draws from a built law.
func BenchmarkDistributionSample(b *testing.B) {
	d, err := spectrum.NewDistribution(20, 20)
	if err != nil {
		b.Fatalf("NewDistribution failed: %v", err)
	}
	rng := spectrum.NewRand(1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := d.Sample(rng); err != nil {
			b.Fatalf("Sample failed: %v", err)
		}
	}
}

// BenchmarkSampleOnTheFly measures direct simulation for (20, 20).
func BenchmarkSampleOnTheFly(b *testing.B) {
	rng := spectrum.NewRand(1)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := spectrum.SampleOnTheFly(20, 20, rng); err != nil {
			b.Fatalf("SampleOnTheFly failed: %v", err)
		}
	}
}
