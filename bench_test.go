package firfilter

import (
	"testing"

	"github.com/tphakala/go-fir-filter/internal/testutil"
)

func BenchmarkProcessMultiSequential(b *testing.B) {
	benchmarkProcessMulti(b, false)
}

func BenchmarkProcessMultiParallel(b *testing.B) {
	benchmarkProcessMulti(b, true)
}

func benchmarkProcessMulti(b *testing.B, parallel bool) {
	b.Helper()

	const (
		channels   = 2
		numSamples = 44100
	)

	proto, err := New[float32](testutil.Noise[float64](161, 1), Ratio(160, 147))
	if err != nil {
		b.Fatalf("Failed to create filter: %v", err)
	}
	m, err := NewMultiChannel(proto, channels, parallel)
	if err != nil {
		b.Fatalf("Failed to create multi-channel filter: %v", err)
	}

	input := make([][]float32, channels)
	for ch := range input {
		input[ch] = testutil.Noise[float32](numSamples, uint64(ch+1))
	}

	b.SetBytes(int64(channels * numSamples * 4))
	b.ResetTimer()
	for b.Loop() {
		if _, err := m.ProcessMulti(input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResample(b *testing.B) {
	taps := testutil.Noise[float64](255, 2)
	x := testutil.Noise[float64](48000, 3)

	for _, rate := range []Rate{Ratio(2, 1), Ratio(147, 160), Arbitrary(0.9, DefaultPhases)} {
		b.Run(rate.String(), func(b *testing.B) {
			for b.Loop() {
				if _, err := Resample(x, rate, taps); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
