// Command firplan prints the streaming plan of a filter: the kernel it
// selects, how many samples each chunk of input produces and how much input
// a wanted output length needs. Each prediction is checked against a real
// run of the filter.
//
// Usage:
//
//	firplan -up 160 -down 147 -chunks 1024,1024,7
//	firplan -rate 1.0884 -phases 64 -want 4800
//	firplan -demo
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	firfilter "github.com/tphakala/go-fir-filter"
	"github.com/tphakala/go-fir-filter/internal/filter"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		up     = flag.Int("up", 160, "Interpolation factor L")
		down   = flag.Int("down", 147, "Decimation factor M")
		rate   = flag.Float64("rate", 0, "Arbitrary rate (overrides -up/-down)")
		phases = flag.Int("phases", firfilter.DefaultPhases, "Phase count for -rate")
		atten  = flag.Float64("atten", filter.DefaultAttenuation, "Stopband attenuation in dB")
		chunks = flag.String("chunks", defaultChunks, "Comma-separated input chunk sizes")
		want   = flag.Int("want", defaultOutputWant, "Output length to plan input for")
		demo   = flag.Bool("demo", false, "Print plans for common rates")
	)
	flag.Parse()

	if *demo {
		return runDemo(*atten)
	}

	r := firfilter.Ratio(*up, *down)
	if *rate > 0 {
		r = firfilter.Arbitrary(*rate, *phases)
	}
	sizes, err := parseChunks(*chunks)
	if err != nil {
		return err
	}

	f, err := newFilter(r, *atten)
	if err != nil {
		return err
	}
	printInfo(f)

	fmt.Println("\nStreaming plan:")
	signal := generateTestSignal(sum(sizes), testSignalRate)
	total := 0
	for i, n := range sizes {
		predicted := f.OutputLength(n)
		out := f.Filter(signal[:n])
		signal = signal[n:]
		total += len(out)

		status := "ok"
		if len(out) != predicted {
			status = "MISMATCH"
		}
		fmt.Printf("  chunk %d: %6d in -> %6d out (predicted %d, %s), deficit %d\n",
			i, n, len(out), predicted, status, f.Info().Deficit)
	}
	fmt.Printf("  total: %d in -> %d out\n", sum(sizes), total)

	need := f.InputLength(*want)
	got := f.OutputLength(need)
	fmt.Printf("\nTo produce %d more samples feed %d (yields %d)\n", *want, need, got)
	if got < *want {
		fmt.Printf("  short by %d: arbitrary-rate input estimates can miss by one sample mid-stream\n", *want-got)
	}
	return nil
}

// newFilter designs taps for r and builds a float64 filter.
func newFilter(r firfilter.Rate, atten float64) (*firfilter.Filter[float64], error) {
	phases := r.Phases()
	if !r.IsArbitrary() {
		phases, _ = r.Fraction()
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	taps, err := filter.DesignResampler(r.Float(), phases, filter.DefaultBandwidth, atten)
	if err != nil {
		return nil, fmt.Errorf("failed to design taps: %w", err)
	}
	return firfilter.New[float64](taps, r)
}

func printInfo(f *firfilter.Filter[float64]) {
	info := f.Info()
	fmt.Printf("Filter created:\n")
	fmt.Printf("  Rate: %s (%.6f)\n", f.Rate(), info.Ratio)
	fmt.Printf("  Kernel: %s\n", info.Kind)
	fmt.Printf("  Filter length: %d taps\n", info.Taps)
	fmt.Printf("  Phases: %d x %d taps\n", info.Phases, info.TapsPerPhase)
	fmt.Printf("  History: %d samples\n", info.HistoryLen)
	fmt.Printf("  Group delay: %.2f input samples\n", info.TimeDelay)
	fmt.Printf("  Memory usage: %.2f KB\n", float64(info.MemoryUsage)/bytesPerKilobyte)
	fmt.Printf("  FFT convolution: %v\n", info.FFT)
	fmt.Printf("  SIMD: %s\n", info.SIMD)
}

func runDemo(atten float64) error {
	fmt.Println("=== FIR Filter Plans ===")

	rates := make([]firfilter.Rate, 0, len(demoRatios)+len(demoArbitrary))
	for _, lm := range demoRatios {
		rates = append(rates, firfilter.Ratio(lm[0], lm[1]))
	}
	for _, r := range demoArbitrary {
		rates = append(rates, firfilter.Arbitrary(r, firfilter.DefaultPhases))
	}

	const seconds = 1
	signal := generateTestSignal(seconds*int(testSignalRate), testSignalRate)
	for _, r := range rates {
		f, err := newFilter(r, atten)
		if err != nil {
			fmt.Printf("  %s: Error - %v\n", r, err)
			continue
		}
		info := f.Info()
		out := f.Filter(signal)
		fmt.Printf("  %-20s %-12s %6d taps, %5.1f delay, %8.1f KB, %d -> %d samples\n",
			r, info.Kind, info.Taps, info.TimeDelay,
			float64(info.MemoryUsage)/bytesPerKilobyte, len(signal), len(out))
	}

	fmt.Println("\n=== Demo Complete ===")
	return nil
}

func parseChunks(s string) ([]int, error) {
	var sizes []int
	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid chunk size %q: %w", field, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid chunk size %d", n)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, errors.New("no chunk sizes given")
	}
	return sizes, nil
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func generateTestSignal(samples int, sampleRate float64) []float64 {
	signal := make([]float64, samples)
	omega := 2 * math.Pi * testSignalFrequency / sampleRate
	for i := range signal {
		signal[i] = math.Sin(omega * float64(i))
	}
	return signal
}
