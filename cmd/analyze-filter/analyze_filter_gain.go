// Command analyze-filter designs resampling prototypes and prints how they
// split into polyphase banks: the bank layout, the DC gain of every phase and
// the frequency response of the prototype.
package main

import (
	"flag"
	"fmt"
	"log"

	firfilter "github.com/tphakala/go-fir-filter"
	"github.com/tphakala/go-fir-filter/internal/filter"
	"gonum.org/v1/gonum/floats"
)

const (
	defaultAttenuation = 100.0 // Stopband attenuation in dB
	defaultBandwidth   = 0.95  // Fraction of the Nyquist band kept
	responsePoints     = 4096

	// Display limits
	maxPhasesToShow = 8
	maxRowsToShow   = 4
)

func main() {
	atten := flag.Float64("atten", defaultAttenuation, "Stopband attenuation in dB")
	bw := flag.Float64("bw", defaultBandwidth, "Fraction of the Nyquist band to keep")
	phases := flag.Int("phases", firfilter.DefaultPhases, "Phase count for arbitrary rates")
	flag.Parse()

	fmt.Println("=== Analyzing Filter DC Gain ===")

	testRatios := []struct {
		rate firfilter.Rate
		name string
	}{
		{firfilter.Ratio(2, 1), "2x upsampling"},
		{firfilter.Ratio(1, 2), "2x downsampling"},
		{firfilter.Ratio(160, 147), "CD→DAT"},
		{firfilter.Ratio(147, 160), "DAT→CD"},
		{firfilter.Ratio(3, 2), "3:2 upsampling"},
		{firfilter.Arbitrary(48000.0/44100.0, *phases), "CD→DAT arbitrary"},
	}

	for _, test := range testRatios {
		if err := analyze(test.name, test.rate, *bw, *atten); err != nil {
			log.Fatalf("%s: %v", test.name, err)
		}
	}
}

func analyze(name string, rate firfilter.Rate, bw, atten float64) error {
	numPhases := rate.Phases()
	if !rate.IsArbitrary() {
		numPhases, _ = rate.Fraction()
	}

	taps, err := filter.DesignResampler(rate.Float(), numPhases, bw, atten)
	if err != nil {
		return err
	}
	bank := filter.NewBank(taps, numPhases)

	fmt.Printf("\n=== %s (rate %s = %.6f) ===\n", name, rate, rate.Float())
	fmt.Printf("Filter bank info:\n")
	fmt.Printf("  NumPhases: %d\n", bank.NumPhases)
	fmt.Printf("  TapsPerPhase: %d\n", bank.TapsPerPhase)
	fmt.Printf("  TotalTaps: %d\n", bank.TotalTaps)
	fmt.Printf("  Memory: %d bytes\n", bank.GetMemoryUsage())

	rows := bank.Rows()
	fmt.Printf("  Last %d rows (newest sample last):\n", min(maxRowsToShow, len(rows)))
	for _, row := range rows[max(0, len(rows)-maxRowsToShow):] {
		fmt.Printf("   ")
		for _, v := range row[:min(maxPhasesToShow, len(row))] {
			fmt.Printf(" %+.6f", v)
		}
		if len(row) > maxPhasesToShow {
			fmt.Printf(" ...")
		}
		fmt.Println()
	}

	gains := filter.PhaseGains(bank)
	fmt.Println("DC gain per phase:")
	for phase, g := range gains[:min(maxPhasesToShow, len(gains))] {
		fmt.Printf("  Phase %2d: %.10f\n", phase, g)
	}
	if len(gains) > maxPhasesToShow {
		fmt.Printf("  ... (%d more phases)\n", len(gains)-maxPhasesToShow)
	}
	total := floats.Sum(gains)
	fmt.Printf("Total DC gain (sum of all phases): %.10f\n", total)
	fmt.Printf("Average DC gain per phase: %.10f (min %.10f, max %.10f)\n",
		total/float64(len(gains)), floats.Min(gains), floats.Max(gains))

	if !rate.IsArbitrary() {
		used := usedPhases(rate)
		fmt.Printf("Rational walk visits %d of %d phases\n", used, numPhases)
	}

	resp := filter.FrequencyResponse(taps, responsePoints)
	// The prototype runs at numPhases times the input rate.
	edge := 0.5 * min(1, rate.Float()) / float64(numPhases)
	fmt.Printf("Frequency response (prototype rate):\n")
	fmt.Printf("  Passband edge %.6f, stopband attenuation beyond 1.2x edge: %.1f dB\n",
		edge, resp.StopbandAttenuation(edge*1.2))
	return nil
}

// usedPhases counts the distinct bank columns a rational l/m walk visits.
func usedPhases(rate firfilter.Rate) int {
	l, m := rate.Fraction()
	seen := make(map[int]bool, l)
	phase := 0
	for range l {
		seen[phase] = true
		phase = (phase + m) % l
	}
	return len(seen)
}
