// Package filter builds polyphase banks from FIR taps and designs the
// Kaiser-windowed lowpass prototypes the command-line tools feed into them.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-fir-filter/internal/mathutil"
	"github.com/tphakala/simd/f64"
)

const (
	minFilterTaps = 3

	sincZeroThreshold = 1e-10

	// Transition band as a fraction of the cutoff for DesignResampler.
	resamplerTransitionRatio = 0.2

	// DefaultAttenuation is the stopband attenuation used when none is given.
	DefaultAttenuation = 60.0

	// DefaultBandwidth is the fraction of the output Nyquist band kept by DesignResampler.
	DefaultBandwidth = 1.0
)

// KaiserWindow generates a symmetric Kaiser window:
//
//	w[n] = I₀(β·sqrt(1 − ((n − α)/α)²)) / I₀(β),  α = (length−1)/2
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}
	window := make([]float64, length)
	if length == 1 {
		window[0] = 1
		return window
	}

	alpha := float64(length-1) / 2
	i0Beta := mathutil.BesselI0(beta)
	for n := range window {
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(1-x*x)) / i0Beta
	}
	return window
}

// LowPassParams describes a windowed-sinc lowpass design.
type LowPassParams struct {
	// NumTaps is the filter length.
	NumTaps int

	// Cutoff is the normalized cutoff frequency in (0, 0.5), 0.5 being Nyquist.
	Cutoff float64

	// Attenuation is the stopband attenuation in dB.
	Attenuation float64

	// Gain is the DC gain of the result.
	Gain float64
}

// Validate checks if the design parameters are usable.
func (p *LowPassParams) Validate() error {
	if p.NumTaps < minFilterTaps || p.NumTaps > mathutil.MaxFilterLength {
		return fmt.Errorf("filter length %d out of range [%d, %d]",
			p.NumTaps, minFilterTaps, mathutil.MaxFilterLength)
	}
	if p.Cutoff <= 0 || p.Cutoff >= 0.5 {
		return fmt.Errorf("invalid cutoff frequency: %f (must be in (0, 0.5))", p.Cutoff)
	}
	if p.Attenuation < 0 {
		return fmt.Errorf("invalid attenuation: %f dB (must be positive)", p.Attenuation)
	}
	if p.Gain <= 0 {
		return fmt.Errorf("invalid gain: %f (must be positive)", p.Gain)
	}
	return nil
}

// DesignLowPass designs a Kaiser-windowed sinc lowpass normalized to p.Gain at DC.
func DesignLowPass(p LowPassParams) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	window := KaiserWindow(p.NumTaps, mathutil.KaiserBeta(p.Attenuation))
	taps := make([]float64, p.NumTaps)
	center := float64(p.NumTaps-1) / 2

	for n := range taps {
		x := float64(n) - center
		sinc := 2 * p.Cutoff
		if math.Abs(x) >= sincZeroThreshold {
			sinc = math.Sin(2*math.Pi*p.Cutoff*x) / (math.Pi * x)
		}
		taps[n] = sinc * window[n]
	}

	if sum := f64.Sum(taps); math.Abs(sum) > sincZeroThreshold {
		f64.Scale(taps, taps, p.Gain/sum)
	}
	return taps, nil
}

// DesignResampler designs a prototype for a polyphase resampler running at
// rate (output/input) with the given number of phases. The prototype runs at
// phases times the input rate, so its cutoff is the narrower of the input and
// output Nyquist bands divided by phases, scaled by bandwidth. The DC gain is
// phases so every phase has roughly unity gain.
func DesignResampler(rate float64, phases int, bandwidth, attenuation float64) ([]float64, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("invalid rate: %g", rate)
	}
	if phases < 1 {
		return nil, fmt.Errorf("invalid phase count: %d", phases)
	}
	if bandwidth <= 0 || bandwidth > 1 {
		bandwidth = DefaultBandwidth
	}
	if attenuation <= 0 {
		attenuation = DefaultAttenuation
	}

	cutoff := 0.5 * min(1, rate) / float64(phases) * bandwidth
	transition := cutoff * resamplerTransitionRatio
	// Leave room for the transition band below Nyquist.
	cutoff = min(cutoff, 0.5-transition)

	return DesignLowPass(LowPassParams{
		NumTaps:     mathutil.EstimateFilterLength(attenuation, transition),
		Cutoff:      cutoff,
		Attenuation: attenuation,
		Gain:        float64(phases),
	})
}
