package engine

import (
	"fmt"
	"math"
)

// SetPhase positions the filter phi input samples into the signal.
//
// The whole part of phi is skipped as input deficit. The fractional part
// selects the starting phase: the nearest bank column for the rational
// kernel, an exact accumulator position for the arbitrary kernel. The
// decimator rounds phi to whole samples. Standard and interpolator kernels
// have no phase state and return ErrNotSupported.
//
// Reset discards the phase set here.
func (f *Filter[E]) SetPhase(phi float64) error {
	if phi < 0 || math.IsNaN(phi) || math.IsInf(phi, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidPhase, phi)
	}

	switch k := f.kernel.(type) {
	case *decimatorKernel[E]:
		k.deficit += int(math.Round(phi))
	case *rationalKernel[E]:
		whole, frac := math.Modf(phi)
		k.deficit += int(whole)
		k.phase = int(math.Round(frac * float64(k.l)))
		if k.phase >= k.l {
			k.phase -= k.l
			k.deficit++
		}
	case *arbitraryKernel[E]:
		whole, frac := math.Modf(phi)
		k.deficit += int(whole)
		k.acc = frac*float64(k.phases) + initialAccumulator
	default:
		return fmt.Errorf("%w: %s kernel has no phase", ErrNotSupported, k.kind())
	}
	return nil
}

// TimeDelay returns the group delay of a linear-phase filter in input samples:
// (H-1)/2 for single-rate and decimating kernels, (H-1)/(2·phases) for the
// polyphase kernels whose prototype runs at phases times the input rate.
func (f *Filter[E]) TimeDelay() float64 {
	span := float64(len(f.taps) - 1)
	switch k := f.kernel.(type) {
	case *interpolatorKernel[E]:
		return span / float64(2*k.bank.NumPhases)
	case *rationalKernel[E]:
		return span / float64(2*k.l)
	case *arbitraryKernel[E]:
		return span / float64(2*k.phases)
	default:
		return span / 2
	}
}

// Ratio returns the output/input sample rate ratio.
func (f *Filter[E]) Ratio() float64 {
	switch k := f.kernel.(type) {
	case *decimatorKernel[E]:
		return 1 / float64(k.factor)
	case *interpolatorKernel[E]:
		return float64(k.bank.NumPhases)
	case *rationalKernel[E]:
		return float64(k.l) / float64(k.m)
	case *arbitraryKernel[E]:
		return k.rate
	default:
		return 1
	}
}
