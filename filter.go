package firfilter

import (
	"fmt"

	"github.com/tphakala/go-fir-filter/internal/engine"
	"github.com/tphakala/go-fir-filter/internal/simdops"
)

// Element is the set of supported sample and coefficient types.
type Element = simdops.Element

// Kind identifies which kernel a Filter runs.
type Kind = engine.Kind

// Kernel kinds.
const (
	KindStandard     = engine.KindStandard
	KindDecimator    = engine.KindDecimator
	KindInterpolator = engine.KindInterpolator
	KindRational     = engine.KindRational
	KindArbitrary    = engine.KindArbitrary
)

// Info describes a filter's configuration and footprint.
type Info = engine.Info

// Filter is a streaming FIR filter with optional rate change.
//
// Every call consumes input plus the carried-over state and updates that
// state, so splitting a signal into chunks of any size produces the same
// output as filtering it in one call.
//
// A Filter is not safe for concurrent use. Use Clone to get an independent
// filter for another goroutine or channel.
type Filter[E Element] struct {
	f    *engine.Filter[E]
	rate Rate
}

// New creates a filter that runs input through taps at the given rate.
//
// Taps of type T are promoted to the sample type E once. The kernel is picked
// from the reduced ratio: 1/1 filters without a rate change, 1/M decimates,
// L/1 interpolates, any other fraction resamples rationally and an Arbitrary
// rate interpolates between phases of a polyphase bank.
func New[E, T Element](taps []T, rate Rate) (*Filter[E], error) {
	if err := rate.Validate(); err != nil {
		return nil, err
	}
	if len(taps) == 0 {
		return nil, ErrEmptyTaps
	}
	promoted, err := Promote[E](taps)
	if err != nil {
		return nil, fmt.Errorf("taps: %w", err)
	}

	var f *engine.Filter[E]
	if rate.IsArbitrary() {
		f, err = engine.NewArbitrary(promoted, rate.real, rate.phases)
	} else {
		switch l, m := rate.Fraction(); {
		case l == 1 && m == 1:
			f, err = engine.NewStandard(promoted)
		case l == 1:
			f, err = engine.NewDecimator(promoted, m)
		case m == 1:
			f, err = engine.NewInterpolator(promoted, l)
		default:
			f, err = engine.NewRational(promoted, l, m)
		}
	}
	if err != nil {
		return nil, err
	}
	return &Filter[E]{f: f, rate: rate}, nil
}

// newPhased builds a filter whose kernel keeps phase state even for unity and
// pure interpolation ratios, so SetPhase is always available.
func newPhased[E, T Element](taps []T, rate Rate) (*Filter[E], error) {
	if rate.IsArbitrary() {
		return New[E](taps, rate)
	}
	if err := rate.Validate(); err != nil {
		return nil, err
	}
	if len(taps) == 0 {
		return nil, ErrEmptyTaps
	}
	promoted, err := Promote[E](taps)
	if err != nil {
		return nil, fmt.Errorf("taps: %w", err)
	}

	var f *engine.Filter[E]
	switch l, m := rate.Fraction(); {
	case l == 1:
		f, err = engine.NewDecimator(promoted, m)
	default:
		f, err = engine.NewRational(promoted, l, m)
	}
	if err != nil {
		return nil, err
	}
	return &Filter[E]{f: f, rate: rate}, nil
}

// Filter runs input through the filter and returns a newly allocated output
// of exactly OutputLength(len(input)) samples.
func (f *Filter[E]) Filter(input []E) []E {
	return f.f.Filter(input)
}

// FilterInto writes the output for input into dst and returns the number of
// samples written. A dst shorter than OutputLength(len(input)) yields
// ErrBufferTooSmall and leaves the filter untouched. dst may alias input.
func (f *Filter[E]) FilterInto(dst, input []E) (int, error) {
	return f.f.FilterInto(dst, input)
}

// OutputLength returns the exact number of samples the next call with n
// input samples produces.
func (f *Filter[E]) OutputLength(n int) int {
	return f.f.OutputLength(n)
}

// InputLength returns how many input samples the next call needs to produce
// n outputs. For Arbitrary rates mid-stream the result can fall one sample
// short; check it against OutputLength when an exact plan matters.
func (f *Filter[E]) InputLength(n int) int {
	return f.f.InputLength(n)
}

// History returns a copy of the carried-over input samples, oldest first.
func (f *Filter[E]) History() []E {
	return f.f.History()
}

// Taps returns a copy of the promoted coefficients.
func (f *Filter[E]) Taps() []E {
	return f.f.Taps()
}

// Kind reports which kernel the filter runs.
func (f *Filter[E]) Kind() Kind {
	return f.f.Kind()
}

// Rate returns the rate the filter was built with.
func (f *Filter[E]) Rate() Rate {
	return f.rate
}

// Ratio returns the output/input rate as a float64.
func (f *Filter[E]) Ratio() float64 {
	return f.f.Ratio()
}

// Info returns a snapshot of the filter's configuration and state.
func (f *Filter[E]) Info() Info {
	return f.f.Info()
}

// Reset zeroes the history and restores construction-time phase state,
// discarding any SetPhase.
func (f *Filter[E]) Reset() {
	f.f.Reset()
}

// SetPhase advances the filter phi input samples into the signal. The whole
// part is skipped, the fractional part selects the starting phase. Standard
// and interpolating filters return ErrNotSupported.
func (f *Filter[E]) SetPhase(phi float64) error {
	return f.f.SetPhase(phi)
}

// TimeDelay returns the filter's group delay in input samples, assuming
// linear-phase taps.
func (f *Filter[E]) TimeDelay() float64 {
	return f.f.TimeDelay()
}

// Clone returns an independent filter in construction-time state that shares
// the immutable coefficient tables.
func (f *Filter[E]) Clone() *Filter[E] {
	return &Filter[E]{f: f.f.Clone(), rate: f.rate}
}
