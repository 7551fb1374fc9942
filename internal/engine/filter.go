// Package engine implements the streaming polyphase FIR kernels.
//
// A Filter couples one kernel (standard, decimator, interpolator, rational
// or arbitrary) with a carry-over history buffer. Every call consumes input
// plus prior state and produces output plus updated state, so a signal split
// into any chunks yields the same output as one call on the whole signal.
package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tphakala/go-fir-filter/internal/simdops"
)

// Sentinel errors returned by the engine.
var (
	ErrInvalidRate    = errors.New("invalid rate")
	ErrEmptyTaps      = errors.New("empty tap vector")
	ErrBufferTooSmall = errors.New("output buffer too small")
	ErrNotSupported   = errors.New("operation not supported")
	ErrInvalidPhase   = errors.New("invalid phase")
)

// Filter is a streaming FIR filter with owned state.
//
// A Filter must not be used from more than one goroutine at a time.
// Independent filters share nothing mutable and can run in parallel.
type Filter[E simdops.Element] struct {
	kernel  kernel[E]
	taps    []E // promoted copy, never modified
	history []E // fixed length, oldest sample first

	// Scratch holding history ++ input for the current call.
	work []E

	ops *simdops.Ops[E]
}

func newFilter[E simdops.Element](taps []E, k kernel[E]) *Filter[E] {
	return &Filter[E]{
		kernel:  k,
		taps:    taps,
		history: make([]E, historyLen(k)),
		ops:     simdops.For[E](),
	}
}

// NewStandard creates a single-rate filter.
func NewStandard[E simdops.Element](taps []E) (*Filter[E], error) {
	if len(taps) == 0 {
		return nil, ErrEmptyTaps
	}
	taps = slices.Clone(taps)
	return newFilter(taps, newStandardKernel(taps)), nil
}

// NewDecimator creates a filter that keeps every m-th output.
func NewDecimator[E simdops.Element](taps []E, m int) (*Filter[E], error) {
	if len(taps) == 0 {
		return nil, ErrEmptyTaps
	}
	if m < 1 {
		return nil, fmt.Errorf("%w: decimation factor %d", ErrInvalidRate, m)
	}
	taps = slices.Clone(taps)
	return newFilter(taps, newDecimatorKernel(taps, m)), nil
}

// NewInterpolator creates a filter producing l outputs per input.
func NewInterpolator[E simdops.Element](taps []E, l int) (*Filter[E], error) {
	if len(taps) == 0 {
		return nil, ErrEmptyTaps
	}
	if l < 1 {
		return nil, fmt.Errorf("%w: interpolation factor %d", ErrInvalidRate, l)
	}
	taps = slices.Clone(taps)
	return newFilter(taps, newInterpolatorKernel(taps, l)), nil
}

// NewRational creates an l/m resampler. The ratio is reduced first.
func NewRational[E simdops.Element](taps []E, l, m int) (*Filter[E], error) {
	if len(taps) == 0 {
		return nil, ErrEmptyTaps
	}
	if l < 1 || m < 1 {
		return nil, fmt.Errorf("%w: ratio %d/%d", ErrInvalidRate, l, m)
	}
	g := gcd(l, m)
	taps = slices.Clone(taps)
	return newFilter(taps, newRationalKernel(taps, l/g, m/g)), nil
}

// NewArbitrary creates a resampler for a real-valued rate (output/input)
// using a bank of the given number of phases.
func NewArbitrary[E simdops.Element](taps []E, rate float64, phases int) (*Filter[E], error) {
	if len(taps) == 0 {
		return nil, ErrEmptyTaps
	}
	if err := ValidateArbitrary(rate, phases); err != nil {
		return nil, err
	}
	taps = slices.Clone(taps)
	return newFilter(taps, newArbitraryKernel(taps, rate, phases)), nil
}

// Filter runs input through the filter and returns a newly allocated output.
func (f *Filter[E]) Filter(input []E) []E {
	out := make([]E, f.OutputLength(len(input)))
	n, _ := f.FilterInto(out, input)
	return out[:n]
}

// FilterInto writes the output for input into dst and returns the number of
// samples written. dst must hold at least OutputLength(len(input)) samples;
// otherwise ErrBufferTooSmall is returned and no state changes.
// dst may alias input.
func (f *Filter[E]) FilterInto(dst, input []E) (int, error) {
	need := f.OutputLength(len(input))
	if len(dst) < need {
		return 0, fmt.Errorf("%w: need %d samples, have %d", ErrBufferTooSmall, need, len(dst))
	}

	work := f.stage(input)
	n := f.process(dst, work, len(input))
	copy(f.history, work[len(work)-len(f.history):])
	return n, nil
}

// stage copies history ++ input into the reusable work buffer.
func (f *Filter[E]) stage(input []E) []E {
	size := len(f.history) + len(input)
	if cap(f.work) < size {
		f.work = make([]E, size)
	}
	work := f.work[:size]
	copy(work, f.history)
	copy(work[len(f.history):], input)
	return work
}

// Reset zeroes the history and restores the construction-time phase,
// deficit and accumulator. Coefficient tables are kept.
func (f *Filter[E]) Reset() {
	clear(f.history)
	f.kernel.reset()
}

// Clone returns an independent filter sharing the immutable coefficient
// tables, in construction-time state.
func (f *Filter[E]) Clone() *Filter[E] {
	return newFilter(f.taps, f.kernel.clone())
}

// History returns a copy of the carry-over samples, oldest first.
func (f *Filter[E]) History() []E {
	return slices.Clone(f.history)
}

// Taps returns a copy of the filter coefficients.
func (f *Filter[E]) Taps() []E {
	return slices.Clone(f.taps)
}

// Kind reports which kernel the filter runs.
func (f *Filter[E]) Kind() Kind {
	return f.kernel.kind()
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
