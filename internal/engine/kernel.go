package engine

import (
	"fmt"
	"math"
	"slices"

	"github.com/tphakala/go-fir-filter/internal/filter"
	"github.com/tphakala/go-fir-filter/internal/simdops"
)

// Kind identifies a kernel variant.
type Kind int

// Kernel variants.
const (
	KindStandard Kind = iota
	KindDecimator
	KindInterpolator
	KindRational
	KindArbitrary
)

// String returns the kernel name.
func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindDecimator:
		return "decimator"
	case KindInterpolator:
		return "interpolator"
	case KindRational:
		return "rational"
	case KindArbitrary:
		return "arbitrary"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// kernel is the closed set of variant states. Only the types in this file
// implement it; the streaming loops and length arithmetic switch over them.
type kernel[E simdops.Element] interface {
	kind() Kind
	reset()
	clone() kernel[E]
}

// standardKernel filters without a rate change.
type standardKernel[E simdops.Element] struct {
	rev []E // taps, reversed

	// Overlap-save path, set only for long float64 filters.
	fft *fftConvolver
}

func newStandardKernel[E simdops.Element](taps []E) *standardKernel[E] {
	rev := reversed(taps)
	return &standardKernel[E]{rev: rev, fft: newFFTConvolverFor(rev)}
}

func (k *standardKernel[E]) kind() Kind { return KindStandard }
func (k *standardKernel[E]) reset()     {}

func (k *standardKernel[E]) clone() kernel[E] {
	return &standardKernel[E]{rev: k.rev, fft: newFFTConvolverFor(k.rev)}
}

// decimatorKernel keeps every factor-th output of the standard kernel.
type decimatorKernel[E simdops.Element] struct {
	rev     []E
	factor  int
	deficit int
}

func newDecimatorKernel[E simdops.Element](taps []E, m int) *decimatorKernel[E] {
	return &decimatorKernel[E]{rev: reversed(taps), factor: m, deficit: initialDeficit}
}

func (k *decimatorKernel[E]) kind() Kind { return KindDecimator }
func (k *decimatorKernel[E]) reset()     { k.deficit = initialDeficit }

func (k *decimatorKernel[E]) clone() kernel[E] {
	c := *k
	c.reset()
	return &c
}

// interpolatorKernel emits every phase of its bank for each input sample.
type interpolatorKernel[E simdops.Element] struct {
	bank *filter.Bank[E]

	// Per-phase convolution outputs, reused across calls.
	phaseBufs [][]E
}

func newInterpolatorKernel[E simdops.Element](taps []E, l int) *interpolatorKernel[E] {
	return &interpolatorKernel[E]{
		bank:      filter.NewBank(taps, l),
		phaseBufs: make([][]E, l),
	}
}

func (k *interpolatorKernel[E]) kind() Kind { return KindInterpolator }
func (k *interpolatorKernel[E]) reset()     {}

func (k *interpolatorKernel[E]) clone() kernel[E] {
	return &interpolatorKernel[E]{bank: k.bank, phaseBufs: make([][]E, k.bank.NumPhases)}
}

// rationalKernel resamples by l/m without materializing the upsampled signal.
type rationalKernel[E simdops.Element] struct {
	bank *filter.Bank[E]
	l, m int
	step int // m mod l

	phase   int // 0-based column of the next output
	deficit int
}

func newRationalKernel[E simdops.Element](taps []E, l, m int) *rationalKernel[E] {
	return &rationalKernel[E]{
		bank:    filter.NewBank(taps, l),
		l:       l,
		m:       m,
		step:    m % l,
		deficit: initialDeficit,
	}
}

func (k *rationalKernel[E]) kind() Kind { return KindRational }

func (k *rationalKernel[E]) reset() {
	k.phase = 0
	k.deficit = initialDeficit
}

func (k *rationalKernel[E]) clone() kernel[E] {
	c := *k
	c.reset()
	return &c
}

// arbitraryKernel resamples by a real rate, interpolating linearly between
// adjacent phases with a derivative bank.
type arbitraryKernel[E simdops.Element] struct {
	pfb    *filter.Bank[E]
	dpfb   *filter.Bank[E]
	rate   float64
	phases int
	delta  float64 // phases / rate

	acc     float64 // in [1, phases+1)
	deficit int
}

func newArbitraryKernel[E simdops.Element](taps []E, rate float64, phases int) *arbitraryKernel[E] {
	return &arbitraryKernel[E]{
		pfb:     filter.NewBank(taps, phases),
		dpfb:    filter.NewDerivativeBank(taps, phases),
		rate:    rate,
		phases:  phases,
		delta:   float64(phases) / rate,
		acc:     initialAccumulator,
		deficit: initialDeficit,
	}
}

func (k *arbitraryKernel[E]) kind() Kind { return KindArbitrary }

func (k *arbitraryKernel[E]) reset() {
	k.acc = initialAccumulator
	k.deficit = initialDeficit
}

func (k *arbitraryKernel[E]) clone() kernel[E] {
	c := *k
	c.reset()
	return &c
}

// advance moves the accumulator one output forward and returns the new
// accumulator and input position. The length predictor replays exactly
// this arithmetic.
func (k *arbitraryKernel[E]) advance(acc float64, idx int) (float64, int) {
	acc += k.delta
	if phases := float64(k.phases); acc > phases {
		idx += int(math.Floor((acc - 1) / phases))
		acc = math.Mod(acc-1, phases) + 1
	}
	return acc, idx
}

// ValidateArbitrary checks arbitrary-rate parameters.
func ValidateArbitrary(rate float64, phases int) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return fmt.Errorf("%w: rate %g must be positive and finite", ErrInvalidRate, rate)
	}
	if phases < 1 {
		return fmt.Errorf("%w: phase count %d must be >= 1", ErrInvalidRate, phases)
	}
	return nil
}

// historyLen is the lookback of a kernel minus one.
func historyLen[E simdops.Element](k kernel[E]) int {
	switch k := k.(type) {
	case *standardKernel[E]:
		return len(k.rev) - 1
	case *decimatorKernel[E]:
		return len(k.rev) - 1
	case *interpolatorKernel[E]:
		return k.bank.TapsPerPhase - 1
	case *rationalKernel[E]:
		return k.bank.TapsPerPhase - 1
	case *arbitraryKernel[E]:
		return k.pfb.TapsPerPhase - 1
	default:
		panic(fmt.Sprintf("engine: unknown kernel %T", k))
	}
}

func reversed[E simdops.Element](taps []E) []E {
	rev := slices.Clone(taps)
	slices.Reverse(rev)
	return rev
}
