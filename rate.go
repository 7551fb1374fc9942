package firfilter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-fir-filter/internal/engine"
)

type rateKind int

const (
	rateUnity rateKind = iota // zero value
	rateRational
	rateArbitrary
)

// Rate is an output/input sample rate ratio: either an exact fraction l/m or
// a real-valued rate served by an interpolated polyphase bank.
//
// The zero value is the unity ratio 1/1.
type Rate struct {
	kind   rateKind
	l, m   int
	real   float64
	phases int
}

// Ratio returns the exact rate l/m. It is not reduced until a filter is built.
func Ratio(l, m int) Rate {
	return Rate{kind: rateRational, l: l, m: m}
}

// Arbitrary returns a real-valued rate served by a bank of the given number
// of phases. More phases make the linear interpolation between them finer.
func Arbitrary(rate float64, phases int) Rate {
	return Rate{kind: rateArbitrary, real: rate, phases: phases}
}

// Unity returns the 1/1 rate.
func Unity() Rate {
	return Rate{}
}

// Validate checks that the rate can build a filter.
func (r Rate) Validate() error {
	switch r.kind {
	case rateRational:
		if r.l < 1 || r.m < 1 {
			return fmt.Errorf("%w: ratio %d/%d must have positive terms", ErrInvalidRate, r.l, r.m)
		}
	case rateArbitrary:
		return engine.ValidateArbitrary(r.real, r.phases)
	}
	return nil
}

// IsArbitrary reports whether the rate is real-valued rather than a fraction.
func (r Rate) IsArbitrary() bool {
	return r.kind == rateArbitrary
}

// Fraction returns the reduced l/m of an exact rate, or 0, 0 for an
// arbitrary one.
func (r Rate) Fraction() (l, m int) {
	switch r.kind {
	case rateUnity:
		return 1, 1
	case rateArbitrary:
		return 0, 0
	}
	if r.l < 1 || r.m < 1 {
		return r.l, r.m
	}
	g := gcd(r.l, r.m)
	return r.l / g, r.m / g
}

// Phases returns the bank size of an arbitrary rate, 0 otherwise.
func (r Rate) Phases() int {
	if r.kind != rateArbitrary {
		return 0
	}
	return r.phases
}

// Float returns the rate as a float64.
func (r Rate) Float() float64 {
	if r.kind == rateArbitrary {
		return r.real
	}
	l, m := r.Fraction()
	if m == 0 {
		return math.NaN()
	}
	return float64(l) / float64(m)
}

// String formats the rate as "l/m" or "~rate (phases)".
func (r Rate) String() string {
	if r.kind == rateArbitrary {
		return fmt.Sprintf("~%g (%d phases)", r.real, r.phases)
	}
	l, m := r.Fraction()
	return fmt.Sprintf("%d/%d", l, m)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
