// Package testutil provides reusable test helpers for filter tests.
package testutil

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-fir-filter/internal/simdops"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	Float32Tolerance = 1e-4
)

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%f != s[%d]=%f", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertDCGain verifies that the sum of coefficients equals the expected DC gain.
func AssertDCGain(t *testing.T, coeffs []float64, expectedGain, tolerance float64) bool {
	t.Helper()
	var sum float64
	for _, c := range coeffs {
		sum += c
	}
	return assert.InDelta(t, expectedGain, sum, tolerance,
		"DC gain = %f, want %f", sum, expectedGain)
}

// AssertSamplesInDelta verifies that two sample slices have the same length
// and agree element-wise within tolerance. Complex samples are compared by
// the magnitude of their difference.
func AssertSamplesInDelta[E simdops.Element](t *testing.T, expected, actual []E, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if d := Distance(expected[i], actual[i]); d > tolerance || math.IsNaN(d) {
			return assert.Fail(t, "samples differ",
				"index %d: expected %v, got %v (|diff|=%g > %g)", i, expected[i], actual[i], d, tolerance)
		}
	}
	return true
}

// Distance returns |a-b| for any element type.
func Distance[E simdops.Element](a, b E) float64 {
	switch d := any(a - b).(type) {
	case float32:
		return math.Abs(float64(d))
	case float64:
		return math.Abs(d)
	case complex64:
		return cmplx.Abs(complex128(d))
	case complex128:
		return cmplx.Abs(d)
	}
	return math.NaN()
}

// Ramp returns 1, 2, ..., n converted to E.
func Ramp[E simdops.Element](n int) []E {
	ops := simdops.For[E]()
	s := make([]E, n)
	for i := range s {
		s[i] = ops.FromReal(float64(i + 1))
	}
	return s
}

// Noise returns n deterministic pseudo-random samples in [-1, 1).
// Complex types get independent real and imaginary parts.
func Noise[E simdops.Element](n int, seed uint64) []E {
	state := seed | 1
	next := func() float64 {
		// xorshift64*
		state ^= state >> 12
		state ^= state << 25
		state ^= state >> 27
		return float64((state*2685821657736338717)>>11)/float64(1<<53)*2 - 1
	}

	s := make([]E, n)
	for i := range s {
		re := next()
		var v any
		switch any(s[i]).(type) {
		case float32:
			v = float32(re)
		case float64:
			v = re
		case complex64:
			v = complex64(complex(re, next()))
		case complex128:
			v = complex(re, next())
		}
		s[i] = v.(E)
	}
	return s
}

// Sine returns n samples of a unit sine at freq cycles per sample.
func Sine(n int, freq float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.Sin(2 * math.Pi * freq * float64(i))
	}
	return s
}

// ReferenceResample computes the L/M resampled output of x through taps the
// slow way: zero-stuff by l, convolve with taps (zero initial state), keep
// every m-th sample starting at 0. It yields outputs for every kept position
// up to l·len(x)−1.
func ReferenceResample[E simdops.Element](taps, x []E, l, m int) []E {
	n := l * len(x)
	var out []E
	for t := 0; t < n; t += m {
		var acc E
		for k, h := range taps {
			pos := t - k
			if pos < 0 {
				break
			}
			if pos%l == 0 {
				acc += h * x[pos/l]
			}
		}
		out = append(out, acc)
	}
	return out
}

// Chunks splits s at the given sizes; the remainder forms a final chunk.
func Chunks[E any](s []E, sizes ...int) [][]E {
	var chunks [][]E
	for _, size := range sizes {
		size = min(size, len(s))
		chunks = append(chunks, s[:size])
		s = s[size:]
	}
	if len(s) > 0 {
		chunks = append(chunks, s)
	}
	return chunks
}
