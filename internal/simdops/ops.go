// Package simdops provides the dot-product style primitives the filter engine
// needs, for every supported sample type.
//
// Real types delegate to the SIMD kernels in github.com/tphakala/simd. Complex
// types use plain loops with the same signatures so the engine can stay generic.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Complex is the type constraint for supported complex types.
type Complex interface {
	complex64 | complex128
}

// Element is the type constraint for every sample and coefficient type.
type Element interface {
	float32 | float64 | complex64 | complex128
}

// Ops provides the primitive operations for type E.
// Function pointers keep the engine generic while delegating to
// type-specific implementations.
type Ops[E Element] struct {
	// Dot computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	Dot func(a, b []E) E

	// ConvolveValid computes dst[i] = Σ signal[i+k]*kernel[k] for
	// i in [0, len(signal)-len(kernel)].
	ConvolveValid func(dst, signal, kernel []E)

	// ConvolveValidMulti runs ConvolveValid for several kernels over one signal.
	ConvolveValidMulti func(dsts [][]E, signal []E, kernels [][]E)

	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []E)

	// FromReal converts a real scalar to E.
	FromReal func(v float64) E

	// Complex reports whether E is a complex type.
	Complex bool
}

var (
	ops32 = Ops[float32]{
		Dot:                f32.DotProductUnsafe,
		ConvolveValid:      f32.ConvolveValid,
		ConvolveValidMulti: f32.ConvolveValidMulti,
		Interleave2:        f32.Interleave2,
		FromReal:           func(v float64) float32 { return float32(v) },
	}
	ops64 = Ops[float64]{
		Dot:                f64.DotProductUnsafe,
		ConvolveValid:      f64.ConvolveValid,
		ConvolveValidMulti: f64.ConvolveValidMulti,
		Interleave2:        f64.Interleave2,
		FromReal:           func(v float64) float64 { return v },
	}
	opsC64 = Ops[complex64]{
		Dot:                dot[complex64],
		ConvolveValid:      convolveValid[complex64],
		ConvolveValidMulti: convolveValidMulti[complex64],
		Interleave2:        interleave2[complex64],
		FromReal:           func(v float64) complex64 { return complex(float32(v), 0) },
		Complex:            true,
	}
	opsC128 = Ops[complex128]{
		Dot:                dot[complex128],
		ConvolveValid:      convolveValid[complex128],
		ConvolveValidMulti: convolveValidMulti[complex128],
		Interleave2:        interleave2[complex128],
		FromReal:           func(v float64) complex128 { return complex(v, 0) },
		Complex:            true,
	}
)

// For returns the Ops instance for type E.
// The type switch happens at construction time, not in hot paths.
func For[E Element]() *Ops[E] {
	var zero E
	var ops any
	switch any(zero).(type) {
	case float32:
		ops = &ops32
	case float64:
		ops = &ops64
	case complex64:
		ops = &opsC64
	case complex128:
		ops = &opsC128
	}
	typed, ok := ops.(*Ops[E])
	if !ok {
		panic("simdops: unsupported element type")
	}
	return typed
}

func dot[E Complex](a, b []E) E {
	var sum E
	b = b[:len(a)]
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}

func convolveValid[E Complex](dst, signal, kernel []E) {
	n := len(signal) - len(kernel) + 1
	for i := 0; i < n && i < len(dst); i++ {
		dst[i] = dot(kernel, signal[i:i+len(kernel)])
	}
}

func convolveValidMulti[E Complex](dsts [][]E, signal []E, kernels [][]E) {
	for k, kernel := range kernels {
		convolveValid(dsts[k], signal, kernel)
	}
}

func interleave2[E Complex](dst, a, b []E) {
	for i := range a {
		dst[2*i] = a[i]
		dst[2*i+1] = b[i]
	}
}
