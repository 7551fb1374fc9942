package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor_ReturnsSharedTables(t *testing.T) {
	assert.Same(t, For[float64](), For[float64]())
	assert.False(t, For[float32]().Complex)
	assert.True(t, For[complex64]().Complex)
	assert.True(t, For[complex128]().Complex)
}

func TestFromReal(t *testing.T) {
	assert.Equal(t, float32(1.5), For[float32]().FromReal(1.5))
	assert.Equal(t, complex64(complex(2.5, 0)), For[complex64]().FromReal(2.5))
	assert.Equal(t, complex(-3.0, 0), For[complex128]().FromReal(-3))
}

func TestComplexDot(t *testing.T) {
	ops := For[complex128]()
	a := []complex128{1 + 1i, 2, 0 - 1i}
	b := []complex128{1, 1i, 2}

	// (1+i)*1 + 2*i + (-i)*2 = 1 + i + 2i - 2i
	assert.Equal(t, 1+1i, ops.Dot(a, b))
}

func TestConvolveValid_MatchesDot(t *testing.T) {
	signal := []float64{1, 2, 3, 4, 5, 6}
	kernel := []float64{0.5, -1, 2}

	real64 := make([]float64, 4)
	For[float64]().ConvolveValid(real64, signal, kernel)

	csignal := make([]complex128, len(signal))
	for i, v := range signal {
		csignal[i] = complex(v, 0)
	}
	ckernel := []complex128{0.5, -1, 2}
	cplx := make([]complex128, 4)
	For[complex128]().ConvolveValid(cplx, csignal, ckernel)

	for i := range real64 {
		want := 0.0
		for k, h := range kernel {
			want += signal[i+k] * h
		}
		assert.InDelta(t, want, real64[i], 1e-12, "real output %d", i)
		assert.InDelta(t, want, real(cplx[i]), 1e-12, "complex output %d", i)
		assert.Zero(t, imag(cplx[i]))
	}
}

func TestConvolveValidMultiAndInterleave(t *testing.T) {
	ops := For[complex64]()
	signal := []complex64{1, 2, 3, 4}
	kernels := [][]complex64{{1, 0}, {0, 1}}
	dsts := [][]complex64{make([]complex64, 3), make([]complex64, 3)}

	ops.ConvolveValidMulti(dsts, signal, kernels)
	require.Equal(t, []complex64{1, 2, 3}, dsts[0])
	require.Equal(t, []complex64{2, 3, 4}, dsts[1])

	out := make([]complex64, 6)
	ops.Interleave2(out, dsts[0], dsts[1])
	assert.Equal(t, []complex64{1, 2, 2, 3, 3, 4}, out)
}
