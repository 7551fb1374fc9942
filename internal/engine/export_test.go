package engine

// Export internal state for testing.
// This file uses the _test.go suffix so it's only included in test builds.

// PhaseState returns the 0-based phase (rational), the deficit and the
// accumulator (arbitrary) of the filter's kernel. Fields a kernel lacks are zero.
func (f *Filter[E]) PhaseState() (phase, deficit int, acc float64) {
	switch k := f.kernel.(type) {
	case *decimatorKernel[E]:
		return 0, k.deficit, 0
	case *rationalKernel[E]:
		return k.phase, k.deficit, 0
	case *arbitraryKernel[E]:
		return 0, k.deficit, k.acc
	}
	return 0, 0, 0
}

// ExportedCeilDiv wraps ceilDiv for testing.
func ExportedCeilDiv(a, b int) int {
	return ceilDiv(a, b)
}

// ExportedMinKernelForFFT exposes the FFT crossover length.
const ExportedMinKernelForFFT = minKernelForFFT
