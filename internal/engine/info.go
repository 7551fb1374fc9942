package engine

import (
	"unsafe"

	"github.com/tphakala/simd/cpu"
)

// Info describes a filter's configuration and footprint.
type Info struct {
	Kind         Kind
	Ratio        float64
	Taps         int
	Phases       int
	TapsPerPhase int
	HistoryLen   int

	// Deficit is the number of leading input samples the next call skips.
	Deficit int

	// TimeDelay is the group delay in input samples.
	TimeDelay float64

	// MemoryUsage is the approximate size of coefficients, history and
	// scratch in bytes.
	MemoryUsage int64

	// FFT reports whether the overlap-save path is active.
	FFT bool

	// SIMD names the instruction set the real-valued kernels dispatch to.
	SIMD string
}

// Info returns a snapshot of the filter's configuration.
func (f *Filter[E]) Info() Info {
	info := Info{
		Kind:         f.Kind(),
		Ratio:        f.Ratio(),
		Taps:         len(f.taps),
		Phases:       1,
		TapsPerPhase: len(f.taps),
		HistoryLen:   len(f.history),
		TimeDelay:    f.TimeDelay(),
		MemoryUsage:  f.GetMemoryUsage(),
		SIMD:         cpu.Info(),
	}

	switch k := f.kernel.(type) {
	case *standardKernel[E]:
		info.FFT = k.fft != nil
	case *decimatorKernel[E]:
		info.Deficit = k.deficit
	case *interpolatorKernel[E]:
		info.Phases = k.bank.NumPhases
		info.TapsPerPhase = k.bank.TapsPerPhase
	case *rationalKernel[E]:
		info.Phases = k.bank.NumPhases
		info.TapsPerPhase = k.bank.TapsPerPhase
		info.Deficit = k.deficit
	case *arbitraryKernel[E]:
		info.Phases = k.pfb.NumPhases
		info.TapsPerPhase = k.pfb.TapsPerPhase
		info.Deficit = k.deficit
	}
	return info
}

// GetMemoryUsage returns approximate memory usage in bytes.
func (f *Filter[E]) GetMemoryUsage() int64 {
	var zero E
	elem := int64(unsafe.Sizeof(zero))

	usage := int64(len(f.taps)+len(f.history)+cap(f.work)) * elem
	switch k := f.kernel.(type) {
	case *standardKernel[E]:
		usage += int64(len(k.rev)) * elem
		if k.fft != nil {
			const complexBytes, floatBytes = 16, 8
			usage += int64(3*len(k.fft.kernelFFT))*complexBytes + int64(2*k.fft.fftSize)*floatBytes
		}
	case *decimatorKernel[E]:
		usage += int64(len(k.rev)) * elem
	case *interpolatorKernel[E]:
		usage += k.bank.GetMemoryUsage()
		for _, buf := range k.phaseBufs {
			usage += int64(cap(buf)) * elem
		}
	case *rationalKernel[E]:
		usage += k.bank.GetMemoryUsage()
	case *arbitraryKernel[E]:
		usage += k.pfb.GetMemoryUsage() + k.dpfb.GetMemoryUsage()
	}
	return usage
}
