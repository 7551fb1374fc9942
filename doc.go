// Package firfilter provides streaming polyphase FIR filters in pure Go.
//
// A [Filter] applies a fixed set of taps to a signal delivered in chunks of
// any size, optionally changing the sample rate on the way. State carried
// between calls makes the output independent of how the input is split.
//
// # Kernels
//
// [New] picks a kernel from the requested [Rate]:
//
//   - 1/1: standard convolution. Long float64 filters switch to FFT
//     overlap-save convolution.
//   - 1/M: decimation, computing only every M-th output.
//   - L/1: interpolation through an L-phase polyphase bank.
//   - L/M: rational resampling that walks the bank without materializing
//     the upsampled signal.
//   - [Arbitrary]: real-valued rates, interpolating linearly between
//     adjacent phases of the bank with a derivative bank.
//
// Ratios are reduced before a kernel is chosen, so Ratio(4, 2) interpolates
// by 2.
//
// # Streaming
//
//	f, err := firfilter.New[float32](taps, firfilter.Ratio(3, 2))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for chunk := range chunks {
//	    out := f.Filter(chunk)
//	    write(out)
//	}
//
// [Filter.OutputLength] predicts exactly how many samples the next call
// produces, so [Filter.FilterInto] can write into a caller-owned buffer
// without allocating. [Filter.InputLength] answers the inverse question.
//
// # Element Types
//
// Samples and taps may be float32, float64, complex64 or complex128. Real
// types use SIMD kernels from github.com/tphakala/simd. Taps are promoted to
// the sample type once at construction; [Promote] does the same for samples.
//
// # Phase and Delay
//
// A linear-phase filter delays the signal by [Filter.TimeDelay] input
// samples. [Filter.SetPhase] skips into the signal to remove that delay, and
// [Resample] does this for a whole signal in one call.
//
// # Thread Safety
//
// A Filter is owned by one goroutine at a time. [Filter.Clone] creates an
// independent copy sharing the coefficient tables, and [MultiChannel] runs
// one clone per channel, optionally in parallel.
//
// # Design
//
// Coefficient design is left to the caller. The analyze-filter and fir-wav
// commands show Kaiser windowed-sinc taps in use.
package firfilter
