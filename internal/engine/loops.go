package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-fir-filter/internal/simdops"
)

// process runs the kernel over work = history ++ input, where n is the input
// length, and returns the number of outputs written to dst.
//
// Positions below are 1-based over the input; the window of length w ending
// at input position i is work[i-1 : i-1+w].
func (f *Filter[E]) process(dst, work []E, n int) int {
	switch k := f.kernel.(type) {
	case *standardKernel[E]:
		return filterStandard(k, dst, work, n, f.ops)
	case *decimatorKernel[E]:
		return filterDecimator(k, dst, work, n, f.ops)
	case *interpolatorKernel[E]:
		return filterInterpolator(k, dst, work, n, f.ops)
	case *rationalKernel[E]:
		return filterRational(k, dst, work, n, f.ops)
	case *arbitraryKernel[E]:
		return filterArbitrary(k, dst, work, n, f.ops)
	default:
		panic(fmt.Sprintf("engine: unknown kernel %T", k))
	}
}

func filterStandard[E simdops.Element](k *standardKernel[E], dst, work []E, n int, ops *simdops.Ops[E]) int {
	if n == 0 {
		return 0
	}
	if k.fft != nil {
		k.fft.convolve(any(dst[:n]).([]float64), any(work).([]float64))
		return n
	}

	taps := len(k.rev)
	for start := 0; start < n; start += l2CacheChunkSize {
		end := min(start+l2CacheChunkSize, n)
		ops.ConvolveValid(dst[start:end], work[start:end+taps-1], k.rev)
	}
	return n
}

func filterDecimator[E simdops.Element](k *decimatorKernel[E], dst, work []E, n int, ops *simdops.Ops[E]) int {
	taps := len(k.rev)
	out := 0
	idx := k.deficit
	// With n < deficit the loop is skipped and the deficit shrinks by n.
	for ; idx <= n; idx += k.factor {
		dst[out] = ops.Dot(k.rev, work[idx-1:idx-1+taps])
		out++
	}
	k.deficit = idx - n
	return out
}

func filterInterpolator[E simdops.Element](k *interpolatorKernel[E], dst, work []E, n int, ops *simdops.Ops[E]) int {
	factor := k.bank.NumPhases
	tapsPerPhase := k.bank.TapsPerPhase
	if factor == 1 {
		for start := 0; start < n; start += l2CacheChunkSize {
			end := min(start+l2CacheChunkSize, n)
			ops.ConvolveValid(dst[start:end], work[start:end+tapsPerPhase-1], k.bank.Column(0))
		}
		return n
	}

	for start := 0; start < n; start += l2CacheChunkSize {
		end := min(start+l2CacheChunkSize, n)
		chunkLen := end - start
		bufs := k.buffers(chunkLen)

		ops.ConvolveValidMulti(bufs, work[start:end+tapsPerPhase-1], k.bank.Columns())

		output := dst[start*factor : end*factor]
		if factor == halfBandFactor {
			ops.Interleave2(output, bufs[0], bufs[1])
			continue
		}
		for i := range chunkLen {
			base := i * factor
			for phase := range factor {
				output[base+phase] = bufs[phase][i]
			}
		}
	}
	return n * factor
}

// buffers sizes the per-phase scratch to size samples each.
func (k *interpolatorKernel[E]) buffers(size int) [][]E {
	for phase := range k.phaseBufs {
		if cap(k.phaseBufs[phase]) < size {
			k.phaseBufs[phase] = make([]E, size, max(size, l2CacheChunkSize))
		}
		k.phaseBufs[phase] = k.phaseBufs[phase][:size]
	}
	return k.phaseBufs
}

func filterRational[E simdops.Element](k *rationalKernel[E], dst, work []E, n int, ops *simdops.Ops[E]) int {
	tapsPerPhase := k.bank.TapsPerPhase
	out := 0
	idx := k.deficit
	phase := k.phase
	for idx <= n {
		dst[out] = ops.Dot(k.bank.Column(phase), work[idx-1:idx-1+tapsPerPhase])
		out++

		idx += (phase + k.m) / k.l
		phase += k.step
		if phase >= k.l {
			phase -= k.l
		}
	}
	k.phase = phase
	k.deficit = idx - n
	return out
}

func filterArbitrary[E simdops.Element](k *arbitraryKernel[E], dst, work []E, n int, ops *simdops.Ops[E]) int {
	tapsPerPhase := k.pfb.TapsPerPhase
	out := 0
	idx := k.deficit
	acc := k.acc
	for idx <= n {
		whole := math.Floor(acc)
		col := int(whole) - 1
		window := work[idx-1 : idx-1+tapsPerPhase]

		lower := ops.Dot(k.pfb.Column(col), window)
		slope := ops.Dot(k.dpfb.Column(col), window)
		dst[out] = lower + ops.FromReal(acc-whole)*slope
		out++

		acc, idx = k.advance(acc, idx)
	}
	k.acc = acc
	k.deficit = idx - n
	return out
}
