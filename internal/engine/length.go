package engine

import (
	"fmt"
	"math"
)

// OutputLength returns the exact number of samples the next call with inLen
// input samples will produce, given the current state.
func (f *Filter[E]) OutputLength(inLen int) int {
	inLen = max(inLen, 0)
	switch k := f.kernel.(type) {
	case *standardKernel[E]:
		return inLen
	case *decimatorKernel[E]:
		return ceilDiv(inLen-k.deficit+1, k.factor)
	case *interpolatorKernel[E]:
		return inLen * k.bank.NumPhases
	case *rationalKernel[E]:
		if inLen < k.deficit {
			return 0
		}
		return ceilDiv((inLen-k.deficit+1)*k.l-k.phase, k.m)
	case *arbitraryKernel[E]:
		return k.outputLength(inLen)
	default:
		panic(fmt.Sprintf("engine: unknown kernel %T", k))
	}
}

// outputLength counts outputs by replaying the accumulator arithmetic of the
// loop, so the count is exact for any accumulator state. From a fresh state it
// equals ceil((inLen - deficit + 1)·rate) up to float rounding of the rate.
func (k *arbitraryKernel[E]) outputLength(inLen int) int {
	count := 0
	acc, idx := k.acc, k.deficit
	for idx <= inLen {
		count++
		acc, idx = k.advance(acc, idx)
	}
	return count
}

// InputLength returns the input length needed to produce outLen samples from
// the current state: the algebraic inverse of OutputLength rounded up, plus
// deficit-1.
//
// For the arbitrary kernel the inverse assumes a fresh accumulator and may
// come up one sample short mid-stream; callers that need an exact plan should
// check OutputLength of the result.
func (f *Filter[E]) InputLength(outLen int) int {
	if outLen <= 0 {
		return 0
	}
	switch k := f.kernel.(type) {
	case *standardKernel[E]:
		return outLen
	case *decimatorKernel[E]:
		return outLen*k.factor + k.deficit - 1
	case *interpolatorKernel[E]:
		return ceilDiv(outLen, k.bank.NumPhases)
	case *rationalKernel[E]:
		return ceilDiv(outLen*k.m+k.phase, k.l) + k.deficit - 1
	case *arbitraryKernel[E]:
		return int(math.Ceil(float64(outLen)/k.rate)) + k.deficit - 1
	default:
		panic(fmt.Sprintf("engine: unknown kernel %T", k))
	}
}

// ceilDiv returns ceil(a/b) for b > 0, and 0 when a <= 0.
func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
