package engine

import (
	"github.com/tphakala/go-fir-filter/internal/simdops"
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// Below this kernel length direct SIMD convolution beats gonum's FFT.
	minKernelForFFT = 400

	// Smallest FFT block.
	defaultFFTBlockSize = 512
)

// fftConvolver computes the same valid correlation as ConvolveValid,
// dst[i] = Σ signal[i+k]·kernel[k], with overlap-save FFT blocks.
//
// Each block transforms fftSize samples and keeps the last
// fftSize-kernelLen+1 outputs; the first kernelLen-1 are circular wrap.
// A convolver owns its scratch buffers and the gonum plan, so it must not be
// shared between filters.
type fftConvolver struct {
	fft       *fourier.FFT
	fftSize   int
	blockSize int
	kernelLen int
	scale     float64 // gonum's inverse transform is unnormalized

	kernelFFT []complex128

	block    []float64
	spectrum []complex128
	product  []complex128
	result   []float64
}

func newFFTConvolver(kernel []float64) *fftConvolver {
	kernelLen := len(kernel)
	fftSize := defaultFFTBlockSize
	for fftSize < 2*kernelLen {
		fftSize *= 2
	}
	fft := fourier.NewFFT(fftSize)

	// Circular convolution flips the kernel; flip it back so the block
	// output is a correlation like ConvolveValid.
	padded := make([]float64, fftSize)
	for i := range kernelLen {
		padded[i] = kernel[kernelLen-1-i]
	}
	bins := fftSize/2 + 1

	return &fftConvolver{
		fft:       fft,
		fftSize:   fftSize,
		blockSize: fftSize - kernelLen + 1,
		kernelLen: kernelLen,
		scale:     1 / float64(fftSize),
		kernelFFT: fft.Coefficients(nil, padded),
		block:     make([]float64, fftSize),
		spectrum:  make([]complex128, bins),
		product:   make([]complex128, bins),
		result:    make([]float64, fftSize),
	}
}

// newFFTConvolverFor returns a convolver when E is float64 and the kernel is
// long enough to benefit, nil otherwise.
func newFFTConvolverFor[E simdops.Element](kernel []E) *fftConvolver {
	k, ok := any(kernel).([]float64)
	if !ok || len(k) < minKernelForFFT {
		return nil
	}
	return newFFTConvolver(k)
}

// convolve writes len(signal)-kernelLen+1 outputs to dst.
func (c *fftConvolver) convolve(dst, signal []float64) {
	outputLen := len(signal) - c.kernelLen + 1
	overlap := c.kernelLen - 1

	for out := 0; out < outputLen; {
		clear(c.block)
		copy(c.block, signal[out:min(out+c.fftSize, len(signal))])

		c.spectrum = c.fft.Coefficients(c.spectrum, c.block)
		c128.Mul(c.product, c.spectrum, c.kernelFFT)
		c.result = c.fft.Sequence(c.result, c.product)

		valid := min(c.blockSize, outputLen-out)
		f64.Scale(dst[out:out+valid], c.result[overlap:overlap+valid], c.scale)
		out += valid
	}
}
