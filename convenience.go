package firfilter

import (
	"fmt"
	"math"
	"slices"

	"github.com/tphakala/go-fir-filter/internal/simdops"
)

// Promote converts xs to element type E.
//
// Real values widen to complex with a zero imaginary part, and float widths
// convert either way. Complex values requested as a real type fail with
// ErrTypeMismatch. Same-type input is copied.
func Promote[E, T Element](xs []T) ([]E, error) {
	if same, ok := any(xs).([]E); ok {
		return slices.Clone(same), nil
	}

	ops := simdops.For[E]()
	out := make([]E, len(xs))
	switch src := any(xs).(type) {
	case []float32:
		for i, v := range src {
			out[i] = ops.FromReal(float64(v))
		}
	case []float64:
		for i, v := range src {
			out[i] = ops.FromReal(v)
		}
	case []complex64:
		if !ops.Complex {
			return nil, fmt.Errorf("%w: %T", ErrTypeMismatch, out)
		}
		for i, v := range src {
			out[i] = fromComplex[E](complex128(v))
		}
	case []complex128:
		if !ops.Complex {
			return nil, fmt.Errorf("%w: %T", ErrTypeMismatch, out)
		}
		for i, v := range src {
			out[i] = fromComplex[E](v)
		}
	}
	return out, nil
}

// fromComplex converts v to a complex E.
func fromComplex[E Element](v complex128) E {
	var out E
	switch p := any(&out).(type) {
	case *complex64:
		*p = complex64(v)
	case *complex128:
		*p = v
	}
	return out
}

// Apply filters input in one call with a fresh filter.
func Apply[E, T Element](taps []T, input []E, rate Rate) ([]E, error) {
	f, err := New[E](taps, rate)
	if err != nil {
		return nil, err
	}
	return f.Filter(input), nil
}

// Resample converts a complete signal to the given rate and compensates for
// the filter's group delay, so output sample k lines up with input time
// k/rate. The result has exactly ceil(len(input)·rate) samples; the tail is
// produced by feeding zeros past the end of input.
//
// Taps are assumed linear phase. Unity and integer interpolation rates are
// run through phase-capable kernels so the delay can be removed.
func Resample[E, T Element](input []E, rate Rate, taps []T) ([]E, error) {
	f, err := newPhased[E](taps, rate)
	if err != nil {
		return nil, err
	}
	if len(input) == 0 {
		return []E{}, nil
	}
	if err := f.SetPhase(f.TimeDelay()); err != nil {
		return nil, err
	}

	target := int(math.Ceil(float64(len(input)) * f.Ratio()))
	n := max(len(input), f.InputLength(target))
	for f.OutputLength(n) < target {
		n++
	}

	padded := make([]E, n)
	copy(padded, input)
	out := f.Filter(padded)
	return out[:target], nil
}

// Interleave merges channels into frame order:
// ch0[0], ch1[0], ..., ch0[1], ch1[1], ...
// Shorter channels are padded with zeros up to the longest.
func Interleave[E any](channels [][]E) []E {
	if len(channels) == 0 {
		return nil
	}
	frames := 0
	for _, ch := range channels {
		frames = max(frames, len(ch))
	}

	out := make([]E, frames*len(channels))
	for c, ch := range channels {
		for i, v := range ch {
			out[i*len(channels)+c] = v
		}
	}
	return out
}

// Deinterleave splits frame-ordered data into channels.
func Deinterleave[E any](data []E, channels int) ([][]E, error) {
	if channels < 1 || channels > maxChannels {
		return nil, fmt.Errorf("%w: %d", ErrChannelCount, channels)
	}
	if len(data)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not form whole frames of %d channels",
			ErrChannelCount, len(data), channels)
	}

	frames := len(data) / channels
	out := make([][]E, channels)
	for c := range out {
		out[c] = make([]E, frames)
		for i := range frames {
			out[c][i] = data[i*channels+c]
		}
	}
	return out, nil
}

// InterleaveStereo merges a left and right channel.
func InterleaveStereo[E any](left, right []E) []E {
	return Interleave([][]E{left, right})
}

// DeinterleaveStereo splits stereo frames into left and right. A trailing
// half frame is dropped.
func DeinterleaveStereo[E any](interleaved []E) (left, right []E) {
	frames := len(interleaved) / stereoChannels
	chans, _ := Deinterleave(interleaved[:frames*stereoChannels], stereoChannels)
	return chans[0], chans[1]
}
