package firfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-fir-filter/internal/testutil"
)

func newStereo(t *testing.T, parallel bool) *MultiChannel[float64] {
	t.Helper()
	proto, err := New[float64](testutil.Noise[float64](40, 1), Ratio(160, 147))
	require.NoError(t, err)
	m, err := NewMultiChannel(proto, 2, parallel)
	require.NoError(t, err)
	return m
}

func TestMultiChannel_ParallelMatchesSequential(t *testing.T) {
	input := [][]float64{
		testutil.Noise[float64](4410, 2),
		testutil.Noise[float64](4410, 3),
	}

	seq := newStereo(t, false)
	par := newStereo(t, true)

	for range 3 {
		want, err := seq.ProcessMulti(input)
		require.NoError(t, err)
		got, err := par.ProcessMulti(input)
		require.NoError(t, err)

		require.Len(t, got, 2)
		for ch := range got {
			testutil.AssertSamplesInDelta(t, want[ch], got[ch], tol, "channel %d", ch)
		}
	}
}

func TestMultiChannel_ChannelsIndependent(t *testing.T) {
	m := newStereo(t, true)
	x := testutil.Noise[float64](500, 9)

	out, err := m.ProcessMulti([][]float64{x, make([]float64, len(x))})
	require.NoError(t, err)

	single, err := Apply(m.Channel(0).Taps(), x, Ratio(160, 147))
	require.NoError(t, err)
	testutil.AssertSamplesInDelta(t, single, out[0], tol)
	for _, v := range out[1] {
		assert.Zero(t, v)
	}
}

func TestMultiChannel_Interleaved(t *testing.T) {
	left := testutil.Noise[float64](300, 4)
	right := testutil.Noise[float64](300, 5)

	planar := newStereo(t, false)
	want, err := planar.ProcessMulti([][]float64{left, right})
	require.NoError(t, err)

	frames := newStereo(t, true)
	got, err := frames.ProcessInterleaved(InterleaveStereo(left, right))
	require.NoError(t, err)

	gotLeft, gotRight := DeinterleaveStereo(got)
	testutil.AssertSamplesInDelta(t, want[0], gotLeft, tol)
	testutil.AssertSamplesInDelta(t, want[1], gotRight, tol)
}

func TestMultiChannel_Reset(t *testing.T) {
	m := newStereo(t, false)
	input := [][]float64{testutil.Noise[float64](100, 1), testutil.Noise[float64](100, 2)}

	first, err := m.ProcessMulti(input)
	require.NoError(t, err)
	m.Reset()
	second, err := m.ProcessMulti(input)
	require.NoError(t, err)

	for ch := range first {
		testutil.AssertSamplesInDelta(t, first[ch], second[ch], tol)
	}
}

func TestMultiChannel_Errors(t *testing.T) {
	proto, err := New[float32]([]float32{1}, Unity())
	require.NoError(t, err)

	_, err = NewMultiChannel(proto, 0, false)
	require.ErrorIs(t, err, ErrChannelCount)
	_, err = NewMultiChannel(proto, maxChannels+1, false)
	require.ErrorIs(t, err, ErrChannelCount)

	m, err := NewMultiChannel(proto, 3, false)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Channels())

	_, err = m.ProcessMulti([][]float32{{1}, {2}})
	require.ErrorIs(t, err, ErrChannelCount)

	_, err = m.ProcessInterleaved([]float32{1, 2, 3, 4})
	require.ErrorIs(t, err, ErrChannelCount)
}

func TestInterleave(t *testing.T) {
	chans := [][]int{{1, 2, 3}, {10, 20, 30}, {100, 200}}
	assert.Equal(t, []int{1, 10, 100, 2, 20, 200, 3, 30, 0}, Interleave(chans))
	assert.Nil(t, Interleave[int](nil))

	back, err := Deinterleave([]int{1, 10, 2, 20}, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}, {10, 20}}, back)

	_, err = Deinterleave([]int{1, 2, 3}, 2)
	require.ErrorIs(t, err, ErrChannelCount)

	l, r := DeinterleaveStereo([]float32{1, 2, 3, 4, 5})
	assert.Equal(t, []float32{1, 3}, l)
	assert.Equal(t, []float32{2, 4}, r)
}
