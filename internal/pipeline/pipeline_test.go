package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-fir-filter/internal/engine"
	"github.com/tphakala/go-fir-filter/internal/testutil"
)

const tol = 1e-9

// Decimating by 2 then 3 with a single-tap second stage equals one decimator of 6.
func decimate2then3(t *testing.T, taps []float64) *Pipeline[float64] {
	t.Helper()
	first, err := engine.NewDecimator(taps, 2)
	require.NoError(t, err)
	second, err := engine.NewDecimator([]float64{1}, 3)
	require.NoError(t, err)
	p, err := New[float64](first, second)
	require.NoError(t, err)
	return p
}

func TestNew_NoStages(t *testing.T) {
	_, err := New[float64]()
	require.ErrorIs(t, err, ErrNoStages)
}

func TestNew_NilStage(t *testing.T) {
	var s Stage[float64]
	_, err := New(s)
	require.Error(t, err)
}

func TestPipeline_DecimationCascade(t *testing.T) {
	taps := []float64{0.25, 0.5, 0.25}
	x := testutil.Noise[float64](301, 7)

	p := decimate2then3(t, taps)
	got, err := p.Process(x)
	require.NoError(t, err)

	// Stage one keeps outputs 0,2,4,...; stage two keeps every third of those.
	want := testutil.ReferenceResample(taps, x, 1, 6)
	testutil.AssertSamplesInDelta(t, want, got, tol)
	assert.Len(t, got, p.OutputLength(len(x)))
}

func TestPipeline_ChunkInvariance(t *testing.T) {
	taps := testutil.Noise[float64](17, 3)
	x := testutil.Noise[float64](500, 11)

	whole := decimate2then3(t, taps)
	want, err := whole.Process(x)
	require.NoError(t, err)

	for _, sizes := range [][]int{{1, 1, 1, 1}, {5, 7, 13}, {250}, {0, 499}} {
		p := decimate2then3(t, taps)
		var got []float64
		for _, chunk := range testutil.Chunks(x, sizes...) {
			predicted := p.OutputLength(len(chunk))
			out, err := p.Process(chunk)
			require.NoError(t, err)
			assert.Len(t, out, predicted)
			got = append(got, out...)
		}
		testutil.AssertSamplesInDelta(t, want, got, tol, "sizes %v", sizes)
	}
}

func TestPipeline_UpThenDown(t *testing.T) {
	taps := []float64{0.5, 1, 0.5}
	up, err := engine.NewInterpolator(taps, 2)
	require.NoError(t, err)
	down, err := engine.NewDecimator([]float64{1}, 3)
	require.NoError(t, err)
	p, err := New[float64](up, down)
	require.NoError(t, err)

	x := testutil.Ramp[float64](40)
	got, err := p.Process(x)
	require.NoError(t, err)

	testutil.AssertSamplesInDelta(t, testutil.ReferenceResample(taps, x, 2, 3), got, tol)
	assert.InDelta(t, 2.0/3.0, p.Ratio(), 1e-12)
}

func TestPipeline_ProcessIntoShortBuffer(t *testing.T) {
	p := decimate2then3(t, []float64{1, 1})
	dst := make([]float64, 1)
	_, err := p.ProcessInto(dst, testutil.Ramp[float64](60))
	require.ErrorIs(t, err, engine.ErrBufferTooSmall)
}

func TestPipeline_InputLength(t *testing.T) {
	p := decimate2then3(t, testutil.Noise[float64](9, 5))
	for _, out := range []int{1, 2, 5, 17} {
		in := p.InputLength(out)
		assert.GreaterOrEqual(t, p.OutputLength(in), out, "out=%d", out)
	}
	assert.Equal(t, 0, p.InputLength(0))
}

func TestPipeline_Reset(t *testing.T) {
	p := decimate2then3(t, testutil.Noise[float64](9, 5))
	x := testutil.Noise[float64](100, 1)

	first, err := p.Process(x)
	require.NoError(t, err)
	p.Reset()
	second, err := p.Process(x)
	require.NoError(t, err)
	testutil.AssertSamplesInDelta(t, first, second, tol)
}

func TestPipeline_TimeDelay(t *testing.T) {
	p := decimate2then3(t, []float64{1, 2, 3, 2, 1})
	// First stage: 2 input samples. Second stage: 0.
	assert.InDelta(t, 2.0, p.TimeDelay(), 1e-12)

	up, err := engine.NewInterpolator(make([]float64, 9), 4)
	require.NoError(t, err)
	std, err := engine.NewStandard(make([]float64, 5))
	require.NoError(t, err)
	p2, err := New[float64](up, std)
	require.NoError(t, err)
	// 8/(2·4) input samples plus 2 samples at 4x the rate.
	assert.InDelta(t, 1.5, p2.TimeDelay(), 1e-12)
	assert.Len(t, p2.Stages(), 2)
}
