package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-fir-filter/internal/testutil"
)

func TestSetPhase_Unsupported(t *testing.T) {
	taps := []float64{1, 2, 3}

	std, _ := NewStandard(taps)
	assert.ErrorIs(t, std.SetPhase(1), ErrNotSupported)

	interp, _ := NewInterpolator(taps, 2)
	assert.ErrorIs(t, interp.SetPhase(0.5), ErrNotSupported)
}

func TestSetPhase_InvalidPhase(t *testing.T) {
	f, err := NewRational([]float64{1, 2, 3}, 3, 2)
	require.NoError(t, err)

	for _, phi := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, f.SetPhase(phi), ErrInvalidPhase, "phi=%g", phi)
	}
	phase, deficit, _ := f.PhaseState()
	assert.Zero(t, phase)
	assert.Equal(t, 1, deficit, "failed SetPhase must not change state")
}

func TestSetPhase_Decimator(t *testing.T) {
	f, err := NewDecimator([]float64{1, 2, 3}, 2)
	require.NoError(t, err)

	require.NoError(t, f.SetPhase(2.6))
	_, deficit, _ := f.PhaseState()
	assert.Equal(t, 4, deficit)
}

func TestSetPhase_Rational(t *testing.T) {
	taps := testutil.Noise[float64](12, testSeedTaps)

	tests := []struct {
		name        string
		phi         float64
		wantPhase   int
		wantDeficit int
	}{
		{"zero", 0, 0, 1},
		{"whole_and_half", 2.5, 2, 3},
		{"quarter", 0.25, 1, 1},
		{"rounds_up_to_next_sample", 0.9, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewRational(taps, 4, 3)
			require.NoError(t, err)
			require.NoError(t, f.SetPhase(tt.phi))
			phase, deficit, _ := f.PhaseState()
			assert.Equal(t, tt.wantPhase, phase)
			assert.Equal(t, tt.wantDeficit, deficit)
		})
	}
}

func TestSetPhase_Arbitrary(t *testing.T) {
	f, err := NewArbitrary([]float64{1, 2, 3, 4}, 0.8, 8)
	require.NoError(t, err)

	require.NoError(t, f.SetPhase(1.25))
	_, deficit, acc := f.PhaseState()
	assert.Equal(t, 2, deficit)
	assert.InDelta(t, 3.0, acc, 1e-12)

	f.Reset()
	_, deficit, acc = f.PhaseState()
	assert.Equal(t, 1, deficit)
	assert.InDelta(t, 1.0, acc, 0)
}

func TestSetPhase_AlignsLinearInterpolation(t *testing.T) {
	// [0.5 1 0.5] at L=2 is linear interpolation delayed by half an input
	// sample; starting half a sample in removes the delay.
	f, err := NewRational([]float64{0.5, 1, 0.5}, 2, 1)
	require.NoError(t, err)
	require.InDelta(t, 0.5, f.TimeDelay(), 0)

	require.NoError(t, f.SetPhase(f.TimeDelay()))
	got := f.Filter([]float64{1, 2, 3})
	assert.Equal(t, []float64{1, 1.5, 2, 2.5, 3}, got)
}

func TestTimeDelay(t *testing.T) {
	taps := make([]float64, 37)

	std, _ := NewStandard(taps)
	dec, _ := NewDecimator(taps, 3)
	interp, _ := NewInterpolator(taps, 4)
	rat, _ := NewRational(taps, 3, 2)
	arb, _ := NewArbitrary(taps, 1.1, 6)

	assert.InDelta(t, 18.0, std.TimeDelay(), 0)
	assert.InDelta(t, 18.0, dec.TimeDelay(), 0)
	assert.InDelta(t, 4.5, interp.TimeDelay(), 0)
	assert.InDelta(t, 6.0, rat.TimeDelay(), 0)
	assert.InDelta(t, 3.0, arb.TimeDelay(), 0)
}

func TestRatio(t *testing.T) {
	taps := []float64{1}

	std, _ := NewStandard(taps)
	dec, _ := NewDecimator(taps, 4)
	interp, _ := NewInterpolator(taps, 3)
	rat, _ := NewRational(taps, 6, 4)
	arb, _ := NewArbitrary(taps, 0.91, 32)

	assert.InDelta(t, 1.0, std.Ratio(), 0)
	assert.InDelta(t, 0.25, dec.Ratio(), 0)
	assert.InDelta(t, 3.0, interp.Ratio(), 0)
	assert.InDelta(t, 1.5, rat.Ratio(), 0)
	assert.InDelta(t, 0.91, arb.Ratio(), 0)
}
