package firfilter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate_ZeroValueIsUnity(t *testing.T) {
	var r Rate
	require.NoError(t, r.Validate())
	l, m := r.Fraction()
	assert.Equal(t, 1, l)
	assert.Equal(t, 1, m)
	assert.InDelta(t, 1.0, r.Float(), 0)
	assert.Equal(t, Unity(), r)
	assert.Equal(t, "1/1", r.String())
}

func TestRate_Fraction(t *testing.T) {
	tests := []struct {
		rate Rate
		l, m int
	}{
		{Ratio(4, 2), 2, 1},
		{Ratio(160, 147), 160, 147},
		{Ratio(6, 9), 2, 3},
		{Ratio(5, 5), 1, 1},
		{Arbitrary(1.5, 32), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.rate.String(), func(t *testing.T) {
			l, m := tt.rate.Fraction()
			assert.Equal(t, tt.l, l)
			assert.Equal(t, tt.m, m)
		})
	}
}

func TestRate_Validate(t *testing.T) {
	valid := []Rate{Unity(), Ratio(1, 1), Ratio(3, 2), Arbitrary(0.1, 1), Arbitrary(44.1/48.0, DefaultPhases)}
	for _, r := range valid {
		assert.NoError(t, r.Validate(), r.String())
	}

	invalid := []Rate{
		Ratio(0, 1),
		Ratio(1, 0),
		Ratio(-2, 3),
		Arbitrary(0, 32),
		Arbitrary(-1, 32),
		Arbitrary(math.NaN(), 32),
		Arbitrary(math.Inf(1), 32),
		Arbitrary(1.5, 0),
	}
	for _, r := range invalid {
		assert.ErrorIs(t, r.Validate(), ErrInvalidRate, r.String())
	}
}

func TestRate_Accessors(t *testing.T) {
	r := Arbitrary(0.75, 16)
	assert.True(t, r.IsArbitrary())
	assert.Equal(t, 16, r.Phases())
	assert.InDelta(t, 0.75, r.Float(), 0)
	assert.Equal(t, "~0.75 (16 phases)", r.String())

	q := Ratio(3, 6)
	assert.False(t, q.IsArbitrary())
	assert.Equal(t, 0, q.Phases())
	assert.InDelta(t, 0.5, q.Float(), 1e-15)
	assert.Equal(t, "1/2", q.String())
}
