package filter

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

const defaultResponsePoints = 512

// Response holds the frequency response of a tap vector.
type Response struct {
	// Frequencies at which the response was evaluated (normalized, 0 to 0.5).
	Frequencies []float64

	// Magnitude response (linear).
	Magnitude []float64

	// Phase response in radians.
	Phase []float64
}

// FrequencyResponse evaluates the response of taps at numPoints evenly spaced
// frequencies from DC up to (not including) Nyquist.
// The taps are zero-padded to a multiple of 2·numPoints and transformed once.
func FrequencyResponse(taps []float64, numPoints int) Response {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	base := 2 * numPoints
	stride := max(1, (len(taps)+base-1)/base)
	n := base * stride

	padded := make([]float64, n)
	copy(padded, taps)
	coeffs := fourier.NewFFT(n).Coefficients(nil, padded)

	resp := Response{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}
	for k := range numPoints {
		c := coeffs[k*stride]
		resp.Frequencies[k] = float64(k) / float64(base)
		resp.Magnitude[k] = cmplx.Abs(c)
		resp.Phase[k] = cmplx.Phase(c)
	}
	return resp
}

// PhaseGains returns the DC gain of every phase of a bank.
// A well designed resampler prototype has near-equal gains.
func PhaseGains(b *Bank[float64]) []float64 {
	gains := make([]float64, b.NumPhases)
	for col := range gains {
		gains[col] = floats.Sum(b.Column(col))
	}
	return gains
}

// NormalizedDB returns the magnitude in dB relative to its peak.
func (r Response) NormalizedDB() []float64 {
	db := make([]float64, len(r.Magnitude))
	if len(db) == 0 {
		return db
	}
	peak := floats.Max(r.Magnitude)
	if peak == 0 {
		peak = 1
	}
	for i, m := range r.Magnitude {
		db[i] = MagnitudeDB(m / peak)
	}
	return db
}

// StopbandAttenuation returns the smallest attenuation in dB, relative to the
// peak, at frequencies at or above from. It returns +Inf when no evaluated
// frequency is that high.
func (r Response) StopbandAttenuation(from float64) float64 {
	db := r.NormalizedDB()
	worst := math.Inf(-1)
	for i, f := range r.Frequencies {
		if f >= from {
			worst = max(worst, db[i])
		}
	}
	return -worst
}

// MagnitudeDB converts linear magnitude to decibels, flooring at -200 dB.
func MagnitudeDB(magnitude float64) float64 {
	const minMagnitude = 1e-10
	return 20 * math.Log10(max(magnitude, minMagnitude))
}
