// Package mathutil provides the special functions used by tap design.
package mathutil

import "math"

// Polynomial approximations from Abramowitz & Stegun 9.8.1 and 9.8.2.
const (
	besselSmallArgThreshold = 3.75

	besselI0Coeff1 = 3.5156229
	besselI0Coeff2 = 3.0899424
	besselI0Coeff3 = 1.2067492
	besselI0Coeff4 = 0.2659732
	besselI0Coeff5 = 0.360768e-1
	besselI0Coeff6 = 0.45813e-2

	besselI0AsympCoeff0 = 0.39894228
	besselI0AsympCoeff1 = 0.1328592e-1
	besselI0AsympCoeff2 = 0.225319e-2
	besselI0AsympCoeff3 = -0.157565e-2
	besselI0AsympCoeff4 = 0.916281e-2
	besselI0AsympCoeff5 = -0.2057706e-1
	besselI0AsympCoeff6 = 0.2635537e-1
	besselI0AsympCoeff7 = -0.1647633e-1
	besselI0AsympCoeff8 = 0.392377e-2
)

// Kaiser & Schafer empirical formulas.
const (
	kaiserAttHigh          = 50.0
	kaiserAttMedium        = 21.0
	kaiserBetaHighCoeff1   = 0.1102
	kaiserBetaHighOffset   = 8.7
	kaiserBetaMediumCoeff1 = 0.5842
	kaiserBetaMediumPower  = 0.4
	kaiserBetaMediumCoeff2 = 0.07886

	kaiserLengthOffset     = 7.95
	kaiserLengthMultiplier = 14.36

	// MinFilterLength and MaxFilterLength bound EstimateFilterLength.
	MinFilterLength = 3
	MaxFilterLength = 1<<16 - 1

	defaultTransitionBW = 0.01
)

// BesselI0 computes the modified Bessel function of the first kind, order zero: I₀(x).
//
// Accuracy is about 1e-7 relative, plenty for window design.
func BesselI0(x float64) float64 {
	ax := math.Abs(x)

	if ax < besselSmallArgThreshold {
		t := x / besselSmallArgThreshold
		t *= t
		return 1.0 + t*(besselI0Coeff1+t*(besselI0Coeff2+t*(besselI0Coeff3+
			t*(besselI0Coeff4+t*(besselI0Coeff5+t*besselI0Coeff6)))))
	}

	t := besselSmallArgThreshold / ax
	poly := besselI0AsympCoeff0 + t*(besselI0AsympCoeff1+t*(besselI0AsympCoeff2+
		t*(besselI0AsympCoeff3+t*(besselI0AsympCoeff4+t*(besselI0AsympCoeff5+
			t*(besselI0AsympCoeff6+t*(besselI0AsympCoeff7+t*besselI0AsympCoeff8)))))))
	return math.Exp(ax) * poly / math.Sqrt(ax)
}

// KaiserBeta computes the Kaiser window β for a stopband attenuation in dB.
//
//   - att > 50 dB:      β = 0.1102·(att − 8.7)
//   - 21 ≤ att ≤ 50 dB: β = 0.5842·(att − 21)^0.4 + 0.07886·(att − 21)
//   - otherwise:        β = 0
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff1 * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		delta := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(delta, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*delta
	default:
		return 0
	}
}

// EstimateFilterLength estimates the number of taps a Kaiser-window lowpass
// needs for the given attenuation (dB) and transition bandwidth (cycles per
// sample). The result is odd and clamped to [MinFilterLength, MaxFilterLength].
//
//	N ≈ (att − 7.95) / (14.36·Δf) + 1
func EstimateFilterLength(attenuation, transitionBW float64) int {
	if transitionBW <= 0 {
		transitionBW = defaultTransitionBW
	}

	taps := int(math.Ceil((attenuation-kaiserLengthOffset)/(kaiserLengthMultiplier*transitionBW))) + 1
	if taps%2 == 0 {
		taps++
	}
	return min(max(taps, MinFilterLength), MaxFilterLength)
}
