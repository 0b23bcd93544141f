package policy

import "math"

// Coefficients of Acklam's rational approximation to the standard-normal
// inverse CDF. Relative error is below 1.15e-9 over the full open interval.
var (
	quantileA = [6]float64{
		-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02,
		1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00,
	}
	quantileB = [5]float64{
		-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02,
		6.680131188771972e+01, -1.328068155288572e+01,
	}
	quantileC = [6]float64{
		-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00,
		-2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00,
	}
	quantileD = [4]float64{
		7.784695709041462e-03, 3.224671290700398e-01,
		2.445134137142996e+00, 3.754408661907416e+00,
	}
)

const (
	quantileLow  = 0.02425
	quantileHigh = 1 - quantileLow
)

// NormalQuantile returns the standard-normal inverse CDF at p, the z-score
// at which the cumulative probability equals p. Returns NaN outside (0, 1).
func NormalQuantile(p float64) float64 {
	switch {
	case p <= 0 || p >= 1 || math.IsNaN(p):
		return math.NaN()
	case p < quantileLow:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((quantileC[0]*q+quantileC[1])*q+quantileC[2])*q+quantileC[3])*q+quantileC[4])*q + quantileC[5]) /
			((((quantileD[0]*q+quantileD[1])*q+quantileD[2])*q+quantileD[3])*q + 1)
	case p > quantileHigh:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((quantileC[0]*q+quantileC[1])*q+quantileC[2])*q+quantileC[3])*q+quantileC[4])*q + quantileC[5]) /
			((((quantileD[0]*q+quantileD[1])*q+quantileD[2])*q+quantileD[3])*q + 1)
	default:
		q := p - 0.5
		r := q * q
		return (((((quantileA[0]*r+quantileA[1])*r+quantileA[2])*r+quantileA[3])*r+quantileA[4])*r + quantileA[5]) * q /
			(((((quantileB[0]*r+quantileB[1])*r+quantileB[2])*r+quantileB[3])*r+quantileB[4])*r + 1)
	}
}
