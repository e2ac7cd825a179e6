package numeric

import "math"

// lanczosCoefficients are the coefficients for the Lanczos approximation of
// the gamma function with g=5, n=6. This is the classic parameter set with
// absolute error below 2e-10 over the positive real axis.
var lanczosCoefficients = [6]float64{
	76.18009172947146,
	-86.50532032941677,
	24.01409824083091,
	-1.231739572450155,
	0.1208650973866179e-2,
	-0.5395239384953e-5,
}

// LogGamma returns ln(Gamma(x)) for x > 0 using the Lanczos approximation.
// Non-positive inputs return 0 rather than diverging; the scanner only
// evaluates it at positive half-integer arguments.
func LogGamma(x float64) float64 {
	if x <= 0 {
		return 0
	}

	tmp := x + 5.5
	tmp -= (x + 0.5) * math.Log(tmp)

	series := 1.000000000190015
	y := x
	for _, c := range lanczosCoefficients {
		y++
		series += c / y
	}

	return -tmp + math.Log(2.5066282746310005*series/x)
}

// Iteration and convergence bounds for the incomplete gamma series.
const (
	// gammaSeriesMaxIterations caps the series expansion. The chi-square
	// arguments the scanner produces converge in well under 200 terms.
	gammaSeriesMaxIterations = 200

	// gammaSeriesEpsilon stops the expansion once a term no longer
	// changes the sum at this relative scale.
	gammaSeriesEpsilon = 1e-14
)

// RegularizedGammaP returns the regularized lower incomplete gamma function
// P(a, x) for a > 0, computed by series expansion. It converts a chi-square
// statistic into its CDF value via P(k/2, chi/2).
//
// Guards keep the result finite and inside [0,1] for every input: x <= 0
// returns 0, x far beyond a + 10*sqrt(a) returns 1, and the series is capped
// at gammaSeriesMaxIterations terms.
func RegularizedGammaP(a, x float64) float64 {
	if a <= 0 || x <= 0 {
		return 0
	}
	// So far into the upper tail that the series would just burn
	// iterations converging to 1.
	if x > a+10*math.Sqrt(a) {
		return 1
	}

	// Series: P(a,x) = x^a e^-x / Gamma(a) * sum_{n>=0} x^n / (a(a+1)...(a+n))
	term := 1.0 / a
	sum := term
	ap := a
	for range gammaSeriesMaxIterations {
		ap++
		term *= x / ap
		sum += term
		if math.Abs(term) < math.Abs(sum)*gammaSeriesEpsilon {
			break
		}
	}

	logResult := -x + a*math.Log(x) - LogGamma(a) + math.Log(sum)
	p := math.Exp(logResult)

	// Floating-point slop can push the result a hair outside [0,1].
	switch {
	case p < 0 || math.IsNaN(p):
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Erfc returns the complementary error function using the rational
// polynomial approximation from Numerical Recipes (erfcc), with absolute
// error below 1.2e-7 everywhere. Negative inputs use the symmetry
// erfc(-x) = 2 - erfc(x).
func Erfc(x float64) float64 {
	if x < 0 {
		return 2 - Erfc(-x)
	}

	t := 1.0 / (1.0 + 0.5*x)
	poly := -x*x - 1.26551223 + t*(1.00002368+t*(0.37409196+t*(0.09678418+
		t*(-0.18628806+t*(0.27886807+t*(-1.13520398+t*(1.48851587+
			t*(-0.82215223+t*0.17087277))))))))

	return t * math.Exp(poly)
}
