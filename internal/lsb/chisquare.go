package lsb

import (
	"github.com/nao1215/stegoscan/internal/model"
	"github.com/nao1215/stegoscan/internal/numeric"
)

// chiSquareDegreesOfFreedom is the degrees of freedom for 128 pairs of
// values (256 histogram bins paired by shared high seven bits).
const chiSquareDegreesOfFreedom = 127

// ChiSquare runs the pairs-of-values attack on one intensity plane.
//
// LSB replacement equalizes the populations of each value pair (2k, 2k+1):
// the attack builds a 256-bin histogram, compares each even bin against the
// pair mean, and converts the chi-square statistic over 127 degrees of
// freedom into a p-value with the regularized incomplete gamma function.
// Empty channels return the neutral zero result.
func (a *Analyzer) ChiSquare(channel []uint8) model.ChiSquareResult {
	if len(channel) == 0 {
		return model.ChiSquareResult{DegreesOfFreedom: chiSquareDegreesOfFreedom}
	}

	var histogram [256]float64
	for _, v := range channel {
		histogram[v]++
	}

	statistic := 0.0
	for i := 0; i < 256; i += 2 {
		expected := (histogram[i] + histogram[i+1]) / 2
		if expected == 0 {
			// Empty pair carries no information.
			continue
		}
		diff := histogram[i] - expected
		statistic += diff * diff / expected
	}

	pValue := numeric.RegularizedGammaP(float64(chiSquareDegreesOfFreedom)/2, statistic/2)
	return model.ChiSquareResult{
		Statistic:        statistic,
		DegreesOfFreedom: chiSquareDegreesOfFreedom,
		PValue:           pValue,
		Detected:         pValue > a.chiSquareThreshold,
	}
}
