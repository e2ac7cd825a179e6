package lsb

import (
	"math"

	"github.com/nao1215/stegoscan/internal/model"
)

// samplePairsLinearEpsilon is the magnitude below which the quadratic
// coefficient is treated as zero and the linear fallback is used.
const samplePairsLinearEpsilon = 1e-9

// SamplePairs runs sample-pairs analysis on one intensity plane.
//
// Every horizontal and vertical adjacent pixel pair (u, v) falls into one
// of four buckets:
//
//	Z: u == v
//	W: u != v but the pairs share their high seven bits (LSB-only difference)
//	X: v even with u < v, or v odd with u > v
//	Y: the remaining unequal pairs
//
// LSB embedding migrates pairs between buckets at known rates, which yields
// a quadratic in the embedding rate r:
//
//	0.5*(W+Z)*r^2 + (2X - P)*r + (Y - X) = 0
//
// with P the total pair count. The root smaller in magnitude is the
// estimate; a vanishing quadratic coefficient falls back to the linear
// solve, and a negative discriminant or unsolvable boundary returns the
// neutral zero result.
func (a *Analyzer) SamplePairs(channel []uint8, width, height int) model.SamplePairsResult {
	if width < 2 || height < 2 || len(channel) < width*height {
		return model.SamplePairsResult{}
	}

	var countX, countY, countZ, countW float64
	classify := func(u, v uint8) {
		switch {
		case u == v:
			countZ++
		case u>>1 == v>>1:
			countW++
		case (v&1 == 0 && u < v) || (v&1 == 1 && u > v):
			countX++
		default:
			countY++
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x+1 < width; x++ {
			classify(channel[y*width+x], channel[y*width+x+1])
		}
	}
	for y := 0; y+1 < height; y++ {
		for x := 0; x < width; x++ {
			classify(channel[y*width+x], channel[(y+1)*width+x])
		}
	}

	total := countX + countY + countZ + countW
	if total == 0 {
		return model.SamplePairsResult{}
	}

	qa := 0.5 * (countW + countZ)
	qb := 2*countX - total
	qc := countY - countX

	rate, ok := solveSmallestRoot(qa, qb, qc)
	if !ok {
		return model.SamplePairsResult{}
	}

	estimate := 100 * rate
	return model.SamplePairsResult{
		EstimatedPayload: estimate,
		Detected:         abs(estimate) > a.samplePairsThreshold,
	}
}

// solveSmallestRoot solves qa*r^2 + qb*r + qc = 0 for the root smaller in
// magnitude. It reports false only when no real root exists.
func solveSmallestRoot(qa, qb, qc float64) (float64, bool) {
	if math.Abs(qa) < samplePairsLinearEpsilon {
		if qb == 0 {
			// Constant equation: only solvable when already satisfied.
			return 0, qc == 0
		}
		return -qc / qb, true
	}

	discriminant := qb*qb - 4*qa*qc
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	r1 := (-qb + sqrtD) / (2 * qa)
	r2 := (-qb - sqrtD) / (2 * qa)
	if math.Abs(r1) <= math.Abs(r2) {
		return r1, true
	}
	return r2, true
}
