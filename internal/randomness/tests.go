package randomness

import (
	"math"
	"math/bits"

	"github.com/nao1215/stegoscan/internal/model"
	"github.com/nao1215/stegoscan/internal/numeric"
)

// Test thresholds.
const (
	// FrequencySignificance is the monobit pass threshold: the test
	// passes when the two-sided p-value is at least this large.
	FrequencySignificance = 0.01

	// RunsCriticalZ is the two-sided 95% critical value for the runs
	// test z-score.
	RunsCriticalZ = 1.96
)

// Serial-correlation interpretation buckets by coefficient magnitude.
const (
	serialNearZero = 0.1
	serialStrong   = 0.5
)

// FrequencyTest runs the monobit test: it counts set bits across all bytes
// and checks the balance against a fair-bit null hypothesis, converting the
// normalized deviation into a two-sided p-value via the complementary error
// function. Empty input is reported as failed with p-value 0.
func FrequencyTest(data []byte) model.FrequencyTestResult {
	if len(data) == 0 {
		return model.FrequencyTestResult{}
	}

	var ones int64
	for _, b := range data {
		ones += int64(bits.OnesCount8(b))
	}
	totalBits := int64(len(data)) * 8

	// S_n = ones - zeros; under the null hypothesis S_n/sqrt(n) is
	// approximately standard normal.
	s := math.Abs(float64(2*ones-totalBits)) / math.Sqrt(float64(totalBits))
	pValue := numeric.Erfc(s / math.Sqrt2)

	return model.FrequencyTestResult{
		Passed: pValue >= FrequencySignificance,
		PValue: pValue,
		Ones:   ones,
		Bits:   totalBits,
	}
}

// SerialCorrelation computes the lag-1 Pearson correlation between
// consecutive byte values. Constant data has a zero denominator and is
// reported as coefficient 0, not an error.
func SerialCorrelation(data []byte) model.SerialCorrelationResult {
	if len(data) < 2 {
		return model.SerialCorrelationResult{Interpretation: interpretCorrelation(0)}
	}

	n := float64(len(data) - 1)
	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := 0; i < len(data)-1; i++ {
		x := float64(data[i])
		y := float64(data[i+1])
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
		sumYY += y * y
	}

	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))

	coefficient := 0.0
	if denominator != 0 {
		coefficient = numerator / denominator
	}

	return model.SerialCorrelationResult{
		Coefficient:    coefficient,
		Interpretation: interpretCorrelation(coefficient),
	}
}

// interpretCorrelation buckets a correlation coefficient by magnitude and
// sign.
func interpretCorrelation(coefficient float64) string {
	switch {
	case math.Abs(coefficient) < serialNearZero:
		return "near-zero correlation, consistent with random or encrypted data"
	case coefficient >= serialStrong:
		return "strong positive correlation, typical of text or structured data"
	case coefficient > 0:
		return "moderate positive correlation, some structure present"
	case coefficient <= -serialStrong:
		return "strong negative correlation, unusual alternating structure"
	default:
		return "moderate negative correlation, unusual structure"
	}
}

// RunsTest counts runs of identical bit values across the buffer's
// bitstream and compares the count to its expectation under the fair-bit
// null hypothesis.
//
// The test is inapplicable when the proportion of ones deviates from 0.5 by
// more than 2/sqrt(n): the run statistics then say nothing beyond what the
// frequency test already reported. In that case Applicable is false, Passed
// is false, and the z-score is the 0 sentinel, never a crash or a NaN.
func RunsTest(data []byte) model.RunsTestResult {
	if len(data) == 0 {
		return model.RunsTestResult{}
	}

	var ones int64
	for _, b := range data {
		ones += int64(bits.OnesCount8(b))
	}
	n := int64(len(data)) * 8
	pi := float64(ones) / float64(n)

	if math.Abs(pi-0.5) > 2/math.Sqrt(float64(n)) {
		return model.RunsTestResult{}
	}

	// Count runs over the bitstream, most significant bit first.
	var runs int64 = 1
	prev := data[0] >> 7 & 1
	for i := int64(0); i < n; i++ {
		bit := data[i/8] >> (7 - uint(i%8)) & 1
		if i == 0 {
			prev = bit
			continue
		}
		if bit != prev {
			runs++
			prev = bit
		}
	}

	expected := 2*float64(n)*pi*(1-pi) + 1
	variance := (expected - 1) * (expected - 2) / (float64(n) - 1)
	if variance <= 0 {
		return model.RunsTestResult{}
	}

	z := (float64(runs) - expected) / math.Sqrt(variance)
	return model.RunsTestResult{
		Applicable: true,
		Passed:     math.Abs(z) < RunsCriticalZ,
		ZScore:     z,
		Runs:       runs,
	}
}

// LooksRandom reports whether the suite as a whole is consistent with
// random or encrypted content: the frequency test passes and the runs test,
// when applicable, passes as well.
func LooksRandom(report model.RandomnessReport) bool {
	if !report.Frequency.Passed {
		return false
	}
	if !report.Runs.Applicable {
		return false
	}
	return report.Runs.Passed
}

// Analyze runs the full suite over one buffer.
func Analyze(data []byte) model.RandomnessReport {
	return model.RandomnessReport{
		Frequency: FrequencyTest(data),
		Serial:    SerialCorrelation(data),
		Runs:      RunsTest(data),
	}
}
