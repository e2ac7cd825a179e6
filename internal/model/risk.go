package model

// RiskLevel represents the overall risk assessment of a scanned input.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type RiskLevel int

const (
	// RiskLow indicates no finding category was triggered.
	// The input looks like ordinary, unmodified data.
	RiskLow RiskLevel = iota

	// RiskMedium indicates exactly one finding category was triggered.
	// A single signal is often a false positive; review is suggested.
	RiskMedium

	// RiskHigh indicates two distinct finding categories agree.
	// Independent signals reinforcing each other are unlikely by chance.
	RiskHigh

	// RiskCritical indicates three or more distinct finding categories agree.
	// The input almost certainly carries hidden or encrypted content.
	RiskCritical
)

// String returns a human-readable representation of the risk level.
func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	case RiskCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Confidence values reported for each risk level.
//
// Design decision: confidence is a documented monotonic mapping of the
// distinct-category count, not a calibrated probability. The exact numbers
// are tunable, but the mapping must stay monotonic: more independent
// detection methods agreeing always means higher confidence.
const (
	// ConfidenceLow is reported when no category triggered.
	ConfidenceLow = 20

	// ConfidenceMedium is reported when one category triggered.
	ConfidenceMedium = 60

	// ConfidenceHigh is reported when two categories triggered.
	ConfidenceHigh = 80

	// ConfidenceCritical is reported when three or more categories triggered.
	ConfidenceCritical = 95
)

// RiskFromCategoryCount derives the risk level from the number of distinct
// finding categories that triggered during a scan. Raw match counts are
// deliberately ignored: fifty embedded-file matches are still one signal,
// while an embedded file plus an entropy anomaly are two independent ones.
func RiskFromCategoryCount(n int) RiskLevel {
	switch {
	case n <= 0:
		return RiskLow
	case n == 1:
		return RiskMedium
	case n == 2:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// ConfidenceFromCategoryCount derives the report confidence from the number
// of distinct finding categories that triggered. See the Confidence
// constants for the mapping.
func ConfidenceFromCategoryCount(n int) int {
	switch {
	case n <= 0:
		return ConfidenceLow
	case n == 1:
		return ConfidenceMedium
	case n == 2:
		return ConfidenceHigh
	default:
		return ConfidenceCritical
	}
}
