package model

// DetectionRange describes a detection method's empirical effectiveness.
// Entries are static reference data consulted to annotate reports for human
// consumption; the engine never computes or mutates them.
type DetectionRange struct {
	// Method is the catalog key (matches Finding.Method).
	Method string

	// HitRateLow and HitRateHigh bound the observed detection rate in
	// percent under the method's intended conditions.
	HitRateLow int
	HitRateHigh int

	// BestConditions describes where the method is strongest.
	BestConditions string

	// WeakConditions describes where the method degrades or fails.
	WeakConditions string

	// FalsePositiveRate is the typical false-positive rate in percent.
	FalsePositiveRate int
}

// detectionRangeCatalog maps method keys to their effectiveness data.
//
// Design decision: We use an immutable package-level map constructed once at
// process start rather than a stateful singleton with methods. It is a
// single source of truth for method documentation and makes it trivial to
// render the whole catalog in the CLI.
var detectionRangeCatalog = map[string]DetectionRange{
	"chi-square": {
		Method:            "chi-square",
		HitRateLow:        70,
		HitRateHigh:       95,
		BestConditions:    "Sequential LSB replacement at high embedding density (over 50% of capacity).",
		WeakConditions:    "Randomly scattered embedding, LSB matching, low-density payloads.",
		FalsePositiveRate: 5,
	},
	"rs-analysis": {
		Method:            "rs-analysis",
		HitRateLow:        60,
		HitRateHigh:       90,
		BestConditions:    "Spatial-domain LSB replacement in natural photographs, payload above 5% of capacity.",
		WeakConditions:    "Synthetic or heavily compressed images; estimator overshoots on flat regions.",
		FalsePositiveRate: 10,
	},
	"sample-pairs": {
		Method:            "sample-pairs",
		HitRateLow:        60,
		HitRateHigh:       85,
		BestConditions:    "LSB replacement above 3% of capacity with smooth adjacent-pixel statistics.",
		WeakConditions:    "Noisy or dithered images; saturated channels skew the pair buckets.",
		FalsePositiveRate: 10,
	},
	"entropy": {
		Method:            "entropy",
		HitRateLow:        80,
		HitRateHigh:       95,
		BestConditions:    "Encrypted or compressed payloads embedded in otherwise low-entropy carriers.",
		WeakConditions:    "Carriers that are already compressed (JPEG, ZIP) mask payload entropy.",
		FalsePositiveRate: 15,
	},
	"randomness": {
		Method:            "randomness",
		HitRateLow:        75,
		HitRateHigh:       95,
		BestConditions:    "Distinguishing encrypted data from text, code, and structured binary formats.",
		WeakConditions:    "Well-compressed data passes the same tests as ciphertext.",
		FalsePositiveRate: 10,
	},
	"signature-scan": {
		Method:            "signature-scan",
		HitRateLow:        90,
		HitRateHigh:       99,
		BestConditions:    "Intact foreign files embedded or appended without transformation.",
		WeakConditions:    "Encrypted, fragmented, or header-stripped payloads carry no signature.",
		FalsePositiveRate: 2,
	},
}

// LookupDetectionRange returns the effectiveness data for a method key.
// The second return value reports whether the method is in the catalog.
func LookupDetectionRange(method string) (DetectionRange, bool) {
	dr, ok := detectionRangeCatalog[method]
	return dr, ok
}

// DetectionRanges returns the full catalog keyed by method.
// The returned map is a copy; callers may not mutate catalog state.
func DetectionRanges() map[string]DetectionRange {
	out := make(map[string]DetectionRange, len(detectionRangeCatalog))
	for k, v := range detectionRangeCatalog {
		out[k] = v
	}
	return out
}
